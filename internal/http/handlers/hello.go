package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/http/response"
)

type HelloResponse struct {
	Message string `json:"message"`
}

type HelloHandler struct{}

func NewHelloHandler() *HelloHandler { return &HelloHandler{} }

// GET /api/v1/hello
func (h *HelloHandler) HelloV1(c *gin.Context) {
	response.RespondOK(c, HelloResponse{Message: "Hello from v1!"})
}
