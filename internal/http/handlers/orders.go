package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/http/response"
	"github.com/yungbote/reporting-service/internal/services"
)

type OrderHandler struct {
	summaries services.OrderSummaryService
}

func NewOrderHandler(summaries services.OrderSummaryService) *OrderHandler {
	return &OrderHandler{summaries: summaries}
}

// GET /api/v1/orders/summary
// Failures go to the error boundary, which answers 500.
func (h *OrderHandler) Summary(c *gin.Context) {
	rows, err := h.summaries.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.RespondOK(c, rows)
}
