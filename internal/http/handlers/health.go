package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/health"
)

type HealthHandler struct {
	checker     *health.Checker
	showDetails bool
}

// NewHealthHandler serves the checker's report. showDetails keeps check
// error text in the payload; outside development it is dropped.
func NewHealthHandler(checker *health.Checker, showDetails bool) *HealthHandler {
	if checker == nil {
		checker = health.NewChecker(0)
	}
	return &HealthHandler{checker: checker, showDetails: showDetails}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	report := h.checker.Run(c.Request.Context())
	if !h.showDetails {
		for name, res := range report.Checks {
			res.Error = ""
			report.Checks[name] = res
		}
	}
	status := http.StatusOK
	if report.Status != health.Healthy {
		status = http.StatusServiceUnavailable
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(status, report)
}
