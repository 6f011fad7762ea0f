package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/apiversion"
	httpapi "github.com/yungbote/reporting-service/internal/http"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, clients Clients, handlers Handlers) *gin.Engine {
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:           log,
		Features:      cfg.Features,
		CORSOrigins:   cfg.CORSOrigins,
		Versions:      apiversion.DefaultSet(),
		Tracing:       cfg.Otel.Enabled,
		ServiceName:   cfg.Otel.ServiceName,
		Metrics:       clients.Metrics,
		HelloHandler:  handlers.Hello,
		OrderHandler:  handlers.Order,
		HealthHandler: handlers.Health,
		DocsHandler:   handlers.Docs,
		SPAHandler:    handlers.SPA,
	})
}
