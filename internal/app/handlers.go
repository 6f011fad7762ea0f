package app

import (
	"fmt"

	"github.com/yungbote/reporting-service/internal/apiversion"
	httpH "github.com/yungbote/reporting-service/internal/http/handlers"
	"github.com/yungbote/reporting-service/internal/openapi"
	"github.com/yungbote/reporting-service/internal/platform/logger"
	"github.com/yungbote/reporting-service/internal/web"
)

type Handlers struct {
	Hello  *httpH.HelloHandler
	Order  *httpH.OrderHandler
	Health *httpH.HealthHandler
	Docs   *httpH.DocsHandler
	SPA    *httpH.SPAHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) (Handlers, error) {
	log.Info("Wiring handlers...")

	var docs *httpH.DocsHandler
	if cfg.Features.Swagger {
		d, err := httpH.NewDocsHandler(openapi.Build(openapi.DefaultInfo(), "/api/"+apiversion.V1.Segment()))
		if err != nil {
			return Handlers{}, fmt.Errorf("build openapi document: %w", err)
		}
		docs = d
	}

	root, fromDir := web.Root(cfg.StaticDir)
	if fromDir {
		log.Info("Serving SPA from directory", "dir", cfg.StaticDir)
	} else {
		log.Debug("Serving embedded SPA shell", "dir", cfg.StaticDir)
	}

	return Handlers{
		Hello:  httpH.NewHelloHandler(),
		Order:  httpH.NewOrderHandler(serviceset.OrderSummary),
		Health: httpH.NewHealthHandler(serviceset.Health, IsDevelopment(cfg.Env)),
		Docs:   docs,
		SPA:    httpH.NewSPAHandler(root),
	}, nil
}
