package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/reporting-service/internal/apiversion"
	httpH "github.com/yungbote/reporting-service/internal/http/handlers"
	httpMW "github.com/yungbote/reporting-service/internal/http/middleware"
	"github.com/yungbote/reporting-service/internal/observability"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

// Features are the environment-dependent parts of the routing table. They
// are decided once at startup.
type Features struct {
	DevCORS bool
	Swagger bool
}

type RouterConfig struct {
	Log         *logger.Logger
	Features    Features
	CORSOrigins []string
	Versions    apiversion.Set

	// Tracing adds otelgin spans named after ServiceName.
	Tracing     bool
	ServiceName string
	Metrics     *observability.Metrics

	HelloHandler  *httpH.HelloHandler
	OrderHandler  *httpH.OrderHandler
	HealthHandler *httpH.HealthHandler
	DocsHandler   *httpH.DocsHandler
	SPAHandler    *httpH.SPAHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	versions := cfg.Versions
	if len(versions.Supported) == 0 {
		versions = apiversion.DefaultSet()
	}

	r := gin.New()
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	if cfg.Features.DevCORS {
		r.Use(httpMW.DevCORS(cfg.CORSOrigins))
	}
	r.Use(httpMW.ErrorBoundary(log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Versioned API. The unversioned forms take the version from the
	// query string or header, or fall back to the default.
	api := r.Group("/api", httpMW.APIVersion(versions))
	{
		if cfg.HelloHandler != nil {
			api.GET("/:version/hello", cfg.HelloHandler.HelloV1)
			api.GET("/hello", cfg.HelloHandler.HelloV1)
		}
		if cfg.OrderHandler != nil {
			api.GET("/:version/orders/summary", cfg.OrderHandler.Summary)
			api.GET("/orders/summary", cfg.OrderHandler.Summary)
		}
	}

	// Docs (development only)
	if cfg.Features.Swagger && cfg.DocsHandler != nil {
		r.GET("/swagger", cfg.DocsHandler.Redirect)
		r.GET("/swagger/index.html", cfg.DocsHandler.UI)
		r.GET("/swagger/v1/swagger.json", cfg.DocsHandler.JSON)
		r.GET("/swagger/v1/swagger.yaml", cfg.DocsHandler.YAML)
	}

	spa := cfg.SPAHandler
	if spa == nil {
		spa = httpH.NewSPAHandler(nil)
	}
	r.NoRoute(spa.NoRoute)

	return r
}
