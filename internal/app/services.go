package app

import (
	"github.com/yungbote/reporting-service/internal/db"
	"github.com/yungbote/reporting-service/internal/health"
	"github.com/yungbote/reporting-service/internal/platform/logger"
	"github.com/yungbote/reporting-service/internal/services"
)

type Services struct {
	OrderSummary services.OrderSummaryService
	Health       *health.Checker
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	checker := health.NewChecker(cfg.HealthTimeout)
	if db.Configured(clients.DB) {
		checker.Register("database", clients.DB.Ping)
	}

	return Services{
		OrderSummary: services.NewOrderSummaryService(clients.DB, log, clients.Metrics, reposet.OrderSummary, cfg.QueryTimeout),
		Health:       checker,
	}
}
