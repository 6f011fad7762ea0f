package app

import (
	"github.com/yungbote/reporting-service/internal/data/repos"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type Repos struct {
	OrderSummary repos.OrderSummaryRepo
}

func wireRepos(log *logger.Logger, cfg Config) (Repos, error) {
	log.Info("Wiring repos...")
	orderSummary, err := repos.NewOrderSummaryRepo(cfg.OrdersTable, log)
	if err != nil {
		return Repos{}, err
	}
	return Repos{OrderSummary: orderSummary}, nil
}
