package repos

import (
	"github.com/yungbote/reporting-service/internal/data/repos/reporting"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type OrderSummaryRepo = reporting.OrderSummaryRepo

func NewOrderSummaryRepo(table string, log *logger.Logger) (OrderSummaryRepo, error) {
	return reporting.NewOrderSummaryRepo(table, log)
}
