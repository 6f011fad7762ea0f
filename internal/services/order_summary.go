package services

import (
	"context"
	"time"

	"github.com/yungbote/reporting-service/internal/data/repos"
	"github.com/yungbote/reporting-service/internal/db"
	types "github.com/yungbote/reporting-service/internal/domain"
	"github.com/yungbote/reporting-service/internal/observability"
	apperrors "github.com/yungbote/reporting-service/internal/pkg/errors"
	"github.com/yungbote/reporting-service/internal/platform/ctxutil"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type OrderSummaryService interface {
	Summary(ctx context.Context) ([]types.OrderSummary, error)
}

type orderSummaryService struct {
	provider     db.Provider
	log          *logger.Logger
	metrics      *observability.Metrics
	summaryRepo  repos.OrderSummaryRepo
	queryTimeout time.Duration
}

func NewOrderSummaryService(
	provider db.Provider,
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	summaryRepo repos.OrderSummaryRepo,
	queryTimeout time.Duration,
) OrderSummaryService {
	return &orderSummaryService{
		provider:     provider,
		log:          baseLog.With("service", "OrderSummaryService"),
		metrics:      metrics,
		summaryRepo:  summaryRepo,
		queryTimeout: queryTimeout,
	}
}

// Summary borrows a session for this call only and runs the aggregation.
// Errors are returned untouched (beyond data access wrapping); there is no
// retry and no partial result.
func (s *orderSummaryService) Summary(ctx context.Context) ([]types.OrderSummary, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	conn, err := s.provider.Conn(ctx)
	if err != nil {
		err = apperrors.DataAccess("acquire_connection", err)
		s.fail(ctx, err)
		return nil, err
	}

	rows, err := s.summaryRepo.Summary(ctx, conn)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	s.metrics.ObserveOrderSummary(len(rows), nil)
	return rows, nil
}

func (s *orderSummaryService) fail(ctx context.Context, err error) {
	s.metrics.ObserveOrderSummary(0, err)
	fields := append([]interface{}{"error", err}, ctxutil.LogFields(ctx)...)
	s.log.Warn("order summary failed", fields...)
}
