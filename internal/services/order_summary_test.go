package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/reporting-service/internal/data/repos"
	"github.com/yungbote/reporting-service/internal/data/repos/testutil"
	"github.com/yungbote/reporting-service/internal/db"
	types "github.com/yungbote/reporting-service/internal/domain"
	"github.com/yungbote/reporting-service/internal/observability"
	apperrors "github.com/yungbote/reporting-service/internal/pkg/errors"
)

type failingProvider struct{ err error }

func (p failingProvider) Conn(context.Context) (*gorm.DB, error) { return nil, p.err }
func (p failingProvider) Ping(context.Context) error             { return p.err }
func (p failingProvider) Close() error                           { return nil }

type deadlineRepo struct{ sawDeadline bool }

func (r *deadlineRepo) Summary(ctx context.Context, _ *gorm.DB) ([]types.OrderSummary, error) {
	_, r.sawDeadline = ctx.Deadline()
	return []types.OrderSummary{}, nil
}

type stubProvider struct{}

func (stubProvider) Conn(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
func (stubProvider) Ping(context.Context) error             { return nil }
func (stubProvider) Close() error                           { return nil }

func TestOrderSummaryServiceAgainstSQLite(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, gdb,
		testutil.OrderRow{Region: "A", Amount: "10"},
		testutil.OrderRow{Region: "B", Amount: "5"},
		testutil.OrderRow{Region: "A", Amount: "20"},
	)
	log := testutil.Logger(t)
	repo, err := repos.NewOrderSummaryRepo("", log)
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	svc := NewOrderSummaryService(db.FromGorm(gdb, log), log, observability.NewMetrics(), repo, time.Second)

	rows, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(rows) != 2 || rows[0].Region != "A" || !rows[0].TotalAmount.Equal(decimal.NewFromInt(30)) || rows[0].Count != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestOrderSummaryServiceProviderFailure(t *testing.T) {
	log := testutil.Logger(t)
	repo, _ := repos.NewOrderSummaryRepo("", log)
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	svc := NewOrderSummaryService(failingProvider{err: cause}, log, nil, repo, 0)

	_, err := svc.Summary(context.Background())
	if !errors.Is(err, apperrors.ErrDataAccess) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped data access error, got %v", err)
	}
}

func TestOrderSummaryServiceAppliesTimeout(t *testing.T) {
	log := testutil.Logger(t)
	repo := &deadlineRepo{}
	svc := NewOrderSummaryService(stubProvider{}, log, nil, repo, 5*time.Second)
	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !repo.sawDeadline {
		t.Fatalf("expected query deadline")
	}

	repo = &deadlineRepo{}
	svc = NewOrderSummaryService(stubProvider{}, log, nil, repo, 0)
	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if repo.sawDeadline {
		t.Fatalf("timeout 0 must not set a deadline")
	}
}
