package reporting

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/reporting-service/internal/data/repos/testutil"
	types "github.com/yungbote/reporting-service/internal/domain"
	apperrors "github.com/yungbote/reporting-service/internal/pkg/errors"
)

func newRepo(t *testing.T) OrderSummaryRepo {
	t.Helper()
	repo, err := NewOrderSummaryRepo("", testutil.Logger(t))
	if err != nil {
		t.Fatalf("NewOrderSummaryRepo: %v", err)
	}
	return repo
}

func assertSummaries(t *testing.T, got []types.OrderSummary, want []types.OrderSummary) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d got=%+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Region != want[i].Region || got[i].Count != want[i].Count || !got[i].TotalAmount.Equal(want[i].TotalAmount) {
			t.Fatalf("row %d: got={%s %s %d} want={%s %s %d}", i,
				got[i].Region, got[i].TotalAmount, got[i].Count,
				want[i].Region, want[i].TotalAmount, want[i].Count)
		}
	}
}

func TestOrderSummaryGroupsByRegion(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, db,
		testutil.OrderRow{Region: "A", Amount: "10"},
		testutil.OrderRow{Region: "B", Amount: "5"},
		testutil.OrderRow{Region: "A", Amount: "20"},
	)

	got, err := newRepo(t).Summary(ctx, db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertSummaries(t, got, []types.OrderSummary{
		{Region: "A", TotalAmount: decimal.NewFromInt(30), Count: 2},
		{Region: "B", TotalAmount: decimal.NewFromInt(5), Count: 1},
	})
}

func TestOrderSummaryOrdersRegionsAscending(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, db,
		testutil.OrderRow{Region: "WEST", Amount: "50"},
		testutil.OrderRow{Region: "EAST", Amount: "60"},
		testutil.OrderRow{Region: "NORTH", Amount: "25"},
		testutil.OrderRow{Region: "EAST", Amount: "40"},
		testutil.OrderRow{Region: "NORTH", Amount: "25"},
		testutil.OrderRow{Region: "NORTH", Amount: "25"},
	)

	got, err := newRepo(t).Summary(ctx, db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertSummaries(t, got, []types.OrderSummary{
		{Region: "EAST", TotalAmount: decimal.NewFromInt(100), Count: 2},
		{Region: "NORTH", TotalAmount: decimal.NewFromInt(75), Count: 3},
		{Region: "WEST", TotalAmount: decimal.NewFromInt(50), Count: 1},
	})
}

func TestOrderSummaryKeepsFractionalAmounts(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, db,
		testutil.OrderRow{Region: "A", Amount: "10.25"},
		testutil.OrderRow{Region: "A", Amount: "0.50"},
	)

	got, err := newRepo(t).Summary(ctx, db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertSummaries(t, got, []types.OrderSummary{
		{Region: "A", TotalAmount: decimal.RequireFromString("10.75"), Count: 2},
	})
}

func TestOrderSummaryCentsDoNotDrift(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, db,
		testutil.OrderRow{Region: "A", Amount: "0.10"},
		testutil.OrderRow{Region: "A", Amount: "0.20"},
	)

	got, err := newRepo(t).Summary(ctx, db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertSummaries(t, got, []types.OrderSummary{
		{Region: "A", TotalAmount: decimal.RequireFromString("0.30"), Count: 2},
	})
	if s := got[0].TotalAmount.String(); s != "0.3" {
		t.Fatalf("total=%s want 0.3", s)
	}
}

func TestOrderSummaryEmptyTable(t *testing.T) {
	db := testutil.DB(t)

	got, err := newRepo(t).Summary(context.Background(), db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestOrderSummaryMissingTable(t *testing.T) {
	db := testutil.EmptyDB(t)

	_, err := newRepo(t).Summary(context.Background(), db)
	if !errors.Is(err, apperrors.ErrDataAccess) {
		t.Fatalf("expected data access error, got %v", err)
	}
}

func TestOrderSummaryNilConnection(t *testing.T) {
	_, err := newRepo(t).Summary(context.Background(), nil)
	if !errors.Is(err, apperrors.ErrDataAccess) {
		t.Fatalf("expected data access error, got %v", err)
	}
}

func TestOrderSummaryCancelledContext(t *testing.T) {
	db := testutil.DB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRepo(t).Summary(ctx, db)
	if !errors.Is(err, apperrors.ErrDataAccess) {
		t.Fatalf("expected data access error, got %v", err)
	}
}

func sqliteOrders(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.EmptyDB(t)
	if err := db.AutoMigrate(&testutil.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestOrderSummaryNullRegion(t *testing.T) {
	db := sqliteOrders(t)
	ctx := context.Background()
	if err := db.Exec("INSERT INTO orders (region, amount) VALUES (NULL, 3), (NULL, 4)").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	testutil.SeedOrders(t, ctx, db, testutil.OrderRow{Region: "A", Amount: "1"})

	got, err := newRepo(t).Summary(ctx, db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertSummaries(t, got, []types.OrderSummary{
		{Region: "", TotalAmount: decimal.NewFromInt(7), Count: 2},
		{Region: "A", TotalAmount: decimal.NewFromInt(1), Count: 1},
	})
}

func TestOrderSummaryConcurrentCalls(t *testing.T) {
	db := sqliteOrders(t)
	ctx := context.Background()
	testutil.SeedOrders(t, ctx, db,
		testutil.OrderRow{Region: "A", Amount: "1"},
		testutil.OrderRow{Region: "B", Amount: "2"},
	)
	repo := newRepo(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := repo.Summary(ctx, db)
			if err == nil && len(rows) != 2 {
				err = errors.New("unexpected row count")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Summary: %v", err)
		}
	}
}

func TestNewOrderSummaryRepoValidatesTable(t *testing.T) {
	for _, name := range []string{"dbo.orders", "orders", "Orders_2024"} {
		if _, err := NewOrderSummaryRepo(name, testutil.Logger(t)); err != nil {
			t.Fatalf("%q: %v", name, err)
		}
	}
	for _, name := range []string{"orders; DROP TABLE orders", "a.b.c", "1orders", "orders--"} {
		if _, err := NewOrderSummaryRepo(name, testutil.Logger(t)); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}
