package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/yungbote/reporting-service/internal/domain"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type Order = types.Order

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	memSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// EmptyDB opens a private in-memory SQLite database with no tables.
func EmptyDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, memSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	// A shared-cache memory database lives as long as one connection is open.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// DB returns a database with an empty orders table. When TEST_POSTGRES_DSN
// is set the table lives in Postgres and every test runs inside a
// transaction that is rolled back on cleanup; otherwise SQLite is used.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		return Tx(tb, postgresDB(tb, dsn))
	}
	db := EmptyDB(tb)
	if err := db.AutoMigrate(&Order{}); err != nil {
		tb.Fatalf("migrate orders: %v", err)
	}
	return db
}

func postgresDB(tb testing.TB, dsn string) *gorm.DB {
	tb.Helper()
	pgOnce.Do(func() {
		pgDB, pgErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if pgErr != nil {
			return
		}
		pgErr = pgDB.AutoMigrate(&Order{})
	})
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	return pgDB
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	if err := tx.Exec("DELETE FROM orders").Error; err != nil {
		tb.Fatalf("clear orders: %v", err)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// SeedOrders inserts one order per (region, amount) pair.
func SeedOrders(tb testing.TB, ctx context.Context, tx *gorm.DB, rows ...OrderRow) {
	tb.Helper()
	if len(rows) == 0 {
		return
	}
	orders := make([]Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, Order{Region: r.Region, Amount: decimal.RequireFromString(r.Amount)})
	}
	if err := tx.WithContext(ctx).Create(&orders).Error; err != nil {
		tb.Fatalf("seed orders: %v", err)
	}
}

type OrderRow struct {
	Region string
	Amount string
}
