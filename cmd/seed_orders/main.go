// Command seed_orders fills a development database with sample orders so
// the summary endpoint has something to aggregate.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/reporting-service/internal/app"
	"github.com/yungbote/reporting-service/internal/data/repos/reporting"
	"github.com/yungbote/reporting-service/internal/db"
	types "github.com/yungbote/reporting-service/internal/domain"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type regionList []string

func (l *regionList) String() string { return strings.Join(*l, ",") }
func (l *regionList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var regions regionList
	var perRegion int
	var reset, dryRun bool
	var seed uint64
	flag.Var(&regions, "region", "region to seed (repeatable, default EAST/NORTH/SOUTH/WEST)")
	flag.IntVar(&perRegion, "per-region", 5, "orders per region")
	flag.BoolVar(&reset, "reset", false, "delete existing orders first")
	flag.BoolVar(&dryRun, "dry-run", false, "print the orders without writing them")
	flag.Uint64Var(&seed, "seed", 1, "random seed for amounts")
	flag.Parse()

	if len(regions) == 0 {
		regions = regionList{"EAST", "NORTH", "SOUTH", "WEST"}
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode(), cfg.LogLevel)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	orders, err := sampleOrders(regions, perRegion, seed)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(2)
	}
	if dryRun {
		for _, o := range orders {
			fmt.Printf("%s\t%s\n", o.Region, o.Amount.StringFixed(2))
		}
		return
	}

	if err := run(context.Background(), log, cfg, orders, reset); err != nil {
		log.Error("Seeding orders failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seeded orders", "table", cfg.OrdersTable, "count", len(orders))
}

func run(ctx context.Context, log *logger.Logger, cfg app.Config, orders []types.Order, reset bool) error {
	tableName, err := reporting.ValidateTable(cfg.OrdersTable)
	if err != nil {
		return err
	}
	provider, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer provider.Close()

	conn, err := provider.Conn(ctx)
	if err != nil {
		return err
	}
	table := conn.Table(tableName)
	if err := table.AutoMigrate(&types.Order{}); err != nil {
		return fmt.Errorf("migrate %s: %w", tableName, err)
	}
	// The reset and the inserts commit together.
	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := tx.Exec("DELETE FROM " + tableName).Error; err != nil {
				return fmt.Errorf("reset %s: %w", tableName, err)
			}
		}
		if len(orders) == 0 {
			return nil
		}
		if err := tx.Table(tableName).CreateInBatches(&orders, 100).Error; err != nil {
			return fmt.Errorf("insert into %s: %w", tableName, err)
		}
		return nil
	})
}

func sampleOrders(regions []string, perRegion int, seed uint64) ([]types.Order, error) {
	if perRegion < 0 {
		return nil, fmt.Errorf("-per-region must be >= 0, got %d", perRegion)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]types.Order, 0, len(regions)*perRegion)
	for _, region := range regions {
		for i := 0; i < perRegion; i++ {
			cents := 500 + r.Int64N(50000)
			out = append(out, types.Order{Region: region, Amount: decimal.New(cents, -2)})
		}
	}
	return out, nil
}
