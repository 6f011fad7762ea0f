package app

import (
	"context"
	"fmt"

	"github.com/yungbote/reporting-service/internal/db"
	"github.com/yungbote/reporting-service/internal/observability"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

// Clients are the process-wide collaborators owned by App and released in
// Close.
type Clients struct {
	DB           db.Provider
	Metrics      *observability.Metrics
	ShutdownOtel func(context.Context) error
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	provider, err := db.Open(cfg.DB, log)
	if err != nil {
		_ = shutdownOtel(ctx)
		return Clients{}, fmt.Errorf("init reporting database: %w", err)
	}

	return Clients{
		DB:           provider,
		Metrics:      metrics,
		ShutdownOtel: shutdownOtel,
	}, nil
}
