package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/reporting-service/internal/db"
	httpapi "github.com/yungbote/reporting-service/internal/http"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       db.Provider
	Router   *gin.Engine
	Repos    Repos
	Services Services

	clients Clients
	server  *http.Server
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig builds the app from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if IsDevelopment(cfg.Env) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting ReportingService API", "env", cfg.Env, "addr", cfg.HTTP.Addr,
		"dev_cors", cfg.Features.DevCORS, "swagger", cfg.Features.Swagger)

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	a := &App{Log: log, Cfg: cfg, DB: clients.DB, clients: clients}

	reposet, err := wireRepos(log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	serviceset := wireServices(log, cfg, clients, reposet)
	handlerset, err := wireHandlers(log, cfg, serviceset)
	if err != nil {
		a.Close()
		return nil, err
	}
	router := wireRouter(log, cfg, clients, handlerset)

	a.Repos = reposet
	a.Services = serviceset
	a.Router = router
	a.server = httpapi.NewServer(httpapi.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}, router)
	return a, nil
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on a listener the caller already owns.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("Shutting down HTTP server", "timeout", a.Cfg.HTTP.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.Log.Warn("HTTP server shutdown incomplete", "error", err)
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdownTimeout() time.Duration {
	if a.Cfg.HTTP.ShutdownTimeout > 0 {
		return a.Cfg.HTTP.ShutdownTimeout
	}
	return 15 * time.Second
}

// Close releases the database pool and flushes traces, then syncs the
// logger last.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.clients.DB != nil {
		if err := a.clients.DB.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.clients.ShutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.clients.ShutdownOtel(ctx); err != nil {
			a.Log.Warn("Flushing traces failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
