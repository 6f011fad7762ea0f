package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	apperrors "github.com/yungbote/reporting-service/internal/pkg/errors"
	"github.com/yungbote/reporting-service/internal/platform/logger"
)

// Provider hands out database sessions. Pooling and connection lifetime are
// its concern; callers only borrow a session for the duration of a request.
type Provider interface {
	Conn(ctx context.Context) (*gorm.DB, error)
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Silent disables gorm's own statement logging (tests).
	Silent bool
}

var ErrNotConfigured = errors.New("reporting database connection string is not configured")

type gormProvider struct {
	db      *gorm.DB
	dialect Dialect
	log     *logger.Logger
}

// Open builds the connection pool without contacting the database; a down
// database surfaces per request instead of blocking startup.
func Open(cfg Config, log *logger.Logger) (Provider, error) {
	serviceLog := log.With("service", "DBProvider")
	if cfg.DSN == "" {
		serviceLog.Warn("No reporting database configured; data endpoints will fail")
		return unconfigured{}, nil
	}

	dialect, dialector, err := Dialector(cfg.DSN)
	if err != nil {
		return nil, err
	}

	gl := gormLogger.New(zapWriter{log: serviceLog}, gormLogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	if cfg.Silent {
		gl = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	serviceLog.Info("Opening reporting database pool", "dialect", string(dialect))
	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gl,
	})
	if err != nil {
		serviceLog.Error("Failed to open reporting database", "error", err)
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &gormProvider{db: gdb, dialect: dialect, log: serviceLog}, nil
}

// FromGorm wraps an existing handle; used by tests and tooling that already
// own a *gorm.DB.
func FromGorm(gdb *gorm.DB, log *logger.Logger) Provider {
	return &gormProvider{db: gdb, dialect: Dialect(gdb.Dialector.Name()), log: log.With("service", "DBProvider")}
}

func (p *gormProvider) Conn(ctx context.Context) (*gorm.DB, error) {
	if p == nil || p.db == nil {
		return nil, apperrors.DataAccess("acquire_connection", ErrNotConfigured)
	}
	return p.db.Session(&gorm.Session{NewDB: true, Context: ctx}), nil
}

func (p *gormProvider) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return apperrors.DataAccess("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.DataAccess("ping", err)
	}
	return nil
}

func (p *gormProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.log.Info("Closing reporting database pool")
	return sqlDB.Close()
}

type unconfigured struct{}

func (unconfigured) Conn(context.Context) (*gorm.DB, error) {
	return nil, apperrors.DataAccess("acquire_connection", ErrNotConfigured)
}

func (unconfigured) Ping(context.Context) error {
	return apperrors.DataAccess("ping", ErrNotConfigured)
}

func (unconfigured) Close() error { return nil }

// Configured reports whether p talks to a real database.
func Configured(p Provider) bool {
	_, ok := p.(unconfigured)
	return p != nil && !ok
}

type zapWriter struct {
	log *logger.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
