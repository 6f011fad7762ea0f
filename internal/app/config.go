package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/reporting-service/internal/data/repos/reporting"
	"github.com/yungbote/reporting-service/internal/db"
	httpapi "github.com/yungbote/reporting-service/internal/http"
	"github.com/yungbote/reporting-service/internal/http/middleware"
	"github.com/yungbote/reporting-service/internal/observability"
	"github.com/yungbote/reporting-service/internal/platform/envutil"
)

const ServiceName = "ReportingService"

// Features is computed once from APP_ENV and handed to the router as data.
type Features = httpapi.Features

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type Config struct {
	Env      string
	LogLevel string
	Features Features

	HTTP HTTPConfig
	DB   db.Config

	OrdersTable   string
	QueryTimeout  time.Duration
	CORSOrigins   []string
	StaticDir     string
	HealthTimeout time.Duration

	MetricsEnabled bool
	Otel           observability.OtelConfig
}

// fileConfig is the optional YAML file. Every field is a default that the
// matching environment variable overrides.
type fileConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	HTTP     struct {
		Addr              string `yaml:"addr"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
		IdleTimeout       string `yaml:"idle_timeout"`
		ShutdownTimeout   string `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	Database struct {
		DSN             string `yaml:"dsn"`
		OrdersTable     string `yaml:"orders_table"`
		QueryTimeout    string `yaml:"query_timeout"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`
	CORSOrigins   []string `yaml:"cors_origins"`
	StaticDir     string   `yaml:"static_dir"`
	HealthTimeout string   `yaml:"health_timeout"`
	Metrics       struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
	Otel struct {
		Enabled     bool    `yaml:"enabled"`
		Endpoint    string  `yaml:"endpoint"`
		Insecure    bool    `yaml:"insecure"`
		SampleRatio float64 `yaml:"sample_ratio"`
	} `yaml:"otel"`
}

// IsDevelopment reports whether env names a local development run.
func IsDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local":
		return true
	default:
		return false
	}
}

func FeaturesFor(env string) Features {
	dev := IsDevelopment(env)
	return Features{DevCORS: dev, Swagger: dev}
}

// LogMode maps the environment onto a logger mode.
func (c Config) LogMode() string {
	if IsDevelopment(c.Env) {
		return "development"
	}
	return "production"
}

// LoadConfig reads .env (if present), then the YAML file named by
// REPORTING_CONFIG_PATH (if set), then the process environment.
func LoadConfig() (Config, error) {
	envFile := envutil.String("REPORTING_ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var fc fileConfig
	if path := envutil.String("REPORTING_CONFIG_PATH", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	return buildConfig(fc)
}

func buildConfig(fc fileConfig) (Config, error) {
	var errs []error
	duration := func(name, fileVal string, def time.Duration) time.Duration {
		if strings.TrimSpace(fileVal) != "" {
			d, err := time.ParseDuration(strings.TrimSpace(fileVal))
			if err != nil {
				errs = append(errs, fmt.Errorf("config file %s: %w", name, err))
			} else {
				def = d
			}
		}
		d, err := envutil.Duration(name, def)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}
	integer := func(name string, def int) int {
		i, err := envutil.Int(name, def)
		if err != nil {
			errs = append(errs, err)
		}
		return i
	}
	boolean := func(name string, def bool) bool {
		b, err := envutil.Bool(name, def)
		if err != nil {
			errs = append(errs, err)
		}
		return b
	}
	orDefault := func(v, def string) string {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
	intOr := func(v, def int) int {
		if v > 0 {
			return v
		}
		return def
	}

	sampleRatio, err := envutil.Float("OTEL_SAMPLER_RATIO", fileFloatOr(fc.Otel.SampleRatio, 1))
	if err != nil {
		errs = append(errs, err)
	} else if sampleRatio < 0 || sampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLER_RATIO: %v outside [0, 1]", sampleRatio))
	}

	env := envutil.String("APP_ENV", orDefault(fc.Env, "production"))
	cfg := Config{
		Env:      env,
		LogLevel: envutil.String("LOG_LEVEL", fc.LogLevel),
		Features: FeaturesFor(env),
		HTTP: HTTPConfig{
			Addr:              envutil.String("HTTP_ADDR", orDefault(fc.HTTP.Addr, ":5010")),
			ReadHeaderTimeout: duration("HTTP_READ_HEADER_TIMEOUT", fc.HTTP.ReadHeaderTimeout, 5*time.Second),
			IdleTimeout:       duration("HTTP_IDLE_TIMEOUT", fc.HTTP.IdleTimeout, 2*time.Minute),
			ShutdownTimeout:   duration("HTTP_SHUTDOWN_TIMEOUT", fc.HTTP.ShutdownTimeout, 15*time.Second),
		},
		DB: db.Config{
			DSN:             envutil.String("REPORTING_DB_DSN", envutil.String("DATABASE_URL", fc.Database.DSN)),
			MaxOpenConns:    integer("DB_MAX_OPEN_CONNS", intOr(fc.Database.MaxOpenConns, 25)),
			MaxIdleConns:    integer("DB_MAX_IDLE_CONNS", intOr(fc.Database.MaxIdleConns, 25)),
			ConnMaxLifetime: duration("DB_CONN_MAX_LIFETIME", fc.Database.ConnMaxLifetime, 30*time.Minute),
		},
		OrdersTable:   envutil.String("REPORTING_ORDERS_TABLE", orDefault(fc.Database.OrdersTable, reporting.DefaultOrdersTable)),
		QueryTimeout:  duration("REPORTING_QUERY_TIMEOUT", fc.Database.QueryTimeout, 30*time.Second),
		CORSOrigins:   envutil.List("REPORTING_DEV_CORS_ORIGINS", fileListOr(fc.CORSOrigins, middleware.DefaultDevOrigins)),
		StaticDir:     envutil.String("REPORTING_STATIC_DIR", orDefault(fc.StaticDir, "wwwroot")),
		HealthTimeout: duration("HEALTH_CHECK_TIMEOUT", fc.HealthTimeout, 2*time.Second),

		MetricsEnabled: boolean("METRICS_ENABLED", fc.Metrics.Enabled),
		Otel: observability.OtelConfig{
			Enabled:     boolean("OTEL_ENABLED", fc.Otel.Enabled),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", ServiceName),
			Environment: env,
			Version:     envutil.String("SERVICE_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", fc.Otel.Endpoint),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    boolean("OTEL_EXPORTER_OTLP_INSECURE", fc.Otel.Insecure),
			SampleRatio: sampleRatio,
		},
	}
	if cfg.DB.MaxOpenConns < 0 || cfg.DB.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must be >= 0"))
	}
	if cfg.DB.MaxIdleConns > cfg.DB.MaxOpenConns && cfg.DB.MaxOpenConns > 0 {
		cfg.DB.MaxIdleConns = cfg.DB.MaxOpenConns
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fileListOr(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}

func fileFloatOr(fileVal, def float64) float64 {
	if fileVal > 0 {
		return fileVal
	}
	return def
}
