package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// BackendURL is a postgres:// DSN or the http(s) base URL of a REST gateway.
	BackendURL string `envconfig:"BACKEND_URL"`
	BackendKey string `envconfig:"BACKEND_KEY"`

	DefaultMallID string `envconfig:"DEFAULT_MALL_ID"`

	RedisAddr    string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`
	KPIScanCron  string `envconfig:"KPI_SCAN_CRON" default:"*/15 * * * *"`

	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.AppAddr) == "" {
		return nil, errors.New("listen address must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// BackendConfigured reports whether both backend settings are present.
func (c *Config) BackendConfigured() bool {
	return c != nil && strings.TrimSpace(c.BackendURL) != "" && strings.TrimSpace(c.BackendKey) != ""
}
