package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every tag already carries the DASHBOARD_ prefix.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Env variable names shared with tests.
const (
	EnvAppEnv         = "DASHBOARD_APP_ENV"
	EnvPort           = "DASHBOARD_APP_PORT"
	EnvCatalogBaseURL = "DASHBOARD_CATALOG_BASE_URL"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.ensureBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DASHBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"DASHBOARD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DASHBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DASHBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points the dashboard at the remote product catalog API.
type CatalogConfig struct {
	BaseURL   string        `envconfig:"DASHBOARD_CATALOG_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"DASHBOARD_CATALOG_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"DASHBOARD_CATALOG_USER_AGENT" default:"dashboard-challenge"`
}

func (c *CatalogConfig) ensureBaseURL() error {
	raw := strings.TrimSpace(c.BaseURL)
	if raw == "" {
		return fmt.Errorf("catalog base url required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid catalog base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("catalog base url must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("catalog base url missing host")
	}
	c.BaseURL = strings.TrimRight(raw, "/")
	return nil
}

// DashboardConfig tunes the product list views.
type DashboardConfig struct {
	DefaultPageSize int  `envconfig:"DASHBOARD_DEFAULT_PAGE_SIZE" default:"10"`
	MaxPageSize     int  `envconfig:"DASHBOARD_MAX_PAGE_SIZE" default:"100"`
	LoadOnStart     bool `envconfig:"DASHBOARD_LOAD_ON_START" default:"true"`
}

// RedisConfig is optional; an empty URL disables the idempotency layer.
type RedisConfig struct {
	URL            string        `envconfig:"DASHBOARD_REDIS_URL"`
	DialTimeout    time.Duration `envconfig:"DASHBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"DASHBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"DASHBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
	PoolSize       int           `envconfig:"DASHBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"DASHBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	IdempotencyTTL time.Duration `envconfig:"DASHBOARD_IDEMPOTENCY_TTL" default:"24h"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DASHBOARD_CORS_ORIGINS" default:"http://localhost:3000"`
}
