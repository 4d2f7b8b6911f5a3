package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Version         string        `envconfig:"VERSION" default:"dev"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	DatabaseURL         string        `envconfig:"DATABASE_URL" required:"true"`
	DBPoolSize          int32         `envconfig:"DB_POOL_SIZE" default:"1"`
	DBMaxOverflow       int32         `envconfig:"DB_MAX_OVERFLOW" default:"2"`
	DBPoolTimeout       time.Duration `envconfig:"DB_POOL_TIMEOUT" default:"30s"`
	DBPoolRecycle       time.Duration `envconfig:"DB_POOL_RECYCLE" default:"30m"`
	DBOverflowIdle      time.Duration `envconfig:"DB_OVERFLOW_IDLE" default:"1m"`
	DBPrePing           bool          `envconfig:"DB_PRE_PING" default:"true"`
	DBConnectTimeout    time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`
	DBKeepAlive         time.Duration `envconfig:"DB_KEEPALIVE" default:"30s"`
	DBHealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
	DBStatementTimeout  time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"0s"`
	DBRetryAttempts     int           `envconfig:"DB_RETRY_ATTEMPTS" default:"3"`
	DBRetryInitial      time.Duration `envconfig:"DB_RETRY_INITIAL" default:"4s"`
	DBRetryMax          time.Duration `envconfig:"DB_RETRY_MAX" default:"10s"`
	DBTraceSQL          bool          `envconfig:"DB_TRACE_SQL" default:"false"`

	// CORSAllowedOrigins is permissive by default; tighten it for real deployments.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects pool and retry settings the gateway cannot work with.
func (c *Config) Validate() error {
	if c.DBPoolSize < 1 {
		return fmt.Errorf("DB_POOL_SIZE must be at least 1, got %d", c.DBPoolSize)
	}
	if c.DBMaxOverflow < 0 {
		return fmt.Errorf("DB_MAX_OVERFLOW must not be negative, got %d", c.DBMaxOverflow)
	}
	if c.DBPoolTimeout <= 0 {
		return fmt.Errorf("DB_POOL_TIMEOUT must be positive, got %s", c.DBPoolTimeout)
	}
	if c.DBRetryAttempts < 1 {
		return fmt.Errorf("DB_RETRY_ATTEMPTS must be at least 1, got %d", c.DBRetryAttempts)
	}
	if c.DBRetryMax < c.DBRetryInitial {
		return fmt.Errorf("DB_RETRY_MAX (%s) must be >= DB_RETRY_INITIAL (%s)", c.DBRetryMax, c.DBRetryInitial)
	}
	return nil
}
