package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	PostgresDSN       string        `envconfig:"POSTGRES_DSN"`
	TemporalAddress   string        `envconfig:"TEMPORAL_ADDRESS"`
	TemporalNamespace string        `envconfig:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool          `envconfig:"TEMPORAL_DISABLED"`
	RedisAddr         string        `envconfig:"REDIS_ADDR"`
	CatalogCacheTTL   time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"30s"`
	LockTimeout       time.Duration `envconfig:"LOCK_TIMEOUT" default:"5s"`
	// ProcessingStatus inserts the processing step between pending and shipped.
	ProcessingStatus    bool   `envconfig:"ORDERS_PROCESSING_STATUS"`
	BootstrapAdminEmail string `envconfig:"BOOTSTRAP_ADMIN_EMAIL"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.RedisAddr = strings.TrimSpace(cfg.RedisAddr)
	cfg.BootstrapAdminEmail = strings.TrimSpace(cfg.BootstrapAdminEmail)
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if cfg.LockTimeout <= 0 {
		return Config{}, fmt.Errorf("LOCK_TIMEOUT must be positive, got %s", cfg.LockTimeout)
	}
	if cfg.CatalogCacheTTL <= 0 {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL must be positive, got %s", cfg.CatalogCacheTTL)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
