package api

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
		"REDIS_ADDR", "CATALOG_CACHE_TTL", "LOCK_TIMEOUT", "ORDERS_PROCESSING_STATUS", "BOOTSTRAP_ADMIN_EMAIL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	require.Equal(t, 5*time.Second, cfg.LockTimeout)
	require.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	require.False(t, cfg.ProcessingStatus)
	require.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", " postgres://gomitas@db/gomitas ")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("LOCK_TIMEOUT", "750ms")
	t.Setenv("ORDERS_PROCESSING_STATUS", "1")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "postgres://gomitas@db/gomitas", cfg.PostgresDSN)
	require.True(t, cfg.TemporalDisabled)
	require.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
	require.True(t, cfg.ProcessingStatus)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("LOCK_TIMEOUT", "soon")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("LOCK_TIMEOUT", "0s")
	_, err = LoadConfig()
	require.Error(t, err)
}
