package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	orderpostgres "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/gomitas-api/internal/platform/postgres"
)

const defaultRetention = 7 * 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOptional(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys")
	}

	retention := retentionFromEnv()
	cutoff := time.Now().UTC().Add(-retention)
	purged, err := orderpostgres.NewIdempotencyStore(db).PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency purge completed", slog.Int64("purged", purged), slog.Duration("retention", retention))
}

func retentionFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_RETENTION"))
	if raw == "" {
		return defaultRetention
	}
	retention, err := time.ParseDuration(raw)
	if err != nil || retention <= 0 {
		return defaultRetention
	}
	return retention
}
