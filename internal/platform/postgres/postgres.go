package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// ErrEmptyDSN is returned by Connect when no DSN is configured.
var ErrEmptyDSN = errors.New("postgres DSN is empty")

// Connect opens a pooled GORM handle and pings it before returning.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOptional dials PostgreSQL when dsn is set and returns the DB plus a cleanup function.
// An empty dsn or a failed connection is logged and yields nil with a no-op cleanup,
// which callers treat as "use the in-memory store".
func ConnectOptional(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, func()) {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		log.Warn("POSTGRES_DSN not set, falling back to the in-memory store")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		log.Warn("failed to connect to postgres, falling back to the in-memory store", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to unwrap postgres connection, falling back to the in-memory store", slog.String("error", err.Error()))
		return nil, func() {}
	}
	log.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
