package api

import (
	"context"
	"fmt"
	"log/slog"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	catalogcache "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/cache"
	catalogobs "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/gomitas-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventoryobs "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	orderobs "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userobs "github.com/Apurer/gomitas-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/gomitas-api/internal/domains/users/application"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"
	"github.com/Apurer/gomitas-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/gomitas-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/gomitas-api/internal/platform/postgres"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// Services are the decorated application services shared by the API and the worker.
type Services struct {
	Users     userports.Service
	Catalog   catalogports.Service
	Inventory inventoryports.Service
	Orders    orderports.Service
}

// BuildServices wires storage, authorization and observability. PostgreSQL is
// used when configured and reachable, the in-memory store otherwise. With
// withCache and a reachable REDIS_ADDR, catalog reads are cached and every
// stock-moving service invalidates them.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, withCache bool) (*Services, func(), error) {
	logger := instruments.Logger
	unit, cleanup, err := buildUnitOfWork(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	gate := accessapp.NewGate(nil)

	services := &Services{
		Users: userobs.New(
			userapp.NewService(unit, gate),
			userobs.WithLogger(logger),
			userobs.WithTracer(instruments.Tracer("internal.users.application")),
		),
		Catalog: catalogobs.New(
			catalogapp.NewService(unit, gate),
			catalogobs.WithLogger(logger),
			catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
			catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		),
		Inventory: inventoryobs.New(
			inventoryapp.NewService(unit, gate),
			inventoryobs.WithLogger(logger),
			inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
			inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
		),
		Orders: orderobs.New(
			orderapp.NewEngine(unit, gate, orderapp.WithLifecycle(orderdomain.NewLifecycle(cfg.ProcessingStatus))),
			orderobs.WithLogger(logger),
			orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
			orderobs.WithMeter(instruments.Meter("internal.orders.application")),
		),
	}

	if withCache && cfg.RedisAddr != "" {
		client := catalogcache.NewClient(cfg.RedisAddr)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, serving catalog without cache", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			_ = client.Close()
		} else {
			services.Catalog = catalogcache.New(services.Catalog, gate, client,
				catalogcache.WithTTL(cfg.CatalogCacheTTL),
				catalogcache.WithLogger(logger),
			)
			invalidator := catalogcache.NewInvalidator(client, logger)
			services.Orders = catalogcache.InvalidateOnOrderWrites(services.Orders, invalidator)
			services.Inventory = catalogcache.InvalidateOnStockWrites(services.Inventory, invalidator)
			previous := cleanup
			cleanup = func() {
				_ = client.Close()
				previous()
			}
			logger.Info("catalog cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.CatalogCacheTTL))
		}
	}

	if cfg.BootstrapAdminEmail != "" {
		admin, err := services.Users.EnsureUser(ctx, "Administrator", cfg.BootstrapAdminEmail, accessdomain.RoleAdmin)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		logger.Info("bootstrap admin ready", slog.Int64("user_id", admin.ID), slog.String("email", admin.Email))
	}
	return services, cleanup, nil
}

func buildUnitOfWork(ctx context.Context, cfg Config, logger *slog.Logger) (uow.UnitOfWork, func(), error) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return memstore.New(memstore.WithLockTimeout(cfg.LockTimeout)), cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("order store configured with postgres", slog.Duration("lock_timeout", cfg.LockTimeout))
	return platformpostgres.NewUnitOfWork(db, cfg.LockTimeout), cleanup, nil
}
