// Package uow defines the transaction boundary shared by the catalog, inventory and order services.
package uow

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
)

var (
	// ErrLockTimeout is returned when a row lock could not be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for lock")
	// ErrDeadlock is returned when the store aborted the transaction to break a lock cycle.
	ErrDeadlock = errors.New("transaction aborted by deadlock detection")
)

// Repositories exposes the stores bound to one open transaction.
// Values obtained from it must not be used after the transaction ends.
type Repositories interface {
	Products() catalogports.Repository
	Stock() inventoryports.Repository
	Orders() orderports.Repository
	IdempotencyKeys() orderports.IdempotencyStore
	Users() userports.Repository
}

// UnitOfWork runs fn inside a single transaction. A non-nil error from fn
// rolls back every write made through repos; locks are released either way.
// Implementations never retry fn.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
