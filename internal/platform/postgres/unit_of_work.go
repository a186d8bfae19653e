package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	catalogpg "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorypg "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/persistence/postgres"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	orderpg "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userpg "github.com/Apurer/gomitas-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

var _ uow.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs each call in one database transaction. Row locks taken with
// SELECT ... FOR UPDATE are held until it commits or rolls back.
type UnitOfWork struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewUnitOfWork binds the unit of work to db. A positive lockTimeout is applied
// with SET LOCAL lock_timeout in every transaction.
func NewUnitOfWork(db *gorm.DB, lockTimeout time.Duration) *UnitOfWork {
	return &UnitOfWork{db: db, lockTimeout: lockTimeout}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(ctx, repositories{tx: tx})
	})
	return pgerrors.Translate(err)
}

type repositories struct {
	tx *gorm.DB
}

func (r repositories) Products() catalogports.Repository { return catalogpg.NewRepository(r.tx) }

func (r repositories) Stock() inventoryports.Repository { return inventorypg.NewRepository(r.tx) }

func (r repositories) Orders() orderports.Repository { return orderpg.NewRepository(r.tx) }

func (r repositories) IdempotencyKeys() orderports.IdempotencyStore {
	return orderpg.NewIdempotencyStore(r.tx)
}

func (r repositories) Users() userports.Repository { return userpg.NewRepository(r.tx) }
