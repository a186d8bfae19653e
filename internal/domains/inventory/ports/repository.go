package ports

import (
	"context"
	"errors"

	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
)

var (
	ErrNotFound      = errors.New("stock record not found")
	ErrAlreadyExists = errors.New("stock record already exists for product")
)

// Repository persists stock records and their movement log. Lock* methods
// hold an exclusive lock on the record until the surrounding transaction ends.
type Repository interface {
	LockByProduct(ctx context.Context, productID int64) (*domain.StockRecord, error)
	// LockOrCreate locks the record, creating it with zero quantity when missing.
	LockOrCreate(ctx context.Context, productID int64) (*domain.StockRecord, error)
	Create(ctx context.Context, record *domain.StockRecord) (*domain.StockRecord, error)
	Save(ctx context.Context, record *domain.StockRecord) error
	GetByProduct(ctx context.Context, productID int64) (*domain.StockRecord, error)
	List(ctx context.Context) ([]*domain.StockRecord, error)
	Delete(ctx context.Context, productID int64) error
	AppendMovement(ctx context.Context, movement domain.Movement) error
	ListMovements(ctx context.Context, productID int64, limit int) ([]domain.Movement, error)
}
