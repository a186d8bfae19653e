package ports

import (
	"context"
	"errors"

	"github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrInUse    = errors.New("product is referenced by existing orders")
)

// Repository persists catalog products.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, query pagination.Query) ([]*domain.Product, int64, error)
}
