package ports

import (
	"context"
	"errors"

	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows an order listing.
type ListFilter struct {
	OwnerID *int64
	Status  *domain.Status
	Page    pagination.Query
}

// Repository persists order headers and lines.
type Repository interface {
	// Create inserts the header and assigns its ID. Lines are written by AttachLines.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// AttachLines inserts every line of order and stores its total.
	AttachLines(ctx context.Context, order *domain.Order) error
	// LockByID loads the order with its lines and locks the header row until the transaction ends.
	LockByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	// Delete removes the order and its lines.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
	ReferencesProduct(ctx context.Context, productID int64) (bool, error)
}
