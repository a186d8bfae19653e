package ports

import (
	"context"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
)

// Service exposes administrative inventory use cases.
type Service interface {
	ListStock(ctx context.Context, actor accessdomain.Actor) ([]*domain.StockRecord, error)
	GetStock(ctx context.Context, actor accessdomain.Actor, productID int64) (*domain.StockRecord, error)
	CreateStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error)
	AdjustStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error)
	DeleteStock(ctx context.Context, actor accessdomain.Actor, productID int64) error
	ListMovements(ctx context.Context, actor accessdomain.Actor, productID int64, limit int) ([]domain.Movement, error)
}
