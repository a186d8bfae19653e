package ports

import (
	"context"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// Service exposes the order transaction use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, actor accessdomain.Actor, orderID int64, intent domain.Intent) (*domain.Order, error)
	CancelOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*domain.Order, error)
	ChangeStatus(ctx context.Context, actor accessdomain.Actor, orderID int64, status domain.Status) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) error
	GetOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, actor accessdomain.Actor, input ordertypes.ListOrdersInput) (pagination.Page[*domain.Order], error)
}
