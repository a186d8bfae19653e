package cache

import (
	"context"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
)

// Invalidator bumps the catalog version so every cached view is dropped.
// Cached product views embed stock, so anything that moves stock uses it.
type Invalidator struct {
	client redis.Cmdable
	logger *slog.Logger
}

func NewInvalidator(client redis.Cmdable, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Invalidator{client: client, logger: logger}
}

// Invalidate never fails the caller; a lost bump only delays freshness until the TTL.
func (i *Invalidator) Invalidate(ctx context.Context) {
	if i == nil || i.client == nil {
		return
	}
	if err := i.client.Incr(ctx, versionKey).Err(); err != nil {
		i.logger.WarnContext(ctx, "catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

// InvalidateOnOrderWrites wraps the order engine so placement, cancellation
// and deletion drop cached stock figures. ChangeStatus leaves stock alone.
func InvalidateOnOrderWrites(inner orderports.Service, invalidator *Invalidator) orderports.Service {
	return &orderWrites{Service: inner, invalidator: invalidator}
}

type orderWrites struct {
	orderports.Service
	invalidator *Invalidator
}

func (o *orderWrites) PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	order, err := o.Service.PlaceOrder(ctx, actor, input)
	if err == nil {
		o.invalidator.Invalidate(ctx)
	}
	return order, err
}

func (o *orderWrites) UpdateOrder(ctx context.Context, actor accessdomain.Actor, orderID int64, intent orderdomain.Intent) (*orderdomain.Order, error) {
	order, err := o.Service.UpdateOrder(ctx, actor, orderID, intent)
	if err == nil && order != nil && order.Status == orderdomain.StatusCancelled {
		o.invalidator.Invalidate(ctx)
	}
	return order, err
}

func (o *orderWrites) CancelOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*orderdomain.Order, error) {
	order, err := o.Service.CancelOrder(ctx, actor, orderID)
	if err == nil {
		o.invalidator.Invalidate(ctx)
	}
	return order, err
}

func (o *orderWrites) DeleteOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) error {
	err := o.Service.DeleteOrder(ctx, actor, orderID)
	if err == nil {
		o.invalidator.Invalidate(ctx)
	}
	return err
}

// InvalidateOnStockWrites wraps the inventory service the same way.
func InvalidateOnStockWrites(inner inventoryports.Service, invalidator *Invalidator) inventoryports.Service {
	return &stockWrites{Service: inner, invalidator: invalidator}
}

type stockWrites struct {
	inventoryports.Service
	invalidator *Invalidator
}

func (s *stockWrites) CreateStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*inventorydomain.StockRecord, error) {
	record, err := s.Service.CreateStock(ctx, actor, productID, quantity)
	if err == nil {
		s.invalidator.Invalidate(ctx)
	}
	return record, err
}

func (s *stockWrites) AdjustStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*inventorydomain.StockRecord, error) {
	record, err := s.Service.AdjustStock(ctx, actor, productID, quantity)
	if err == nil {
		s.invalidator.Invalidate(ctx)
	}
	return record, err
}

func (s *stockWrites) DeleteStock(ctx context.Context, actor accessdomain.Actor, productID int64) error {
	err := s.Service.DeleteStock(ctx, actor, productID)
	if err == nil {
		s.invalidator.Invalidate(ctx)
	}
	return err
}

var (
	_ orderports.Service     = (*orderWrites)(nil)
	_ inventoryports.Service = (*stockWrites)(nil)
)
