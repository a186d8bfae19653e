package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the order engine's placement transaction.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// PlaceOrderCommand is the serialized placement request.
type PlaceOrderCommand struct {
	Actor accessdomain.Actor
	Input ordertypes.PlaceOrderInput
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder commits the order in a single transaction. Business rejections
// are returned as non-retryable application errors; see EncodeError.
func (a *Activities) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*ordertypes.OrderSnapshot, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "actorId", cmd.Actor.ID, "lines", len(cmd.Input.Lines))
	order, err := a.service.PlaceOrder(ctx, cmd.Actor, cmd.Input)
	if err != nil {
		logger.Warn("PlaceOrder activity rejected", "actorId", cmd.Actor.ID, "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return ordertypes.SnapshotOf(order), nil
}
