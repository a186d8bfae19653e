package ports

import (
	"context"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement either durably or inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*domain.Order, error)
}
