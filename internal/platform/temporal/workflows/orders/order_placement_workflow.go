package orders

import (
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/gomitas-api/internal/platform/temporal/activities/orders"
	"github.com/Apurer/gomitas-api/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the placement request and the trace it came from.
type OrderPlacementWorkflowInput struct {
	Command orderactivities.PlaceOrderCommand
	TraceID string
}

// OrderPlacementWorkflow places an order through the placement sequence.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordertypes.OrderSnapshot, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "actorId", input.Command.Actor.ID)...)
	snapshot, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "actorId", input.Command.Actor.ID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", snapshot.ID)...)
	return snapshot, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
