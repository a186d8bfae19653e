package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/gomitas-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the placement transaction exactly once.
// The activity is never retried: a lock timeout or deadlock is reported to the
// caller instead of being replayed against stock that may have changed.
func RunOrderPlacementSequence(ctx workflow.Context, cmd orderactivities.PlaceOrderCommand) (*ordertypes.OrderSnapshot, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "actorId", cmd.Actor.ID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var snapshot ordertypes.OrderSnapshot
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, cmd).Get(ctx, &snapshot)
	if err != nil {
		logger.Error("order placement sequence failed", "actorId", cmd.Actor.ID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence committed", "orderId", snapshot.ID)
	return &snapshot, nil
}
