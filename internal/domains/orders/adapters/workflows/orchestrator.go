package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/gomitas-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/gomitas-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows places orders through a workflow on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the placement workflow and waits for its result. Requests
// sharing an idempotency key and payload share a workflow ID; a different
// payload under the same key runs its own workflow, which the engine rejects
// with ports.ErrIdempotencyConflict.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderPlacementWorkflowID(actor, input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{
			Command: orderactivities.PlaceOrderCommand{Actor: actor, Input: input},
			TraceID: traceComponent,
		},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var snapshot ordertypes.OrderSnapshot
	if err := run.Get(ctx, &snapshot); err != nil {
		return nil, orderactivities.DecodeError(err)
	}
	return snapshot.Order(), nil
}

// InlineOrderWorkflows executes the engine directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, actor, input)
}

func buildOrderPlacementWorkflowID(actor accessdomain.Actor, input ordertypes.PlaceOrderInput, traceComponent string) string {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" {
		return fmt.Sprintf("order-placement-%d-%s", actor.ID, traceComponent)
	}
	ownerID := input.OwnerID
	if ownerID == 0 {
		ownerID = actor.ID
	}
	fingerprint, err := orderapp.FingerprintPlaceOrder(ownerID, input.Lines)
	if err != nil {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-placement-idem-%s-%s", hashIdempotencyKey(key), fingerprint[:16])
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
