package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order engine with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.Int64("actor.id", actor.ID),
			attribute.Int("order.line_count", len(input.Lines)),
			attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
		))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("actor.id", actor.ID), slog.Int("order.line_count", len(input.Lines)))
	result, err := s.inner.PlaceOrder(ctx, actor, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "place", err)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("actor.id", actor.ID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.String("order.total", result.Total.StringFixed(2)))
	s.metrics.recordPlaced(ctx, len(result.Lines()))
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID),
		slog.Int64("order.owner_id", result.OwnerID),
		slog.String("order.total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) UpdateOrder(ctx context.Context, actor accessdomain.Actor, orderID int64, intent orderdomain.Intent) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID), attribute.String("order.intent", fmt.Sprintf("%T", intent))))
	defer span.End()

	result, err := s.inner.UpdateOrder(ctx, actor, orderID, intent)
	if err != nil {
		s.metrics.recordRejected(ctx, "update", err)
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", orderID))
	}
	if result.Status == orderdomain.StatusCancelled {
		s.metrics.recordCancelled(ctx)
	}
	s.logInfo(ctx, "order updated", slog.Int64("order.id", orderID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.Int64("order.id", orderID), slog.Int64("actor.id", actor.ID))
	result, err := s.inner.CancelOrder(ctx, actor, orderID)
	if err != nil {
		s.metrics.recordRejected(ctx, "cancel", err)
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.Int64("order.id", orderID))
	return result, nil
}

func (s *Service) ChangeStatus(ctx context.Context, actor accessdomain.Actor, orderID int64, status orderdomain.Status) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ChangeStatus",
		trace.WithAttributes(attribute.Int64("order.id", orderID), attribute.String("order.target_status", string(status))))
	defer span.End()

	result, err := s.inner.ChangeStatus(ctx, actor, orderID, status)
	if err != nil {
		s.metrics.recordRejected(ctx, "change_status", err)
		return nil, s.handleError(ctx, span, err, "failed to change order status", slog.Int64("order.id", orderID), slog.String("status", string(status)))
	}
	s.logInfo(ctx, "order status changed", slog.Int64("order.id", orderID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) DeleteOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", orderID))
	if err := s.inner.DeleteOrder(ctx, actor, orderID); err != nil {
		s.metrics.recordRejected(ctx, "delete", err)
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", orderID))
	return nil
}

func (s *Service) GetOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, actor accessdomain.Actor, input ordertypes.ListOrdersInput) (pagination.Page[*orderdomain.Order], error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, actor, input)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", result.Total), attribute.Int("orders.page_size", len(result.Items)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError records err on the span. Business rejections are logged at warn,
// anything unexpected at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	reason := rejectionReason(err)
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("order.rejection", reason))
	}
	if s.logger != nil {
		level := slog.LevelWarn
		if reason == "internal" {
			level = slog.LevelError
		}
		attrs = append(attrs, slog.String("reason", reason), slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, orderdomain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, accessports.ErrForbidden):
		return "forbidden"
	case errors.Is(err, orderports.ErrNotFound), errors.Is(err, catalogports.ErrNotFound):
		return "not_found"
	case errors.Is(err, orderapp.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return "idempotency_conflict"
	default:
		return "internal"
	}
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersCancelled metric.Int64Counter
	ordersDeleted   metric.Int64Counter
	ordersRejected  metric.Int64Counter
	linesPlaced     metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.placed", metric.WithDescription("Number of orders placed"))
	cancelled, _ := m.Int64Counter("orders.cancelled", metric.WithDescription("Number of orders cancelled"))
	deleted, _ := m.Int64Counter("orders.deleted", metric.WithDescription("Number of orders deleted"))
	rejected, _ := m.Int64Counter("orders.rejected", metric.WithDescription("Order operations rejected, by reason"))
	lines, _ := m.Int64Histogram("orders.lines", metric.WithDescription("Lines per placed order"))
	return serviceMetrics{
		ordersPlaced:    placed,
		ordersCancelled: cancelled,
		ordersDeleted:   deleted,
		ordersRejected:  rejected,
		linesPlaced:     lines,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, lines int) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.linesPlaced != nil {
		m.linesPlaced.Record(ctx, int64(lines))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, op string, err error) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("reason", rejectionReason(err)),
		))
	}
}

var _ orderports.Service = (*Service)(nil)
