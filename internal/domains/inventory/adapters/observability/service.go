package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
)

const tracerName = "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	adjusted metric.Int64Counter
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
		if m != nil {
			s.adjusted, _ = m.Int64Counter("inventory.adjusted", metric.WithDescription("Administrative stock adjustments"))
		}
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) ListStock(ctx context.Context, actor accessdomain.Actor) ([]*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListStock")
	defer span.End()

	result, err := s.inner.ListStock(ctx, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stock")
	}
	span.SetAttributes(attribute.Int("stock.records", len(result)))
	return result, nil
}

func (s *Service) GetStock(ctx context.Context, actor accessdomain.Actor, productID int64) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetStock", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	result, err := s.inner.GetStock(ctx, actor, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load stock", slog.Int64("product.id", productID))
	}
	return result, nil
}

func (s *Service) CreateStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateStock",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int64("stock.quantity", quantity)))
	defer span.End()

	result, err := s.inner.CreateStock(ctx, actor, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create stock record", slog.Int64("product.id", productID))
	}
	s.logInfo(ctx, "stock record created", slog.Int64("product.id", productID), slog.Int64("quantity", quantity))
	return result, nil
}

func (s *Service) AdjustStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AdjustStock",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int64("stock.quantity", quantity)))
	defer span.End()

	result, err := s.inner.AdjustStock(ctx, actor, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust stock", slog.Int64("product.id", productID))
	}
	if s.adjusted != nil {
		s.adjusted.Add(ctx, 1)
	}
	s.logInfo(ctx, "stock adjusted", slog.Int64("product.id", productID), slog.Int64("quantity", result.Quantity), slog.Int64("actor.id", actor.ID))
	return result, nil
}

func (s *Service) DeleteStock(ctx context.Context, actor accessdomain.Actor, productID int64) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.DeleteStock", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	if err := s.inner.DeleteStock(ctx, actor, productID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete stock record", slog.Int64("product.id", productID))
	}
	s.logInfo(ctx, "stock record deleted", slog.Int64("product.id", productID))
	return nil
}

func (s *Service) ListMovements(ctx context.Context, actor accessdomain.Actor, productID int64, limit int) ([]domain.Movement, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListMovements", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	result, err := s.inner.ListMovements(ctx, actor, productID, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stock movements", slog.Int64("product.id", productID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
