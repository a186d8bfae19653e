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
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
	deleted metric.Int64Counter
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
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("products.created", metric.WithDescription("Number of products created"))
		s.deleted, _ = m.Int64Counter("products.deleted", metric.WithDescription("Number of products deleted"))
	}
}

func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.CreateProductInput) (*catalogtypes.ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct", trace.WithAttributes(attribute.String("product.name", input.Name)))
	defer span.End()

	result, err := s.inner.CreateProduct(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.Product.ID), slog.String("price", result.Product.Price.StringFixed(2)))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.UpdateProductInput) (*catalogtypes.ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	result, err := s.inner.UpdateProduct(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", input.ID))
	}
	s.logInfo(ctx, "product updated", slog.Int64("product.id", input.ID))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor accessdomain.Actor, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	if s.deleted != nil {
		s.deleted.Add(ctx, 1)
	}
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
	return nil
}

func (s *Service) GetProduct(ctx context.Context, actor accessdomain.Actor, id int64) (*catalogtypes.ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context, actor accessdomain.Actor, query pagination.Query) (pagination.Page[*catalogtypes.ProductView], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts", trace.WithAttributes(attribute.Int("page", query.Page)))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, actor, query)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int64("products.total", result.Total))
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

var _ catalogports.Service = (*Service)(nil)
