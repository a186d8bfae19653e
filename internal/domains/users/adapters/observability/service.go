package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/gomitas-api/internal/domains/users/adapters/observability/service"

// Service decorates the user directory with tracing and logging.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
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

func (s *Service) Register(ctx context.Context, actor accessdomain.Actor, name, email string, role accessdomain.Role) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.role", string(role))))
	defer span.End()

	user, err := s.inner.Register(ctx, actor, name, email, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("role", string(role)))
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered", slog.Int64("user.id", user.ID), slog.String("role", string(user.Role)))
	}
	return user, nil
}

func (s *Service) EnsureUser(ctx context.Context, name, email string, role accessdomain.Role) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.EnsureUser")
	defer span.End()

	user, err := s.inner.EnsureUser(ctx, name, email, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to ensure user")
	}
	return user, nil
}

func (s *Service) Resolve(ctx context.Context, id int64) (accessdomain.Actor, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Resolve", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	actor, err := s.inner.Resolve(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return actor, err
	}
	span.SetAttributes(attribute.String("user.role", string(actor.Role)))
	return actor, nil
}

func (s *Service) List(ctx context.Context, actor accessdomain.Actor) ([]*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()

	users, err := s.inner.List(ctx, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	return users, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
