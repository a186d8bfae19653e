// Package cache serves catalog reads from Redis. Product views carry a stock
// figure, so catalog, order and inventory writes all bump one version counter
// and entries also expire after the configured TTL. Order placement reads
// stock inside its own transaction and never goes through this cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

const (
	DefaultTTL = 30 * time.Second
	keyPrefix  = "gomitas:catalog"
	versionKey = keyPrefix + ":version"
)

// Service is a read-through cache in front of the catalog service. Every write
// bumps a version counter so previously cached keys are never read again.
type Service struct {
	inner       catalogports.Service
	gate        accessports.Authorizer
	client      redis.Cmdable
	ttl         time.Duration
	logger      *slog.Logger
	invalidator *Invalidator
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps inner. Cache hits are still authorized through gate.
func New(inner catalogports.Service, gate accessports.Authorizer, client redis.Cmdable, opts ...Option) catalogports.Service {
	s := &Service{
		inner:  inner,
		gate:   gate,
		client: client,
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.invalidator = NewInvalidator(client, s.logger)
	return s
}

// NewClient dials Redis at addr, as used by the API process.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (s *Service) CreateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.CreateProductInput) (*catalogtypes.ProductView, error) {
	view, err := s.inner.CreateProduct(ctx, actor, input)
	if err == nil {
		s.invalidate(ctx)
	}
	return view, err
}

func (s *Service) UpdateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.UpdateProductInput) (*catalogtypes.ProductView, error) {
	view, err := s.inner.UpdateProduct(ctx, actor, input)
	if err == nil {
		s.invalidate(ctx)
	}
	return view, err
}

func (s *Service) DeleteProduct(ctx context.Context, actor accessdomain.Actor, id int64) error {
	err := s.inner.DeleteProduct(ctx, actor, id)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

func (s *Service) GetProduct(ctx context.Context, actor accessdomain.Actor, id int64) (*catalogtypes.ProductView, error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsView, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	key := s.key(ctx, "product", fmt.Sprint(id))
	var cached catalogtypes.ProductView
	if s.load(ctx, key, &cached) {
		return &cached, nil
	}
	view, err := s.inner.GetProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, view)
	return view, nil
}

func (s *Service) ListProducts(ctx context.Context, actor accessdomain.Actor, query pagination.Query) (pagination.Page[*catalogtypes.ProductView], error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsView, accessdomain.Resource{}); err != nil {
		return pagination.Page[*catalogtypes.ProductView]{}, err
	}
	query = query.Normalize()
	key := s.key(ctx, "products", fmt.Sprintf("%d:%d", query.Page, query.PerPage))
	var cached pagination.Page[*catalogtypes.ProductView]
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	page, err := s.inner.ListProducts(ctx, actor, query)
	if err != nil {
		return page, err
	}
	s.store(ctx, key, page)
	return page, nil
}

func (s *Service) key(ctx context.Context, operation, id string) string {
	version, err := s.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "catalog cache version unavailable", slog.String("error", err.Error()))
	}
	return fmt.Sprintf("%s:v%d:%s:%s", keyPrefix, version, operation, id)
}

func (s *Service) load(ctx context.Context, key string, dst any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "catalog cache entry corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Service) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Service) invalidate(ctx context.Context) {
	s.invalidator.Invalidate(ctx)
}

var _ catalogports.Service = (*Service)(nil)
