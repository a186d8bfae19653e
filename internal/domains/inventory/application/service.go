package application

import (
	"context"
	"time"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

const defaultMovementLimit = 50

// Service implements administrative stock management.
type Service struct {
	uow  uow.UnitOfWork
	gate accessports.Authorizer
	now  func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the time source used for movement timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(unit uow.UnitOfWork, gate accessports.Authorizer, opts ...Option) *Service {
	s := &Service{uow: unit, gate: gate, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListStock(ctx context.Context, actor accessdomain.Actor) ([]*domain.StockRecord, error) {
	if err := s.gate.Authorize(actor, accessdomain.InventoryView, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	var records []*domain.StockRecord
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		records, err = repos.Stock().List(ctx)
		return err
	})
	return records, err
}

func (s *Service) GetStock(ctx context.Context, actor accessdomain.Actor, productID int64) (*domain.StockRecord, error) {
	if err := s.gate.Authorize(actor, accessdomain.InventoryView, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	var record *domain.StockRecord
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		record, err = repos.Stock().GetByProduct(ctx, productID)
		return err
	})
	return record, err
}

// CreateStock opens the stock record of an existing product. A product holds at most one record.
func (s *Service) CreateStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error) {
	if err := s.gate.Authorize(actor, accessdomain.InventoryCreate, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	record, err := domain.NewStockRecord(productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.StockRecord
	err = s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if _, err := repos.Products().GetByID(ctx, productID); err != nil {
			return err
		}
		ledger := NewLedger(repos.Stock(), s.now)
		var err error
		created, err = ledger.Open(ctx, record, domain.Reference{Reason: domain.ReasonInitial, ActorID: actor.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AdjustStock sets the on-hand quantity under the record lock.
func (s *Service) AdjustStock(ctx context.Context, actor accessdomain.Actor, productID, quantity int64) (*domain.StockRecord, error) {
	if err := s.gate.Authorize(actor, accessdomain.InventoryAdjust, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, mapError(domain.ErrNegativeQuantity)
	}
	var adjusted *domain.StockRecord
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		ledger := NewLedger(repos.Stock(), s.now)
		record, err := ledger.LockAndGet(ctx, productID)
		if err != nil {
			return err
		}
		if err := ledger.Adjust(ctx, record, quantity, domain.Reference{Reason: domain.ReasonAdjustment, ActorID: actor.ID}); err != nil {
			return mapError(err)
		}
		adjusted = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func (s *Service) DeleteStock(ctx context.Context, actor accessdomain.Actor, productID int64) error {
	if err := s.gate.Authorize(actor, accessdomain.InventoryDelete, accessdomain.Resource{}); err != nil {
		return err
	}
	return s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return repos.Stock().Delete(ctx, productID)
	})
}

func (s *Service) ListMovements(ctx context.Context, actor accessdomain.Actor, productID int64, limit int) ([]domain.Movement, error) {
	if err := s.gate.Authorize(actor, accessdomain.InventoryView, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	var movements []domain.Movement
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		movements, err = repos.Stock().ListMovements(ctx, productID, limit)
		return err
	})
	return movements, err
}

var _ ports.Service = (*Service)(nil)
