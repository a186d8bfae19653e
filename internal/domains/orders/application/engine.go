package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// Engine runs every stock-affecting order operation as one unit of work:
// stock is locked, checked and mutated together with the order rows, and
// any failure rolls the whole operation back.
type Engine struct {
	uow       uow.UnitOfWork
	gate      accessports.Authorizer
	lifecycle domain.Lifecycle
	now       func() time.Time
}

// Option customizes the engine.
type Option func(*Engine)

// WithLifecycle selects the status sequence used by ChangeStatus.
func WithLifecycle(lifecycle domain.Lifecycle) Option {
	return func(e *Engine) {
		e.lifecycle = lifecycle
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(unit uow.UnitOfWork, gate accessports.Authorizer, opts ...Option) *Engine {
	e := &Engine{
		uow:       unit,
		gate:      gate,
		lifecycle: domain.DefaultLifecycle(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// PlaceOrder creates a pending order, deducting stock line by line in submission order.
func (e *Engine) PlaceOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlaceOrder(input); err != nil {
		return nil, mapError(err)
	}
	ownerID := input.OwnerID
	if ownerID == 0 {
		ownerID = actor.ID
	}
	if err := e.gate.Authorize(actor, accessdomain.OrdersCreate, accessdomain.OwnedBy(ownerID)); err != nil {
		return nil, err
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" {
		hash, err := FingerprintPlaceOrder(ownerID, input.Lines)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		replayed, err := e.replay(ctx, key, requestHash)
		if err != nil || replayed != nil {
			return replayed, err
		}
	}

	var placed *domain.Order
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if input.OwnerID != 0 {
			if _, err := repos.Users().GetByID(ctx, input.OwnerID); err != nil {
				if errors.Is(err, userports.ErrNotFound) {
					return fmt.Errorf("%w: owner %d does not exist", ErrInvalidInput, input.OwnerID)
				}
				return err
			}
		}
		now := e.now().UTC()
		order, err := domain.NewOrder(ownerID, now)
		if err != nil {
			return mapError(err)
		}
		order, err = repos.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		ledger := inventoryapp.NewLedger(repos.Stock(), e.now)
		ref := inventorydomain.ForOrder(inventorydomain.ReasonOrderPlaced, order.ID, actor.ID)
		for _, line := range input.Lines {
			record, err := ledger.LockAndGet(ctx, line.ProductID)
			if errors.Is(err, inventoryports.ErrNotFound) {
				if _, err := repos.Products().GetByID(ctx, line.ProductID); err != nil {
					return err
				}
				return inventorydomain.UntrackedStock(line.ProductID, line.Quantity)
			}
			if err != nil {
				return err
			}
			product, err := repos.Products().GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := ledger.Decrement(ctx, record, line.Quantity, ref); err != nil {
				return err
			}
			order.RecordStock(product.ID, record.Quantity)
			if _, err := order.AddLine(product.ID, line.Quantity, product.Price); err != nil {
				return mapError(err)
			}
		}
		order.RecomputeTotal()
		if err := order.CheckTotal(); err != nil {
			return mapError(err)
		}
		if err := repos.Orders().AttachLines(ctx, order); err != nil {
			return err
		}
		if key != "" {
			record := ports.IdempotencyRecord{
				Key:         key,
				RequestHash: requestHash,
				OrderID:     order.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := repos.IdempotencyKeys().Save(ctx, record); err != nil {
				return err
			}
		}
		placed = order
		return nil
	})
	if err != nil {
		if key != "" && errors.Is(err, ports.ErrDuplicateRequest) {
			// A concurrent request with the same key committed first.
			return e.replay(ctx, key, requestHash)
		}
		return nil, err
	}
	return placed, nil
}

// UpdateOrder dispatches on the intent variant.
func (e *Engine) UpdateOrder(ctx context.Context, actor accessdomain.Actor, orderID int64, intent domain.Intent) (*domain.Order, error) {
	switch in := intent.(type) {
	case domain.CancelIntent:
		return e.CancelOrder(ctx, actor, orderID)
	case *domain.CancelIntent:
		return e.CancelOrder(ctx, actor, orderID)
	case domain.ChangeStatusIntent:
		return e.ChangeStatus(ctx, actor, orderID, in.Status)
	case *domain.ChangeStatusIntent:
		if in == nil {
			return nil, mapError(ErrUnknownIntent)
		}
		return e.ChangeStatus(ctx, actor, orderID, in.Status)
	default:
		return nil, mapError(fmt.Errorf("%w: %T", ErrUnknownIntent, intent))
	}
}

// CancelOrder marks the order cancelled and returns every line's quantity to stock.
func (e *Engine) CancelOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*domain.Order, error) {
	var cancelled *domain.Order
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		order, err := repos.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.EnsureCancellable(); err != nil {
			return err
		}
		if err := e.gate.Authorize(actor, accessdomain.OrdersCancel, accessdomain.OwnedBy(order.OwnerID)); err != nil {
			return err
		}
		if err := e.restock(ctx, repos, order, inventorydomain.ReasonOrderCancelled, actor); err != nil {
			return err
		}
		if err := order.Cancel(e.now().UTC()); err != nil {
			return err
		}
		if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ChangeStatus advances a non-terminal order. Stock is not touched.
func (e *Engine) ChangeStatus(ctx context.Context, actor accessdomain.Actor, orderID int64, status domain.Status) (*domain.Order, error) {
	var updated *domain.Order
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		order, err := repos.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Advance(status, e.lifecycle, e.now().UTC()); err != nil {
			return mapError(err)
		}
		if err := e.gate.Authorize(actor, accessdomain.OrdersProcess, accessdomain.OwnedBy(order.OwnerID)); err != nil {
			return err
		}
		if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOrder removes an order that was not delivered. Stock is returned unless a
// prior cancellation already returned it. Idempotency keys of the order are
// dropped, so retrying its placement creates a new order.
func (e *Engine) DeleteOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) error {
	return e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		order, err := repos.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.EnsureDeletable(); err != nil {
			return err
		}
		if err := e.gate.Authorize(actor, accessdomain.OrdersDelete, accessdomain.OwnedBy(order.OwnerID)); err != nil {
			return err
		}
		if !order.StockReturned() {
			if err := e.restock(ctx, repos, order, inventorydomain.ReasonOrderDeleted, actor); err != nil {
				return err
			}
		}
		if err := repos.IdempotencyKeys().DeleteByOrder(ctx, order.ID); err != nil {
			return err
		}
		return repos.Orders().Delete(ctx, order.ID)
	})
}

func (e *Engine) GetOrder(ctx context.Context, actor accessdomain.Actor, orderID int64) (*domain.Order, error) {
	var order *domain.Order
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		order, err = repos.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		return e.gate.Authorize(actor, accessdomain.OrdersView, accessdomain.OwnedBy(order.OwnerID))
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders pages through orders visible to the actor. Actors limited to
// their own orders always get the owner filter applied.
func (e *Engine) ListOrders(ctx context.Context, actor accessdomain.Actor, input ordertypes.ListOrdersInput) (pagination.Page[*domain.Order], error) {
	filter := ports.ListFilter{OwnerID: input.OwnerID, Status: input.Status, Page: input.Page.Normalize()}
	switch e.gate.Scope(actor, accessdomain.OrdersView) {
	case accessdomain.ScopeAny:
	case accessdomain.ScopeOwn:
		if filter.OwnerID != nil && *filter.OwnerID != actor.ID {
			return pagination.Page[*domain.Order]{}, e.gate.Authorize(actor, accessdomain.OrdersView, accessdomain.OwnedBy(*filter.OwnerID))
		}
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	default:
		return pagination.Page[*domain.Order]{}, e.gate.Authorize(actor, accessdomain.OrdersView, accessdomain.Resource{})
	}
	var page pagination.Page[*domain.Order]
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		orders, total, err := repos.Orders().List(ctx, filter)
		if err != nil {
			return err
		}
		page = pagination.NewPage(orders, filter.Page, total)
		return nil
	})
	return page, err
}

// restock returns each line's quantity to its product, creating an empty
// stock record first when the product has none. The resulting quantities are
// recorded on order.
func (e *Engine) restock(ctx context.Context, repos uow.Repositories, order *domain.Order, reason inventorydomain.Reason, actor accessdomain.Actor) error {
	ledger := inventoryapp.NewLedger(repos.Stock(), e.now)
	ref := inventorydomain.ForOrder(reason, order.ID, actor.ID)
	for _, line := range order.Lines() {
		record, err := ledger.LockOrCreate(ctx, line.ProductID)
		if err != nil {
			return fmt.Errorf("restock product %d: %w", line.ProductID, err)
		}
		if err := ledger.Increment(ctx, record, line.Quantity, ref); err != nil {
			return fmt.Errorf("restock product %d: %w", line.ProductID, err)
		}
		order.RecordStock(line.ProductID, record.Quantity)
	}
	return nil
}

// replay returns the order previously created under key, or nil when the key is unknown.
func (e *Engine) replay(ctx context.Context, key, requestHash string) (*domain.Order, error) {
	var order *domain.Order
	err := e.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		record, err := repos.IdempotencyKeys().Get(ctx, key)
		if err != nil || record == nil {
			return err
		}
		if record.RequestHash != requestHash {
			return ports.ErrIdempotencyConflict
		}
		order, err = repos.Orders().GetByID(ctx, record.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func validatePlaceOrder(input ordertypes.PlaceOrderInput) error {
	if input.OwnerID < 0 {
		return domain.ErrInvalidOwner
	}
	if len(input.Lines) == 0 {
		return domain.ErrNoLines
	}
	for _, line := range input.Lines {
		if line.ProductID <= 0 {
			return domain.ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

var _ ports.Service = (*Engine)(nil)
