package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogdomain "github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/gomitas-api/internal/domains/users/domain"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

var (
	admin    = accessdomain.Actor{ID: 1, Role: accessdomain.RoleAdmin}
	editor   = accessdomain.Actor{ID: 2, Role: accessdomain.RoleEditor}
	customer = accessdomain.Actor{ID: 3, Role: accessdomain.RoleCustomer}
	stranger = accessdomain.Actor{ID: 4, Role: accessdomain.RoleCustomer}
)

type fixture struct {
	store  *memstore.Store
	engine *Engine
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := memstore.New(memstore.WithLockTimeout(2 * time.Second))
	err := store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		for _, actor := range []accessdomain.Actor{admin, editor, customer, stranger} {
			user, err := userdomain.NewUser("Actor", fmt.Sprintf("actor%d@gomitas.test", actor.ID), actor.Role)
			if err != nil {
				return err
			}
			created, err := repos.Users().Create(ctx, user)
			if err != nil {
				return err
			}
			if created.ID != actor.ID {
				return fmt.Errorf("seeded user %d, want %d", created.ID, actor.ID)
			}
		}
		return nil
	})
	require.NoError(t, err)
	return &fixture{
		store:  store,
		engine: NewEngine(store, accessapp.NewGate(nil), opts...),
	}
}

// product creates a catalog entry and, when quantity is non-negative, its stock record.
func (f *fixture) product(t *testing.T, price string, quantity int64) int64 {
	t.Helper()
	var id int64
	err := f.store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		p, err := catalogdomain.NewProduct("Gomitas", "lime", "100g", decimal.RequireFromString(price))
		if err != nil {
			return err
		}
		created, err := repos.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		id = created.ID
		if quantity < 0 {
			return nil
		}
		_, err = repos.Stock().Create(ctx, &inventorydomain.StockRecord{ProductID: id, Quantity: quantity})
		return err
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T, productID int64) int64 {
	t.Helper()
	var quantity int64
	err := f.store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		record, err := repos.Stock().GetByProduct(ctx, productID)
		if err != nil {
			return err
		}
		quantity = record.Quantity
		return nil
	})
	require.NoError(t, err)
	return quantity
}

func (f *fixture) setPrice(t *testing.T, productID int64, price string) {
	t.Helper()
	require.NoError(t, f.store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		p, err := repos.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := p.Reprice(decimal.RequireFromString(price)); err != nil {
			return err
		}
		_, err = repos.Products().Update(ctx, p)
		return err
	}))
}

func (f *fixture) movementCount(t *testing.T, productID int64) int {
	t.Helper()
	var count int
	require.NoError(t, f.store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		movements, err := repos.Stock().ListMovements(ctx, productID, 100)
		count = len(movements)
		return err
	}))
	return count
}

func place(lines ...ordertypes.LineInput) ordertypes.PlaceOrderInput {
	return ordertypes.PlaceOrderInput{Lines: lines}
}

func line(productID, quantity int64) ordertypes.LineInput {
	return ordertypes.LineInput{ProductID: productID, Quantity: quantity}
}

func TestScenario_PlaceRejectCancelDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "5.00", 10)

	orderA, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 4)))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, orderA.Status)
	assert.True(t, decimal.RequireFromString("20.00").Equal(orderA.Total))
	assert.EqualValues(t, 6, f.stock(t, p))

	_, err = f.engine.PlaceOrder(ctx, customer, place(line(p, 10)))
	var insufficient *inventorydomain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 6, insufficient.Available)
	assert.EqualValues(t, 10, insufficient.Requested)
	assert.True(t, insufficient.Tracked)
	assert.EqualValues(t, 6, f.stock(t, p))

	cancelled, err := f.engine.CancelOrder(ctx, customer, orderA.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.EqualValues(t, 10, f.stock(t, p))

	require.NoError(t, f.engine.DeleteOrder(ctx, customer, orderA.ID))
	assert.EqualValues(t, 10, f.stock(t, p), "cancelled order must not be restocked twice")

	err = f.engine.DeleteOrder(ctx, customer, orderA.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.EqualValues(t, 10, f.stock(t, p))
}

func TestPlaceOrder_SecondLineFailureKeepsFirstLineStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "1.00", 5)
	p2 := f.product(t, "1.00", 1)

	_, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p1, 3), line(p2, 2)))
	require.ErrorIs(t, err, inventorydomain.ErrInsufficientStock)

	assert.EqualValues(t, 5, f.stock(t, p1))
	assert.EqualValues(t, 1, f.stock(t, p2))

	page, err := f.engine.ListOrders(context.Background(), admin, ordertypes.ListOrdersInput{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestPlaceOrder_CapturesCurrentPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "2.00", 10)

	first, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 1)))
	require.NoError(t, err)

	f.setPrice(t, p, "3.50")
	second, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 2)))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.00").Equal(second.Total))

	reloaded, err := f.engine.GetOrder(ctx, customer, first.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines(), 1)
	assert.True(t, decimal.RequireFromString("2.00").Equal(reloaded.Lines()[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("2.00").Equal(reloaded.Total))
}

func TestPlaceOrder_MissingStockRecordVersusMissingProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unstocked := f.product(t, "1.00", -1)

	_, err := f.engine.PlaceOrder(ctx, customer, place(line(unstocked, 1)))
	var insufficient *inventorydomain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.False(t, insufficient.Tracked)
	assert.Contains(t, err.Error(), "no stock record")

	_, err = f.engine.PlaceOrder(ctx, customer, place(line(unstocked+99, 1)))
	require.ErrorIs(t, err, catalogports.ErrNotFound)
}

func TestPlaceOrder_ValidatesBeforeTransaction(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "1.00", 1)

	cases := map[string]ordertypes.PlaceOrderInput{
		"no lines":      place(),
		"zero quantity": place(line(p, 0)),
		"bad product":   place(line(0, 1)),
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.engine.PlaceOrder(context.Background(), customer, input)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPlaceOrder_CustomerCannotOrderForSomeoneElse(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "1.00", 5)

	input := place(line(p, 1))
	input.OwnerID = stranger.ID
	_, err := f.engine.PlaceOrder(context.Background(), customer, input)
	require.ErrorIs(t, err, accessports.ErrForbidden)
	assert.EqualValues(t, 5, f.stock(t, p))

	placed, err := f.engine.PlaceOrder(context.Background(), editor, input)
	require.NoError(t, err)
	assert.Equal(t, stranger.ID, placed.OwnerID)
}

func TestPlaceOrder_IdempotencyKeyReplaysAndConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 10)

	input := place(line(p, 2))
	input.IdempotencyKey = "checkout-42"

	first, err := f.engine.PlaceOrder(ctx, customer, input)
	require.NoError(t, err)
	again, err := f.engine.PlaceOrder(ctx, customer, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.EqualValues(t, 8, f.stock(t, p))

	input.Lines = []ordertypes.LineInput{line(p, 3)}
	_, err = f.engine.PlaceOrder(ctx, customer, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.EqualValues(t, 8, f.stock(t, p))
}

func TestCancelOrder_SecondCancelIsInvalidTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 3)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 3)))
	require.NoError(t, err)
	_, err = f.engine.CancelOrder(ctx, customer, order.ID)
	require.NoError(t, err)

	_, err = f.engine.CancelOrder(ctx, customer, order.ID)
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domain.StatusCancelled, transition.From)
	assert.EqualValues(t, 3, f.stock(t, p))
}

func TestCancelOrder_RecreatesDeletedStockRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 4)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 4)))
	require.NoError(t, err)
	require.NoError(t, f.store.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return repos.Stock().Delete(ctx, p)
	}))

	_, err = f.engine.CancelOrder(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, f.stock(t, p))
}

func TestCancelOrder_OtherCustomerForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 3)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 2)))
	require.NoError(t, err)

	_, err = f.engine.CancelOrder(ctx, stranger, order.ID)
	require.ErrorIs(t, err, accessports.ErrForbidden)
	assert.EqualValues(t, 1, f.stock(t, p))

	_, err = f.engine.GetOrder(ctx, stranger, order.ID)
	require.ErrorIs(t, err, accessports.ErrForbidden)
}

func TestDeliveredOrderIsFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 5)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 2)))
	require.NoError(t, err)
	_, err = f.engine.ChangeStatus(ctx, editor, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	_, err = f.engine.ChangeStatus(ctx, editor, order.ID, domain.StatusDelivered)
	require.NoError(t, err)

	var transition *domain.InvalidTransitionError
	_, err = f.engine.CancelOrder(ctx, admin, order.ID)
	require.ErrorAs(t, err, &transition)
	err = f.engine.DeleteOrder(ctx, admin, order.ID)
	require.ErrorAs(t, err, &transition)
	_, err = f.engine.ChangeStatus(ctx, admin, order.ID, domain.StatusShipped)
	require.ErrorAs(t, err, &transition)
	_, err = f.engine.UpdateOrder(ctx, admin, order.ID, domain.CancelIntent{})
	require.ErrorAs(t, err, &transition)

	assert.EqualValues(t, 3, f.stock(t, p))
}

func TestChangeStatus_RequiresProcessPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 5)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 1)))
	require.NoError(t, err)

	_, err = f.engine.ChangeStatus(ctx, customer, order.ID, domain.StatusShipped)
	require.ErrorIs(t, err, accessports.ErrForbidden)

	_, err = f.engine.ChangeStatus(ctx, editor, order.ID, domain.StatusCancelled)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangeStatus_ProcessingLifecycle(t *testing.T) {
	f := newFixture(t, WithLifecycle(domain.NewLifecycle(true)))
	ctx := context.Background()
	p := f.product(t, "1.00", 5)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 1)))
	require.NoError(t, err)

	updated, err := f.engine.UpdateOrder(ctx, editor, order.ID, domain.ChangeStatusIntent{Status: domain.StatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.Status)

	_, err = f.engine.ChangeStatus(ctx, editor, order.ID, domain.StatusPending)
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
}

func TestUpdateOrder_UnknownIntent(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.UpdateOrder(context.Background(), admin, 1, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ErrUnknownIntent)
}

func TestListOrders_CustomersSeeOwnOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 10)

	for _, actor := range []accessdomain.Actor{customer, customer, stranger} {
		_, err := f.engine.PlaceOrder(ctx, actor, place(line(p, 1)))
		require.NoError(t, err)
	}

	own, err := f.engine.ListOrders(ctx, customer, ordertypes.ListOrdersInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, own.Total)
	for _, order := range own.Items {
		assert.Equal(t, customer.ID, order.OwnerID)
	}

	strangerID := stranger.ID
	_, err = f.engine.ListOrders(ctx, customer, ordertypes.ListOrdersInput{OwnerID: &strangerID})
	require.ErrorIs(t, err, accessports.ErrForbidden)

	all, err := f.engine.ListOrders(ctx, editor, ordertypes.ListOrdersInput{Page: pagination.Query{Page: 1, PerPage: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 2, all.LastPage())
}

func TestPlaceOrder_ConcurrentRequestsDrainStockExactly(t *testing.T) {
	f := newFixture(t)
	const q = 10
	p := f.product(t, "1.00", q)

	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p, q/2)))
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 0, f.stock(t, p))

	_, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p, 1)))
	var insufficient *inventorydomain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 0, insufficient.Available)
}

func TestPlaceOrder_ConcurrentOversubscriptionNeverGoesNegative(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "1.00", 7)

	results := make(chan error, 20)
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p, 1)))
			results <- err
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(results)

	var ok, rejected int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, inventorydomain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 7, ok)
	assert.Equal(t, 13, rejected)
	assert.EqualValues(t, 0, f.stock(t, p))
}

func TestPlaceOrder_MovementsRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 5)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p, 2)))
	require.NoError(t, err)
	_, err = f.engine.CancelOrder(ctx, customer, order.ID)
	require.NoError(t, err)

	require.NoError(t, f.store.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		movements, err := repos.Stock().ListMovements(ctx, p, 10)
		require.NoError(t, err)
		require.Len(t, movements, 2)
		assert.Equal(t, inventorydomain.ReasonOrderCancelled, movements[0].Reason)
		assert.EqualValues(t, 2, movements[0].Delta)
		assert.Equal(t, inventorydomain.ReasonOrderPlaced, movements[1].Reason)
		assert.EqualValues(t, -2, movements[1].Delta)
		require.NotNil(t, movements[1].OrderID)
		assert.Equal(t, order.ID, *movements[1].OrderID)
		return nil
	}))
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.GetOrder(context.Background(), admin, 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.False(t, errors.Is(err, inventoryports.ErrNotFound))
}

func TestPlaceOrder_UnknownOwnerIsInvalidInput(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "5.00", 10)

	input := place(line(p, 4))
	input.OwnerID = 987654
	_, err := f.engine.PlaceOrder(context.Background(), admin, input)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "owner 987654 does not exist")
	assert.EqualValues(t, 10, f.stock(t, p))

	page, err := f.engine.ListOrders(context.Background(), admin, ordertypes.ListOrdersInput{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestPlaceOrder_TotalAboveStorableMaximumIsRejected(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "999999.99", 1000)

	_, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p, 1000)))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrTotalTooLarge)
	assert.EqualValues(t, 1000, f.stock(t, p))
	assert.Zero(t, f.movementCount(t, p))

	placed, err := f.engine.PlaceOrder(context.Background(), customer, place(line(p, 100)))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99999999.00").Equal(placed.Total))
}

func TestOrderWrites_RecordStockAfter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.product(t, "1.00", 10)
	p2 := f.product(t, "1.00", 3)

	placed, err := f.engine.PlaceOrder(ctx, customer, place(line(p1, 4), line(p2, 3)))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{p1: 6, p2: 0}, placed.StockLevels())

	cancelled, err := f.engine.CancelOrder(ctx, customer, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{p1: 10, p2: 3}, cancelled.StockLevels())

	reloaded, err := f.engine.GetOrder(ctx, customer, placed.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.StockLevels())
}

var errStockWrite = errors.New("stock write failed")

// failingStockUnit runs the real store but refuses to save the stock record of one product.
type failingStockUnit struct {
	inner  uow.UnitOfWork
	failOn int64
}

func (u failingStockUnit) Do(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return fn(ctx, failingStockRepos{Repositories: repos, failOn: u.failOn})
	})
}

type failingStockRepos struct {
	uow.Repositories
	failOn int64
}

func (r failingStockRepos) Stock() inventoryports.Repository {
	return failingStock{Repository: r.Repositories.Stock(), failOn: r.failOn}
}

type failingStock struct {
	inventoryports.Repository
	failOn int64
}

func (s failingStock) Save(ctx context.Context, record *inventorydomain.StockRecord) error {
	if record.ProductID == s.failOn {
		return errStockWrite
	}
	return s.Repository.Save(ctx, record)
}

func TestStockReversal_FailureOnLaterLineChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.product(t, "1.00", 10)
	p2 := f.product(t, "1.00", 10)

	order, err := f.engine.PlaceOrder(ctx, customer, place(line(p1, 2), line(p2, 3)))
	require.NoError(t, err)
	broken := NewEngine(failingStockUnit{inner: f.store, failOn: p2}, accessapp.NewGate(nil))

	assertUntouched := func(t *testing.T) {
		t.Helper()
		reloaded, err := f.engine.GetOrder(ctx, customer, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, reloaded.Status)
		assert.EqualValues(t, 8, f.stock(t, p1))
		assert.EqualValues(t, 7, f.stock(t, p2))
		assert.Equal(t, 1, f.movementCount(t, p1))
		assert.Equal(t, 1, f.movementCount(t, p2))
	}

	t.Run("cancel", func(t *testing.T) {
		_, err := broken.CancelOrder(ctx, customer, order.ID)
		require.ErrorIs(t, err, errStockWrite)
		assertUntouched(t)
	})
	t.Run("delete", func(t *testing.T) {
		err := broken.DeleteOrder(ctx, customer, order.ID)
		require.ErrorIs(t, err, errStockWrite)
		assertUntouched(t)
	})
}

func TestDeleteOrder_ReleasesIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00", 10)

	input := place(line(p, 2))
	input.IdempotencyKey = "checkout-7"
	first, err := f.engine.PlaceOrder(ctx, customer, input)
	require.NoError(t, err)
	require.NoError(t, f.engine.DeleteOrder(ctx, customer, first.ID))
	assert.EqualValues(t, 10, f.stock(t, p))

	second, err := f.engine.PlaceOrder(ctx, customer, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.EqualValues(t, 8, f.stock(t, p))
}
