package memstore

import (
	"context"

	catalogdomain "github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/gomitas-api/internal/domains/users/domain"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

var _ uow.Repositories = (*tx)(nil)

// tx stages writes on top of the committed state. A nil map value marks a deletion.
type tx struct {
	store *Store
	held  []string
	owned map[string]struct{}

	products    map[int64]*catalogdomain.Product
	stock       map[int64]*inventorydomain.StockRecord
	movements   []inventorydomain.Movement
	orders      map[int64]*orderdomain.Order
	idempotency map[string]*orderports.IdempotencyRecord
	users       map[int64]*userdomain.User
}

func newTx(s *Store) *tx {
	return &tx{
		store:       s,
		owned:       map[string]struct{}{},
		products:    map[int64]*catalogdomain.Product{},
		stock:       map[int64]*inventorydomain.StockRecord{},
		orders:      map[int64]*orderdomain.Order{},
		idempotency: map[string]*orderports.IdempotencyRecord{},
		users:       map[int64]*userdomain.User{},
	}
}

func (t *tx) Products() catalogports.Repository { return productRepo{t} }

func (t *tx) Stock() inventoryports.Repository { return stockRepo{t} }

func (t *tx) Orders() orderports.Repository { return orderRepo{t} }

func (t *tx) IdempotencyKeys() orderports.IdempotencyStore { return idempotencyRepo{t} }

func (t *tx) Users() userports.Repository { return userRepo{t} }

// lock takes key for the rest of the transaction. Re-locking a held key is a no-op.
func (t *tx) lock(ctx context.Context, key string) error {
	if _, ok := t.owned[key]; ok {
		return nil
	}
	if err := t.store.locks.acquire(ctx, key, t.store.lockTimeout); err != nil {
		return err
	}
	t.owned[key] = struct{}{}
	t.held = append(t.held, key)
	return nil
}

func (t *tx) releaseLocks() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.locks.release(t.held[i])
	}
	t.held = nil
	t.owned = map[string]struct{}{}
}

func (t *tx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range t.products {
		if p == nil {
			delete(s.products, id)
			continue
		}
		s.products[id] = p
	}
	for pid, r := range t.stock {
		if r == nil {
			delete(s.stock, pid)
			continue
		}
		s.stock[pid] = r
	}
	s.movements = append(s.movements, t.movements...)
	for id, o := range t.orders {
		if o == nil {
			delete(s.orders, id)
			continue
		}
		s.orders[id] = o
	}
	for key, rec := range t.idempotency {
		if rec == nil {
			delete(s.idempotency, key)
			continue
		}
		s.idempotency[key] = *rec
	}
	for id, u := range t.users {
		s.users[id] = u
	}
	return nil
}

// The lookups below read the transaction's view: staged writes first, then committed state.

func (t *tx) product(id int64) (*catalogdomain.Product, bool) {
	if p, ok := t.products[id]; ok {
		return p, p != nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	p, ok := t.store.products[id]
	return p, ok
}

func (t *tx) stockRecord(productID int64) (*inventorydomain.StockRecord, bool) {
	if r, ok := t.stock[productID]; ok {
		return r, r != nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	r, ok := t.store.stock[productID]
	return r, ok
}

func (t *tx) order(id int64) (*orderdomain.Order, bool) {
	if o, ok := t.orders[id]; ok {
		return o, o != nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	o, ok := t.store.orders[id]
	return o, ok
}

func (t *tx) allOrders() []*orderdomain.Order {
	t.store.mu.RLock()
	merged := make(map[int64]*orderdomain.Order, len(t.store.orders)+len(t.orders))
	for id, o := range t.store.orders {
		merged[id] = o
	}
	t.store.mu.RUnlock()
	for id, o := range t.orders {
		if o == nil {
			delete(merged, id)
			continue
		}
		merged[id] = o
	}
	out := make([]*orderdomain.Order, 0, len(merged))
	for _, o := range merged {
		out = append(out, o)
	}
	return out
}
