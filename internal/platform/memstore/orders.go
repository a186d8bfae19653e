package memstore

import (
	"context"
	"sort"

	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
)

type orderRepo struct{ t *tx }

var _ orderports.Repository = orderRepo{}

func (r orderRepo) Create(_ context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	stored := order.Clone()
	stored.ID = r.t.store.orderSeq.Add(1)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.t.store.stamp()
		stored.UpdatedAt = stored.CreatedAt
	}
	stored.AssignLineIDs(stored.ID, nil)
	r.t.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r orderRepo) AttachLines(_ context.Context, order *orderdomain.Order) error {
	if _, ok := r.t.order(order.ID); !ok {
		return orderports.ErrNotFound
	}
	lines := order.Lines()
	ids := make([]int64, len(lines))
	for i := range lines {
		ids[i] = r.t.store.lineSeq.Add(1)
	}
	order.AssignLineIDs(order.ID, ids)
	r.t.orders[order.ID] = order.Clone()
	return nil
}

func (r orderRepo) LockByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	if err := r.t.lock(ctx, lockKey("order", id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r orderRepo) GetByID(_ context.Context, id int64) (*orderdomain.Order, error) {
	order, ok := r.t.order(id)
	if !ok {
		return nil, orderports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r orderRepo) UpdateStatus(_ context.Context, order *orderdomain.Order) error {
	existing, ok := r.t.order(order.ID)
	if !ok {
		return orderports.ErrNotFound
	}
	stored := existing.Clone()
	stored.Status = order.Status
	stored.UpdatedAt = order.UpdatedAt
	r.t.orders[order.ID] = stored
	return nil
}

func (r orderRepo) Delete(ctx context.Context, id int64) error {
	if err := r.t.lock(ctx, lockKey("order", id)); err != nil {
		return err
	}
	if _, ok := r.t.order(id); !ok {
		return orderports.ErrNotFound
	}
	r.t.orders[id] = nil
	return nil
}

// List returns matching orders, newest first.
func (r orderRepo) List(_ context.Context, filter orderports.ListFilter) ([]*orderdomain.Order, int64, error) {
	var matched []*orderdomain.Order
	for _, order := range r.t.allOrders() {
		if filter.OwnerID != nil && order.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, order)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	query := filter.Page.Normalize()
	window := paginate(len(matched), query)
	out := make([]*orderdomain.Order, 0, window.high-window.low)
	for _, order := range matched[window.low:window.high] {
		out = append(out, order.Clone())
	}
	return out, int64(len(matched)), nil
}

func (r orderRepo) ReferencesProduct(_ context.Context, productID int64) (bool, error) {
	return r.t.referencesProduct(productID), nil
}

func (t *tx) referencesProduct(productID int64) bool {
	for _, order := range t.allOrders() {
		for _, line := range order.Lines() {
			if line.ProductID == productID {
				return true
			}
		}
	}
	return false
}

type idempotencyRepo struct{ t *tx }

var _ orderports.IdempotencyStore = idempotencyRepo{}

func (r idempotencyRepo) Get(_ context.Context, key string) (*orderports.IdempotencyRecord, error) {
	if staged, ok := r.t.idempotency[key]; ok {
		if staged == nil {
			return nil, nil
		}
		record := *staged
		return &record, nil
	}
	r.t.store.mu.RLock()
	defer r.t.store.mu.RUnlock()
	record, ok := r.t.store.idempotency[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r idempotencyRepo) Save(ctx context.Context, record orderports.IdempotencyRecord) (*orderports.IdempotencyRecord, error) {
	if err := r.t.lock(ctx, lockKey("idem", record.Key)); err != nil {
		return nil, err
	}
	existing, err := r.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.RequestHash != record.RequestHash {
			return existing, orderports.ErrIdempotencyConflict
		}
		return existing, orderports.ErrDuplicateRequest
	}
	now := r.t.store.stamp()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	staged := record
	r.t.idempotency[record.Key] = &staged
	saved := record
	return &saved, nil
}

func (r idempotencyRepo) DeleteByOrder(ctx context.Context, orderID int64) error {
	keys := map[string]struct{}{}
	r.t.store.mu.RLock()
	for key, record := range r.t.store.idempotency {
		if record.OrderID == orderID {
			keys[key] = struct{}{}
		}
	}
	r.t.store.mu.RUnlock()
	for key, staged := range r.t.idempotency {
		if staged != nil && staged.OrderID == orderID {
			keys[key] = struct{}{}
		}
	}
	for key := range keys {
		if err := r.t.lock(ctx, lockKey("idem", key)); err != nil {
			return err
		}
		r.t.idempotency[key] = nil
	}
	return nil
}
