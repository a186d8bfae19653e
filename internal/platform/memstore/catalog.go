package memstore

import (
	"context"
	"sort"

	catalogdomain "github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

type productRepo struct{ t *tx }

var _ catalogports.Repository = productRepo{}

func cloneProduct(p *catalogdomain.Product) *catalogdomain.Product {
	c := *p
	return &c
}

func (r productRepo) Create(_ context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	stored := cloneProduct(product)
	stored.ID = r.t.store.productSeq.Add(1)
	now := r.t.store.stamp()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.t.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r productRepo) Update(_ context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	existing, ok := r.t.product(product.ID)
	if !ok {
		return nil, catalogports.ErrNotFound
	}
	stored := cloneProduct(product)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.t.store.stamp()
	r.t.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

// Delete removes the product and its stock record. Products referenced by
// order lines are kept and reported as in use.
func (r productRepo) Delete(ctx context.Context, id int64) error {
	if err := r.t.lock(ctx, lockKey("stock", id)); err != nil {
		return err
	}
	if _, ok := r.t.product(id); !ok {
		return catalogports.ErrNotFound
	}
	if r.t.referencesProduct(id) {
		return catalogports.ErrInUse
	}
	r.t.products[id] = nil
	if _, ok := r.t.stockRecord(id); ok {
		r.t.stock[id] = nil
	}
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*catalogdomain.Product, error) {
	p, ok := r.t.product(id)
	if !ok {
		return nil, catalogports.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r productRepo) List(_ context.Context, query pagination.Query) ([]*catalogdomain.Product, int64, error) {
	r.t.store.mu.RLock()
	merged := make(map[int64]*catalogdomain.Product, len(r.t.store.products))
	for id, p := range r.t.store.products {
		merged[id] = p
	}
	r.t.store.mu.RUnlock()
	for id, p := range r.t.products {
		if p == nil {
			delete(merged, id)
			continue
		}
		merged[id] = p
	}

	all := make([]*catalogdomain.Product, 0, len(merged))
	for _, p := range merged {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	query = query.Normalize()
	total := int64(len(all))
	window := paginate(len(all), query)
	out := make([]*catalogdomain.Product, 0, window.high-window.low)
	for _, p := range all[window.low:window.high] {
		out = append(out, cloneProduct(p))
	}
	return out, total, nil
}

type bounds struct{ low, high int }

func paginate(n int, query pagination.Query) bounds {
	low := query.Offset()
	if low > n {
		low = n
	}
	high := low + query.Limit()
	if high > n {
		high = n
	}
	return bounds{low: low, high: high}
}
