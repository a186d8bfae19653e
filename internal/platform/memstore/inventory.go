package memstore

import (
	"context"
	"sort"

	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
)

type stockRepo struct{ t *tx }

var _ inventoryports.Repository = stockRepo{}

func (r stockRepo) LockByProduct(ctx context.Context, productID int64) (*inventorydomain.StockRecord, error) {
	if err := r.t.lock(ctx, lockKey("stock", productID)); err != nil {
		return nil, err
	}
	record, ok := r.t.stockRecord(productID)
	if !ok {
		return nil, inventoryports.ErrNotFound
	}
	return record.Clone(), nil
}

func (r stockRepo) LockOrCreate(ctx context.Context, productID int64) (*inventorydomain.StockRecord, error) {
	if err := r.t.lock(ctx, lockKey("stock", productID)); err != nil {
		return nil, err
	}
	if record, ok := r.t.stockRecord(productID); ok {
		return record.Clone(), nil
	}
	if _, ok := r.t.product(productID); !ok {
		return nil, catalogports.ErrNotFound
	}
	return r.insert(productID, 0), nil
}

func (r stockRepo) Create(ctx context.Context, record *inventorydomain.StockRecord) (*inventorydomain.StockRecord, error) {
	if err := r.t.lock(ctx, lockKey("stock", record.ProductID)); err != nil {
		return nil, err
	}
	if _, ok := r.t.stockRecord(record.ProductID); ok {
		return nil, inventoryports.ErrAlreadyExists
	}
	if _, ok := r.t.product(record.ProductID); !ok {
		return nil, catalogports.ErrNotFound
	}
	if record.Quantity < 0 {
		return nil, inventorydomain.ErrNegativeQuantity
	}
	return r.insert(record.ProductID, record.Quantity), nil
}

func (r stockRepo) insert(productID, quantity int64) *inventorydomain.StockRecord {
	now := r.t.store.stamp()
	stored := &inventorydomain.StockRecord{
		ID:        r.t.store.stockSeq.Add(1),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.t.stock[productID] = stored
	return stored.Clone()
}

func (r stockRepo) Save(_ context.Context, record *inventorydomain.StockRecord) error {
	existing, ok := r.t.stockRecord(record.ProductID)
	if !ok {
		return inventoryports.ErrNotFound
	}
	if record.Quantity < 0 {
		return inventorydomain.ErrNegativeQuantity
	}
	stored := existing.Clone()
	stored.Quantity = record.Quantity
	stored.UpdatedAt = record.UpdatedAt
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = r.t.store.stamp()
	}
	r.t.stock[record.ProductID] = stored
	return nil
}

func (r stockRepo) GetByProduct(_ context.Context, productID int64) (*inventorydomain.StockRecord, error) {
	record, ok := r.t.stockRecord(productID)
	if !ok {
		return nil, inventoryports.ErrNotFound
	}
	return record.Clone(), nil
}

func (r stockRepo) List(_ context.Context) ([]*inventorydomain.StockRecord, error) {
	r.t.store.mu.RLock()
	merged := make(map[int64]*inventorydomain.StockRecord, len(r.t.store.stock))
	for pid, record := range r.t.store.stock {
		merged[pid] = record
	}
	r.t.store.mu.RUnlock()
	for pid, record := range r.t.stock {
		if record == nil {
			delete(merged, pid)
			continue
		}
		merged[pid] = record
	}
	out := make([]*inventorydomain.StockRecord, 0, len(merged))
	for _, record := range merged {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r stockRepo) Delete(ctx context.Context, productID int64) error {
	if err := r.t.lock(ctx, lockKey("stock", productID)); err != nil {
		return err
	}
	if _, ok := r.t.stockRecord(productID); !ok {
		return inventoryports.ErrNotFound
	}
	r.t.stock[productID] = nil
	return nil
}

func (r stockRepo) AppendMovement(_ context.Context, movement inventorydomain.Movement) error {
	movement.ID = r.t.store.movementSeq.Add(1)
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = r.t.store.stamp()
	}
	r.t.movements = append(r.t.movements, movement)
	return nil
}

// ListMovements returns the newest movements of a product first.
func (r stockRepo) ListMovements(_ context.Context, productID int64, limit int) ([]inventorydomain.Movement, error) {
	var out []inventorydomain.Movement
	for i := len(r.t.movements) - 1; i >= 0; i-- {
		if r.t.movements[i].ProductID == productID {
			out = append(out, r.t.movements[i])
		}
	}
	r.t.store.mu.RLock()
	for i := len(r.t.store.movements) - 1; i >= 0; i-- {
		if r.t.store.movements[i].ProductID == productID {
			out = append(out, r.t.store.movements[i])
		}
	}
	r.t.store.mu.RUnlock()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
