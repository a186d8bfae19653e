package application

import (
	"context"
	"time"

	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
)

// Ledger applies quantity changes to stock records inside a caller-owned
// transaction and logs a movement for each one. It never opens or commits
// transactions itself.
type Ledger struct {
	repo ports.Repository
	now  func() time.Time
}

// NewLedger binds a ledger to a transaction-scoped repository.
func NewLedger(repo ports.Repository, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{repo: repo, now: now}
}

// LockAndGet locks the product's record for the rest of the transaction.
// Returns ports.ErrNotFound when the product has never been stocked.
func (l *Ledger) LockAndGet(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	return l.repo.LockByProduct(ctx, productID)
}

// LockOrCreate locks the product's record, creating an empty one first when needed.
func (l *Ledger) LockOrCreate(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	return l.repo.LockOrCreate(ctx, productID)
}

// Decrement deducts amount from a locked record. On *domain.InsufficientStockError
// nothing is written and the record is unchanged.
func (l *Ledger) Decrement(ctx context.Context, record *domain.StockRecord, amount int64, ref domain.Reference) error {
	before := record.Quantity
	if err := record.Deduct(amount); err != nil {
		return err
	}
	return l.persist(ctx, record, before, ref)
}

// Increment returns amount to a locked record.
func (l *Ledger) Increment(ctx context.Context, record *domain.StockRecord, amount int64, ref domain.Reference) error {
	before := record.Quantity
	if err := record.Restock(amount); err != nil {
		return err
	}
	return l.persist(ctx, record, before, ref)
}

// Adjust overwrites the quantity of a locked record.
func (l *Ledger) Adjust(ctx context.Context, record *domain.StockRecord, quantity int64, ref domain.Reference) error {
	before := record.Quantity
	if err := record.SetQuantity(quantity); err != nil {
		return err
	}
	if before == quantity {
		return nil
	}
	return l.persist(ctx, record, before, ref)
}

// Open creates the first stock record of a product with an opening balance.
func (l *Ledger) Open(ctx context.Context, record *domain.StockRecord, ref domain.Reference) (*domain.StockRecord, error) {
	created, err := l.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if created.Quantity == 0 {
		return created, nil
	}
	movement := domain.NewMovement(created, 0, ref, l.now().UTC())
	if err := l.repo.AppendMovement(ctx, movement); err != nil {
		return nil, err
	}
	return created, nil
}

func (l *Ledger) persist(ctx context.Context, record *domain.StockRecord, before int64, ref domain.Reference) error {
	now := l.now().UTC()
	record.UpdatedAt = now
	if err := l.repo.Save(ctx, record); err != nil {
		record.Quantity = before
		return err
	}
	return l.repo.AppendMovement(ctx, domain.NewMovement(record, before, ref, now))
}
