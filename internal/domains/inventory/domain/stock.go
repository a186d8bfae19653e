package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidAmount    = errors.New("stock amount must be greater than zero")
	ErrNegativeQuantity = errors.New("stock quantity cannot be negative")
	ErrQuantityOverflow = errors.New("stock quantity would overflow")
	// ErrInsufficientStock is matched by every *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a rejected deduction. Tracked is false when
// the product has no stock record at all.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
	Tracked   bool
}

func (e *InsufficientStockError) Error() string {
	if !e.Tracked {
		return fmt.Sprintf("product %d has no stock record", e.ProductID)
	}
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// UntrackedStock builds the error for a product that was never stocked.
func UntrackedStock(productID, requested int64) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested}
}

// StockRecord is the on-hand quantity of one product. Quantity never drops below zero.
type StockRecord struct {
	ID        int64
	ProductID int64
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStockRecord validates an opening balance for a product.
func NewStockRecord(productID, quantity int64) (*StockRecord, error) {
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &StockRecord{ProductID: productID, Quantity: quantity}, nil
}

// Deduct removes amount from the record, leaving it untouched on failure.
func (r *StockRecord) Deduct(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if r.Quantity < amount {
		return &InsufficientStockError{ProductID: r.ProductID, Requested: amount, Available: r.Quantity, Tracked: true}
	}
	r.Quantity -= amount
	return nil
}

// Restock returns amount to the record. There is no upper bound short of
// int64 itself; an increment that would wrap is rejected and changes nothing.
func (r *StockRecord) Restock(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if r.Quantity > math.MaxInt64-amount {
		return ErrQuantityOverflow
	}
	r.Quantity += amount
	return nil
}

// SetQuantity overwrites the balance, used by administrative adjustments.
func (r *StockRecord) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	r.Quantity = quantity
	return nil
}

// Clone returns an independent copy.
func (r *StockRecord) Clone() *StockRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
