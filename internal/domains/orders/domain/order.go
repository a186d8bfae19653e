package domain

import (
	"errors"
	"maps"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOwner     = errors.New("order owner must be set")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidUnitPrice = errors.New("unit price must be positive")
	ErrNoLines          = errors.New("order must contain at least one line")
	ErrTotalTooLarge    = errors.New("order total exceeds 99999999.99")
)

// MaxTotal is the largest total an order can be stored with.
var MaxTotal = decimal.RequireFromString("99999999.99")

// Line is one product entry of an order. UnitPrice is frozen when the line is added.
type Line struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times the captured unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Order is the purchase aggregate: a header plus its lines in insertion order.
type Order struct {
	ID        int64
	OwnerID   int64
	Status    Status
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	lines     []Line

	// stockAfter holds the on-hand quantity of each product this order's
	// last operation touched. It is not persisted.
	stockAfter map[int64]int64
}

// NewOrder opens a pending order with a zero total.
func NewOrder(ownerID int64, now time.Time) (*Order, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	return &Order{
		OwnerID:   ownerID,
		Status:    StatusPending,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Restore rebuilds a persisted order. It performs no validation.
func Restore(id, ownerID int64, status Status, total decimal.Decimal, createdAt, updatedAt time.Time, lines []Line) *Order {
	o := &Order{
		ID:        id,
		OwnerID:   ownerID,
		Status:    status,
		Total:     total,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	o.lines = append(o.lines, lines...)
	return o
}

// AddLine appends a line. The caller recomputes the total once all lines are in.
func (o *Order) AddLine(productID, quantity int64, unitPrice decimal.Decimal) (Line, error) {
	if productID <= 0 {
		return Line{}, ErrInvalidProductID
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return Line{}, ErrInvalidUnitPrice
	}
	line := Line{OrderID: o.ID, ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	o.lines = append(o.lines, line)
	return line, nil
}

// RecomputeTotal sets Total to the sum of line subtotals and returns it.
func (o *Order) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.Subtotal())
	}
	o.Total = total
	return total
}

// CheckTotal rejects totals above MaxTotal.
func (o *Order) CheckTotal() error {
	if o.Total.GreaterThan(MaxTotal) {
		return ErrTotalTooLarge
	}
	return nil
}

// RecordStock notes a product's quantity right after this order moved its stock.
func (o *Order) RecordStock(productID, quantity int64) {
	if o.stockAfter == nil {
		o.stockAfter = make(map[int64]int64)
	}
	o.stockAfter[productID] = quantity
}

// StockAfter returns the quantity recorded for productID by RecordStock.
func (o *Order) StockAfter(productID int64) (int64, bool) {
	quantity, ok := o.stockAfter[productID]
	return quantity, ok
}

// StockLevels returns a copy of every recorded quantity, or nil when none were.
func (o *Order) StockLevels() map[int64]int64 {
	if len(o.stockAfter) == 0 {
		return nil
	}
	return maps.Clone(o.stockAfter)
}

// Lines returns a copy of the lines in insertion order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// AssignLineIDs records persistence identifiers, in the same order as Lines.
func (o *Order) AssignLineIDs(orderID int64, ids []int64) {
	o.ID = orderID
	for i := range o.lines {
		o.lines[i].OrderID = orderID
		if i < len(ids) {
			o.lines[i].ID = ids[i]
		}
	}
}

// Advance moves the order forward along lifecycle.
func (o *Order) Advance(target Status, lifecycle Lifecycle, now time.Time) error {
	if err := lifecycle.checkAdvance(o.Status, target); err != nil {
		return err
	}
	o.Status = target
	o.UpdatedAt = now
	return nil
}

// EnsureCancellable rejects cancellation of delivered or already cancelled orders.
func (o *Order) EnsureCancellable() error {
	if o.Status.Terminal() {
		return &InvalidTransitionError{From: o.Status, To: StatusCancelled}
	}
	return nil
}

// Cancel marks the order cancelled. Stock reversal is the caller's job.
func (o *Order) Cancel(now time.Time) error {
	if err := o.EnsureCancellable(); err != nil {
		return err
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now
	return nil
}

// EnsureDeletable rejects removal of delivered orders.
func (o *Order) EnsureDeletable() error {
	if o.Status == StatusDelivered {
		return &InvalidTransitionError{From: o.Status, To: "deleted"}
	}
	return nil
}

// StockReturned reports whether the order's stock has already been put back.
func (o *Order) StockReturned() bool {
	return o.Status == StatusCancelled
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.lines = o.Lines()
	c.stockAfter = o.StockLevels()
	return &c
}
