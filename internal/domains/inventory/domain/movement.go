package domain

import "time"

// Reason classifies a stock movement.
type Reason string

const (
	ReasonInitial        Reason = "initial"
	ReasonOrderPlaced    Reason = "order_placed"
	ReasonOrderCancelled Reason = "order_cancelled"
	ReasonOrderDeleted   Reason = "order_deleted"
	ReasonAdjustment     Reason = "adjustment"
)

// Reference ties a movement to what caused it.
type Reference struct {
	Reason  Reason
	OrderID *int64
	ActorID int64
}

// ForOrder references an order-driven movement.
func ForOrder(reason Reason, orderID, actorID int64) Reference {
	return Reference{Reason: reason, OrderID: &orderID, ActorID: actorID}
}

// Movement is an append-only audit entry for one ledger mutation.
type Movement struct {
	ID        int64
	ProductID int64
	Delta     int64
	Before    int64
	After     int64
	Reason    Reason
	OrderID   *int64
	ActorID   int64
	CreatedAt time.Time
}

// NewMovement records the transition of record from before to its current quantity.
func NewMovement(record *StockRecord, before int64, ref Reference, at time.Time) Movement {
	return Movement{
		ProductID: record.ProductID,
		Delta:     record.Quantity - before,
		Before:    before,
		After:     record.Quantity,
		Reason:    ref.Reason,
		OrderID:   ref.OrderID,
		ActorID:   ref.ActorID,
		CreatedAt: at,
	}
}
