package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// LineInput is one requested product and quantity. Prices are never taken from the client.
type LineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// PlaceOrderInput requests a new order. OwnerID zero means the acting user.
type PlaceOrderInput struct {
	OwnerID        int64       `json:"ownerId"`
	Lines          []LineInput `json:"lines"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

// ListOrdersInput narrows an order listing.
type ListOrdersInput struct {
	OwnerID *int64
	Status  *domain.Status
	Page    pagination.Query
}

// OrderSnapshot is an order flattened for serialization, such as a workflow
// result. Stock maps product IDs to the quantity left after placement.
type OrderSnapshot struct {
	ID        int64           `json:"id"`
	OwnerID   int64           `json:"ownerId"`
	Status    domain.Status   `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Lines     []domain.Line   `json:"lines"`
	Stock     map[int64]int64 `json:"stock,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SnapshotOf captures order. A nil order yields nil.
func SnapshotOf(order *domain.Order) *OrderSnapshot {
	if order == nil {
		return nil
	}
	return &OrderSnapshot{
		ID:        order.ID,
		OwnerID:   order.OwnerID,
		Status:    order.Status,
		Total:     order.Total,
		Lines:     order.Lines(),
		Stock:     order.StockLevels(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// Order rebuilds the aggregate.
func (s *OrderSnapshot) Order() *domain.Order {
	if s == nil {
		return nil
	}
	order := domain.Restore(s.ID, s.OwnerID, s.Status, s.Total, s.CreatedAt, s.UpdatedAt, s.Lines)
	for productID, quantity := range s.Stock {
		order.RecordStock(productID, quantity)
	}
	return order
}
