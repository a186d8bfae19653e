package mapper

import (
	"time"

	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
)

// StockRecord is the transport shape of a product's on-hand quantity.
type StockRecord struct {
	ProductID int64     `json:"productId"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Movement is one stock ledger audit entry.
type Movement struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Delta     int64     `json:"delta"`
	Before    int64     `json:"before"`
	After     int64     `json:"after"`
	Reason    string    `json:"reason"`
	OrderID   *int64    `json:"orderId,omitempty"`
	ActorID   int64     `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromDomainStock(record *inventorydomain.StockRecord) StockRecord {
	if record == nil {
		return StockRecord{}
	}
	return StockRecord{
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func FromDomainStockList(records []*inventorydomain.StockRecord) []StockRecord {
	out := make([]StockRecord, 0, len(records))
	for _, record := range records {
		out = append(out, FromDomainStock(record))
	}
	return out
}

func FromDomainMovements(movements []inventorydomain.Movement) []Movement {
	out := make([]Movement, 0, len(movements))
	for _, m := range movements {
		out = append(out, Movement{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Before:    m.Before,
			After:     m.After,
			Reason:    string(m.Reason),
			OrderID:   m.OrderID,
			ActorID:   m.ActorID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
