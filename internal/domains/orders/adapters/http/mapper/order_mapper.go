package mapper

import (
	"fmt"
	"strings"
	"time"

	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
)

// Order is the transport shape of an order with its lines.
type Order struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Line is one order line with the unit price captured at placement. StockAfter
// is the product's quantity once the placement, cancellation or deletion that
// produced the response committed; reads leave it out.
type Line struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"productId"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Subtotal   string `json:"subtotal"`
	StockAfter *int64 `json:"stockAfter,omitempty"`
}

// LineRequest is a requested product and quantity.
type LineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Intent names accepted by the update endpoint.
const (
	IntentCancel       = "cancel"
	IntentChangeStatus = "change_status"
)

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := order.Lines()
	out := Order{
		ID:        order.ID,
		OwnerID:   order.OwnerID,
		Status:    string(order.Status),
		Total:     order.Total.StringFixed(2),
		Lines:     make([]Line, 0, len(lines)),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for _, line := range lines {
		entry := Line{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Subtotal:  line.Subtotal().StringFixed(2),
		}
		if stock, ok := order.StockAfter(line.ProductID); ok {
			entry.StockAfter = &stock
		}
		out.Lines = append(out.Lines, entry)
	}
	return out
}

// ToPlaceOrderInput builds the placement command. The key normally comes from the Idempotency-Key header.
func ToPlaceOrderInput(ownerID int64, lines []LineRequest, idempotencyKey string) ordertypes.PlaceOrderInput {
	input := ordertypes.PlaceOrderInput{
		OwnerID:        ownerID,
		Lines:          make([]ordertypes.LineInput, 0, len(lines)),
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
	for _, line := range lines {
		input.Lines = append(input.Lines, ordertypes.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return input
}

// ToIntent resolves an update request. A bare status of "cancelled" is the
// older form of the cancel intent and takes the cancellation path.
func ToIntent(intent, status string) (orderdomain.Intent, error) {
	intent = strings.ToLower(strings.TrimSpace(intent))
	status = strings.ToLower(strings.TrimSpace(status))
	switch intent {
	case IntentCancel:
		return orderdomain.CancelIntent{}, nil
	case IntentChangeStatus:
		if status == "" {
			return nil, fmt.Errorf("%w: status is required for %s", orderapp.ErrInvalidInput, IntentChangeStatus)
		}
		if orderdomain.Status(status) == orderdomain.StatusCancelled {
			return orderdomain.CancelIntent{}, nil
		}
		return orderdomain.ChangeStatusIntent{Status: orderdomain.Status(status)}, nil
	case "":
		switch {
		case status == "":
			return nil, fmt.Errorf("%w: intent or status is required", orderapp.ErrInvalidInput)
		case orderdomain.Status(status) == orderdomain.StatusCancelled:
			return orderdomain.CancelIntent{}, nil
		default:
			return orderdomain.ChangeStatusIntent{Status: orderdomain.Status(status)}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %w: %q", orderapp.ErrInvalidInput, orderapp.ErrUnknownIntent, intent)
	}
}

// ToStatusFilter parses an optional status query value.
func ToStatusFilter(raw string) (*orderdomain.Status, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil, nil
	}
	status := orderdomain.Status(raw)
	switch status {
	case orderdomain.StatusPending, orderdomain.StatusProcessing, orderdomain.StatusShipped,
		orderdomain.StatusDelivered, orderdomain.StatusCancelled:
		return &status, nil
	}
	return nil, fmt.Errorf("%w: %w: %q", orderapp.ErrInvalidInput, orderdomain.ErrInvalidStatus, raw)
}
