package gomitasserver

import orderhttpmapper "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/http/mapper"

// CreateOrderRequest - Lines are processed in the order given.
type CreateOrderRequest struct {
	// OwnerId places the order on behalf of another user. Defaults to the caller.
	OwnerId int64                         `json:"ownerId,omitempty"`
	Lines   []orderhttpmapper.LineRequest `json:"lines" binding:"required"`
}

// UpdateOrderRequest - either {"intent":"cancel"}, {"intent":"change_status","status":"shipped"}
// or the older {"status":"cancelled"}.
type UpdateOrderRequest struct {
	Intent string `json:"intent,omitempty"`
	Status string `json:"status,omitempty"`
}

// DeleteOrderResponse confirms a removed order.
type DeleteOrderResponse struct {
	Id      int64  `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}
