package gomitasserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	orderhttpmapper "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// OrdersAPI wires HTTP transport with the order engine and placement workflows.
type OrdersAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI. A nil workflows places orders directly through service.
func NewOrdersAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place an order, deducting stock for every line
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	input := orderhttpmapper.ToPlaceOrderInput(payload.OwnerId, payload.Lines, c.GetHeader(HeaderIdempotencyKey))
	order, err := api.placeOrder(c.Request.Context(), currentActor(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, actor accessdomain.Actor, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, actor, input)
	}
	return api.service.PlaceOrder(ctx, actor, input)
}

// Get /v1/orders
// List orders visible to the caller, newest first
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	query := c.Request.URL.Query()
	var (
		page    pagination.Query
		ownerID *int64
		status  string
	)
	for _, param := range []struct {
		name string
		dest any
	}{
		{"page", &page.Page},
		{"per_page", &page.PerPage},
		{"owner_id", &ownerID},
		{"status", &status},
	} {
		if err := runtime.BindQueryParameter("form", true, false, param.name, query, param.dest); err != nil {
			badRequest(c, err)
			return
		}
	}
	statusFilter, err := orderhttpmapper.ToStatusFilter(status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.service.ListOrders(c.Request.Context(), currentActor(c), ordertypes.ListOrdersInput{
		OwnerID: ownerID,
		Status:  statusFilter,
		Page:    page,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(result, orderhttpmapper.FromDomainOrder))
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := bindPathID(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId
// Cancel or advance an order
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	id, ok := bindPathID(c, "orderId")
	if !ok {
		return
	}
	var payload UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	intent, err := orderhttpmapper.ToIntent(payload.Intent, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), currentActor(c), id, intent)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/cancel
// Cancel an order and return its stock
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	id, ok := bindPathID(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Delete /v1/orders/:orderId
// Delete an order, returning stock unless it was cancelled
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	id, ok := bindPathID(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), currentActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteOrderResponse{Id: id, Deleted: true, Message: "order deleted"})
}
