package gomitasserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	inventoryhttpmapper "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
)

// InventoryAPI exposes administrative stock management.
type InventoryAPI struct {
	service inventoryports.Service
}

func NewInventoryAPI(service inventoryports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Get /v1/inventory
func (api *InventoryAPI) ListStock(c *gin.Context) {
	records, err := api.service.ListStock(c.Request.Context(), currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockList(records))
}

// Post /v1/inventory
func (api *InventoryAPI) CreateStock(c *gin.Context) {
	var payload CreateStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	record, err := api.service.CreateStock(c.Request.Context(), currentActor(c), payload.ProductId, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inventoryhttpmapper.FromDomainStock(record))
}

// Get /v1/inventory/:productId
func (api *InventoryAPI) GetStock(c *gin.Context) {
	productID, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	record, err := api.service.GetStock(c.Request.Context(), currentActor(c), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStock(record))
}

// Put /v1/inventory/:productId
// Overwrite the on-hand quantity
func (api *InventoryAPI) AdjustStock(c *gin.Context) {
	productID, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	var payload AdjustStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	record, err := api.service.AdjustStock(c.Request.Context(), currentActor(c), productID, *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStock(record))
}

// Delete /v1/inventory/:productId
func (api *InventoryAPI) DeleteStock(c *gin.Context) {
	productID, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteStock(c.Request.Context(), currentActor(c), productID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/inventory/:productId/movements
// Most recent ledger entries first
func (api *InventoryAPI) ListMovements(c *gin.Context) {
	productID, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.Request.URL.Query(), &limit); err != nil {
		badRequest(c, err)
		return
	}
	movements, err := api.service.ListMovements(c.Request.Context(), currentActor(c), productID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainMovements(movements))
}
