package gomitasserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	cataloghttpmapper "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// ProductsAPI wires HTTP transport with the catalog service.
type ProductsAPI struct {
	service catalogports.Service
}

func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /v1/products
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	var page pagination.Query
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page.Page); err != nil {
		badRequest(c, err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "per_page", query, &page.PerPage); err != nil {
		badRequest(c, err)
		return
	}
	result, err := api.service.ListProducts(c.Request.Context(), currentActor(c), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(result, cataloghttpmapper.FromProductView))
}

// Post /v1/products
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	input, err := cataloghttpmapper.ToCreateInput(payload.Name, payload.Flavor, payload.Size, payload.Price.String(), payload.InitialStock)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := api.service.CreateProduct(c.Request.Context(), currentActor(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromProductView(view))
}

// Get /v1/products/:productId
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	view, err := api.service.GetProduct(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProductView(view))
}

// Put /v1/products/:productId
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	id, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	var payload UpdateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	var price *string
	if payload.Price != nil {
		raw := payload.Price.String()
		price = &raw
	}
	input, err := cataloghttpmapper.ToUpdateInput(id, payload.Name, payload.Flavor, payload.Size, price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := api.service.UpdateProduct(c.Request.Context(), currentActor(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProductView(view))
}

// Delete /v1/products/:productId
// Rejected with 409 while any order line references the product
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	id, ok := bindPathID(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), currentActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
