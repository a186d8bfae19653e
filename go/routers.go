package gomitasserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath prefixes every authenticated route.
const BasePath = "/v1"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI, relative to BasePath.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every resource plus the resolver
// used to authenticate callers.
type ApiHandleFunctions struct {
	// Routes for the OrdersAPI part of the API
	OrdersAPI OrdersAPI
	// Routes for the ProductsAPI part of the API
	ProductsAPI ProductsAPI
	// Routes for the InventoryAPI part of the API
	InventoryAPI InventoryAPI
	// Routes for the UsersAPI part of the API
	UsersAPI UsersAPI
	// Actors resolves the X-Actor-ID header for every route under BasePath.
	Actors ActorResolver
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Global
// middleware must already be registered on router.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.GET("/healthz", Healthz)
	v1 := router.Group(BasePath, RequireActor(handleFunctions.Actors))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		v1.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness. It does not touch the database.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateOrder", http.MethodPost, "/orders", handleFunctions.OrdersAPI.CreateOrder},
		{"ListOrders", http.MethodGet, "/orders", handleFunctions.OrdersAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/orders/:orderId", handleFunctions.OrdersAPI.GetOrder},
		{"UpdateOrder", http.MethodPatch, "/orders/:orderId", handleFunctions.OrdersAPI.UpdateOrder},
		{"CancelOrder", http.MethodPost, "/orders/:orderId/cancel", handleFunctions.OrdersAPI.CancelOrder},
		{"DeleteOrder", http.MethodDelete, "/orders/:orderId", handleFunctions.OrdersAPI.DeleteOrder},

		{"ListProducts", http.MethodGet, "/products", handleFunctions.ProductsAPI.ListProducts},
		{"CreateProduct", http.MethodPost, "/products", handleFunctions.ProductsAPI.CreateProduct},
		{"GetProduct", http.MethodGet, "/products/:productId", handleFunctions.ProductsAPI.GetProduct},
		{"UpdateProduct", http.MethodPut, "/products/:productId", handleFunctions.ProductsAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/products/:productId", handleFunctions.ProductsAPI.DeleteProduct},

		{"ListStock", http.MethodGet, "/inventory", handleFunctions.InventoryAPI.ListStock},
		{"CreateStock", http.MethodPost, "/inventory", handleFunctions.InventoryAPI.CreateStock},
		{"GetStock", http.MethodGet, "/inventory/:productId", handleFunctions.InventoryAPI.GetStock},
		{"AdjustStock", http.MethodPut, "/inventory/:productId", handleFunctions.InventoryAPI.AdjustStock},
		{"DeleteStock", http.MethodDelete, "/inventory/:productId", handleFunctions.InventoryAPI.DeleteStock},
		{"ListMovements", http.MethodGet, "/inventory/:productId/movements", handleFunctions.InventoryAPI.ListMovements},

		{"ListUsers", http.MethodGet, "/users", handleFunctions.UsersAPI.ListUsers},
		{"RegisterUser", http.MethodPost, "/users", handleFunctions.UsersAPI.RegisterUser},
	}
}
