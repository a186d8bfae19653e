//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/gomitas-api/test/pact"

	gomitasserver "github.com/Apurer/gomitas-api/go"
	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	catalogobs "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/gomitas-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	inventoryobs "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	orderobs "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	userobs "github.com/Apurer/gomitas-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/gomitas-api/internal/domains/users/application"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGomitasProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.reset(t)
			}
			return nil, nil
		},
		pacttest.StateOrderPlaced: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.reset(t).placeOrder(t, pacttest.PlacedQuantity)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.reset(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a freshly seeded store for every provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

type providerEnv struct {
	orders *orderapp.Engine
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		handler := app.handler
		app.mu.RUnlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) *providerEnv {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	gate := accessapp.NewGate(nil)

	users := userapp.NewService(store, gate)
	admin, err := users.EnsureUser(ctx, "Pact Admin", "admin@gomitas.pact", accessdomain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, pacttest.AdminID, admin.ID)
	customer, err := users.EnsureUser(ctx, "Pact Customer", "customer@gomitas.pact", accessdomain.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, pacttest.CustomerID, customer.ID)

	catalog := catalogapp.NewService(store, gate)
	stock := pacttest.ProductStock
	product, err := catalog.CreateProduct(ctx, admin.Actor(), catalogtypes.CreateProductInput{
		Name:         pacttest.ProductName,
		Price:        decimal.RequireFromString(pacttest.ProductPrice),
		InitialStock: &stock,
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ProductID, product.Product.ID)

	orders := orderapp.NewEngine(store, gate)
	orderService := orderobs.New(orders)
	userService := userobs.New(users)
	handlers := gomitasserver.ApiHandleFunctions{
		OrdersAPI:    gomitasserver.NewOrdersAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
		ProductsAPI:  gomitasserver.NewProductsAPI(catalogobs.New(catalog)),
		InventoryAPI: gomitasserver.NewInventoryAPI(inventoryobs.New(inventoryapp.NewService(store, gate))),
		UsersAPI:     gomitasserver.NewUsersAPI(userService),
		Actors:       userService,
	}
	router := gin.New()
	router.Use(gin.Recovery(), gomitasserver.RequestID())
	router = gomitasserver.NewRouterWithGinEngine(router, handlers)

	env := &providerEnv{orders: orders}
	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
	return env
}

func (e *providerEnv) placeOrder(t testing.TB, quantity int64) {
	t.Helper()
	actor := accessdomain.Actor{ID: pacttest.CustomerID, Role: accessdomain.RoleCustomer}
	order, err := e.orders.PlaceOrder(context.Background(), actor, ordertypes.PlaceOrderInput{
		OwnerID: pacttest.CustomerID,
		Lines:   []ordertypes.LineInput{{ProductID: pacttest.ProductID, Quantity: quantity}},
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, order.ID)
}
