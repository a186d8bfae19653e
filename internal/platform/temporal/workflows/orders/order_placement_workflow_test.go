package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/testsuite"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	catalogapp "github.com/Apurer/gomitas-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"
	orderactivities "github.com/Apurer/gomitas-api/internal/platform/temporal/activities/orders"
)

type placementWorkflowSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env       *testsuite.TestWorkflowEnvironment
	productID int64
	customer  accessdomain.Actor
}

func TestOrderPlacementWorkflow(t *testing.T) {
	suite.Run(t, new(placementWorkflowSuite))
}

func (s *placementWorkflowSuite) SetupTest() {
	store := memstore.New()
	gate := accessapp.NewGate(nil)
	admin := accessdomain.Actor{ID: 1, Role: accessdomain.RoleAdmin}
	s.customer = accessdomain.Actor{ID: 2, Role: accessdomain.RoleCustomer}

	stock := int64(5)
	view, err := catalogapp.NewService(store, gate).CreateProduct(context.Background(), admin, catalogtypes.CreateProductInput{
		Name:         "Frutitas",
		Price:        decimal.RequireFromString("3.20"),
		InitialStock: &stock,
	})
	s.Require().NoError(err)
	s.productID = view.Product.ID

	s.env = s.NewTestWorkflowEnvironment()
	activities := orderactivities.NewActivities(orderapp.NewEngine(store, gate))
	s.env.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
}

func (s *placementWorkflowSuite) AfterTest(_, _ string) {
	s.env.AssertExpectations(s.T())
}

func (s *placementWorkflowSuite) place(quantity int64) {
	s.env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Command: orderactivities.PlaceOrderCommand{
			Actor: s.customer,
			Input: ordertypes.PlaceOrderInput{Lines: []ordertypes.LineInput{{ProductID: s.productID, Quantity: quantity}}},
		},
		TraceID: "trace-1",
	})
	s.Require().True(s.env.IsWorkflowCompleted())
}

func (s *placementWorkflowSuite) TestPlacesOrder() {
	s.place(2)
	s.Require().NoError(s.env.GetWorkflowError())

	var snapshot ordertypes.OrderSnapshot
	s.Require().NoError(s.env.GetWorkflowResult(&snapshot))
	order := snapshot.Order()
	s.Equal(s.customer.ID, order.OwnerID)
	s.Len(order.Lines(), 1)
	s.True(decimal.RequireFromString("6.40").Equal(order.Total))
}

func (s *placementWorkflowSuite) TestInsufficientStockIsNotRetried() {
	attempts := 0
	s.env.SetOnActivityStartedListener(func(*activity.Info, context.Context, converter.EncodedValues) {
		attempts++
	})
	s.place(9)

	err := orderactivities.DecodeError(s.env.GetWorkflowError())
	var insufficient *inventorydomain.InsufficientStockError
	s.Require().True(errors.As(err, &insufficient), "got %v", err)
	s.Equal(int64(5), insufficient.Available)
	s.Equal(int64(9), insufficient.Requested)
	s.True(insufficient.Tracked)
	s.Equal(1, attempts)
}

func (s *placementWorkflowSuite) TestInvalidInputRoundTrips() {
	s.place(0)
	err := orderactivities.DecodeError(s.env.GetWorkflowError())
	s.ErrorIs(err, orderapp.ErrInvalidInput)
}
