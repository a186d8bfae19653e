package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
)

func TestToIntent(t *testing.T) {
	cases := []struct {
		name   string
		intent string
		status string
		want   orderdomain.Intent
	}{
		{name: "cancel", intent: "cancel", want: orderdomain.CancelIntent{}},
		{name: "legacy cancelled status", status: "Cancelled", want: orderdomain.CancelIntent{}},
		{name: "change status", intent: "change_status", status: "shipped", want: orderdomain.ChangeStatusIntent{Status: orderdomain.StatusShipped}},
		{name: "bare status", status: "delivered", want: orderdomain.ChangeStatusIntent{Status: orderdomain.StatusDelivered}},
		{name: "change to cancelled", intent: "change_status", status: "cancelled", want: orderdomain.CancelIntent{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToIntent(tc.intent, tc.status)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := ToIntent("", "")
	require.ErrorIs(t, err, orderapp.ErrInvalidInput)
	_, err = ToIntent("refund", "")
	require.ErrorIs(t, err, orderapp.ErrInvalidInput)
	require.ErrorIs(t, err, orderapp.ErrUnknownIntent)
	_, err = ToIntent("change_status", " ")
	require.ErrorIs(t, err, orderapp.ErrInvalidInput)
}

func TestFromDomainOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order := orderdomain.Restore(7, 3, orderdomain.StatusPending, decimal.RequireFromString("25.8"), now, now, []orderdomain.Line{
		{ID: 1, OrderID: 7, ProductID: 4, Quantity: 2, UnitPrice: decimal.RequireFromString("12.9")},
	})

	out := FromDomainOrder(order)
	require.Equal(t, "25.80", out.Total)
	require.Equal(t, "pending", out.Status)
	require.Len(t, out.Lines, 1)
	require.Equal(t, "12.90", out.Lines[0].UnitPrice)
	require.Equal(t, "25.80", out.Lines[0].Subtotal)
	require.Nil(t, out.Lines[0].StockAfter)
	require.Equal(t, Order{}, FromDomainOrder(nil))

	order.RecordStock(4, 8)
	out = FromDomainOrder(order)
	require.NotNil(t, out.Lines[0].StockAfter)
	require.EqualValues(t, 8, *out.Lines[0].StockAfter)
}

func TestToStatusFilter(t *testing.T) {
	status, err := ToStatusFilter("")
	require.NoError(t, err)
	require.Nil(t, status)

	status, err = ToStatusFilter("SHIPPED")
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusShipped, *status)

	_, err = ToStatusFilter("lost")
	require.ErrorIs(t, err, orderapp.ErrInvalidInput)
}

func TestProblem(t *testing.T) {
	problem, ok := Problem(&inventorydomain.InsufficientStockError{ProductID: 5, Requested: 4, Available: 1, Tracked: true})
	require.True(t, ok)
	require.Equal(t, 409, problem.Status)
	require.Equal(t, int64(1), problem.Extensions["available"])
	require.Equal(t, true, problem.Extensions["stockRecord"])

	problem, ok = Problem(inventorydomain.UntrackedStock(5, 4))
	require.True(t, ok)
	require.Equal(t, false, problem.Extensions["stockRecord"])
	require.Contains(t, problem.Detail, "no stock record")

	problem, ok = Problem(&orderdomain.InvalidTransitionError{From: orderdomain.StatusDelivered, To: orderdomain.StatusCancelled})
	require.True(t, ok)
	require.Equal(t, 409, problem.Status)
	require.Equal(t, "delivered", problem.Extensions["from"])

	problem, ok = Problem(orderports.ErrNotFound)
	require.True(t, ok)
	require.Equal(t, 404, problem.Status)

	problem, ok = Problem(orderports.ErrIdempotencyConflict)
	require.True(t, ok)
	require.Equal(t, 409, problem.Status)

	_, ok = Problem(orderdomain.ErrInvalidStatus)
	require.False(t, ok)
}
