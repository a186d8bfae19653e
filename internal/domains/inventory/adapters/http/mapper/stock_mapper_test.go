package mapper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
)

func TestFromDomainMovements(t *testing.T) {
	orderID := int64(12)
	out := FromDomainMovements([]inventorydomain.Movement{
		{ID: 1, ProductID: 2, Delta: -3, Before: 5, After: 2, Reason: inventorydomain.ReasonOrderPlaced, OrderID: &orderID, ActorID: 9},
	})
	require.Len(t, out, 1)
	require.Equal(t, "order_placed", out[0].Reason)
	require.Equal(t, int64(12), *out[0].OrderID)
	require.Empty(t, FromDomainStockList(nil))
}

func TestProblem(t *testing.T) {
	problem, ok := Problem(fmt.Errorf("create: %w", inventoryports.ErrAlreadyExists))
	require.True(t, ok)
	require.Equal(t, 409, problem.Status)

	problem, ok = Problem(fmt.Errorf("%w: %w", inventoryapp.ErrInvalidInput, inventorydomain.ErrNegativeQuantity))
	require.True(t, ok)
	require.Equal(t, 400, problem.Status)

	problem, ok = Problem(fmt.Errorf("restock product 3: %w", inventorydomain.ErrQuantityOverflow))
	require.True(t, ok)
	require.Equal(t, 409, problem.Status)

	_, ok = Problem(inventorydomain.ErrInsufficientStock)
	require.False(t, ok)
}
