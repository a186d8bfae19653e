package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogdomain "github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

var (
	admin  = accessdomain.Actor{ID: 1, Role: accessdomain.RoleAdmin}
	editor = accessdomain.Actor{ID: 2, Role: accessdomain.RoleEditor}
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()
	store := memstore.New()
	var productID int64
	require.NoError(t, store.Do(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		p, err := catalogdomain.NewProduct("Panditas", "strawberry", "500g", decimal.RequireFromString("4.20"))
		if err != nil {
			return err
		}
		created, err := repos.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		productID = created.ID
		return nil
	}))
	return NewService(store, accessapp.NewGate(nil)), productID
}

func TestCreateStock_OncePerProduct(t *testing.T) {
	svc, pid := newTestService(t)
	ctx := context.Background()

	record, err := svc.CreateStock(ctx, admin, pid, 12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, record.Quantity)

	_, err = svc.CreateStock(ctx, admin, pid, 3)
	require.ErrorIs(t, err, ports.ErrAlreadyExists)

	_, err = svc.CreateStock(ctx, admin, pid+1, 3)
	require.ErrorIs(t, err, catalogports.ErrNotFound)

	_, err = svc.CreateStock(ctx, admin, pid, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjustStock_LogsMovement(t *testing.T) {
	svc, pid := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateStock(ctx, admin, pid, 10)
	require.NoError(t, err)

	record, err := svc.AdjustStock(ctx, admin, pid, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, record.Quantity)

	movements, err := svc.ListMovements(ctx, admin, pid, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, domain.ReasonAdjustment, movements[0].Reason)
	assert.EqualValues(t, -6, movements[0].Delta)
	assert.EqualValues(t, 10, movements[0].Before)
	assert.EqualValues(t, 4, movements[0].After)
	assert.Equal(t, domain.ReasonInitial, movements[1].Reason)

	_, err = svc.AdjustStock(ctx, admin, pid, -2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjustStock_MissingRecord(t *testing.T) {
	svc, pid := newTestService(t)
	_, err := svc.AdjustStock(context.Background(), admin, pid, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestInventory_AdminOnly(t *testing.T) {
	svc, pid := newTestService(t)
	ctx := context.Background()

	_, err := svc.ListStock(ctx, editor)
	require.ErrorIs(t, err, accessports.ErrForbidden)
	_, err = svc.CreateStock(ctx, editor, pid, 1)
	require.ErrorIs(t, err, accessports.ErrForbidden)
	require.ErrorIs(t, svc.DeleteStock(ctx, editor, pid), accessports.ErrForbidden)
}

func TestDeleteStock(t *testing.T) {
	svc, pid := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateStock(ctx, admin, pid, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStock(ctx, admin, pid))
	_, err = svc.GetStock(ctx, admin, pid)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, svc.DeleteStock(ctx, admin, pid), ports.ErrNotFound)

	records, err := svc.ListStock(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, records)
}
