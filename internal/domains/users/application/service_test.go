package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	"github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/platform/memstore"
)

func TestEnsureUser_IsIdempotentByEmail(t *testing.T) {
	svc := NewService(memstore.New(), accessapp.NewGate(nil))
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, "Admin", "Admin@Gomitas.test ", accessdomain.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.EnsureUser(ctx, "Admin", "admin@gomitas.test", accessdomain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	actor, err := svc.Resolve(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, accessdomain.Actor{ID: first.ID, Role: accessdomain.RoleAdmin}, actor)
}

func TestRegister_RequiresAdmin(t *testing.T) {
	svc := NewService(memstore.New(), accessapp.NewGate(nil))
	ctx := context.Background()
	admin, err := svc.EnsureUser(ctx, "Admin", "admin@gomitas.test", accessdomain.RoleAdmin)
	require.NoError(t, err)

	customer, err := svc.Register(ctx, admin.Actor(), "Ana", "ana@gomitas.test", accessdomain.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Register(ctx, customer.Actor(), "Luis", "luis@gomitas.test", accessdomain.RoleCustomer)
	require.ErrorIs(t, err, accessports.ErrForbidden)

	_, err = svc.Register(ctx, admin.Actor(), "Ana", "ana@gomitas.test", accessdomain.RoleCustomer)
	require.ErrorIs(t, err, ports.ErrEmailTaken)

	_, err = svc.Register(ctx, admin.Actor(), "Bad", "no-at-sign", accessdomain.RoleCustomer)
	require.ErrorIs(t, err, ErrInvalidInput)

	users, err := svc.List(ctx, admin.Actor())
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestResolve_UnknownUser(t *testing.T) {
	svc := NewService(memstore.New(), accessapp.NewGate(nil))
	_, err := svc.Resolve(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = svc.Resolve(context.Background(), 0)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
