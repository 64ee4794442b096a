package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
)

func TestEnsureAdminProvisions(t *testing.T) {
	dir := directory.New(memory.New())
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, dir, "root@acme.com"))

	u, err := dir.GetByEmail(ctx, "root@acme.com")
	require.NoError(t, err)
	require.True(t, u.Roles.Has(domain.RoleAdmin))
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	dir := directory.New(memory.New())
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, dir, "root@acme.com"))
	// segunda pasada: ya hay admin, no toca nada ni crea otra cuenta
	require.NoError(t, EnsureAdmin(ctx, dir, "otro@acme.com"))

	_, err := dir.GetByEmail(ctx, "otro@acme.com")
	require.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestEnsureAdminPromotesExisting(t *testing.T) {
	dir := directory.New(memory.New())
	ctx := context.Background()

	existing, _, err := dir.ResolveOrCreate(ctx, "maria@acme.com")
	require.NoError(t, err)

	require.NoError(t, EnsureAdmin(ctx, dir, "maria@acme.com"))
	u, err := dir.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	require.True(t, u.Roles.Has(domain.RoleAdmin))
}

func TestEnsureAdminNoEmailIsNoop(t *testing.T) {
	dir := directory.New(memory.New())
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, dir, ""))
	users, err := dir.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}
