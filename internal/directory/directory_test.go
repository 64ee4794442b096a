package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "maria@acme.com", NormalizeEmail("  Maria@ACME.com "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestResolveOrCreateProvisions(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	u, created, err := d.ResolveOrCreate(ctx, "Maria@Acme.com")
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "maria@acme.com", u.Email)
	require.True(t, u.Roles.Has(domain.RoleUser))
	require.Equal(t, domain.StatusActive, u.Status)

	// segunda pasada resuelve la misma cuenta (case-insensitive)
	again, created, err := d.ResolveOrCreate(ctx, "MARIA@acme.com")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, u.ID, again.ID)
}

func TestGetByIDAndEmail(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	u, _, err := d.ResolveOrCreate(ctx, "a@x.com")
	require.NoError(t, err)

	byID, err := d.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	byEmail, err := d.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = d.GetByID(ctx, "no-existe")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetRole(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	u, _, err := d.ResolveOrCreate(ctx, "a@x.com")
	require.NoError(t, err)

	promoted, err := d.SetRole(ctx, u.ID, domain.RoleAdmin, true)
	require.NoError(t, err)
	require.True(t, promoted.Roles.Has(domain.RoleAdmin))

	// el cambio persiste
	got, err := d.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.Roles.Has(domain.RoleAdmin))

	demoted, err := d.SetRole(ctx, u.ID, domain.RoleAdmin, false)
	require.NoError(t, err)
	require.False(t, demoted.Roles.Has(domain.RoleAdmin))
	require.True(t, demoted.Roles.Has(domain.RoleUser))
}

func TestSetRoleKeepsFloor(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	u, _, err := d.ResolveOrCreate(ctx, "a@x.com")
	require.NoError(t, err)

	// quitar "user" nunca deja la cuenta sin roles
	got, err := d.SetRole(ctx, u.ID, domain.RoleUser, false)
	require.NoError(t, err)
	require.True(t, got.Roles.Has(domain.RoleUser))
}

func TestSetStatus(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	u, _, err := d.ResolveOrCreate(ctx, "a@x.com")
	require.NoError(t, err)

	suspended, err := d.SetStatus(ctx, u.ID, domain.StatusSuspended)
	require.NoError(t, err)
	require.False(t, suspended.Active())

	got, err := d.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSuspended, got.Status)
}

func TestList(t *testing.T) {
	d := New(memory.New())
	ctx := context.Background()

	_, _, err := d.ResolveOrCreate(ctx, "a@x.com")
	require.NoError(t, err)
	_, _, err = d.ResolveOrCreate(ctx, "b@x.com")
	require.NoError(t, err)

	users, err := d.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
