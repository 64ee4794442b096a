package entitlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

var (
	freeSvc = domain.Service{ID: "notas", FreeTierEnabled: true}
	paidSvc = domain.Service{ID: "fotos", FreeTierEnabled: false}
)

func TestCanAuthorizeWithGrant(t *testing.T) {
	g := New(memory.New())
	ctx := context.Background()

	_, err := g.Grant(ctx, "u1", "fotos", domain.TierPro, time.Time{})
	require.NoError(t, err)

	ok, err := g.CanAuthorize(ctx, "u1", paidSvc)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCanAuthorizeDeniedWithoutGrant(t *testing.T) {
	g := New(memory.New())
	ok, err := g.CanAuthorize(context.Background(), "u1", paidSvc)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFreeTierAutoGrantsOnce(t *testing.T) {
	store := memory.New()
	g := New(store)
	ctx := context.Background()

	ok, err := g.CanAuthorize(ctx, "u1", freeSvc)
	require.NoError(t, err)
	require.True(t, ok)

	// segunda pasada: encuentra el grant, no duplica
	ok, err = g.CanAuthorize(ctx, "u1", freeSvc)
	require.NoError(t, err)
	require.True(t, ok)

	rows, err := store.GetAll(ctx, core.TableEntitlements)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, string(domain.TierFree), rows[0]["tier_level"])
	require.Equal(t, "", rows[0]["valid_until"], "el grant free no vence")
}

func TestExpiredGrantCountsAsAbsent(t *testing.T) {
	g := New(memory.New())
	ctx := context.Background()

	_, err := g.Grant(ctx, "u1", "fotos", domain.TierPro, time.Now().Add(time.Hour))
	require.NoError(t, err)

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	ok, err := g.CanAuthorize(ctx, "u1", paidSvc)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGrantReplacesPair(t *testing.T) {
	store := memory.New()
	g := New(store)
	ctx := context.Background()

	_, err := g.Grant(ctx, "u1", "fotos", domain.TierFree, time.Time{})
	require.NoError(t, err)
	_, err = g.Grant(ctx, "u1", "fotos", domain.TierPro, time.Time{})
	require.NoError(t, err)

	rows, err := store.GetAll(ctx, core.TableEntitlements)
	require.NoError(t, err)
	require.Len(t, rows, 1, "un grant por par")
	require.Equal(t, string(domain.TierPro), rows[0]["tier_level"])
}

func TestRevoke(t *testing.T) {
	g := New(memory.New())
	ctx := context.Background()

	_, err := g.Grant(ctx, "u1", "fotos", domain.TierPro, time.Time{})
	require.NoError(t, err)
	require.NoError(t, g.Revoke(ctx, "u1", "fotos"))

	ok, err := g.CanAuthorize(ctx, "u1", paidSvc)
	require.NoError(t, err)
	require.False(t, ok)

	// revocar lo revocado es éxito
	require.NoError(t, g.Revoke(ctx, "u1", "fotos"))
}

func TestListForUserIncludesExpired(t *testing.T) {
	g := New(memory.New())
	ctx := context.Background()

	_, err := g.Grant(ctx, "u1", "fotos", domain.TierPro, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = g.Grant(ctx, "u1", "notas", domain.TierFree, time.Time{})
	require.NoError(t, err)

	ents, err := g.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ents, 2)
}
