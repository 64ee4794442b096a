package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

func newTestCatalog() (*Catalog, *memory.Store) {
	s := memory.New()
	return New(s, time.Minute), s
}

func TestCreateAndGet(t *testing.T) {
	c, _ := newTestCatalog()
	ctx := context.Background()

	svc := domain.Service{
		ID:              "notas",
		Name:            "Notas",
		Description:     "App de notas",
		RedirectURL:     "https://notas.test/callback",
		FreeTierEnabled: true,
	}
	require.NoError(t, c.Create(ctx, svc))

	got, err := c.GetService(ctx, "notas")
	require.NoError(t, err)
	require.Equal(t, svc, got)
}

func TestGetUnknownService(t *testing.T) {
	c, _ := newTestCatalog()
	_, err := c.GetService(context.Background(), "nope")
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	c, _ := newTestCatalog()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, domain.Service{ID: "notas", Name: "Notas"}))
	require.ErrorIs(t, c.Create(ctx, domain.Service{ID: "notas", Name: "Otra"}), ErrServiceExists)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	c, _ := newTestCatalog()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, domain.Service{ID: "notas", Name: "Notas"}))
	// calentar el cache
	_, err := c.GetService(ctx, "notas")
	require.NoError(t, err)

	require.NoError(t, c.Update(ctx, domain.Service{ID: "notas", Name: "Notas v2"}))
	got, err := c.GetService(ctx, "notas")
	require.NoError(t, err)
	require.Equal(t, "Notas v2", got.Name)
}

func TestUpdateUnknownService(t *testing.T) {
	c, _ := newTestCatalog()
	require.ErrorIs(t, c.Update(context.Background(), domain.Service{ID: "nope"}), ErrServiceNotFound)
}

func TestListServices(t *testing.T) {
	c, _ := newTestCatalog()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, domain.Service{ID: "a"}))
	require.NoError(t, c.Create(ctx, domain.Service{ID: "b"}))

	list, err := c.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestGetServesFromCacheWhenStoreChanges(t *testing.T) {
	c, s := newTestCatalog()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, domain.Service{ID: "notas", Name: "Notas"}))
	_, err := c.GetService(ctx, "notas")
	require.NoError(t, err)

	// mutar el store por fuera del catálogo no se ve hasta que venza el TTL
	idx, err := s.IndexOfByColumn(ctx, core.TableServices, "service_id", "notas")
	require.NoError(t, err)
	require.NoError(t, s.UpdateByIndex(ctx, core.TableServices, idx, core.Row{"service_id": "notas", "name": "pisado"}))

	got, err := c.GetService(ctx, "notas")
	require.NoError(t, err)
	require.Equal(t, "Notas", got.Name)
}
