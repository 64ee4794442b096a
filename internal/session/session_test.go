package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

func TestCreateAndResolve(t *testing.T) {
	m := New(memory.New(), time.Hour)
	ctx := context.Background()

	s, err := m.Create(ctx, "u1", "Mozilla/5.0", "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Equal(t, "u1", s.UserID)

	got, err := m.Resolve(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.ID, got.ID)
	require.Equal(t, "Mozilla/5.0", got.DeviceInfo)
	require.Equal(t, "10.0.0.1", got.IPAddress)
}

func TestCreateDisplacesPreviousSession(t *testing.T) {
	store := memory.New()
	m := New(store, time.Hour)
	ctx := context.Background()

	first, err := m.Create(ctx, "u1", "laptop", "")
	require.NoError(t, err)
	second, err := m.Create(ctx, "u1", "phone", "")
	require.NoError(t, err)

	// la sesión anterior quedó revocada
	_, err = m.Resolve(ctx, first.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Resolve(ctx, second.ID)
	require.NoError(t, err)

	rows, err := store.GetAll(ctx, core.TableSessions)
	require.NoError(t, err)
	require.Len(t, rows, 1, "una sesión viva por usuario")
}

func TestResolveExpiredTombstones(t *testing.T) {
	store := memory.New()
	m := New(store, time.Hour)
	ctx := context.Background()

	s, err := m.Create(ctx, "u1", "", "")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Resolve(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	rows, err := store.GetAll(ctx, core.TableSessions)
	require.NoError(t, err)
	require.Empty(t, rows, "la sesión vencida se borra al verla")
}

func TestDestroyIsIdempotent(t *testing.T) {
	m := New(memory.New(), time.Hour)
	ctx := context.Background()

	s, err := m.Create(ctx, "u1", "", "")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, s.ID))
	require.NoError(t, m.Destroy(ctx, s.ID), "logout repetido es éxito")

	_, err = m.Resolve(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTouchUpdatesLastActive(t *testing.T) {
	store := memory.New()
	m := New(store, time.Hour)
	ctx := context.Background()

	s, err := m.Create(ctx, "u1", "", "")
	require.NoError(t, err)

	later := time.Now().Add(10 * time.Minute)
	m.now = func() time.Time { return later }
	m.Touch(ctx, s.ID)

	got, err := store.FindByColumn(ctx, core.TableSessions, "session_id", s.ID)
	require.NoError(t, err)
	require.Equal(t, later.UTC().Format(time.RFC3339), got["last_active_at"])

	// Touch de una sesión inexistente no rompe nada
	m.Touch(ctx, "no-existe")
}

func TestCleanupExpired(t *testing.T) {
	store := memory.New()
	m := New(store, time.Hour)
	ctx := context.Background()

	_, err := m.Create(ctx, "u1", "", "")
	require.NoError(t, err)
	_, err = m.Create(ctx, "u2", "", "")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err := m.CleanupExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
}
