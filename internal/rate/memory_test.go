package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "login|1.2.3.4")
		require.NoError(t, err)
		require.True(t, res.Allowed, "hit %d", i+1)
		require.Equal(t, int64(2-i), res.Remaining)
	}

	res, err := l.Allow(ctx, "login|1.2.3.4")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Equal(t, int64(0), res.Remaining)
	require.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	ctx := context.Background()

	res, err := l.Allow(ctx, "login|1.1.1.1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = l.Allow(ctx, "login|1.1.1.1")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	// otra IP arranca su propia ventana
	res, err = l.Allow(ctx, "login|2.2.2.2")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	l := NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	res, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	time.Sleep(15 * time.Millisecond)
	res, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, res.Allowed, "ventana nueva, contador en cero")
}
