package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_TryAcquire(t *testing.T) {
	ctx := context.Background()

	t.Run("second caller is locked out until release", func(t *testing.T) {
		locker := NewMemoryLocker()

		lease, ok, err := locker.TryAcquire(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "sweep", lease.Key())

		_, ok, err = locker.TryAcquire(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, lease.Release(ctx))

		_, ok, err = locker.TryAcquire(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("lease expires after ttl", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		locker := NewMemoryLocker()
		locker.now = func() time.Time { return now }

		stale, ok, err := locker.TryAcquire(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		now = now.Add(2 * time.Minute)

		_, ok, err = locker.TryAcquire(ctx, "sweep", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		assert.ErrorIs(t, stale.Release(ctx), ErrNotHeld)
	})

	t.Run("different keys do not contend", func(t *testing.T) {
		locker := NewMemoryLocker()

		_, ok, err := locker.TryAcquire(ctx, "a", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = locker.TryAcquire(ctx, "b", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
