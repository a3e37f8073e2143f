package lock

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.Run("redis", "7-alpine", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	var client *redis.Client
	err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: "localhost:" + resource.GetPort("6379/tcp")})
		return client.Ping(context.Background()).Err()
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedisLocker(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	locker := NewRedisLocker(client, "lottery-test:")

	lease, ok, err := locker.TryAcquire(ctx, "sweep", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "lottery-test:sweep", lease.Key())

	_, ok, err = locker.TryAcquire(ctx, "sweep", 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lease.Release(ctx))
	assert.ErrorIs(t, lease.Release(ctx), ErrNotHeld)

	_, ok, err = locker.TryAcquire(ctx, "sweep", 200*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(400 * time.Millisecond)

	_, ok, err = locker.TryAcquire(ctx, "sweep", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired lease must be reacquirable")
}
