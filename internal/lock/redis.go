package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the key only if it still carries our token, so an
// expired lease can never release a newer holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares leases across every process pointing at the same redis.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
	}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, bool, error) {
	token := uuid.NewString()
	fullKey := l.prefix + key

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("l.client.SetNX -> %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	return &redisLease{client: l.client, key: fullKey, token: token}, true, nil
}

type redisLease struct {
	client *redis.Client
	key    string
	token  string
}

func (l *redisLease) Key() string {
	return l.key
}

func (l *redisLease) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("releaseScript.Run -> %w", err)
	}
	if deleted == 0 {
		return ErrNotHeld
	}

	return nil
}
