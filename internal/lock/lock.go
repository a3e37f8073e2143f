// Package lock provides lease-based mutual exclusion. A lease is held until it
// is released or its TTL runs out, so a crashed holder never blocks forever.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrNotHeld = errors.New("lease is no longer held")

type Lease interface {
	Key() string
	Release(ctx context.Context) error
}

type Locker interface {
	// TryAcquire never waits: ok is false when someone else holds key.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, bool, error)
}
