package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker is a single-process Locker.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if entry, ok := l.entries[key]; ok && now.Before(entry.expiresAt) {
		return nil, false, nil
	}

	token := uuid.NewString()
	l.entries[key] = memoryEntry{token: token, expiresAt: now.Add(ttl)}

	return &memoryLease{locker: l, key: key, token: token}, true, nil
}

func (l *MemoryLocker) release(key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || entry.token != token {
		return ErrNotHeld
	}
	delete(l.entries, key)

	return nil
}

type memoryLease struct {
	locker *MemoryLocker
	key    string
	token  string
}

func (l *memoryLease) Key() string {
	return l.key
}

func (l *memoryLease) Release(_ context.Context) error {
	return l.locker.release(l.key, l.token)
}
