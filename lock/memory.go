package lock

import (
	"context"
	"sync"
	"time"
)

// InMemory implements Locker with local state. It is safe for concurrent use
// and honors TTLs lazily: an expired entry is treated as absent on the next
// TryAcquire, mirroring Redis key expiry without background timers.
type InMemory struct {
	mu    sync.Mutex
	locks map[string]time.Time // key -> expiry instant
	now   func() time.Time
}

// NewInMemory returns an in-memory locker.
func NewInMemory() *InMemory {
	return &InMemory{locks: make(map[string]time.Time), now: time.Now}
}

// SetClock replaces the time source. Tests use this to advance TTLs
// deterministically.
func (l *InMemory) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// TryAcquire attempts to obtain the lock without waiting.
func (l *InMemory) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, held := l.locks[key]; held && l.now().Before(expiry) {
		return false, nil
	}
	l.locks[key] = l.now().Add(ttl)
	return true, nil
}

// Release frees the lock for the given key.
func (l *InMemory) Release(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.locks, key)
	l.mu.Unlock()
	return nil
}
