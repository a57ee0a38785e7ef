// Package lock provides the short-lived mutual-exclusion primitive guarding
// slot reservation. Locks always carry a TTL so a crashed holder self-heals
// without manual intervention. Implementations: Redis for production and an
// in-memory locker for tests and single-process runs.
package lock

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"
)

// Locker is a TTL-based try-lock over opaque string keys.
type Locker interface {
	// TryAcquire atomically sets key only if absent, with an expiry of ttl.
	// It returns true iff this caller now holds the lock. A storage error is
	// never reported as an acquired lock.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release removes the lock if this locker still holds it. Releasing an
	// expired or never-held lock is a no-op.
	Release(ctx context.Context, key string) error
}

// SlotKey builds the reservation lock key for one (doctor, slot start) pair.
// Keys are scoped to the exact start instant, so unrelated slots never contend.
func SlotKey(doctorID string, slot models.TimeSlot) string {
	return fmt.Sprintf("lock:appointment:%s:%s", doctorID, slot.Start.UTC().Format(time.RFC3339))
}
