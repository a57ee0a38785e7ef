package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"clinicbook/models"
)

func newRedisLocker(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedisTryAcquireRelease(t *testing.T) {
	l, _ := newRedisLocker(t)
	ctx := context.Background()

	ok, err := l.TryAcquire(ctx, "k", time.Minute)
	if err != nil || !ok {
		t.Fatalf("tryacquire: %v ok %v", err, ok)
	}
	if ok, err := l.TryAcquire(ctx, "k", time.Minute); err != nil || ok {
		t.Fatalf("expected lock held, ok %v err %v", ok, err)
	}
	if err := l.Release(ctx, "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, err := l.TryAcquire(ctx, "k", time.Minute); err != nil || !ok {
		t.Fatalf("expected lock re-acquired, ok %v err %v", ok, err)
	}
}

func TestRedisReleaseUnheldIsNoop(t *testing.T) {
	l, _ := newRedisLocker(t)
	if err := l.Release(context.Background(), "never-held"); err != nil {
		t.Fatalf("release of unheld key: %v", err)
	}
}

func TestRedisLockSelfHealsAfterTTL(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	if ok, _ := l.TryAcquire(ctx, "k", 10*time.Second); !ok {
		t.Fatal("initial acquire failed")
	}

	// Holder crashes: never releases. Short of the TTL the key stays held.
	mr.FastForward(9 * time.Second)
	if ok, _ := l.TryAcquire(ctx, "k", 10*time.Second); ok {
		t.Fatal("lock acquirable before TTL elapsed")
	}

	mr.FastForward(2 * time.Second)
	if ok, _ := l.TryAcquire(ctx, "k", 10*time.Second); !ok {
		t.Fatal("lock not acquirable after TTL elapsed")
	}
}

func TestRedisStaleHolderCannotReleaseNewLock(t *testing.T) {
	l1, mr := newRedisLocker(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l2 := NewRedis(client)

	if ok, _ := l1.TryAcquire(ctx, "k", 10*time.Second); !ok {
		t.Fatal("l1 acquire failed")
	}
	mr.FastForward(11 * time.Second)
	if ok, _ := l2.TryAcquire(ctx, "k", 10*time.Second); !ok {
		t.Fatal("l2 acquire after expiry failed")
	}

	// l1's token no longer matches; its release must not free l2's lock.
	if err := l1.Release(ctx, "k"); err != nil {
		t.Fatalf("stale release: %v", err)
	}
	if ok, _ := l1.TryAcquire(ctx, "k", 10*time.Second); ok {
		t.Fatal("stale holder's release deleted the new lock")
	}
}

func TestRedisUnavailableIsNeverAcquired(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := NewRedis(client)
	mr.Close()

	ok, err := l.TryAcquire(context.Background(), "k", time.Minute)
	if err == nil {
		t.Fatal("expected error from unreachable lock store")
	}
	if ok {
		t.Fatal("unreachable store must not report the lock as acquired")
	}
}

func TestSlotKey(t *testing.T) {
	slot := models.NewTimeSlot(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	got := SlotKey("doc-1", slot)
	want := "lock:appointment:doc-1:2026-03-14T09:00:00Z"
	if got != want {
		t.Errorf("SlotKey = %q, want %q", got, want)
	}
}
