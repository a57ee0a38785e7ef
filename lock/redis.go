package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// delScript deletes the key only while it still holds our token, so a holder
// whose lock already expired cannot delete a lock re-acquired by someone else.
var delScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`)

// Redis implements Locker on a Redis backend using SET NX with expiry.
type Redis struct {
	client *redis.Client

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedis returns a Redis locker using the provided client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, tokens: make(map[string]string)}
}

// TryAcquire attempts to obtain the lock without waiting. The conditional set
// is a single Redis operation; there is no separate read step to race with.
func (r *Redis) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock store unavailable: %w", err)
	}
	if ok {
		r.mu.Lock()
		r.tokens[key] = token
		r.mu.Unlock()
	}
	return ok, nil
}

// Release frees the lock for the given key if this locker holds it.
func (r *Redis) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	token, ok := r.tokens[key]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	_, err := delScript.Run(ctx, r.client, []string{key}, token).Result()
	if err == redis.Nil {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("lock release failed: %w", err)
	}
	r.mu.Lock()
	delete(r.tokens, key)
	r.mu.Unlock()
	return nil
}
