package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultAttemptKey = "auth:login:failed_attempts"
	// DefaultAttemptTTL is refreshed on every attempt. It only matters for
	// keys left behind by a process that exited.
	DefaultAttemptTTL = 24 * time.Hour
)

// AttemptKey scopes the counter to one server process. The user store is
// in memory, so a lockout must not outlive it or leak into another process.
func AttemptKey(instance string) string {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		return DefaultAttemptKey
	}
	return DefaultAttemptKey + ":" + instance
}

// AttemptCounter keeps the failed-login count in Redis.
type AttemptCounter struct {
	r   *Redis
	key string
	ttl time.Duration
}

func NewAttemptCounter(r *Redis, key string, ttl time.Duration) *AttemptCounter {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultAttemptKey
	}
	if ttl <= 0 {
		ttl = DefaultAttemptTTL
	}
	return &AttemptCounter{r: r, key: key, ttl: ttl}
}

func (c *AttemptCounter) Count(ctx context.Context) (int, error) {
	if c.r.isUnavailable() {
		return 0, ErrUnavailable
	}
	n, err := c.r.client.Get(ctx, c.key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (c *AttemptCounter) Increment(ctx context.Context) (int, error) {
	if c.r.isUnavailable() {
		return 0, ErrUnavailable
	}
	pipe := c.r.client.TxPipeline()
	incr := pipe.Incr(ctx, c.key)
	pipe.Expire(ctx, c.key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (c *AttemptCounter) Reset(ctx context.Context) error {
	if c.r.isUnavailable() {
		return ErrUnavailable
	}
	return c.r.client.Del(ctx, c.key).Err()
}
