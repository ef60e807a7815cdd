package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultWindow = time.Minute

// LoginLimiter counts login attempts per client in fixed windows.
// Key format: ratelimit:login:<client>
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter allows limit attempts per client per window. A non-positive
// window falls back to one minute.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records one attempt for client and reports whether it is within the
// limit. When it is not, retryAfter is the time left in the current window.
func (l *LoginLimiter) Allow(ctx context.Context, client string) (bool, time.Duration, error) {
	key := l.key(client)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}

	if incr.Val() <= l.limit {
		return true, 0, nil
	}
	retry := ttl.Val()
	if retry <= 0 {
		retry = l.window
	}
	return false, retry, nil
}

func (l *LoginLimiter) key(client string) string {
	return "ratelimit:login:" + client
}
