package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter implements a fixed-window counter per client IP, shared
// across instances through Redis. Key format: login_attempts:<ip>
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing limit login calls per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records one attempt for ip and reports whether it is still within
// the window budget. When denied, retryAfter holds the time until the
// window resets.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration, err error) {
	key := l.key(ip)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		// First hit in this window starts the clock.
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if count <= l.limit {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *LoginLimiter) key(ip string) string {
	return fmt.Sprintf("login_attempts:%s", ip)
}
