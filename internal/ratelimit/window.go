// Package ratelimit implements a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of the Redis client the limiter needs.
type Store interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is how long the client should wait before the window resets.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if wait := d.ResetAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// FixedWindow allows Limit requests per client in each Window.
type FixedWindow struct {
	store  Store
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewFixedWindow creates a limiter. A limit <= 0 disables limiting.
func NewFixedWindow(store Store, limit int, window time.Duration) *FixedWindow {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindow{
		store:  store,
		prefix: "swish:ratelimit:",
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts a request for client and reports whether it fits in the
// current window. On a Redis error the decision is Allowed together with the
// error, so callers can fail open.
func (l *FixedWindow) Allow(ctx context.Context, client string) (Decision, error) {
	now := l.now()
	start := now.Truncate(l.window)
	d := Decision{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAt: start.Add(l.window)}
	if l.limit <= 0 {
		return d, nil
	}

	key := l.prefix + client + ":" + strconv.FormatInt(start.Unix(), 10)
	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return d, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if count == 1 {
		// First hit in the window owns the expiry
		if err := l.store.Expire(ctx, key, l.window).Err(); err != nil {
			return d, fmt.Errorf("failed to expire %s: %w", key, err)
		}
	}

	d.Remaining = l.limit - int(count)
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	d.Allowed = count <= int64(l.limit)
	return d, nil
}
