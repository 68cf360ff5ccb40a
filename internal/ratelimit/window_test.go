package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	counts  map[string]int64
	expires map[string]time.Duration
	incrErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestFixedWindow_Allow(t *testing.T) {
	store := newFakeStore()
	l := NewFixedWindow(store, 3, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return now }

	wantAllowed := []bool{true, true, true, false, false}
	wantRemaining := []int{2, 1, 0, 0, 0}
	for i := range wantAllowed {
		d, err := l.Allow(context.Background(), "10.0.0.1")
		if err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
		if d.Allowed != wantAllowed[i] || d.Remaining != wantRemaining[i] {
			t.Errorf("request %d = %+v, want allowed=%v remaining=%d", i+1, d, wantAllowed[i], wantRemaining[i])
		}
		if !d.ResetAt.Equal(time.Date(2025, 1, 1, 12, 1, 0, 0, time.UTC)) {
			t.Errorf("ResetAt = %v", d.ResetAt)
		}
	}

	if len(store.expires) != 1 {
		t.Errorf("expiry set %d times, want once per window", len(store.expires))
	}
	for _, exp := range store.expires {
		if exp != time.Minute {
			t.Errorf("expiry = %v", exp)
		}
	}

	// Other clients have their own budget
	if d, _ := l.Allow(context.Background(), "10.0.0.2"); !d.Allowed {
		t.Error("second client should be allowed")
	}

	// Next window starts fresh
	now = now.Add(time.Minute)
	if d, _ := l.Allow(context.Background(), "10.0.0.1"); !d.Allowed || d.Remaining != 2 {
		t.Errorf("new window = %+v", d)
	}
}

func TestFixedWindow_StoreErrorFailsOpen(t *testing.T) {
	store := newFakeStore()
	store.incrErr = errors.New("redis: connection refused")
	l := NewFixedWindow(store, 1, time.Second)

	d, err := l.Allow(context.Background(), "c")
	if err == nil {
		t.Error("expected the store error to be returned")
	}
	if !d.Allowed {
		t.Error("decision should allow when the store fails")
	}
}

func TestFixedWindow_Disabled(t *testing.T) {
	store := newFakeStore()
	l := NewFixedWindow(store, 0, time.Second)

	for i := 0; i < 5; i++ {
		if d, err := l.Allow(context.Background(), "c"); err != nil || !d.Allowed {
			t.Fatalf("disabled limiter denied: %+v, %v", d, err)
		}
	}
	if len(store.counts) != 0 {
		t.Error("disabled limiter should not touch the store")
	}
}

func TestDecision_RetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Decision{ResetAt: now.Add(12 * time.Second)}
	if got := d.RetryAfter(now); got != 12*time.Second {
		t.Errorf("RetryAfter = %v", got)
	}
	if got := d.RetryAfter(now.Add(time.Minute)); got != 0 {
		t.Errorf("RetryAfter past reset = %v", got)
	}
}
