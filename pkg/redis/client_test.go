package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCounterStore struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounterStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCounterStore) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounterStore) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestRateLimitKeyShape(t *testing.T) {
	key := RateLimitKey("login", "ip", "203.0.113.9")
	if key != "jf:ratelimit:login:ip:203.0.113.9" {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestRateLimitKeySkipsEmptyParts(t *testing.T) {
	key := RateLimitKey("login", "email", "")
	if key != "jf:ratelimit:login:email" {
		t.Fatalf("unexpected key: %s", key)
	}
}

func TestFixedWindowAllowCountsWithinLimit(t *testing.T) {
	store := newFakeCounterStore()
	client := &Client{store: store}
	key := RateLimitKey("login", "ip", "203.0.113.9")

	for i := int64(1); i <= 3; i++ {
		allowed, count, err := client.FixedWindowAllow(context.Background(), key, 3, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed || count != i {
			t.Fatalf("hit %d: expected allowed with count %d, got %v %d", i, i, allowed, count)
		}
	}

	allowed, count, err := client.FixedWindowAllow(context.Background(), key, 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed || count != 4 {
		t.Fatalf("expected fourth hit blocked, got %v %d", allowed, count)
	}
}

func TestFixedWindowAllowSetsTTLOnFirstHitOnly(t *testing.T) {
	store := newFakeCounterStore()
	client := &Client{store: store}
	key := RateLimitKey("register", "email", "abc123")

	for i := 0; i < 3; i++ {
		if _, _, err := client.FixedWindowAllow(context.Background(), key, 10, time.Minute); err != nil {
			t.Fatalf("allow: %v", err)
		}
	}

	if ttl, ok := store.expires[key]; !ok || ttl != time.Minute {
		t.Fatalf("expected window ttl recorded once, got %v", store.expires)
	}
	if store.counts[key] != 3 {
		t.Fatalf("expected 3 counted hits, got %d", store.counts[key])
	}
}
