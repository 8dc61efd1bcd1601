package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, window)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return limiter, srv
}

func TestFixedWindowLimiter_BlocksOverLimit(t *testing.T) {
	limiter, _ := newLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d should pass: ok=%v err=%v", i+1, ok, err)
		}
	}
	ok, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("third request should be blocked")
	}

	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	if !ok {
		t.Fatalf("other keys have their own quota")
	}
}

func TestFixedWindowLimiter_WindowExpires(t *testing.T) {
	limiter, srv := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "ip"); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := limiter.Allow(ctx, "ip"); ok {
		t.Fatalf("second request should be blocked")
	}

	srv.FastForward(time.Minute + time.Second)

	if ok, _ := limiter.Allow(ctx, "ip"); !ok {
		t.Fatalf("request after the window should pass")
	}
}

func TestFixedWindowLimiter_ReportsRedisErrors(t *testing.T) {
	limiter, srv := newLimiter(t, 1, time.Minute)
	srv.Close()

	if _, err := limiter.Allow(context.Background(), "ip"); err == nil {
		t.Fatalf("expected an error when redis is down")
	}
}

func TestNewFixedWindowLimiter_RejectsBadSettings(t *testing.T) {
	if _, err := NewFixedWindowLimiter(nil, "", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	if _, err := NewFixedWindowLimiter(client, "", 0, time.Second); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}
