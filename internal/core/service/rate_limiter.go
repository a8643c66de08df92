package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/ports"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

const DefaultRateWindow = time.Minute

// RateLimiter enforces per-route, per-client budgets over fixed windows that
// are aligned to the clock (a "5/minute" budget resets on the minute).
type RateLimiter struct {
	store  ports.RateLimitStore
	window time.Duration
	clock  clock.Clock
}

func NewRateLimiter(store ports.RateLimitStore, window time.Duration, clk clock.Clock) *RateLimiter {
	if window <= 0 {
		window = DefaultRateWindow
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &RateLimiter{store: store, window: window, clock: clk}
}

// Allow counts one request for (route, client) and reports whether it fits in
// the current window. When the store fails the returned decision admits the
// request and the error describes the failure.
func (l *RateLimiter) Allow(ctx context.Context, route, client string, limit int) (ports.RateDecision, error) {
	now := l.clock.Now()
	start := now.Truncate(l.window)
	reset := start.Add(l.window)

	n, err := l.store.Increment(ctx, rateKey(route, client, start), reset)
	if err != nil {
		return ports.RateDecision{Allowed: true, Limit: limit, Remaining: limit, ResetAt: reset},
			fmt.Errorf("rate limit %s: %w", route, err)
	}

	remaining := limit - int(n)
	if remaining < 0 {
		remaining = 0
	}
	d := ports.RateDecision{
		Allowed:   n <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   reset,
	}
	if !d.Allowed {
		d.RetryAfter = reset.Sub(now)
	}
	return d, nil
}

func rateKey(route, client string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", route, client, windowStart.Unix())
}
