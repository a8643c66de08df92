package ports

import (
	"context"
	"time"
)

// RateLimitStore holds fixed-window counters.
type RateLimitStore interface {
	// Increment bumps the counter for key and returns the new value. The
	// counter disappears at expireAt.
	Increment(ctx context.Context, key string, expireAt time.Time) (int64, error)
}

// RateDecision is the outcome of a single admission check.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is set on rejected decisions.
	RetryAfter time.Duration
}

// RateLimiter admits or rejects requests per (route, client) pair.
type RateLimiter interface {
	Allow(ctx context.Context, route, client string, limit int) (RateDecision, error)
}
