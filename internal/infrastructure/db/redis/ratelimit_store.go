package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore keeps fixed-window counters in Redis so that every API
// process shares one budget per client.
type RateLimitStore struct {
	client redis.UniversalClient
}

// NewRateLimitStore wraps the given Redis client.
func NewRateLimitStore(client redis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Increment bumps key and pins its expiry to expireAt, the end of the window.
// Both commands run in one MULTI so a counter never lives without a TTL.
func (s *RateLimitStore) Increment(ctx context.Context, key string, expireAt time.Time) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireAt(ctx, key, expireAt)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val(), nil
}
