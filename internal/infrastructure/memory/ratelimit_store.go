package memory

import (
	"context"
	"sync"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

type window struct {
	count    int64
	expireAt time.Time
}

// RateLimitStore keeps fixed-window counters in process memory. Counters are
// not shared between processes.
type RateLimitStore struct {
	mu      sync.Mutex
	windows map[string]*window
	clock   clock.Clock
}

func NewRateLimitStore(clk clock.Clock) *RateLimitStore {
	if clk == nil {
		clk = clock.System{}
	}
	return &RateLimitStore{windows: make(map[string]*window), clock: clk}
}

func (s *RateLimitStore) Increment(_ context.Context, key string, expireAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !s.clock.Now().Before(w.expireAt) {
		w = &window{expireAt: expireAt}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// Purge drops expired windows and returns how many were removed.
func (s *RateLimitStore) Purge(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var removed int64
	for k, w := range s.windows {
		if !now.Before(w.expireAt) {
			delete(s.windows, k)
			removed++
		}
	}
	return removed, nil
}
