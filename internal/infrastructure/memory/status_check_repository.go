package memory

import (
	"context"
	"sync"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

type StatusCheckRepository struct {
	mu     sync.RWMutex
	checks []domain.StatusCheck
}

func NewStatusCheckRepository() *StatusCheckRepository {
	return &StatusCheckRepository{}
}

func (r *StatusCheckRepository) Insert(_ context.Context, check *domain.StatusCheck) error {
	r.mu.Lock()
	r.checks = append(r.checks, *check)
	r.mu.Unlock()
	return nil
}

func (r *StatusCheckRepository) List(_ context.Context, limit int) ([]*domain.StatusCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.checks)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]*domain.StatusCheck, 0, n)
	for i := 0; i < n; i++ {
		c := r.checks[i]
		out = append(out, &c)
	}
	return out, nil
}
