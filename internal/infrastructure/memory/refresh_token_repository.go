package memory

import (
	"context"
	"sync"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

type RefreshTokenRepository struct {
	mu   sync.Mutex
	rows []domain.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{}
}

func (r *RefreshTokenRepository) Create(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	r.rows = append(r.rows, *token)
	r.mu.Unlock()
	return nil
}

func (r *RefreshTokenRepository) Exists(_ context.Context, userID, tokenHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		row := &r.rows[i]
		if row.UserID == userID && row.TokenHash == tokenHash && !row.Expired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *RefreshTokenRepository) DeleteByUser(_ context.Context, userID string) (int64, error) {
	return r.deleteWhere(func(row *domain.RefreshToken) bool { return row.UserID == userID }), nil
}

func (r *RefreshTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return r.deleteWhere(func(row *domain.RefreshToken) bool { return row.Expired(now) }), nil
}

// Len returns the number of stored rows.
func (r *RefreshTokenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *RefreshTokenRepository) deleteWhere(match func(*domain.RefreshToken) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rows[:0]
	var removed int64
	for i := range r.rows {
		if match(&r.rows[i]) {
			removed++
			continue
		}
		kept = append(kept, r.rows[i])
	}
	r.rows = kept
	return removed
}
