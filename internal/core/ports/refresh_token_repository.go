package ports

import (
	"context"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

// RefreshTokenRepository is the refresh-token registry.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	// Exists reports whether a row for (userID, tokenHash) is still live at now.
	Exists(ctx context.Context, userID, tokenHash string, now time.Time) (bool, error)
	// DeleteByUser removes every row of the user and returns how many were removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteExpired purges rows whose expiry is not after now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
