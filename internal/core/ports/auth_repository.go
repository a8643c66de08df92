package ports

import (
	"context"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

// AuthRepository is the credential store. Emails are stored and looked up in
// normalized (lower-case) form.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create fails with domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	// RecordLoginSuccess atomically zeroes the failure counter and sets last_login.
	RecordLoginSuccess(ctx context.Context, id string, at time.Time) error
	// RecordLoginFailure atomically increments the failure counter and sets
	// last_failed_login.
	RecordLoginFailure(ctx context.Context, id string, at time.Time) error
}
