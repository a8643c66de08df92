package ports

import (
	"context"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by POST /auth/register.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	UserType string
	DJName   string
}

// AuthService is the authentication state machine.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Authenticator
}

// Authenticator resolves a bearer access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
