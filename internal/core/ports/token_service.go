package ports

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the signed payload of both token kinds. Type is the
// discriminator that keeps access and refresh tokens from being swapped.
type TokenClaims struct {
	Type  string `json:"type"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed tokens.
type TokenService interface {
	IssueAccessToken(userID, email string) (string, time.Time, error)
	IssueRefreshToken(userID string) (string, time.Time, error)
	// Verify checks signature, algorithm and expiry. It returns
	// domain.ErrInvalidToken for every rejected token.
	Verify(token string) (*TokenClaims, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}
