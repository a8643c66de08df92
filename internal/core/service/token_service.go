package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour

	generatedSecretBytes = 32
)

// TokenConfig configures a TokenService.
type TokenConfig struct {
	// Secret is the HS256 key. When empty a random key is generated, which
	// means tokens do not survive a restart.
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService signs and verifies HS256 access and refresh tokens.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	ephemeral  bool
	clock      clock.Clock
	parser     *jwt.Parser
}

// NewTokenService builds a TokenService. Zero TTLs fall back to the defaults.
func NewTokenService(cfg TokenConfig, clk clock.Clock) (*TokenService, error) {
	if clk == nil {
		clk = clock.System{}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}

	secret := cfg.Secret
	ephemeral := false
	if len(secret) == 0 {
		secret = make([]byte, generatedSecretBytes)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate signing secret: %w", err)
		}
		ephemeral = true
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(clk.Now),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &TokenService{
		secret:     secret,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		ephemeral:  ephemeral,
		clock:      clk,
		parser:     jwt.NewParser(opts...),
	}, nil
}

// Ephemeral reports whether the signing key was generated for this process.
func (s *TokenService) Ephemeral() bool { return s.ephemeral }

func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// IssueAccessToken returns a signed access token for userID and its expiry.
func (s *TokenService) IssueAccessToken(userID, email string) (string, time.Time, error) {
	return s.issue(ports.TokenTypeAccess, userID, email, s.accessTTL)
}

// IssueRefreshToken returns a signed refresh token for userID and its expiry.
func (s *TokenService) IssueRefreshToken(userID string) (string, time.Time, error) {
	return s.issue(ports.TokenTypeRefresh, userID, "", s.refreshTTL)
}

func (s *TokenService) issue(tokenType, userID, email string, ttl time.Duration) (string, time.Time, error) {
	now := s.clock.Now()
	exp := now.Add(ttl)

	claims := ports.TokenClaims{
		Type:  tokenType,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, exp, nil
}

// Verify parses token and checks its signature and expiry.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &ports.TokenClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != ports.TokenTypeAccess && claims.Type != ports.TokenTypeRefresh {
		return nil, fmt.Errorf("%w: unknown token type %q", domain.ErrInvalidToken, claims.Type)
	}
	return claims, nil
}

// VerifyAccess accepts only access tokens.
func (s *TokenService) VerifyAccess(token string) (*ports.TokenClaims, error) {
	return s.verifyType(token, ports.TokenTypeAccess)
}

// VerifyRefresh accepts only refresh tokens.
func (s *TokenService) VerifyRefresh(token string) (*ports.TokenClaims, error) {
	return s.verifyType(token, ports.TokenTypeRefresh)
}

func (s *TokenService) verifyType(token, want string) (*ports.TokenClaims, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: expected %s token, got %s", domain.ErrInvalidToken, want, claims.Type)
	}
	return claims, nil
}

// HashToken is the registry representation of a refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
