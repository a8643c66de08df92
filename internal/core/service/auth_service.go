package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

// dummyPassword is hashed once at startup so that logins for unknown emails
// spend the same bcrypt work as logins with a wrong password.
const dummyPassword = "soundwolves-dummy-password"

// AuthConfig tunes the AuthService.
type AuthConfig struct {
	BcryptCost int
	Lockout    LockoutPolicy
	// RequireRegisteredRefresh rejects refresh tokens whose hash is absent
	// from the registry, which is what makes logout revoke them.
	RequireRegisteredRefresh bool
}

// AuthService implements registration, login, refresh, logout and bearer
// authentication.
type AuthService struct {
	users         ports.AuthRepository
	refreshTokens ports.RefreshTokenRepository
	tokens        ports.TokenService
	lockout       LockoutPolicy
	bcryptCost    int
	checkRegistry bool
	dummyHash     []byte
	clock         clock.Clock
	log           zerolog.Logger
}

func NewAuthService(
	users ports.AuthRepository,
	refreshTokens ports.RefreshTokenRepository,
	tokens ports.TokenService,
	cfg AuthConfig,
	clk clock.Clock,
	log zerolog.Logger,
) (*AuthService, error) {
	if clk == nil {
		clk = clock.System{}
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	if cfg.Lockout.Threshold <= 0 || cfg.Lockout.Duration <= 0 {
		cfg.Lockout = NewLockoutPolicy(cfg.Lockout.Threshold, cfg.Lockout.Duration)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		lockout:       cfg.Lockout,
		bcryptCost:    cost,
		checkRegistry: cfg.RequireRegisteredRefresh,
		dummyHash:     dummy,
		clock:         clk,
		log:           log,
	}, nil
}

// Register creates an account and returns its first token pair.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.TokenPair, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	userType := in.UserType
	if userType == "" {
		userType = domain.UserTypeUser
	}
	if !domain.ValidUserType(userType) {
		return nil, domain.NewValidationError("user_type", "user_type must be one of: user dj")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
		UserType:     userType,
		DJName:       in.DJName,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", email).Msg("user registered")
	return s.issuePair(ctx, user)
}

// Login verifies credentials, applies the lockout policy and returns a new
// token pair. Unknown emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Warn().Str("email", email).Msg("login attempt for unknown email")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	now := s.clock.Now()
	if state, retry := s.lockout.Evaluate(user, now); state == LockLocked {
		s.log.Warn().Str("user_id", user.ID).Dur("retry_after", retry).Msg("login attempt for locked account")
		return nil, &domain.AccountLockedError{RetryAfter: retry}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.users.RecordLoginFailure(ctx, user.ID, now); err != nil {
			return nil, fmt.Errorf("login: record failure: %w", err)
		}
		s.log.Warn().
			Str("user_id", user.ID).
			Int("failed_attempts", user.FailedLoginAttempts+1).
			Msg("failed login attempt")
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("login: record success: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return s.issuePair(ctx, user)
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// not revoked; it stays usable until it expires or the user logs out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh token rejected")
		return nil, domain.ErrNotAuthenticated
	}

	if s.checkRegistry {
		ok, err := s.refreshTokens.Exists(ctx, claims.Subject, HashToken(refreshToken), s.clock.Now())
		if err != nil {
			return nil, fmt.Errorf("refresh: registry lookup: %w", err)
		}
		if !ok {
			s.log.Warn().Str("user_id", claims.Subject).Msg("refresh token not in registry")
			return nil, domain.ErrNotAuthenticated
		}
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("refresh: lookup user: %w", err)
	}

	return s.issuePair(ctx, user)
}

// Logout drops every registered refresh token of the user. Access tokens
// already issued stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	n, err := s.refreshTokens.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", userID).Int64("revoked", n).Msg("user logged out")
	return nil
}

// Authenticate resolves an access token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: lookup user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, _, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	row := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: HashToken(refresh),
		CreatedAt: s.clock.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.refreshTokens.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}
