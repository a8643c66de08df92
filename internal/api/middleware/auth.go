package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
)

const userContextKey = "user"

// Auth requires a valid bearer access token and injects the resolved user
// into the context. Every failure surfaces as domain.ErrNotAuthenticated.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the viewer when a valid access token is presented and
// otherwise continues anonymously. Store failures are still returned.
func OptionalAuth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrNotAuthenticated):
			case err != nil:
				return err
			default:
				c.Set(userContextKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth or OptionalAuth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
