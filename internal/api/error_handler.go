package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/api/middleware"
	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

// Client-facing messages. Every credential failure shares one message so the
// response never tells which part was wrong.
const (
	msgValidation         = "validation failed"
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgNotAuthenticated   = "Not authenticated"
	msgAccountLocked      = "Account temporarily locked. Please try again later."
	msgRateLimited        = "Rate limit exceeded"
	msgInternal           = "internal server error"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	h := c.Response().Header()

	var (
		ve     *domain.ValidationError
		locked *domain.AccountLockedError
		rl     *domain.RateLimitError
		he     *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorResponse{Error: msgValidation, Details: ve.Fields}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorResponse{Error: msgEmailTaken}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: msgInvalidCredentials}
	case errors.Is(err, domain.ErrNotAuthenticated):
		h.Set(echo.HeaderWWWAuthenticate, "Bearer")
		return http.StatusUnauthorized, errorResponse{Error: msgNotAuthenticated}
	case errors.As(err, &locked):
		h.Set(echo.HeaderRetryAfter, middleware.RetryAfterSeconds(locked.RetryAfter))
		return http.StatusTooManyRequests, errorResponse{Error: msgAccountLocked}
	case errors.As(err, &rl):
		h.Set(echo.HeaderRetryAfter, middleware.RetryAfterSeconds(rl.RetryAfter))
		return http.StatusTooManyRequests, errorResponse{Error: msgRateLimited}
	case errors.As(err, &he):
		// Echo's own errors (bind failures, 404 from router, etc.)
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Msg("http error")
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: msgInternal}
}
