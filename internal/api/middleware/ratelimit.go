package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/api/metrics"
	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimit admits at most limit requests per window for each client address
// on route. It runs before the handler, so rejected requests never reach the
// auth state machine. A failing limiter store lets traffic through.
func RateLimit(limiter ports.RateLimiter, route string, limit int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := limiter.Allow(c.Request().Context(), route, c.RealIP(), limit)
			if err != nil {
				metrics.RateLimitErrorsTotal.Inc()
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, admitting request")
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
			h.Set(HeaderRateLimitReset, strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				metrics.RateLimitRejectionsTotal.WithLabelValues(route).Inc()
				return &domain.RateLimitError{RetryAfter: d.RetryAfter}
			}
			return next(c)
		}
	}
}

// RetryAfterSeconds renders a retry hint for the Retry-After header,
// rounding up and never below one second.
func RetryAfterSeconds(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
