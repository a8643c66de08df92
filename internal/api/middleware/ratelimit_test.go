package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/service"
	"github.com/soundwolves/soundwolves-api/internal/infrastructure/memory"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Time) (int64, error) {
	return 0, errors.New("redis down")
}

func serve(e *echo.Echo, mw echo.MiddlewareFunc, remoteAddr string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 1, 1, 12, 0, 15, 0, time.UTC))
	limiter := service.NewRateLimiter(memory.NewRateLimitStore(clk), time.Minute, clk)
	mw := RateLimit(limiter, "auth_login", 2, zerolog.Nop())
	e := echo.New()

	for i := 0; i < 2; i++ {
		rec, err := serve(e, mw, "10.0.0.1:1234")
		if err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
		if got := rec.Header().Get(HeaderRateLimitRemaining); got != strconv.Itoa(1-i) {
			t.Fatalf("request %d: remaining = %s", i+1, got)
		}
	}

	rec, err := serve(e, mw, "10.0.0.1:1234")
	var rl *domain.RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.RetryAfter != 45*time.Second {
		t.Fatalf("retry after = %s, want 45s", rl.RetryAfter)
	}
	if got := rec.Header().Get(HeaderRateLimitLimit); got != "2" {
		t.Fatalf("limit header = %q", got)
	}
	wantReset := strconv.FormatInt(time.Date(2025, 1, 1, 12, 1, 0, 0, time.UTC).Unix(), 10)
	if got := rec.Header().Get(HeaderRateLimitReset); got != wantReset {
		t.Fatalf("reset header = %q, want %q", got, wantReset)
	}

	// Another client has its own budget.
	if _, err := serve(e, mw, "10.0.0.2:1234"); err != nil {
		t.Fatalf("second client rejected: %v", err)
	}

	// The next window starts fresh.
	clk.Advance(time.Minute)
	if _, err := serve(e, mw, "10.0.0.1:1234"); err != nil {
		t.Fatalf("request in new window rejected: %v", err)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := service.NewRateLimiter(failingStore{}, time.Minute, clock.NewFake(time.Now()))
	mw := RateLimit(limiter, "auth_login", 1, zerolog.Nop())
	e := echo.New()

	for i := 0; i < 3; i++ {
		rec, err := serve(e, mw, "10.0.0.1:1234")
		if err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "1"},
		{-time.Second, "1"},
		{300 * time.Millisecond, "1"},
		{45 * time.Second, "45"},
		{45*time.Second + time.Millisecond, "46"},
		{15 * time.Minute, "900"},
	}
	for _, tt := range tests {
		if got := RetryAfterSeconds(tt.in); got != tt.want {
			t.Errorf("RetryAfterSeconds(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
