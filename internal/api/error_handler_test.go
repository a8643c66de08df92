package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantMsg    string
		wantHeader map[string]string
	}{
		{
			name:     "validation",
			err:      domain.NewValidationError("password", "Password must be at least 8 characters"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "validation failed",
		},
		{
			name:     "email taken",
			err:      domain.ErrUserExists,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Email already registered",
		},
		{
			name:     "bad credentials",
			err:      domain.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid email or password",
		},
		{
			name:       "not authenticated",
			err:        fmt.Errorf("wrapped: %w", domain.ErrNotAuthenticated),
			wantCode:   http.StatusUnauthorized,
			wantMsg:    "Not authenticated",
			wantHeader: map[string]string{"WWW-Authenticate": "Bearer"},
		},
		{
			name:       "locked",
			err:        &domain.AccountLockedError{RetryAfter: 14*time.Minute + 30*time.Second},
			wantCode:   http.StatusTooManyRequests,
			wantMsg:    "Account temporarily locked. Please try again later.",
			wantHeader: map[string]string{"Retry-After": "870"},
		},
		{
			name:       "rate limited",
			err:        &domain.RateLimitError{RetryAfter: 200 * time.Millisecond},
			wantCode:   http.StatusTooManyRequests,
			wantMsg:    "Rate limit exceeded",
			wantHeader: map[string]string{"Retry-After": "1"},
		},
		{
			name:     "echo error",
			err:      echo.NewHTTPError(http.StatusBadRequest, "invalid payload"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid payload",
		},
		{
			name:     "unexpected",
			err:      errors.New("mongo: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Error, tt.wantMsg)
			}
			for k, v := range tt.wantHeader {
				if got := rec.Header().Get(k); got != v {
					t.Fatalf("%s = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(&domain.ValidationError{Fields: map[string]string{
		"email":    "email must be a valid email",
		"password": "password is required",
	}}, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Details) != 2 || resp.Details["email"] == "" || resp.Details["password"] == "" {
		t.Fatalf("unexpected details: %+v", resp.Details)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := c.String(http.StatusOK, "done"); err != nil {
		t.Fatalf("write: %v", err)
	}

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotAuthenticated, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
