package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "short1A", true},
		{"no upper", "alllowercase1", true},
		{"no lower", "ALLUPPER1", true},
		{"no digit", "NoDigitsHere", true},
		{"too long", "Aa1" + strings.Repeat("x", 70), true},
		{"valid", "Valid1Pass", false},
		{"valid unicode", "Ñandú1234a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if _, ok := ve.Fields["password"]; !ok {
					t.Fatalf("expected password field detail, got %+v", ve.Fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.com "); got != "a@x.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}

func TestUserProfile_OmitsSecrets(t *testing.T) {
	u := &User{ID: "u1", Email: "a@x.com", Name: "Al", PasswordHash: "hash", UserType: UserTypeDJ, DJName: "DJ Al"}
	p := u.Profile()
	if p.DJName == nil || *p.DJName != "DJ Al" {
		t.Fatalf("expected dj name in profile, got %+v", p)
	}

	u.DJName = ""
	u.UserType = ""
	p = u.Profile()
	if p.DJName != nil {
		t.Fatalf("expected nil dj name")
	}
	if p.UserType != UserTypeUser {
		t.Fatalf("expected default user type, got %q", p.UserType)
	}
}

func TestLockedAndRateLimitErrors_Unwrap(t *testing.T) {
	if !errors.Is(&AccountLockedError{}, ErrAccountLocked) {
		t.Fatalf("AccountLockedError should unwrap to ErrAccountLocked")
	}
	if !errors.Is(&RateLimitError{}, ErrRateLimited) {
		t.Fatalf("RateLimitError should unwrap to ErrRateLimited")
	}
}
