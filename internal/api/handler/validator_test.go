package handler

import (
	"errors"
	"testing"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&registerRequest{Email: "x", Name: "Al", Password: "p", UserType: "admin"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["email"] != "email must be a valid email" {
		t.Fatalf("email message = %q", ve.Fields["email"])
	}
	if ve.Fields["user_type"] != "user_type must be one of: user dj" {
		t.Fatalf("user_type message = %q", ve.Fields["user_type"])
	}
	if _, ok := ve.Fields["name"]; ok {
		t.Fatalf("name is valid, got %q", ve.Fields["name"])
	}
}

func TestValidator_Valid(t *testing.T) {
	if err := NewValidator().Validate(&loginRequest{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
