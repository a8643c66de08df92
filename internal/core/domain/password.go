package domain

import "unicode"

const (
	PasswordMinLength = 8
	// bcrypt rejects inputs longer than this.
	PasswordMaxBytes = 72
)

// ValidatePassword enforces the registration password policy: at least
// PasswordMinLength characters with an upper-case letter, a lower-case letter
// and a digit.
func ValidatePassword(password string) error {
	if len([]rune(password)) < PasswordMinLength {
		return NewValidationError("password", "Password must be at least 8 characters")
	}
	if len(password) > PasswordMaxBytes {
		return NewValidationError("password", "Password must be at most 72 bytes")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	switch {
	case !upper:
		return NewValidationError("password", "Password must contain at least one uppercase letter")
	case !lower:
		return NewValidationError("password", "Password must contain at least one lowercase letter")
	case !digit:
		return NewValidationError("password", "Password must contain at least one number")
	}
	return nil
}
