package domain

import (
	"strings"
	"time"
)

const (
	UserTypeUser = "user"
	UserTypeDJ   = "dj"
)

// User is the persisted account record. PasswordHash never leaves the server.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	PasswordHash        string     `json:"-"`
	UserType            string     `json:"user_type"`
	DJName              string     `json:"dj_name,omitempty"`
	FailedLoginAttempts int        `json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	LastLogin           *time.Time `json:"-"`
	IsActive            bool       `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}

// UserProfile is the public projection returned by GET /auth/me.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  string    `json:"user_type"`
	DJName    *string   `json:"dj_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile projects the user onto its client-safe view.
func (u *User) Profile() UserProfile {
	p := UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
	if u.UserType == "" {
		p.UserType = UserTypeUser
	}
	if u.DJName != "" {
		name := u.DJName
		p.DJName = &name
	}
	return p
}

// NormalizeEmail is the canonical lookup form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidUserType reports whether t is one of the known account types.
func ValidUserType(t string) bool {
	return t == UserTypeUser || t == UserTypeDJ
}
