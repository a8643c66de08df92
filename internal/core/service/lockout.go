package service

import (
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

const (
	DefaultLockoutThreshold = 5
	DefaultLockoutDuration  = 15 * time.Minute
)

// LockState is the per-account lockout state.
type LockState int

const (
	LockOpen LockState = iota
	LockLocked
)

func (s LockState) String() string {
	if s == LockLocked {
		return "locked"
	}
	return "open"
}

// LockoutPolicy decides whether an account may attempt a password check.
// The decision is derived from the stored counters at the start of each login
// attempt; there is no explicit unlock transition.
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

// NewLockoutPolicy returns a policy, substituting defaults for non-positive values.
func NewLockoutPolicy(threshold int, duration time.Duration) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return LockoutPolicy{Threshold: threshold, Duration: duration}
}

// Evaluate returns the lock state of u at now and, when locked, how long until
// it reopens.
func (p LockoutPolicy) Evaluate(u *domain.User, now time.Time) (LockState, time.Duration) {
	if u.FailedLoginAttempts < p.Threshold || u.LastFailedLogin == nil {
		return LockOpen, 0
	}

	until := u.LastFailedLogin.Add(p.Duration)
	if !now.Before(until) {
		return LockOpen, 0
	}
	return LockLocked, until.Sub(now)
}
