package service

import (
	"testing"
	"time"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

func TestLockoutPolicy_Evaluate(t *testing.T) {
	policy := NewLockoutPolicy(0, 0)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	lastFail := now.Add(-5 * time.Minute)
	longAgo := now.Add(-16 * time.Minute)
	edge := now.Add(-15 * time.Minute)
	justBefore := now.Add(-15*time.Minute + time.Second)

	tests := []struct {
		name      string
		attempts  int
		lastFail  *time.Time
		wantState LockState
		wantRetry time.Duration
	}{
		{"fresh account", 0, nil, LockOpen, 0},
		{"below threshold", 4, &lastFail, LockOpen, 0},
		{"threshold reached", 5, &lastFail, LockLocked, 10 * time.Minute},
		{"above threshold", 9, &lastFail, LockLocked, 10 * time.Minute},
		{"window elapsed", 5, &longAgo, LockOpen, 0},
		{"window boundary reopens", 5, &edge, LockOpen, 0},
		{"just before boundary", 5, &justBefore, LockLocked, time.Second},
		{"no failure timestamp", 5, nil, LockOpen, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &domain.User{FailedLoginAttempts: tt.attempts, LastFailedLogin: tt.lastFail}
			state, retry := policy.Evaluate(u, now)
			if state != tt.wantState {
				t.Fatalf("expected %s, got %s", tt.wantState, state)
			}
			if retry != tt.wantRetry {
				t.Fatalf("expected retry %s, got %s", tt.wantRetry, retry)
			}
		})
	}
}

func TestNewLockoutPolicy_Defaults(t *testing.T) {
	p := NewLockoutPolicy(-1, -time.Second)
	if p.Threshold != DefaultLockoutThreshold || p.Duration != DefaultLockoutDuration {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
