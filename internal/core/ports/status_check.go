package ports

import (
	"context"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

// StatusCheckRepository persists status check records.
type StatusCheckRepository interface {
	Insert(ctx context.Context, check *domain.StatusCheck) error
	// List returns at most limit records, oldest first.
	List(ctx context.Context, limit int) ([]*domain.StatusCheck, error)
}

// StatusCheckService defines the status check use cases.
type StatusCheckService interface {
	Create(ctx context.Context, clientName string) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]*domain.StatusCheck, error)
}
