package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

const (
	statusListLimit     = 1000
	clientNameMaxLength = 100
)

type StatusCheckService struct {
	repo   ports.StatusCheckRepository
	clock  clock.Clock
	logger zerolog.Logger
}

func NewStatusCheckService(repo ports.StatusCheckRepository, clk clock.Clock, logger zerolog.Logger) *StatusCheckService {
	if clk == nil {
		clk = clock.System{}
	}
	return &StatusCheckService{repo: repo, clock: clk, logger: logger}
}

// Create records a status check for clientName.
func (s *StatusCheckService) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	name := strings.TrimSpace(clientName)
	if name == "" || len([]rune(name)) > clientNameMaxLength {
		return nil, domain.NewValidationError("client_name", "client_name must be between 1 and 100 characters")
	}

	check := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: name,
		Timestamp:  s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, check); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert status check")
		return nil, fmt.Errorf("create status check: %w", err)
	}

	s.logger.Debug().Str("id", check.ID).Str("client_name", name).Msg("status check recorded")
	return check, nil
}

// List returns up to 1000 status checks.
func (s *StatusCheckService) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	checks, err := s.repo.List(ctx, statusListLimit)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	return checks, nil
}
