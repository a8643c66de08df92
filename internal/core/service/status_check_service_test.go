package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/infrastructure/memory"
	"github.com/soundwolves/soundwolves-api/internal/pkg/clock"
)

func TestStatusCheckService_CreateAndList(t *testing.T) {
	svc := NewStatusCheckService(memory.NewStatusCheckRepository(), clock.NewFake(testEpoch), zerolog.Nop())
	ctx := context.Background()

	check, err := svc.Create(ctx, " probe-1 ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if check.ID == "" || check.ClientName != "probe-1" || !check.Timestamp.Equal(testEpoch) {
		t.Fatalf("unexpected check: %+v", check)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != check.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestStatusCheckService_Validation(t *testing.T) {
	svc := NewStatusCheckService(memory.NewStatusCheckRepository(), nil, zerolog.Nop())

	for _, name := range []string{"", "   ", strings.Repeat("x", 101)} {
		_, err := svc.Create(context.Background(), name)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("name %q: expected ValidationError, got %v", name, err)
		}
	}
}
