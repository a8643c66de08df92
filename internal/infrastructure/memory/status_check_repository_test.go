package memory

import (
	"context"
	"testing"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

func TestStatusCheckRepository_ListLimit(t *testing.T) {
	repo := NewStatusCheckRepository()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_ = repo.Insert(ctx, &domain.StatusCheck{ID: name, ClientName: name})
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ClientName != "a" || got[1].ClientName != "b" {
		t.Fatalf("unexpected list: %+v", got)
	}
}
