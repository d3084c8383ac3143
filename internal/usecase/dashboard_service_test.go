package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/school-games/internal/mocks/domain/match"
)

func TestDashboardService_Get(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	if err := memory.Seed(ctx, store, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fixtures := NewFixtureService(store.Teams(), store.Matches(), time.UTC, nil)
	if _, err := fixtures.Generate(ctx); err != nil {
		t.Fatalf("generate fixture: %v", err)
	}

	service := NewDashboardService(store.Teams(), store.Players(), store.Matches())
	got, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if len(got.Teams) != 4 || len(got.Players) != 4 || len(got.Matches) != 6 {
		t.Fatalf("unexpected dashboard sizes: teams=%d players=%d matches=%d", len(got.Teams), len(got.Players), len(got.Matches))
	}
}

func TestDashboardService_GetFailsWhenAnyQueryFails(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	matchRepo := matchmock.NewRepository(t)
	matchRepo.
		On("List", mock.Anything, match.Filter{}).
		Return(nil, errors.New("boom")).
		Once()

	service := NewDashboardService(store.Teams(), store.Players(), matchRepo)
	if _, err := service.Get(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
