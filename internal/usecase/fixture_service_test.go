package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/school-games/internal/domain/fixture"
	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/school-games/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/school-games/internal/mocks/domain/team"
)

func TestFixtureService_GenerateReplacesExistingMatches(t *testing.T) {
	store := memory.NewStore()
	service := NewFixtureService(store.Teams(), store.Matches(), time.UTC, nil)
	service.now = fixedClock(time.Date(2026, 8, 10, 7, 45, 0, 0, time.UTC))

	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	c := mustCreateTeam(t, store, "C")
	if _, err := store.Matches().Create(t.Context(), match.Match{HomeTeamID: c.ID, AwayTeamID: a.ID, ScheduledAt: time.Now(), Status: match.StatusFinished, Phase: match.PhaseFinal}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	for round := 0; round < 2; round++ {
		result, err := service.Generate(t.Context())
		if err != nil {
			t.Fatalf("round %d: generate: %v", round, err)
		}
		if result.TeamCount != 3 || len(result.Matches) != 3 {
			t.Fatalf("round %d: unexpected result: %+v", round, result)
		}

		stored, _ := store.Matches().List(t.Context(), match.Filter{})
		if len(stored) != 3 {
			t.Fatalf("round %d: expected exactly 3 matches after regeneration, got %d", round, len(stored))
		}
		want := [][2]int64{{a.ID, b.ID}, {a.ID, c.ID}, {b.ID, c.ID}}
		for idx, pair := range want {
			if stored[idx].HomeTeamID != pair[0] || stored[idx].AwayTeamID != pair[1] {
				t.Fatalf("round %d: match %d expected %v, got %d-%d", round, idx, pair, stored[idx].HomeTeamID, stored[idx].AwayTeamID)
			}
			if stored[idx].Phase != match.PhaseGroups || stored[idx].Status != match.StatusScheduled {
				t.Fatalf("round %d: unexpected match state %+v", round, stored[idx])
			}
		}
		if got := stored[0].ScheduledAt; !got.Equal(time.Date(2026, 8, 11, 14, 0, 0, 0, time.UTC)) {
			t.Fatalf("round %d: unexpected first kickoff %s", round, got)
		}
	}
}

func TestFixtureService_GenerateUsesConfiguredLocation(t *testing.T) {
	store := memory.NewStore()
	loc := time.FixedZone("ART", -3*60*60)
	service := NewFixtureService(store.Teams(), store.Matches(), loc, nil)
	// 01:00 UTC is still the previous evening in ART
	service.now = fixedClock(time.Date(2026, 8, 10, 1, 0, 0, 0, time.UTC))
	mustCreateTeam(t, store, "A")
	mustCreateTeam(t, store, "B")

	result, err := service.Generate(t.Context())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := time.Date(2026, 8, 10, 14, 0, 0, 0, loc)
	if !result.Matches[0].ScheduledAt.Equal(want) {
		t.Fatalf("expected %s, got %s", want, result.Matches[0].ScheduledAt)
	}
}

func TestFixtureService_NotEnoughTeamsDoesNotTouchMatchesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewFixtureService(teamRepo, matchRepo, time.UTC, nil)

	teamRepo.
		On("List", mock.Anything).
		Return([]team.Team{{ID: 1, Name: "Solo"}}, nil).
		Once()

	_, err := service.Generate(ctx)
	if !errors.Is(err, ErrPrecondition) || !errors.Is(err, fixture.ErrNotEnoughTeams) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	matchRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestFixtureService_ReplaceFailurePropagatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewFixtureService(teamRepo, matchRepo, time.UTC, nil)
	storeErr := errors.New("connection reset")

	teamRepo.
		On("List", mock.Anything).
		Return([]team.Team{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil).
		Once()
	matchRepo.
		On("ReplaceAll", mock.Anything, mock.MatchedBy(func(items []match.Match) bool { return len(items) == 6 })).
		Return(nil, storeErr).
		Once()

	if _, err := service.Generate(ctx); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
