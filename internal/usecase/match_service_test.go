package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
)

func TestMatchService_CreateMatch(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	past := time.Date(2020, 1, 1, 14, 0, 0, 0, time.UTC)

	created, err := service.CreateMatch(t.Context(), CreateMatchInput{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: past, Group: "A"})
	if err != nil {
		t.Fatalf("create match in the past: %v", err)
	}
	if created.Status != match.StatusScheduled || created.Phase != match.PhaseGroups {
		t.Fatalf("unexpected defaults: status=%s phase=%s", created.Status, created.Phase)
	}
	if created.HomeGoals != 0 || created.AwayGoals != 0 {
		t.Fatalf("expected zero goals")
	}

	final, err := service.CreateMatch(t.Context(), CreateMatchInput{HomeTeamID: b.ID, AwayTeamID: a.ID, ScheduledAt: past, Phase: "FINAL"})
	if err != nil {
		t.Fatalf("create final: %v", err)
	}
	if final.Phase != match.PhaseFinal {
		t.Fatalf("expected final phase, got %s", final.Phase)
	}
}

func TestMatchService_CreateMatch_Rejects(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	at := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	cases := map[string]CreateMatchInput{
		"same team":     {HomeTeamID: a.ID, AwayTeamID: a.ID, ScheduledAt: at},
		"missing away":  {HomeTeamID: a.ID, ScheduledAt: at},
		"unknown team":  {HomeTeamID: a.ID, AwayTeamID: 404, ScheduledAt: at},
		"invalid phase": {HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: at, Phase: "playoffs"},
		"no date":       {HomeTeamID: a.ID, AwayTeamID: b.ID},
	}
	for name, input := range cases {
		if _, err := service.CreateMatch(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	items, _ := service.ListMatches(t.Context(), MatchFilter{})
	if len(items) != 0 {
		t.Fatalf("expected no matches stored, got %d", len(items))
	}
}

func TestMatchService_RecordResultOverwrites(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	created, err := service.CreateMatch(t.Context(), CreateMatchInput{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: time.Now()})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	if _, err := service.RecordResult(t.Context(), created.ID, 2, 1); err != nil {
		t.Fatalf("record 2-1: %v", err)
	}
	got, err := service.RecordResult(t.Context(), created.ID, 0, 0)
	if err != nil {
		t.Fatalf("record 0-0: %v", err)
	}
	if got.HomeGoals != 0 || got.AwayGoals != 0 || got.Status != match.StatusFinished {
		t.Fatalf("unexpected returned match: %+v", got)
	}

	stored, _, _ := store.Matches().GetByID(t.Context(), created.ID)
	if stored.HomeGoals != 0 || stored.AwayGoals != 0 || stored.Status != match.StatusFinished {
		t.Fatalf("expected stored 0-0 finished, got %+v", stored)
	}

	again, err := service.RecordResult(t.Context(), created.ID, 0, 0)
	if err != nil || again != got {
		t.Fatalf("expected identical state when recording the same result twice, got %+v err=%v", again, err)
	}
}

func TestMatchService_RecordResultRejects(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)

	if _, err := service.RecordResult(t.Context(), 1, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative goals, got %v", err)
	}
	if _, err := service.RecordResult(t.Context(), 1, 0, match.MaxGoals+1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for goals above the limit, got %v", err)
	}
	if _, err := service.RecordResult(t.Context(), 12345, 1, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_StartMatch(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	created, _ := service.CreateMatch(t.Context(), CreateMatchInput{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: time.Now()})

	started, err := service.StartMatch(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if started.Status != match.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	if _, err := service.RecordResult(t.Context(), created.ID, 3, 3); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if _, err := service.StartMatch(t.Context(), created.ID); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition for finished match, got %v", err)
	}
}

func TestMatchService_ListAndUpcoming(t *testing.T) {
	store := memory.NewStore()
	service := NewMatchService(store.Matches(), store.Teams(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	base := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	ids := make([]int64, 0, 7)
	for i := 6; i >= 0; i-- {
		created, err := service.CreateMatch(t.Context(), CreateMatchInput{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: base.AddDate(0, 0, i)})
		if err != nil {
			t.Fatalf("create match %d: %v", i, err)
		}
		ids = append(ids, created.ID)
	}
	// ids[6] is the earliest
	if _, err := service.RecordResult(t.Context(), ids[6], 1, 0); err != nil {
		t.Fatalf("record result: %v", err)
	}

	all, err := service.ListMatches(t.Context(), MatchFilter{})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(all) != 7 || all[0].ID != ids[6] || all[0].HomeTeamName != "A" || all[0].AwayTeamName != "B" {
		t.Fatalf("unexpected list head: %+v", all[0])
	}

	finished, err := service.ListMatches(t.Context(), MatchFilter{Status: "finished"})
	if err != nil || len(finished) != 1 {
		t.Fatalf("expected one finished match, got %d err=%v", len(finished), err)
	}
	if _, err := service.ListMatches(t.Context(), MatchFilter{Status: "postponed"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	upcoming, err := service.UpcomingMatches(t.Context(), 0)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != DefaultUpcomingLimit {
		t.Fatalf("expected %d upcoming, got %d", DefaultUpcomingLimit, len(upcoming))
	}
	if upcoming[0].ID != ids[5] {
		t.Fatalf("expected earliest scheduled match first, got %d", upcoming[0].ID)
	}
	for _, item := range upcoming {
		if item.Status != match.StatusScheduled {
			t.Fatalf("upcoming contains %s match", item.Status)
		}
	}
}
