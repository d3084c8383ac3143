package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

func TestTeamRepository_ListSummariesCountsPlayers(t *testing.T) {
	ctx := t.Context()
	store := NewStore()
	if err := Seed(ctx, store, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, err := store.Teams().ListSummaries(ctx)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}

	want := []int{2, 1, 1, 0}
	if len(items) != len(want) {
		t.Fatalf("expected %d teams, got %d", len(want), len(items))
	}
	for idx, count := range want {
		if items[idx].PlayerCount != count {
			t.Fatalf("team %s: expected %d players, got %d", items[idx].Name, count, items[idx].PlayerCount)
		}
	}
}

func TestPlayerRepository_CreateRejectsDuplicateDNI(t *testing.T) {
	ctx := t.Context()
	repo := NewStore().Players()

	if _, err := repo.Create(ctx, player.Player{DNI: "1", FirstName: "A", LastName: "B"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	_, err := repo.Create(ctx, player.Player{DNI: "1", FirstName: "C", LastName: "D"})
	if !errors.Is(err, player.ErrDuplicateDNI) {
		t.Fatalf("expected ErrDuplicateDNI, got %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].FirstName != "A" {
		t.Fatalf("expected original player only, got %+v", items)
	}
}

func TestTeamRepository_AssignLeader(t *testing.T) {
	ctx := t.Context()
	store := NewStore()
	a, _ := store.Teams().Create(ctx, team.Team{Name: "A"})
	b, _ := store.Teams().Create(ctx, team.Team{Name: "B"})
	p, err := store.Players().Create(ctx, player.Player{DNI: "9", FirstName: "X", LastName: "Y", TeamID: &a.ID})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	if err := store.Teams().AssignLeader(ctx, b.ID, p.ID); !errors.Is(err, team.ErrLeaderNotMember) {
		t.Fatalf("expected ErrLeaderNotMember, got %v", err)
	}
	if err := store.Teams().AssignLeader(ctx, a.ID, p.ID); err != nil {
		t.Fatalf("assign leader: %v", err)
	}

	got, _, _ := store.Teams().GetByID(ctx, a.ID)
	if got.LeaderPlayerID == nil || *got.LeaderPlayerID != p.ID {
		t.Fatalf("expected leader %d, got %v", p.ID, got.LeaderPlayerID)
	}
	member, _, _ := store.Players().GetByID(ctx, p.ID)
	if !member.IsLeader {
		t.Fatalf("expected leader flag on player")
	}
}

func TestMatchRepository_ReplaceAllIsAllOrNothing(t *testing.T) {
	ctx := t.Context()
	store := NewStore()
	a, _ := store.Teams().Create(ctx, team.Team{Name: "A"})
	b, _ := store.Teams().Create(ctx, team.Team{Name: "B"})
	at := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	if _, err := store.Matches().Create(ctx, match.Match{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: at, Status: match.StatusScheduled, Phase: match.PhaseFinal}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	_, err := store.Matches().ReplaceAll(ctx, []match.Match{
		{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: at},
		{HomeTeamID: a.ID, AwayTeamID: 999, ScheduledAt: at},
	})
	if err == nil {
		t.Fatalf("expected error for unknown team")
	}

	items, _ := store.Matches().List(ctx, match.Filter{})
	if len(items) != 1 || items[0].Phase != match.PhaseFinal {
		t.Fatalf("expected untouched matches after failed replace, got %+v", items)
	}

	replaced, err := store.Matches().ReplaceAll(ctx, []match.Match{{HomeTeamID: b.ID, AwayTeamID: a.ID, ScheduledAt: at, Status: match.StatusScheduled, Phase: match.PhaseGroups}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	items, _ = store.Matches().List(ctx, match.Filter{})
	if len(items) != 1 || items[0].ID != replaced[0].ID || items[0].HomeTeamName != "B" {
		t.Fatalf("expected only replacement match, got %+v", items)
	}
}

func TestMatchRepository_ListOrdersAndFilters(t *testing.T) {
	ctx := t.Context()
	store := NewStore()
	a, _ := store.Teams().Create(ctx, team.Team{Name: "A"})
	b, _ := store.Teams().Create(ctx, team.Team{Name: "B"})
	base := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	late, _ := store.Matches().Create(ctx, match.Match{HomeTeamID: a.ID, AwayTeamID: b.ID, ScheduledAt: base.AddDate(0, 0, 2), Status: match.StatusScheduled})
	early, _ := store.Matches().Create(ctx, match.Match{HomeTeamID: b.ID, AwayTeamID: a.ID, ScheduledAt: base, Status: match.StatusScheduled})
	if err := store.Matches().UpdateResult(ctx, early.ID, 2, 1); err != nil {
		t.Fatalf("update result: %v", err)
	}

	all, _ := store.Matches().List(ctx, match.Filter{})
	if len(all) != 2 || all[0].ID != early.ID || all[1].ID != late.ID {
		t.Fatalf("unexpected order: %+v", all)
	}

	scheduled, _ := store.Matches().List(ctx, match.Filter{Status: match.StatusScheduled})
	if len(scheduled) != 1 || scheduled[0].ID != late.ID {
		t.Fatalf("unexpected filtered list: %+v", scheduled)
	}
}
