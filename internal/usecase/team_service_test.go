package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
)

func TestTeamService_CreateTeam(t *testing.T) {
	store := memory.NewStore()
	service := NewTeamService(store.Teams(), store.Players(), nil)
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	service.now = fixedClock(now)

	created, err := service.CreateTeam(t.Context(), CreateTeamInput{Name: "  Tigres ", Color: " Naranja "})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID == 0 || created.Name != "Tigres" || created.Color != "Naranja" {
		t.Fatalf("unexpected team: %+v", created)
	}
	if !created.RegisteredAt.Equal(now) {
		t.Fatalf("expected registration time %s, got %s", now, created.RegisteredAt)
	}

	if _, err := service.CreateTeam(t.Context(), CreateTeamInput{Name: "Tigres"}); err != nil {
		t.Fatalf("duplicate team names are allowed, got %v", err)
	}
	if _, err := service.CreateTeam(t.Context(), CreateTeamInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestTeamService_ListTeamsCountsPlayersOnEveryRead(t *testing.T) {
	store := memory.NewStore()
	service := NewTeamService(store.Teams(), store.Players(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	mustCreatePlayer(t, store, "1", &a.ID)

	items, err := service.ListTeams(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(items) != 2 || items[0].ID != a.ID || items[1].ID != b.ID {
		t.Fatalf("expected registration order, got %+v", items)
	}
	if items[0].PlayerCount != 1 || items[1].PlayerCount != 0 {
		t.Fatalf("unexpected counts: %d %d", items[0].PlayerCount, items[1].PlayerCount)
	}

	mustCreatePlayer(t, store, "2", &b.ID)
	mustCreatePlayer(t, store, "3", &b.ID)
	items, _ = service.ListTeams(t.Context())
	if items[1].PlayerCount != 2 {
		t.Fatalf("expected fresh count 2, got %d", items[1].PlayerCount)
	}
}

func TestTeamService_AssignLeaderAndGetTeam(t *testing.T) {
	store := memory.NewStore()
	service := NewTeamService(store.Teams(), store.Players(), nil)
	a := mustCreateTeam(t, store, "A")
	b := mustCreateTeam(t, store, "B")
	member := mustCreatePlayer(t, store, "10", &a.ID)
	outsider := mustCreatePlayer(t, store, "20", &b.ID)
	free := mustCreatePlayer(t, store, "30", nil)

	if _, err := service.AssignLeader(t.Context(), a.ID, outsider.ID); !errors.Is(err, team.ErrLeaderNotMember) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrLeaderNotMember, got %v", err)
	}
	if _, err := service.AssignLeader(t.Context(), a.ID, free.ID); !errors.Is(err, team.ErrLeaderNotMember) {
		t.Fatalf("expected ErrLeaderNotMember for unassigned player, got %v", err)
	}
	if _, err := service.AssignLeader(t.Context(), a.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
	if _, err := service.AssignLeader(t.Context(), 999, member.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}

	updated, err := service.AssignLeader(t.Context(), a.ID, member.ID)
	if err != nil {
		t.Fatalf("assign leader: %v", err)
	}
	if updated.LeaderPlayerID == nil || *updated.LeaderPlayerID != member.ID {
		t.Fatalf("unexpected leader: %v", updated.LeaderPlayerID)
	}

	details, err := service.GetTeam(t.Context(), a.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(details.Players) != 1 || details.Players[0].ID != member.ID {
		t.Fatalf("unexpected roster: %+v", details.Players)
	}
	if details.Leader == nil || details.Leader.ID != member.ID {
		t.Fatalf("expected leader in details, got %+v", details.Leader)
	}
}

func TestTeamService_UpdateAndGetMissingTeam(t *testing.T) {
	store := memory.NewStore()
	service := NewTeamService(store.Teams(), store.Players(), nil)
	a := mustCreateTeam(t, store, "A")

	updated, err := service.UpdateTeam(t.Context(), a.ID, UpdateTeamInput{Name: "A2", Color: "Gris"})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if updated.Name != "A2" || updated.Color != "Gris" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := service.UpdateTeam(t.Context(), 42, UpdateTeamInput{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetTeam(t.Context(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
