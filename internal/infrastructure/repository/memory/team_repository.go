package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/school-games/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.lastTeamID++
	item.ID = r.store.lastTeamID
	item = cloneTeam(item)
	r.store.teams = append(r.store.teams, item)

	return cloneTeam(item), nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.teamIndex(item.ID)
	if idx < 0 {
		return fmt.Errorf("team %d not found", item.ID)
	}

	existing := r.store.teams[idx]
	existing.Name = item.Name
	existing.Color = item.Color
	r.store.teams[idx] = existing

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.teamIndex(teamID)
	if idx < 0 {
		return team.Team{}, false, nil
	}

	return cloneTeam(r.store.teams[idx]), true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, item := range r.store.teams {
		out = append(out, cloneTeam(item))
	}

	return out, nil
}

func (r *TeamRepository) ListSummaries(_ context.Context) ([]team.Summary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[int64]int, len(r.store.teams))
	for _, p := range r.store.players {
		if p.TeamID != nil {
			counts[*p.TeamID]++
		}
	}

	out := make([]team.Summary, 0, len(r.store.teams))
	for _, item := range r.store.teams {
		out = append(out, team.Summary{Team: cloneTeam(item), PlayerCount: counts[item.ID]})
	}

	return out, nil
}

func (r *TeamRepository) AssignLeader(_ context.Context, teamID, playerID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	teamIdx := r.store.teamIndex(teamID)
	if teamIdx < 0 {
		return fmt.Errorf("team %d not found", teamID)
	}
	playerIdx := r.store.playerIndex(playerID)
	if playerIdx < 0 {
		return fmt.Errorf("player %d not found", playerID)
	}

	p := r.store.players[playerIdx]
	if p.TeamID == nil || *p.TeamID != teamID {
		return team.ErrLeaderNotMember
	}

	r.store.promoteLeader(teamID, playerID)
	return nil
}
