package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/school-games/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkTeams(item); err != nil {
		return match.Match{}, err
	}

	r.store.lastMatchID++
	item.ID = r.store.lastMatchID
	r.store.matches = append(r.store.matches, item)

	return item, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.matchIndex(matchID)
	if idx < 0 {
		return match.Match{}, false, nil
	}

	return r.store.matches[idx], true, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Detail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	names := make(map[int64]string, len(r.store.teams))
	for _, t := range r.store.teams {
		names[t.ID] = t.Name
	}

	out := make([]match.Detail, 0, len(r.store.matches))
	for _, item := range r.store.matches {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, match.Detail{
			Match:        item,
			HomeTeamName: names[item.HomeTeamID],
			AwayTeamName: names[item.AwayTeamID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *MatchRepository) UpdateResult(_ context.Context, matchID int64, homeGoals, awayGoals int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.matchIndex(matchID)
	if idx < 0 {
		return fmt.Errorf("match %d not found", matchID)
	}

	r.store.matches[idx].HomeGoals = homeGoals
	r.store.matches[idx].AwayGoals = awayGoals
	r.store.matches[idx].Status = match.StatusFinished

	return nil
}

func (r *MatchRepository) UpdateStatus(_ context.Context, matchID int64, status match.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.matchIndex(matchID)
	if idx < 0 {
		return fmt.Errorf("match %d not found", matchID)
	}

	r.store.matches[idx].Status = status
	return nil
}

func (r *MatchRepository) ReplaceAll(_ context.Context, items []match.Match) ([]match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// build the whole replacement before touching stored state
	next := make([]match.Match, 0, len(items))
	lastID := r.store.lastMatchID
	for _, item := range items {
		if err := r.checkTeams(item); err != nil {
			return nil, err
		}
		lastID++
		item.ID = lastID
		next = append(next, item)
	}

	r.store.matches = next
	r.store.lastMatchID = lastID

	out := make([]match.Match, len(next))
	copy(out, next)
	return out, nil
}

// callers must hold the store lock.
func (r *MatchRepository) checkTeams(item match.Match) error {
	if r.store.teamIndex(item.HomeTeamID) < 0 {
		return fmt.Errorf("home team %d not found", item.HomeTeamID)
	}
	if r.store.teamIndex(item.AwayTeamID) < 0 {
		return fmt.Errorf("away team %d not found", item.AwayTeamID)
	}
	return nil
}
