package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/school-games/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.players {
		if existing.DNI == item.DNI {
			return player.Player{}, player.ErrDuplicateDNI
		}
	}
	if item.TeamID != nil && r.store.teamIndex(*item.TeamID) < 0 {
		return player.Player{}, fmt.Errorf("team %d not found", *item.TeamID)
	}

	r.store.lastPlayerID++
	item.ID = r.store.lastPlayerID
	leads := item.IsLeader && item.TeamID != nil
	item.IsLeader = false
	item = clonePlayer(item)
	r.store.players = append(r.store.players, item)
	if leads {
		r.store.promoteLeader(*item.TeamID, item.ID)
	}

	return clonePlayer(r.store.players[len(r.store.players)-1]), nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.playerIndex(item.ID)
	if idx < 0 {
		return fmt.Errorf("player %d not found", item.ID)
	}
	if item.TeamID != nil && r.store.teamIndex(*item.TeamID) < 0 {
		return fmt.Errorf("team %d not found", *item.TeamID)
	}

	existing := r.store.players[idx]
	existing.FirstName = item.FirstName
	existing.LastName = item.LastName
	existing.Phone = item.Phone
	existing.Position = item.Position
	existing.TeamID = cloneInt64(item.TeamID)
	existing.IsLeader = false
	r.store.players[idx] = existing

	leads := item.IsLeader && item.TeamID != nil
	var keep *int64
	if leads {
		keep = item.TeamID
	}
	r.store.releaseLeader(item.ID, keep)
	if leads {
		r.store.promoteLeader(*item.TeamID, item.ID)
	}

	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.playerIndex(playerID)
	if idx < 0 {
		return player.Player{}, false, nil
	}

	return clonePlayer(r.store.players[idx]), true, nil
}

func (r *PlayerRepository) GetByDNI(_ context.Context, dni string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.players {
		if item.DNI == dni {
			return clonePlayer(item), true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, item := range r.store.players {
		out = append(out, clonePlayer(item))
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.store.players {
		if item.TeamID != nil && *item.TeamID == teamID {
			out = append(out, clonePlayer(item))
		}
	}

	return out, nil
}
