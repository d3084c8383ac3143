package memory

import (
	"sync"

	"github.com/riskibarqy/school-games/internal/domain/admin"
	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/session"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

// Store holds every table in process memory behind one lock so cross-entity reads
// (player counts, joined team names) see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	admins   []admin.Admin
	sessions map[string]session.Session
	teams    []team.Team
	players  []player.Player
	matches  []match.Match

	lastAdminID  int64
	lastTeamID   int64
	lastPlayerID int64
	lastMatchID  int64
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]session.Session)}
}

func (s *Store) Admins() *AdminRepository {
	return &AdminRepository{store: s}
}

func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{store: s}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{store: s}
}

func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

// callers must hold s.mu.
func (s *Store) teamIndex(teamID int64) int {
	for idx := range s.teams {
		if s.teams[idx].ID == teamID {
			return idx
		}
	}
	return -1
}

func (s *Store) playerIndex(playerID int64) int {
	for idx := range s.players {
		if s.players[idx].ID == playerID {
			return idx
		}
	}
	return -1
}

func (s *Store) matchIndex(matchID int64) int {
	for idx := range s.matches {
		if s.matches[idx].ID == matchID {
			return idx
		}
	}
	return -1
}

// promoteLeader and releaseLeader expect s.mu to be held for writing.
func (s *Store) promoteLeader(teamID, playerID int64) {
	idx := s.teamIndex(teamID)
	if idx < 0 {
		return
	}
	leaderID := playerID
	s.teams[idx].LeaderPlayerID = &leaderID
	for i := range s.players {
		member := &s.players[i]
		if member.TeamID != nil && *member.TeamID == teamID {
			member.IsLeader = member.ID == playerID
		}
	}
}

func (s *Store) releaseLeader(playerID int64, keepTeamID *int64) {
	for i := range s.teams {
		t := &s.teams[i]
		if t.LeaderPlayerID == nil || *t.LeaderPlayerID != playerID {
			continue
		}
		if keepTeamID != nil && t.ID == *keepTeamID {
			continue
		}
		t.LeaderPlayerID = nil
	}
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneTeam(t team.Team) team.Team {
	copied := t
	copied.LeaderPlayerID = cloneInt64(t.LeaderPlayerID)
	return copied
}

func clonePlayer(p player.Player) player.Player {
	copied := p
	copied.TeamID = cloneInt64(p.TeamID)
	return copied
}
