package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrLeaderNotMember = errors.New("team leader must be a member of the team")

// Team is a school squad registered for the tournament.
type Team struct {
	ID             int64
	Name           string
	Color          string
	LeaderPlayerID *int64
	RegisteredAt   time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Summary is a team with its player count, derived from the players table on every read.
type Summary struct {
	Team
	PlayerCount int
}
