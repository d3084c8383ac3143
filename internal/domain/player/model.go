package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateDNI = errors.New("dni already registered")

// Player is a student registered for the tournament, identified by national ID (DNI).
type Player struct {
	ID           int64
	DNI          string
	FirstName    string
	LastName     string
	Phone        string
	Position     string
	TeamID       *int64
	IsLeader     bool
	RegisteredAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.DNI) == "" {
		return fmt.Errorf("player dni is required")
	}
	if len(p.DNI) > 20 {
		return fmt.Errorf("player dni must be at most 20 characters")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("player first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}
	if p.TeamID != nil && *p.TeamID <= 0 {
		return fmt.Errorf("player team id must be positive")
	}
	if p.IsLeader && p.TeamID == nil {
		return fmt.Errorf("player without a team cannot be leader")
	}

	return nil
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Unassigned() bool {
	return p.TeamID == nil
}
