package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSameTeam = errors.New("home and away team must differ")

// MaxGoals bounds a recorded score.
const MaxGoals = 999

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

type Phase string

const (
	PhaseGroups       Phase = "groups"
	PhaseRoundOf16    Phase = "round_of_16"
	PhaseQuarterfinal Phase = "quarterfinal"
	PhaseSemifinal    Phase = "semifinal"
	PhaseFinal        Phase = "final"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled:  {},
	StatusInProgress: {},
	StatusFinished:   {},
}

var AllPhases = map[Phase]struct{}{
	PhaseGroups:       {},
	PhaseRoundOf16:    {},
	PhaseQuarterfinal: {},
	PhaseSemifinal:    {},
	PhaseFinal:        {},
}

// ParseStatus normalises user input; an empty value yields an empty status (no filter).
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if status == "" {
		return "", nil
	}
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("invalid match status: %s", value)
	}
	return status, nil
}

// ParsePhase normalises user input; an empty value defaults to the group phase.
func ParsePhase(value string) (Phase, error) {
	phase := Phase(strings.ToLower(strings.TrimSpace(value)))
	if phase == "" {
		return PhaseGroups, nil
	}
	if _, ok := AllPhases[phase]; !ok {
		return "", fmt.Errorf("invalid match phase: %s", value)
	}
	return phase, nil
}

// Match is one scheduled game between two registered teams.
type Match struct {
	ID          int64
	HomeTeamID  int64
	AwayTeamID  int64
	ScheduledAt time.Time
	HomeGoals   int
	AwayGoals   int
	Status      Status
	Phase       Phase
	Group       string
	CreatedAt   time.Time
}

func (m Match) Validate() error {
	if m.HomeTeamID <= 0 {
		return fmt.Errorf("home team id is required")
	}
	if m.AwayTeamID <= 0 {
		return fmt.Errorf("away team id is required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeam
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("match scheduled datetime is required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if _, ok := AllPhases[m.Phase]; !ok {
		return fmt.Errorf("invalid match phase: %s", m.Phase)
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("goals cannot be negative")
	}
	if m.HomeGoals > MaxGoals || m.AwayGoals > MaxGoals {
		return fmt.Errorf("goals must be at most %d", MaxGoals)
	}
	if len(m.Group) > 10 {
		return fmt.Errorf("match group must be at most 10 characters")
	}

	return nil
}

func (m Match) Finished() bool {
	return m.Status == StatusFinished
}

// Detail is a match joined with both team names for read views.
type Detail struct {
	Match
	HomeTeamName string
	AwayTeamName string
}

// Filter narrows match listings. Zero values mean no restriction.
type Filter struct {
	Status Status
	Limit  int
}
