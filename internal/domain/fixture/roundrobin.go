package fixture

import (
	"errors"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

const (
	MinTeams    = 2
	KickoffHour = 14
)

var ErrNotEnoughTeams = errors.New("at least two teams are required to build the fixture")

// GenerateRoundRobin builds the group phase: one match for every pair (i, j) with i < j in
// the given order, team i at home. Match (i, j) is played i*n+j calendar days after the
// base date at 14:00 in now's location.
func GenerateRoundRobin(teams []team.Team, now time.Time) ([]match.Match, error) {
	n := len(teams)
	if n < MinTeams {
		return nil, ErrNotEnoughTeams
	}

	base := KickoffBase(now)
	out := make([]match.Match, 0, MatchCount(n))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, match.Match{
				HomeTeamID:  teams[i].ID,
				AwayTeamID:  teams[j].ID,
				ScheduledAt: base.AddDate(0, 0, i*n+j),
				Status:      match.StatusScheduled,
				Phase:       match.PhaseGroups,
				CreatedAt:   now,
			})
		}
	}

	return out, nil
}

// KickoffBase returns now's calendar date at the fixed kickoff hour.
func KickoffBase(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), KickoffHour, 0, 0, 0, now.Location())
}

// MatchCount is the number of games in a single round robin of n teams.
func MatchCount(n int) int {
	if n < MinTeams {
		return 0
	}
	return n * (n - 1) / 2
}
