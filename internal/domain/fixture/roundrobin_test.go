package fixture

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

func makeTeams(n int) []team.Team {
	out := make([]team.Team, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, team.Team{ID: int64(i + 1), Name: fmt.Sprintf("Team %d", i+1)})
	}
	return out
}

func TestGenerateRoundRobin_ThreeTeams(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 12, 500, time.UTC)
	teams := []team.Team{{ID: 10, Name: "A"}, {ID: 20, Name: "B"}, {ID: 30, Name: "C"}}

	got, err := GenerateRoundRobin(teams, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := [][2]int64{{10, 20}, {10, 30}, {20, 30}}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(got))
	}
	for idx, pair := range want {
		if got[idx].HomeTeamID != pair[0] || got[idx].AwayTeamID != pair[1] {
			t.Fatalf("match %d: expected %v, got home=%d away=%d", idx, pair, got[idx].HomeTeamID, got[idx].AwayTeamID)
		}
		if got[idx].Phase != match.PhaseGroups {
			t.Fatalf("match %d: expected groups phase, got %s", idx, got[idx].Phase)
		}
		if got[idx].Status != match.StatusScheduled {
			t.Fatalf("match %d: expected scheduled, got %s", idx, got[idx].Status)
		}
		if got[idx].HomeGoals != 0 || got[idx].AwayGoals != 0 {
			t.Fatalf("match %d: expected zero goals", idx)
		}
	}

	// offsets i*n+j with n=3: (0,1)=1, (0,2)=2, (1,2)=5
	wantDays := []int{11, 12, 15}
	for idx, day := range wantDays {
		at := got[idx].ScheduledAt
		if at.Day() != day || at.Month() != time.March {
			t.Fatalf("match %d: expected March %d, got %s", idx, day, at)
		}
		if at.Hour() != KickoffHour || at.Minute() != 0 || at.Second() != 0 || at.Nanosecond() != 0 {
			t.Fatalf("match %d: expected 14:00:00.000 kickoff, got %s", idx, at)
		}
	}
}

func TestGenerateRoundRobin_EveryPairOnce(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for n := 2; n <= 12; n++ {
		got, err := GenerateRoundRobin(makeTeams(n), now)
		if err != nil {
			t.Fatalf("n=%d: generate: %v", n, err)
		}
		if len(got) != n*(n-1)/2 {
			t.Fatalf("n=%d: expected %d matches, got %d", n, n*(n-1)/2, len(got))
		}

		seen := make(map[[2]int64]struct{}, len(got))
		for _, m := range got {
			if m.HomeTeamID == m.AwayTeamID {
				t.Fatalf("n=%d: team %d plays itself", n, m.HomeTeamID)
			}
			if m.HomeTeamID > m.AwayTeamID {
				t.Fatalf("n=%d: expected earlier-registered team at home, got %d vs %d", n, m.HomeTeamID, m.AwayTeamID)
			}
			key := [2]int64{m.HomeTeamID, m.AwayTeamID}
			if _, dup := seen[key]; dup {
				t.Fatalf("n=%d: pair %v scheduled twice", n, key)
			}
			seen[key] = struct{}{}
		}
	}
}

func TestGenerateRoundRobin_RollsOverMonthEnd(t *testing.T) {
	now := time.Date(2026, 1, 30, 18, 0, 0, 0, time.UTC)

	got, err := GenerateRoundRobin(makeTeams(8), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	last := got[len(got)-1]
	// (6,7) with n=8 is offset 55 days from Jan 30.
	want := time.Date(2026, 3, 26, 14, 0, 0, 0, time.UTC)
	if !last.ScheduledAt.Equal(want) {
		t.Fatalf("expected last match at %s, got %s", want, last.ScheduledAt)
	}
}

func TestGenerateRoundRobin_NotEnoughTeams(t *testing.T) {
	for _, n := range []int{0, 1} {
		got, err := GenerateRoundRobin(makeTeams(n), time.Now())
		if !errors.Is(err, ErrNotEnoughTeams) {
			t.Fatalf("n=%d: expected ErrNotEnoughTeams, got %v", n, err)
		}
		if got != nil {
			t.Fatalf("n=%d: expected no matches, got %d", n, len(got))
		}
	}
}

func TestKickoffBase_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	now := time.Date(2026, 7, 4, 23, 59, 0, 0, loc)

	base := KickoffBase(now)
	if base.Location() != loc {
		t.Fatalf("expected location %v, got %v", loc, base.Location())
	}
	if base.Day() != 4 || base.Hour() != KickoffHour {
		t.Fatalf("unexpected kickoff base: %s", base)
	}
}
