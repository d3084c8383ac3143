package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/infrastructure/repository/memory"
)

var errPasswordMismatch = errors.New("password mismatch")

// plainHasher keeps tests fast; the bcrypt hasher has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain$" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if !strings.HasPrefix(hash, "plain$") || strings.TrimPrefix(hash, "plain$") != password {
		return errPasswordMismatch
	}
	return nil
}

type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("token-%03d", g.next), nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func mustCreateTeam(t *testing.T, store *memory.Store, name string) team.Team {
	t.Helper()

	created, err := store.Teams().Create(context.Background(), team.Team{Name: name, RegisteredAt: time.Now()})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return created
}

func mustCreatePlayer(t *testing.T, store *memory.Store, dni string, teamID *int64) player.Player {
	t.Helper()

	created, err := store.Players().Create(context.Background(), player.Player{
		DNI:       dni,
		FirstName: "First " + dni,
		LastName:  "Last " + dni,
		TeamID:    teamID,
	})
	if err != nil {
		t.Fatalf("create player %s: %v", dni, err)
	}
	return created
}
