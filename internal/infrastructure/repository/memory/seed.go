package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

func SeedTeams(now time.Time) []team.Team {
	return []team.Team{
		{Name: "Colegio San Martin", Color: "Azul", RegisteredAt: now},
		{Name: "Escuela Belgrano", Color: "Rojo", RegisteredAt: now.Add(time.Minute)},
		{Name: "Instituto Sarmiento", Color: "Verde", RegisteredAt: now.Add(2 * time.Minute)},
		{Name: "Normal Mixta", Color: "Blanco", RegisteredAt: now.Add(3 * time.Minute)},
	}
}

// SeedPlayers returns a roster for the team at the given registration index in SeedTeams.
func SeedPlayers(now time.Time) map[int][]player.Player {
	return map[int][]player.Player{
		0: {
			{DNI: "40111222", FirstName: "Lucas", LastName: "Gomez", Position: "Arquero", RegisteredAt: now},
			{DNI: "40111223", FirstName: "Mateo", LastName: "Diaz", Position: "Defensor", RegisteredAt: now},
		},
		1: {
			{DNI: "40222333", FirstName: "Santiago", LastName: "Perez", Position: "Delantero", RegisteredAt: now},
		},
		2: {
			{DNI: "40333444", FirstName: "Tomas", LastName: "Fernandez", Position: "Mediocampista", RegisteredAt: now},
		},
	}
}

// Seed fills an empty store with demo teams and players for the in-memory driver.
func Seed(ctx context.Context, store *Store, now time.Time) error {
	teams := store.Teams()
	players := store.Players()

	rosters := SeedPlayers(now)
	for idx, item := range SeedTeams(now) {
		created, err := teams.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("seed team %s: %w", item.Name, err)
		}
		for _, p := range rosters[idx] {
			teamID := created.ID
			p.TeamID = &teamID
			if _, err := players.Create(ctx, p); err != nil {
				return fmt.Errorf("seed player %s: %w", p.DNI, err)
			}
		}
	}

	return nil
}
