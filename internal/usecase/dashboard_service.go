package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
)

// Dashboard is everything the admin landing page shows.
type Dashboard struct {
	Teams   []team.Summary
	Players []player.Player
	Matches []match.Detail
}

type DashboardService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewDashboardService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
) *DashboardService {
	return &DashboardService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	var out Dashboard
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.ListSummaries(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		out.Teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		out.Players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.List(ctx, match.Filter{})
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		out.Matches = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	return out, nil
}
