package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/fixture"
	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/platform/logging"
)

type FixtureResult struct {
	TeamCount int
	Matches   []match.Match
}

type FixtureService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	location  *time.Location
	logger    *logging.Logger
	now       func() time.Time
}

func NewFixtureService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	location *time.Location,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.Local
	}

	return &FixtureService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate discards every existing match and replaces it with a fresh group-phase round robin.
// With fewer than two teams nothing is touched.
func (s *FixtureService) Generate(ctx context.Context) (FixtureResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Generate")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return FixtureResult{}, fmt.Errorf("list teams: %w", err)
	}

	planned, err := fixture.GenerateRoundRobin(teams, s.now().In(s.location))
	if err != nil {
		if errors.Is(err, fixture.ErrNotEnoughTeams) {
			return FixtureResult{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
		return FixtureResult{}, fmt.Errorf("generate round robin: %w", err)
	}

	stored, err := s.matchRepo.ReplaceAll(ctx, planned)
	if err != nil {
		return FixtureResult{}, fmt.Errorf("replace matches: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture generated", "teams", len(teams), "matches", len(stored))
	return FixtureResult{TeamCount: len(teams), Matches: stored}, nil
}
