package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/platform/logging"
)

const DefaultUpcomingLimit = 5

type CreateMatchInput struct {
	HomeTeamID  int64
	AwayTeamID  int64
	ScheduledAt time.Time
	Phase       string
	Group       string
}

type MatchFilter struct {
	Status string
}

type MatchService struct {
	matchRepo match.Repository
	teamRepo  team.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(matchRepo match.Repository, teamRepo team.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateMatch schedules a match between two distinct registered teams. Past dates are accepted.
func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	phase, err := match.ParsePhase(input.Phase)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item := match.Match{
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		ScheduledAt: input.ScheduledAt,
		Status:      match.StatusScheduled,
		Phase:       phase,
		Group:       strings.TrimSpace(input.Group),
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team %d does not exist", ErrInvalidInput, teamID)
		}
	}

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", created.ID,
		"home_team_id", created.HomeTeamID,
		"away_team_id", created.AwayTeamID,
		"phase", created.Phase,
	)
	return created, nil
}

// RecordResult overwrites both scores and marks the match finished whatever its prior state.
func (s *MatchService) RecordResult(ctx context.Context, matchID int64, homeGoals, awayGoals int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	if homeGoals < 0 || awayGoals < 0 {
		return match.Match{}, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}
	if homeGoals > match.MaxGoals || awayGoals > match.MaxGoals {
		return match.Match{}, fmt.Errorf("%w: goals must be at most %d", ErrInvalidInput, match.MaxGoals)
	}

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, homeGoals, awayGoals); err != nil {
		return match.Match{}, fmt.Errorf("update match result: %w", err)
	}

	item.HomeGoals = homeGoals
	item.AwayGoals = awayGoals
	item.Status = match.StatusFinished

	s.logger.InfoContext(ctx, "match result recorded", "match_id", matchID, "home_goals", homeGoals, "away_goals", awayGoals)
	return item, nil
}

func (s *MatchService) StartMatch(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartMatch")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Finished() {
		return match.Match{}, fmt.Errorf("%w: match %d is already finished", ErrPrecondition, matchID)
	}
	if item.Status == match.StatusInProgress {
		return item, nil
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, match.StatusInProgress); err != nil {
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}

	item.Status = match.StatusInProgress
	return item, nil
}

func (s *MatchService) ListMatches(ctx context.Context, filter MatchFilter) ([]match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	status, err := match.ParseStatus(filter.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.matchRepo.List(ctx, match.Filter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

// UpcomingMatches returns the earliest scheduled matches, at most limit of them.
func (s *MatchService) UpcomingMatches(ctx context.Context, limit int) ([]match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpcomingMatches")
	defer span.End()

	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	items, err := s.matchRepo.List(ctx, match.Filter{Status: match.StatusScheduled, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	return item, nil
}
