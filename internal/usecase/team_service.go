package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/platform/logging"
)

type CreateTeamInput struct {
	Name  string
	Color string
}

type UpdateTeamInput struct {
	Name  string
	Color string
}

type TeamDetails struct {
	Team    team.Team
	Players []player.Player
	Leader  *player.Player
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	item := team.Team{
		Name:         strings.TrimSpace(input.Name),
		Color:        strings.TrimSpace(input.Color),
		RegisteredAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered", "team_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, teamID int64, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateTeam")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Color = strings.TrimSpace(input.Color)
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return item, nil
}

// AssignLeader makes playerID the leader of teamID. The player must already be on the team.
func (s *TeamService) AssignLeader(ctx context.Context, teamID, playerID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AssignLeader")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if playerID <= 0 {
		return team.Team{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	if err := s.teamRepo.AssignLeader(ctx, teamID, playerID); err != nil {
		if errors.Is(err, team.ErrLeaderNotMember) {
			return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return team.Team{}, fmt.Errorf("assign team leader: %w", err)
	}

	item.LeaderPlayerID = &playerID
	s.logger.InfoContext(ctx, "team leader assigned", "team_id", teamID, "player_id", playerID)
	return item, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return TeamDetails{}, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list team players: %w", err)
	}

	details := TeamDetails{Team: item, Players: roster}
	if item.LeaderPlayerID != nil {
		for idx := range roster {
			if roster[idx].ID == *item.LeaderPlayerID {
				leader := roster[idx]
				details.Leader = &leader
				break
			}
		}
	}

	return details, nil
}

// ListTeams returns every team in registration order with a freshly counted roster size.
func (s *TeamService) ListTeams(ctx context.Context) ([]team.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return item, nil
}
