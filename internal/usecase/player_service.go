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

type CreatePlayerInput struct {
	DNI       string
	FirstName string
	LastName  string
	Phone     string
	Position  string
	TeamID    *int64
	IsLeader  bool
}

// UpdatePlayerInput carries every mutable field. The DNI cannot be changed.
type UpdatePlayerInput struct {
	FirstName string
	LastName  string
	Phone     string
	Position  string
	TeamID    *int64
	IsLeader  bool
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	teamID, err := s.resolveTeam(ctx, input.TeamID)
	if err != nil {
		return player.Player{}, err
	}

	item := player.Player{
		DNI:          strings.TrimSpace(input.DNI),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Position:     strings.TrimSpace(input.Position),
		TeamID:       teamID,
		IsLeader:     input.IsLeader,
		RegisteredAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.playerRepo.GetByDNI(ctx, item.DNI)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by dni: %w", err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, player.ErrDuplicateDNI, item.DNI)
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, player.ErrDuplicateDNI) {
			return player.Player{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, player.ErrDuplicateDNI, item.DNI)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered", "player_id", created.ID, "team_id", created.TeamID)
	return created, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, playerID int64, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	item, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	teamID, err := s.resolveTeam(ctx, input.TeamID)
	if err != nil {
		return player.Player{}, err
	}

	item.FirstName = strings.TrimSpace(input.FirstName)
	item.LastName = strings.TrimSpace(input.LastName)
	item.Phone = strings.TrimSpace(input.Phone)
	item.Position = strings.TrimSpace(input.Position)
	item.TeamID = teamID
	item.IsLeader = input.IsLeader
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return s.GetPlayer(ctx, playerID)
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

// resolveTeam treats a missing or zero team id as "unassigned"; any other id must exist.
func (s *PlayerService) resolveTeam(ctx context.Context, teamID *int64) (*int64, error) {
	if teamID == nil || *teamID == 0 {
		return nil, nil
	}
	if *teamID < 0 {
		return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, *teamID)
	if err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team %d does not exist", ErrInvalidInput, *teamID)
	}

	id := *teamID
	return &id, nil
}
