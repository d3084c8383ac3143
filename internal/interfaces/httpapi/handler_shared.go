package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/platform/logging"
	"github.com/riskibarqy/school-games/internal/usecase"
)

const (
	publicDateTimeLayout = "2006-01-02 15:04"
	formDateTimeLayout   = "2006-01-02T15:04"
)

type Handler struct {
	authService      *usecase.AuthService
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	matchService     *usecase.MatchService
	fixtureService   *usecase.FixtureService
	dashboardService *usecase.DashboardService
	location         *time.Location
	cookieSecure     bool
	logger           *logging.Logger
	validator        *validator.Validate
}

// HandlerOptions carries presentation settings that do not belong to any service.
type HandlerOptions struct {
	// Location is used to display and parse match times.
	Location     *time.Location
	CookieSecure bool
}

func NewHandler(
	authService *usecase.AuthService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	fixtureService *usecase.FixtureService,
	dashboardService *usecase.DashboardService,
	opts HandlerOptions,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	location := opts.Location
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		authService:      authService,
		teamService:      teamService,
		playerService:    playerService,
		matchService:     matchService,
		fixtureService:   fixtureService,
		dashboardService: dashboardService,
		location:         location,
		cookieSecure:     opts.CookieSecure,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON decodes a strict JSON body and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required,max=200"`
}

type teamRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=50"`
}

type assignLeaderRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

type createPlayerRequest struct {
	DNI       string `json:"dni" validate:"required,max=20"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Position  string `json:"position" validate:"omitempty,max=50"`
	TeamID    *int64 `json:"team_id" validate:"omitempty,gte=0"`
	IsLeader  bool   `json:"is_leader"`
}

type updatePlayerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Position  string `json:"position" validate:"omitempty,max=50"`
	TeamID    *int64 `json:"team_id" validate:"omitempty,gte=0"`
	IsLeader  bool   `json:"is_leader"`
}

type createMatchRequest struct {
	HomeTeamID  int64  `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID  int64  `json:"away_team_id" validate:"required,gt=0"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
	Phase       string `json:"phase" validate:"omitempty,max=20"`
	Group       string `json:"group" validate:"omitempty,max=10"`
}

type recordResultRequest struct {
	HomeGoals *int `json:"home_goals" validate:"required,gte=0,lte=999"`
	AwayGoals *int `json:"away_goals" validate:"required,gte=0,lte=999"`
}

type loginResponseDTO struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

type publicTeamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	PlayerCount int    `json:"player_count"`
}

type publicMatchDTO struct {
	ID           int64  `json:"id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
	ScheduledAt  string `json:"scheduled_at"`
	HomeGoals    int    `json:"home_goals"`
	AwayGoals    int    `json:"away_goals"`
	Status       string `json:"status"`
	Phase        string `json:"phase"`
}

type publicPlayerDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position,omitempty"`
	IsLeader  bool   `json:"is_leader"`
}

type publicTeamDetailDTO struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Color        string            `json:"color"`
	RegisteredAt string            `json:"registered_at"`
	Leader       *publicPlayerDTO  `json:"leader,omitempty"`
	Players      []publicPlayerDTO `json:"players"`
}

type teamDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	LeaderPlayerID *int64 `json:"leader_player_id"`
	RegisteredAt   string `json:"registered_at"`
}

type playerDTO struct {
	ID           int64  `json:"id"`
	DNI          string `json:"dni"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	TeamID       *int64 `json:"team_id"`
	IsLeader     bool   `json:"is_leader"`
	RegisteredAt string `json:"registered_at"`
}

type matchDTO struct {
	ID          int64  `json:"id"`
	HomeTeamID  int64  `json:"home_team_id"`
	AwayTeamID  int64  `json:"away_team_id"`
	ScheduledAt string `json:"scheduled_at"`
	HomeGoals   int    `json:"home_goals"`
	AwayGoals   int    `json:"away_goals"`
	Status      string `json:"status"`
	Phase       string `json:"phase"`
	Group       string `json:"group,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type fixtureResultDTO struct {
	TeamCount  int        `json:"team_count"`
	MatchCount int        `json:"match_count"`
	Matches    []matchDTO `json:"matches"`
}

type dashboardDTO struct {
	Teams   []publicTeamDTO  `json:"teams"`
	Players []playerDTO      `json:"players"`
	Matches []publicMatchDTO `json:"matches"`
}

func teamSummaryToPublicDTO(v team.Summary) publicTeamDTO {
	return publicTeamDTO{
		ID:          v.ID,
		Name:        v.Name,
		Color:       v.Color,
		PlayerCount: v.PlayerCount,
	}
}

func (h *Handler) matchDetailToPublicDTO(v match.Detail) publicMatchDTO {
	return publicMatchDTO{
		ID:           v.ID,
		HomeTeamName: v.HomeTeamName,
		AwayTeamName: v.AwayTeamName,
		ScheduledAt:  v.ScheduledAt.In(h.location).Format(publicDateTimeLayout),
		HomeGoals:    v.HomeGoals,
		AwayGoals:    v.AwayGoals,
		Status:       string(v.Status),
		Phase:        string(v.Phase),
	}
}

func playerToPublicDTO(v player.Player) publicPlayerDTO {
	return publicPlayerDTO{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Position:  v.Position,
		IsLeader:  v.IsLeader,
	}
}

func teamDetailsToPublicDTO(v usecase.TeamDetails) publicTeamDetailDTO {
	out := publicTeamDetailDTO{
		ID:           v.Team.ID,
		Name:         v.Team.Name,
		Color:        v.Team.Color,
		RegisteredAt: v.Team.RegisteredAt.UTC().Format(time.RFC3339),
		Players:      make([]publicPlayerDTO, 0, len(v.Players)),
	}
	if v.Leader != nil {
		leader := playerToPublicDTO(*v.Leader)
		out.Leader = &leader
	}
	for _, item := range v.Players {
		out.Players = append(out.Players, playerToPublicDTO(item))
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		Name:           v.Name,
		Color:          v.Color,
		LeaderPlayerID: v.LeaderPlayerID,
		RegisteredAt:   v.RegisteredAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		DNI:          v.DNI,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Phone:        v.Phone,
		Position:     v.Position,
		TeamID:       v.TeamID,
		IsLeader:     v.IsLeader,
		RegisteredAt: v.RegisteredAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		ScheduledAt: v.ScheduledAt.In(h.location).Format(time.RFC3339),
		HomeGoals:   v.HomeGoals,
		AwayGoals:   v.AwayGoals,
		Status:      string(v.Status),
		Phase:       string(v.Phase),
		Group:       v.Group,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) fixtureResultToDTO(v usecase.FixtureResult) fixtureResultDTO {
	out := fixtureResultDTO{
		TeamCount:  v.TeamCount,
		MatchCount: len(v.Matches),
		Matches:    make([]matchDTO, 0, len(v.Matches)),
	}
	for _, item := range v.Matches {
		out.Matches = append(out.Matches, h.matchToDTO(item))
	}
	return out
}

func (h *Handler) dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	out := dashboardDTO{
		Teams:   make([]publicTeamDTO, 0, len(v.Teams)),
		Players: make([]playerDTO, 0, len(v.Players)),
		Matches: make([]publicMatchDTO, 0, len(v.Matches)),
	}
	for _, item := range v.Teams {
		out.Teams = append(out.Teams, teamSummaryToPublicDTO(item))
	}
	for _, item := range v.Players {
		out.Players = append(out.Players, playerToDTO(item))
	}
	for _, item := range v.Matches {
		out.Matches = append(out.Matches, h.matchDetailToPublicDTO(item))
	}
	return out
}

// parseScheduledAt accepts the datetime-local form layout, the public display layout and RFC 3339.
func (h *Handler) parseScheduledAt(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{formDateTimeLayout, publicDateTimeLayout} {
		if parsed, err := time.ParseInLocation(layout, value, h.location); err == nil {
			return parsed, nil
		}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid scheduled_at %q", usecase.ErrInvalidInput, raw)
	}
	return parsed, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

// parseOptionalID reads a form value where empty or zero means "none".
func parseOptionalID(raw string) (*int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "0" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 0 {
		return nil, fmt.Errorf("%w: invalid id %q", usecase.ErrInvalidInput, raw)
	}
	return &parsed, nil
}

func parseFormInt(raw, field string) (int64, error) {
	value := strings.TrimSpace(raw)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, field, raw)
	}
	return parsed, nil
}

func formBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}
