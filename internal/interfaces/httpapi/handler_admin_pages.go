package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/player"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/usecase"
)

var phaseOptions = []string{
	string(match.PhaseGroups),
	string(match.PhaseRoundOf16),
	string(match.PhaseQuarterfinal),
	string(match.PhaseSemifinal),
	string(match.PhaseFinal),
}

type adminPlayerRow struct {
	ID       int64
	DNI      string
	Name     string
	Phone    string
	Position string
	TeamName string
	IsLeader bool
}

type adminView struct {
	Username string
	Teams    []team.Summary
	Players  []adminPlayerRow
	Matches  []matchView
	Phases   []string
}

func (h *Handler) AdminDashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDashboardPage")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}

	principal, _ := principalFromContext(ctx)
	h.renderPage(ctx, w, http.StatusOK, "admin", pageData{
		Title:    "Admin",
		Flash:    h.popFlash(w, r),
		LoggedIn: true,
		Content: adminView{
			Username: principal.Username,
			Teams:    dashboard.Teams,
			Players:  adminPlayerRows(dashboard.Teams, dashboard.Players),
			Matches:  h.matchViews(dashboard.Matches),
			Phases:   phaseOptions,
		},
	})
}

func adminPlayerRows(teams []team.Summary, players []player.Player) []adminPlayerRow {
	teamNames := make(map[int64]string, len(teams))
	for _, item := range teams {
		teamNames[item.ID] = item.Name
	}

	out := make([]adminPlayerRow, 0, len(players))
	for _, item := range players {
		row := adminPlayerRow{
			ID:       item.ID,
			DNI:      item.DNI,
			Name:     item.FullName(),
			Phone:    item.Phone,
			Position: item.Position,
			IsLeader: item.IsLeader,
		}
		if item.TeamID != nil {
			row.TeamName = teamNames[*item.TeamID]
		}
		out = append(out, row)
	}
	return out
}

func (h *Handler) AdminCreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateTeam")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	req := teamRequest{
		Name:  r.PostForm.Get("name"),
		Color: strings.TrimSpace(r.PostForm.Get("color")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{Name: req.Name, Color: req.Color})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, fmt.Sprintf("Team %q registered.", created.Name))
}

func (h *Handler) AdminAssignLeader(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminAssignLeader")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	playerID, err := parseFormInt(r.PostForm.Get("player_id"), "player_id")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	updated, err := h.teamService.AssignLeader(ctx, teamID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign leader failed", "team_id", teamID, "player_id", playerID, "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, fmt.Sprintf("Leader of %q updated.", updated.Name))
}

func (h *Handler) AdminCreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreatePlayer")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	teamID, err := parseOptionalID(r.PostForm.Get("team_id"))
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	req := createPlayerRequest{
		DNI:       strings.TrimSpace(r.PostForm.Get("dni")),
		FirstName: strings.TrimSpace(r.PostForm.Get("first_name")),
		LastName:  strings.TrimSpace(r.PostForm.Get("last_name")),
		Phone:     strings.TrimSpace(r.PostForm.Get("phone")),
		Position:  strings.TrimSpace(r.PostForm.Get("position")),
		TeamID:    teamID,
		IsLeader:  formBool(r.PostForm.Get("is_leader")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	created, err := h.playerService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Position:  req.Position,
		TeamID:    req.TeamID,
		IsLeader:  req.IsLeader,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "dni", req.DNI, "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, fmt.Sprintf("Player %s registered.", created.FullName()))
}

func (h *Handler) AdminCreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateMatch")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	homeTeamID, err := parseFormInt(r.PostForm.Get("home_team_id"), "home_team_id")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	awayTeamID, err := parseFormInt(r.PostForm.Get("away_team_id"), "away_team_id")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	req := createMatchRequest{
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		ScheduledAt: r.PostForm.Get("scheduled_at"),
		Phase:       r.PostForm.Get("phase"),
		Group:       strings.TrimSpace(r.PostForm.Get("group")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	scheduledAt, err := h.parseScheduledAt(req.ScheduledAt)
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	if _, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		ScheduledAt: scheduledAt,
		Phase:       req.Phase,
		Group:       req.Group,
	}); err != nil {
		h.logger.WarnContext(ctx, "create match failed", "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, "Match scheduled.")
}

func (h *Handler) AdminStartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminStartMatch")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	if _, err := h.matchService.StartMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "start match failed", "match_id", matchID, "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, "Match started.")
}

func (h *Handler) AdminRecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRecordResult")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	homeGoals, err := parseFormInt(r.PostForm.Get("home_goals"), "home_goals")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}
	awayGoals, err := parseFormInt(r.PostForm.Get("away_goals"), "away_goals")
	if err != nil {
		h.redirectWithError(ctx, w, r, err)
		return
	}

	recorded, err := h.matchService.RecordResult(ctx, matchID, int(homeGoals), int(awayGoals))
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "match_id", matchID, "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, fmt.Sprintf("Result saved: %d - %d.", recorded.HomeGoals, recorded.AwayGoals))
}

func (h *Handler) AdminGenerateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGenerateFixture")
	defer span.End()

	result, err := h.fixtureService.Generate(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixture failed", "error", err)
		h.redirectWithError(ctx, w, r, err)
		return
	}

	h.redirectWithSuccess(w, r, fmt.Sprintf("Fixture generated: %d matches for %d teams.", len(result.Matches), result.TeamCount))
}

func (h *Handler) redirectWithSuccess(w http.ResponseWriter, r *http.Request, message string) {
	h.setFlash(w, flashSuccess, message)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// redirectWithError turns expected failures into a flash message; unexpected ones get a generic text.
func (h *Handler) redirectWithError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	message := "Something went wrong. Please try again."
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrPrecondition):
		message = err.Error()
	default:
		h.logger.ErrorContext(ctx, "admin action failed", "path", r.URL.Path, "error", err)
	}
	h.setFlash(w, flashError, message)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
