package httpapi

import (
	"net/http"

	"github.com/riskibarqy/school-games/internal/domain/match"
	"github.com/riskibarqy/school-games/internal/domain/team"
	"github.com/riskibarqy/school-games/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTeamsAPI answers with a bare JSON array for public consumers.
func (h *Handler) ListTeamsAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsAPI")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]publicTeamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamSummaryToPublicDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamAPI")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamDetailsToPublicDTO(details))
}

func (h *Handler) ListMatchesAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesAPI")
	defer span.End()

	status := r.URL.Query().Get("status")
	matches, err := h.matchService.ListMatches(ctx, usecase.MatchFilter{Status: status})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]publicMatchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, h.matchDetailToPublicDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, items)
}

type indexView struct {
	Teams    []team.Summary
	Upcoming []matchView
}

func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IndexPage")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}
	upcoming, err := h.matchService.UpcomingMatches(ctx, usecase.DefaultUpcomingLimit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list upcoming matches failed", "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}

	h.renderPage(ctx, w, http.StatusOK, "index", pageData{
		Title:    "Home",
		Flash:    h.popFlash(w, r),
		LoggedIn: sessionTokenFromCookie(r) != "",
		Content:  indexView{Teams: teams, Upcoming: h.matchViews(upcoming)},
	})
}

func (h *Handler) FixturePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixturePage")
	defer span.End()

	matches, err := h.matchService.ListMatches(ctx, usecase.MatchFilter{Status: r.URL.Query().Get("status")})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}

	h.renderPage(ctx, w, http.StatusOK, "fixture", pageData{
		Title:    "Fixture",
		LoggedIn: sessionTokenFromCookie(r) != "",
		Content:  struct{ Matches []matchView }{Matches: h.matchViews(matches)},
	})
}

func (h *Handler) TeamsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamsPage")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}

	h.renderPage(ctx, w, http.StatusOK, "teams", pageData{
		Title:    "Teams",
		LoggedIn: sessionTokenFromCookie(r) != "",
		Content:  struct{ Teams []team.Summary }{Teams: teams},
	})
}

func (h *Handler) TeamPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamPage")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		h.renderErrorPage(ctx, w, err)
		return
	}

	details, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		h.renderErrorPage(ctx, w, err)
		return
	}

	h.renderPage(ctx, w, http.StatusOK, "team", pageData{
		Title:    details.Team.Name,
		LoggedIn: sessionTokenFromCookie(r) != "",
		Content:  details,
	})
}

func (h *Handler) matchViews(items []match.Detail) []matchView {
	out := make([]matchView, 0, len(items))
	for _, item := range items {
		out = append(out, matchView{
			ID:           item.ID,
			HomeTeamName: item.HomeTeamName,
			AwayTeamName: item.AwayTeamName,
			ScheduledAt:  item.ScheduledAt.In(h.location).Format(publicDateTimeLayout),
			HomeGoals:    item.HomeGoals,
			AwayGoals:    item.AwayGoals,
			Status:       string(item.Status),
			Phase:        string(item.Phase),
			Group:        item.Group,
			Finished:     item.Finished(),
			Scheduled:    item.Status == match.StatusScheduled,
		})
	}
	return out
}
