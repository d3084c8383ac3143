package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/school-games/internal/usecase"
)

func (h *Handler) LoginAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoginAPI")
	defer span.End()

	var req loginRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	issued, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login failed", "username", req.Username, "client_ip", resolveClientIP(ctx, r), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setSessionCookie(w, issued.Token, issued.ExpiresAt)
	writeSuccess(ctx, w, http.StatusOK, loginResponseDTO{
		Token:     issued.Token,
		TokenType: "Bearer",
		Username:  issued.Username,
		ExpiresAt: issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// LogoutAPI ends the caller's session. Calling it without a valid session is not an error.
func (h *Handler) LogoutAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogoutAPI")
	defer span.End()

	if err := h.authService.Logout(ctx, sessionTokenFromRequest(r)); err != nil {
		h.logger.ErrorContext(ctx, "admin logout failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.clearSessionCookie(w)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "logged_out"})
}

type loginView struct {
	Username string
	Next     string
	Error    string
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoginPage")
	defer span.End()

	h.renderPage(ctx, w, http.StatusOK, "login", pageData{
		Title:   "Login",
		Flash:   h.popFlash(w, r),
		Content: loginView{Next: safeRedirectTarget(r.URL.Query().Get("next"))},
	})
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoginSubmit")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(ctx, w, err)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	next := safeRedirectTarget(r.PostForm.Get("next"))
	issued, err := h.authService.Login(ctx, username, r.PostForm.Get("password"))
	if err != nil {
		h.logger.WarnContext(ctx, "admin login failed", "username", username, "client_ip", resolveClientIP(ctx, r), "error", err)
		if !errors.Is(err, usecase.ErrUnauthorized) && !errors.Is(err, usecase.ErrInvalidInput) {
			h.renderErrorPage(ctx, w, err)
			return
		}
		h.renderPage(ctx, w, http.StatusUnauthorized, "login", pageData{
			Title:   "Login",
			Content: loginView{Username: username, Next: next, Error: "Invalid username or password."},
		})
		return
	}

	h.setSessionCookie(w, issued.Token, issued.ExpiresAt)
	h.setFlash(w, flashSuccess, "Welcome, "+issued.Username+".")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) LogoutSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogoutSubmit")
	defer span.End()

	if err := h.authService.Logout(ctx, sessionTokenFromCookie(r)); err != nil {
		h.logger.ErrorContext(ctx, "admin logout failed", "error", err)
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeRedirectTarget only allows local admin paths so the login form cannot be used as an open redirect.
func safeRedirectTarget(raw string) string {
	target := strings.TrimSpace(raw)
	if !strings.HasPrefix(target, "/admin") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/admin"
	}
	return target
}
