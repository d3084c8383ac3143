package httpapi

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = mustParsePages(templateFS)

// mustParsePages pairs every page template with the shared layout.
func mustParsePages(fsys fs.FS) map[string]*template.Template {
	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")
		if name == "layout" {
			continue
		}
		out[name] = template.Must(template.New(name).ParseFS(fsys, "templates/layout.html", page))
	}
	return out
}

type pageData struct {
	Title    string
	Flash    *flashMessage
	LoggedIn bool
	Content  any
}

// renderPage executes the page into a pooled buffer so a template failure never leaves a
// half-written response.
func (h *Handler) renderPage(ctx context.Context, w http.ResponseWriter, status int, page string, data pageData) {
	ctx, span := startSpan(ctx, "httpapi.renderPage")
	defer span.End()

	tmpl, ok := pageTemplates[page]
	if !ok {
		h.logger.ErrorContext(ctx, "unknown page template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		h.logger.ErrorContext(ctx, "render page failed", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderErrorPage(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "Something went wrong. Please try again."
	}
	h.renderPage(ctx, w, mapped.HTTPStatus, "error", pageData{
		Title:   http.StatusText(mapped.HTTPStatus),
		Content: errorView{Status: mapped.HTTPStatus, Message: message},
	})
}

type errorView struct {
	Status  int
	Message string
}

type matchView struct {
	ID           int64
	HomeTeamName string
	AwayTeamName string
	ScheduledAt  string
	HomeGoals    int
	AwayGoals    int
	Status       string
	Phase        string
	Group        string
	Finished     bool
	Scheduled    bool
}
