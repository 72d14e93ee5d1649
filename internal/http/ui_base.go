package httpx

import (
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/mmk-accounts-ui/internal/http/ui/viewmodel"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	Sessions SessionOpener
	Cookies  SessionCookieConfig
	// Now drives date of birth rules and bounds; defaults to time.Now.
	Now    validation.Clock
	IsDev  bool // Development mode flag for enhanced error reporting
	Logger *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) clock() validation.Clock {
	if h.Now != nil {
		return h.Now
	}
	return time.Now
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Notice:      noticeFromContext(r.Context()),
	}

	if user := CurrentUser(r.Context()); user != nil {
		layout.IsAuthenticated = true
		layout.IsAdmin = user.IsAdmin
		layout.User = &viewmodel.User{
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		}
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"Errors":          map[string]string{},
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	if layout.Notice != nil {
		data["Notice"] = layout.Notice
	}
	return data
}

// renderPage renders a page with htmx partial support: htmx navigations get
// the document title plus the page content, everything else the full layout.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title, _ := data["Title"].(string)
	// htmx updates document.title from a <title> element in partial swaps.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(
			`<div class="template-error"><h2>Template Rendering Error</h2>` +
				`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
				`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
				`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`,
		)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
