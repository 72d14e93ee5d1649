package httpx

import (
	"errors"
	"net/http"
)

// Root sends signed-in users to the dashboard and everyone else to login.
func (h *UIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	if CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, pathDashboard, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}

// NotFound renders an HTML 404 page for browsers and a JSON error otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}

	isAuthenticated := CurrentUser(r.Context()) != nil
	data := map[string]any{
		"Title":           "Page Not Found",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": isAuthenticated,
		"ShowLogin":       !isAuthenticated,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil {
		_, _ = w.Write([]byte("Page not found\n"))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		_, _ = w.Write([]byte("Page not found\n"))
	}
}
