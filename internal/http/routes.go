package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	accountsui "github.com/target/mmk-accounts-ui"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions SessionOpener
	Cookies  SessionCookieConfig
	// Health probes the token store backend for /healthz (optional).
	Health HealthCheck
	// TemplateFS overrides the template source (optional; tests).
	TemplateFS fs.FS
	// Now drives date of birth rules (optional; defaults to time.Now).
	Now    validation.Clock
	IsDev  bool         // Serve templates and static files from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the HTTP handler for the accounts UI.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil {
		return nil, errors.New("router: Sessions is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{
		T:        tr,
		Sessions: services.Sessions,
		Cookies:  services.Cookies,
		Now:      services.Now,
		IsDev:    services.IsDev,
		Logger:   logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(services.Health))
	mux.Handle("HEAD /healthz", healthHandler(services.Health))
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	chain := uiChain{
		csrf:    CSRFProtection(CSRFConfig{CookieDomain: services.Cookies.Domain}),
		flash:   Flash(),
		session: LoadSession(services.Sessions, services.Cookies),
	}
	registerUIRoutes(mux, ui, chain)

	handler := &notFoundHandler{
		mux:      mux,
		notFound: chain.page(http.HandlerFunc(ui.NotFound)),
		logger:   logger,
	}
	return BrowserDetection()(handler), nil
}

// uiChain is the middleware stack shared by browser pages: CSRF runs first so
// forged posts never reach the session or the API.
type uiChain struct {
	csrf    func(http.Handler) http.Handler
	flash   func(http.Handler) http.Handler
	session func(http.Handler) http.Handler
}

func (c uiChain) page(h http.Handler) http.Handler {
	return c.csrf(c.flash(c.session(h)))
}

func (c uiChain) protected(h http.Handler) http.Handler {
	return c.page(RequireSession()(h))
}

func (c uiChain) admin(h http.Handler) http.Handler {
	return c.page(RequireSession()(RequireAdmin()(h)))
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, c uiChain) {
	mux.Handle("GET /{$}", c.page(http.HandlerFunc(h.Root)))

	mux.Handle("GET /login", c.page(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", c.page(http.HandlerFunc(h.LoginSubmit)))

	mux.Handle("GET /signup", c.page(http.HandlerFunc(h.SignupPage)))
	mux.Handle("POST /signup", c.page(http.HandlerFunc(h.SignupSubmit)))
	mux.Handle("POST /signup/validate", c.page(http.HandlerFunc(h.SignupValidate)))

	mux.Handle("GET /dashboard", c.protected(http.HandlerFunc(h.Dashboard)))
	mux.Handle("POST /dashboard/profile", c.protected(http.HandlerFunc(h.ProfileSubmit)))
	mux.Handle("POST /dashboard/profile/validate", c.protected(http.HandlerFunc(h.ProfileValidate)))
	mux.Handle("GET /dashboard/users", c.admin(http.HandlerFunc(h.Users)))

	mux.Handle("POST /logout", c.page(http.HandlerFunc(h.Logout)))
}

func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(accountsui.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* from disk in dev mode (hot reload) and from
// the embedded FS otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	sub, err := fs.Sub(accountsui.StaticFS, "frontend/static")
	if err != nil {
		logger.Error("failed to create sub-filesystem for static assets", slog.Any("error", err))
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(sub))), true)
}

func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and renders our own 404 page.
type notFoundHandler struct {
	mux      *http.ServeMux
	notFound http.Handler
	logger   *slog.Logger
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only requests no pattern matches are buffered; everything else streams.
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status == http.StatusNotFound && !strings.HasPrefix(r.URL.Path, "/static/") {
		h.notFound.ServeHTTP(w, r)
		return
	}
	cw.flushTo(w, h.logger)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter, logger *slog.Logger) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		logger.Error("failed to write captured response", slog.Any("error", err))
	}
}
