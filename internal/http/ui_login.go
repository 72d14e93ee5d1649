package httpx

import (
	"net/http"
	"strings"

	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
)

//nolint:gochecknoglobals // static page metadata
var loginMeta = PageMeta{
	Title:       "Sign in",
	PageTitle:   "Sign in to your account",
	CurrentPage: PageLogin,
}

// LoginPage renders the login form. Signed-in users continue to their
// redirect target.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	target := postLoginPath(r.URL.Query().Get("redirect_uri"))
	if CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, loginForm{RedirectURI: target}, "")
}

type loginForm struct {
	Email       string
	RedirectURI string
	Errors      map[string]string
}

// LoginSubmit exchanges the submitted credentials for a session.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:       strings.TrimSpace(r.PostFormValue(validation.FieldEmail)),
		RedirectURI: postLoginPath(r.PostFormValue("redirect_uri")),
		Errors:      map[string]string{},
	}
	password := r.PostFormValue(validation.FieldPassword)
	if form.Email == "" {
		form.Errors[validation.FieldEmail] = validation.MsgEmailRequired
	}
	if password == "" {
		form.Errors[validation.FieldPassword] = validation.MsgPasswordRequired
	}
	if len(form.Errors) > 0 {
		h.renderLogin(w, r, form, NoticeFixErrors)
		return
	}

	sess := h.Sessions.New()
	if err := sess.Login(r.Context(), form.Email, password); err != nil {
		if apperrors.IsCanceled(err) {
			http.Error(w, "request canceled", http.StatusRequestTimeout)
			return
		}
		h.logger().InfoContext(r.Context(), "login failed",
			"error_code", string(apperrors.GetCode(err)), "error", err)
		h.renderLogin(w, r, form, apperrors.UserMessage(err, NoticeLoginFailed))
		return
	}
	// The token was accepted but the profile could not be loaded; the slot is
	// already gone, so there is no session to hand over.
	if !sess.Authenticated() {
		h.renderLogin(w, r, form, NoticeLoginFailed)
		return
	}

	h.startSession(w, r, sess)
	redirect(w, r, form.RedirectURI)
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, form loginForm, notice string) {
	data := NewTemplateData(r, loginMeta).
		WithError(notice).
		WithFieldErrors(form.Errors).
		With("Email", form.Email).
		With("RedirectURI", form.RedirectURI).
		Build()
	h.renderPage(w, r, data)
}

// postLoginPath resolves where to go after signing in: a safe relative
// redirect_uri, or the dashboard.
func postLoginPath(candidate string) string {
	p := safeRedirectPath(candidate)
	if p == "/" || strings.HasPrefix(p, pathLogin) || strings.HasPrefix(p, pathSignup) {
		return pathDashboard
	}
	return p
}
