package httpx

import (
	"context"
	"net/http"

	"github.com/target/mmk-accounts-ui/internal/domain/account"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
	"github.com/target/mmk-accounts-ui/internal/service"
)

const fieldIsAdmin = "is_admin"

//nolint:gochecknoglobals // static page metadata
var signupMeta = PageMeta{
	Title:       "Create your account",
	PageTitle:   "Create your account",
	CurrentPage: PageSignup,
}

// SignupPage renders the empty signup form. Signed-in users go straight to
// the dashboard.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	if CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, pathDashboard, http.StatusSeeOther)
		return
	}
	h.renderSignup(w, r, NewDraft(), "")
}

// SignupSubmit validates the signup form and creates the account.
func (h *UIHandlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	d := draftFromForm(r, validation.SignupForm)
	if r.PostFormValue(fieldIsAdmin) != "" {
		d.Values[fieldIsAdmin] = "on"
	}
	sess := h.Sessions.New()

	HandleFormSubmit(FormSubmitOpts{
		W:     w,
		R:     r,
		Form:  validation.SignupForm,
		Draft: d,
		Submit: func(ctx context.Context) error {
			return sess.Signup(ctx, signupRequestFromDraft(d))
		},
		Fallback: NoticeSignupFailed,
		Render:   h.renderSignup,
		OnSuccess: func(w http.ResponseWriter, r *http.Request) {
			h.startSession(w, r, sess)
			setFlash(w, r, noticeSuccess, NoticeSignupOK)
			redirect(w, r, pathDashboard)
		},
		Now:    h.clock(),
		Logger: h.logger(),
	})
}

// SignupValidate serves live validation for one signup field.
func (h *UIHandlers) SignupValidate(w http.ResponseWriter, r *http.Request) {
	h.validateField(w, r, validation.SignupForm)
}

func (h *UIHandlers) renderSignup(w http.ResponseWriter, r *http.Request, d Draft, notice string) {
	data := NewTemplateData(r, signupMeta).
		WithError(notice).
		WithFieldErrors(d.Errors).
		With("Fields", buildFields(validation.SignupForm, d, h.clock())).
		With("IsAdminChecked", d.Values[fieldIsAdmin] != "").
		Build()
	h.renderPage(w, r, data)
}

func signupRequestFromDraft(d Draft) account.SignupRequest {
	return account.SignupRequest{
		Name:         d.Values[validation.FieldName],
		Email:        d.Values[validation.FieldEmail],
		DateOfBirth:  d.Values[validation.FieldDateOfBirth],
		MobileNumber: d.Values[validation.FieldMobile],
		Password:     d.Values[validation.FieldPassword],
		IsAdmin:      d.Values[fieldIsAdmin] != "",
	}
}

// startSession points the browser at sess and drops the slot of the session
// the request arrived with, if any.
func (h *UIHandlers) startSession(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	if prev := GetSessionFromContext(r.Context()); prev != nil && prev.Key() != "" && prev.Key() != sess.Key() {
		if err := prev.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "discard previous session", "error", err)
		}
	}
	setSessionCookie(w, r, h.Cookies, sess.Key())
}
