package httpx

import (
	"context"
	"net/http"

	"github.com/target/mmk-accounts-ui/internal/domain/account"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
	"github.com/target/mmk-accounts-ui/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	dashboardMeta = PageMeta{
		Title:       "Dashboard",
		PageTitle:   "Profile Information",
		CurrentPage: PageDashboard,
	}
	usersMeta = PageMeta{
		Title:       "Registered Users",
		PageTitle:   "Registered Users",
		CurrentPage: PageUsers,
	}
)

// Dashboard renders the profile, read-only or, with ?edit=1, as an edit form
// prefilled from the cached profile.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	if user == nil {
		redirectToLogin(w, r)
		return
	}
	if r.URL.Query().Get("edit") == "" {
		h.renderProfile(w, r, *user, "")
		return
	}
	h.renderProfileForm(w, r, profileDraft(*user), "")
}

// ProfileSubmit validates the edit form and updates the profile.
//
// The draft follows the session: a subscription re-seeds it from every
// profile the session publishes, so the page rendered after a successful
// update shows exactly what the API returned.
func (h *UIHandlers) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil || !sess.Authenticated() {
		redirectToLogin(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	d := draftFromForm(r, validation.ProfileForm)
	upd := profileUpdateFromDraft(d)

	var synced *account.Profile
	unsubscribe := sess.Subscribe(func(st service.SessionState) {
		synced = st.User
	})
	defer unsubscribe()

	HandleFormSubmit(FormSubmitOpts{
		W:     w,
		R:     r,
		Form:  validation.ProfileForm,
		Draft: d,
		Submit: func(ctx context.Context) error {
			return sess.UpdateProfile(ctx, upd)
		},
		Fallback: NoticeProfileFailed,
		Render:   h.renderProfileForm,
		OnSuccess: func(w http.ResponseWriter, r *http.Request) {
			if IsHTMX(r) && synced != nil {
				h.renderProfile(w, r, *synced, NoticeProfileOK)
				return
			}
			setFlash(w, r, noticeSuccess, NoticeProfileOK)
			redirect(w, r, pathDashboard)
		},
		Now:    h.clock(),
		Logger: h.logger(),
	})
}

// ProfileValidate serves live validation for one profile field.
func (h *UIHandlers) ProfileValidate(w http.ResponseWriter, r *http.Request) {
	h.validateField(w, r, validation.ProfileForm)
}

// Users renders the admin user list.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}
	users, err := sess.ListUsers(r.Context())
	if err != nil {
		h.logger().InfoContext(r.Context(), "list users failed", "error", err)
		setFlash(w, r, noticeError, NoticeUsersFailed)
		redirect(w, r, pathDashboard)
		return
	}

	data := NewTemplateData(r, usersMeta).
		With("Users", users).
		Build()
	h.renderPage(w, r, data)
}

// Logout discards the session and returns to the login page.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		if err := sess.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout could not delete token slot", "error", err)
		}
	}
	clearSessionCookie(w, r, h.Cookies)
	setFlash(w, r, noticeSuccess, NoticeLoggedOut)
	redirect(w, r, pathLogin)
}

func (h *UIHandlers) renderProfile(w http.ResponseWriter, r *http.Request, p account.Profile, notice string) {
	data := NewTemplateData(r, dashboardMeta).
		WithNotice(noticeSuccess, notice).
		With("Profile", p).
		With("Editing", false).
		Build()
	h.renderPage(w, r, data)
}

func (h *UIHandlers) renderProfileForm(w http.ResponseWriter, r *http.Request, d Draft, notice string) {
	data := NewTemplateData(r, dashboardMeta).
		WithError(notice).
		WithFieldErrors(d.Errors).
		With("Editing", true).
		With("Fields", buildFields(validation.ProfileForm, d, h.clock())).
		Build()
	h.renderPage(w, r, data)
}

// profileDraft seeds the edit form from a profile. Dates the API returns as
// timestamps are cut to the date input layout.
func profileDraft(p account.Profile) Draft {
	upd := account.UpdateFromProfile(p)
	if dob, err := account.NormalizeDate(upd.DateOfBirth); err == nil {
		upd.DateOfBirth = dob
	}
	d := NewDraft()
	d.Values[validation.FieldName] = upd.Name
	d.Values[validation.FieldEmail] = upd.Email
	d.Values[validation.FieldDateOfBirth] = upd.DateOfBirth
	d.Values[validation.FieldMobile] = upd.MobileNumber
	return d
}

func profileUpdateFromDraft(d Draft) account.ProfileUpdate {
	return account.ProfileUpdate{
		Name:         d.Values[validation.FieldName],
		Email:        d.Values[validation.FieldEmail],
		DateOfBirth:  d.Values[validation.FieldDateOfBirth],
		MobileNumber: d.Values[validation.FieldMobile],
	}
}
