package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
	"github.com/target/mmk-accounts-ui/internal/testutil"
)

var testClock = testutil.FixedTimeFunc(testutil.TestTime())

func TestBuildField(t *testing.T) {
	d := NewDraft()
	d.Values[validation.FieldName] = "Asha"
	d.Values[validation.FieldPassword] = "Secr3t!"
	d.Errors[validation.FieldPassword] = validation.MsgPasswordUpper

	name := buildField(validation.SignupForm, validation.FieldName, d, testClock)
	assert.Equal(t, "Full Name", name.Label)
	assert.Equal(t, "Asha", name.Value)
	assert.True(t, name.Shaped)
	assert.Equal(t, "/signup/validate?field=name", name.Endpoint)
	assert.Equal(t, "#field-name", name.Target)
	assert.False(t, name.Invalid())

	pw := buildField(validation.SignupForm, validation.FieldPassword, d, testClock)
	assert.Empty(t, pw.Value)
	assert.Equal(t, "#error-password", pw.Target)
	assert.True(t, pw.Invalid())

	dob := buildField(validation.ProfileForm, validation.FieldDateOfBirth, d, testClock)
	assert.Equal(t, "1925-06-15", dob.Min)
	assert.Equal(t, "2012-06-15", dob.Max)
	assert.Equal(t, "/dashboard/profile/validate?field=date_of_birth", dob.Endpoint)
}

func TestBuildFields_Order(t *testing.T) {
	fields := buildFields(validation.ProfileForm, NewDraft(), testClock)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, validation.Fields(validation.ProfileForm), names)
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type renderCall struct {
	draft  Draft
	notice string
}

func TestHandleFormSubmit(t *testing.T) {
	valid := signupValues()

	run := func(t *testing.T, values url.Values, submit func(context.Context) error) (*httptest.ResponseRecorder, *renderCall, bool) {
		t.Helper()
		req := formRequest(values)
		require.NoError(t, req.ParseForm())
		rec := httptest.NewRecorder()

		var rendered *renderCall
		succeeded := false
		HandleFormSubmit(FormSubmitOpts{
			W:        rec,
			R:        req,
			Form:     validation.SignupForm,
			Draft:    draftFromForm(req, validation.SignupForm),
			Submit:   submit,
			Fallback: NoticeSignupFailed,
			Render: func(_ http.ResponseWriter, _ *http.Request, d Draft, notice string) {
				rendered = &renderCall{draft: d, notice: notice}
			},
			OnSuccess: func(http.ResponseWriter, *http.Request) { succeeded = true },
			Now:       testClock,
		})
		return rec, rendered, succeeded
	}

	t.Run("invalid draft never submits", func(t *testing.T) {
		values := signupValues()
		values.Set("email", "not-an-email")
		_, rendered, ok := run(t, values, func(context.Context) error {
			t.Fatal("submit must not run")
			return nil
		})
		require.NotNil(t, rendered)
		assert.False(t, ok)
		assert.Equal(t, NoticeFixErrors, rendered.notice)
		assert.Equal(t, validation.MsgEmailInvalid, rendered.draft.Errors[validation.FieldEmail])
		assert.Equal(t, "not-an-email", rendered.draft.Values[validation.FieldEmail])
	})

	t.Run("success", func(t *testing.T) {
		_, rendered, ok := run(t, valid, func(context.Context) error { return nil })
		assert.Nil(t, rendered)
		assert.True(t, ok)
	})

	t.Run("server detail is shown", func(t *testing.T) {
		_, rendered, _ := run(t, valid, func(context.Context) error {
			return apperrors.Validation("rejected").WithDetail("Email already registered")
		})
		require.NotNil(t, rendered)
		assert.Equal(t, "Email already registered", rendered.notice)
	})

	t.Run("fallback without detail", func(t *testing.T) {
		_, rendered, _ := run(t, valid, func(context.Context) error { return errors.New("dial tcp: refused") })
		require.NotNil(t, rendered)
		assert.Equal(t, NoticeSignupFailed, rendered.notice)
	})

	t.Run("field error lands on the field", func(t *testing.T) {
		_, rendered, _ := run(t, valid, func(context.Context) error {
			return apperrors.ValidationField(validation.FieldDateOfBirth, "invalid date").WithDetail("Enter a valid date")
		})
		require.NotNil(t, rendered)
		assert.Equal(t, "Enter a valid date", rendered.draft.Errors[validation.FieldDateOfBirth])
		assert.Equal(t, "Enter a valid date", rendered.notice)
	})

	t.Run("canceled request", func(t *testing.T) {
		rec, rendered, _ := run(t, valid, func(context.Context) error { return context.Canceled })
		assert.Nil(t, rendered)
		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})
}

func TestProfileDraftNormalizesDate(t *testing.T) {
	p := testutil.NewProfile().Build()
	p.DateOfBirth = "1990-04-02T00:00:00Z"

	d := profileDraft(p)
	assert.Equal(t, "1990-04-02", d.Values[validation.FieldDateOfBirth])
	assert.Equal(t, p.Name, d.Values[validation.FieldName])
	_, hasPassword := d.Values[validation.FieldPassword]
	assert.False(t, hasPassword)
}
