package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := new(bool)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	})
	return CSRFProtection(CSRFConfig{})(next), called
}

func TestCSRFProtection_IssuesTokenOnGet(t *testing.T) {
	h, called := csrfTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.True(t, *called)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCSRFCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String(), "handler sees the issued token")
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	h, _ := csrfTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, "tok", rec.Body.String())
}

func TestCSRFProtection_Validation(t *testing.T) {
	tests := []struct {
		name      string
		formToken string
		header    string
		wantOK    bool
	}{
		{name: "matching form field", formToken: "tok", wantOK: true},
		{name: "matching header", header: "tok", wantOK: true},
		{name: "wrong form field", formToken: "nope", wantOK: false},
		{name: "wrong header", header: "nope", formToken: "tok", wantOK: false},
		{name: "missing", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, called := csrfTestHandler(t)

			form := url.Values{}
			if tt.formToken != "" {
				form.Set(DefaultCSRFCookieName, tt.formToken)
			}
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
			if tt.header != "" {
				req.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantOK, *called)
			if !tt.wantOK {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			}
		})
	}
}

func TestCSRFProtection_RejectsJSONBodies(t *testing.T) {
	h, called := csrfTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"csrf_token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
