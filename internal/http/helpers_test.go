package httpx

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/target/mmk-accounts-ui/internal/adapters/devapi"
	"github.com/target/mmk-accounts-ui/internal/adapters/memstore"
	"github.com/target/mmk-accounts-ui/internal/service"
	"github.com/target/mmk-accounts-ui/internal/testutil"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "Adm1n!pass"
)

// RequireTemplateRenderer parses the real templates or fails the test.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromTest)})
	require.NoError(t, err)
	return tr
}

// testApp runs the full router against the in-process dev API and an
// in-memory token store, driven by a cookie-keeping client.
type testApp struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	api    *devapi.API
	tokens *memstore.TokenStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api, err := devapi.New(devapi.Config{AdminEmail: testAdminEmail, AdminPassword: testAdminPassword})
	require.NoError(t, err)
	tokens := memstore.NewTokenStore(memstore.DefaultConfig())
	sessions := service.NewSessionService(service.SessionServiceOptions{
		API:        api,
		Tokens:     tokens,
		DefaultTTL: time.Hour,
	})

	handler, err := NewRouter(RouterServices{
		Sessions:   sessions,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Now:        testutil.FixedTimeFunc(testutil.TestTime()),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{t: t, srv: srv, client: client, api: api, tokens: tokens}
}

func (a *testApp) do(req *http.Request) *http.Response {
	a.t.Helper()
	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	a.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *testApp) newRequest(method, path string, body io.Reader) *http.Request {
	a.t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, body)
	require.NoError(a.t, err)
	return req
}

func (a *testApp) get(path string) *http.Response {
	a.t.Helper()
	return a.do(a.newRequest(http.MethodGet, path, nil))
}

func (a *testApp) getHTMX(path string) *http.Response {
	a.t.Helper()
	req := a.newRequest(http.MethodGet, path, nil)
	req.Header.Set("Hx-Request", "true")
	return a.do(req)
}

// csrfToken returns the token from the cookie jar, fetching a page first
// when the jar has none yet.
func (a *testApp) csrfToken() string {
	a.t.Helper()
	if tok := a.cookie(DefaultCSRFCookieName); tok != "" {
		return tok
	}
	a.get(pathLogin)
	tok := a.cookie(DefaultCSRFCookieName)
	require.NotEmpty(a.t, tok, "expected a csrf cookie after GET /login")
	return tok
}

func (a *testApp) cookie(name string) string {
	u, err := url.Parse(a.srv.URL)
	require.NoError(a.t, err)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// postForm submits values as a regular browser form with the csrf field set.
func (a *testApp) postForm(path string, values url.Values) *http.Response {
	a.t.Helper()
	if values == nil {
		values = url.Values{}
	}
	values.Set(DefaultCSRFCookieName, a.csrfToken())
	req := a.newRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// postHTMX submits values the way htmx does, with the token in the header.
func (a *testApp) postHTMX(path string, values url.Values) *http.Response {
	a.t.Helper()
	token := a.csrfToken()
	req := a.newRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Hx-Request", "true")
	req.Header.Set(DefaultCSRFHeaderName, token)
	return a.do(req)
}

func (a *testApp) login(email, password string) {
	a.t.Helper()
	resp := a.postForm(pathLogin, url.Values{"email": {email}, "password": {password}})
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode, "login should redirect")
}

func (a *testApp) loginAdmin() { a.login(testAdminEmail, testAdminPassword) }

// signupUser registers the default test user and leaves the client signed in.
func (a *testApp) signupUser() {
	a.t.Helper()
	resp := a.postForm(pathSignup, signupValues())
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode, "signup should redirect")
}

func signupValues() url.Values {
	req := testutil.ValidSignup()
	return url.Values{
		"name":          {req.Name},
		"email":         {req.Email},
		"date_of_birth": {req.DateOfBirth},
		"mobile_number": {req.MobileNumber},
		"password":      {req.Password},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

// findByID returns the first element whose id attribute equals id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
