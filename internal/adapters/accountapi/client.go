// Package accountapi is the REST client for the remote accounts API.
package accountapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/target/mmk-accounts-ui/internal/domain/account"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/ports"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	maxErrorBodyBytes = 16 * 1024
	maxBodyBytes      = 4 * 1024 * 1024

	// DefaultDetailPath understands {"detail": "..."} and {"detail": [{"msg": "..."}]}.
	DefaultDetailPath = "detail[0].msg || detail || message"
)

var _ ports.AccountAPI = (*Client)(nil)

// Config configures the API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// DetailPath is a JMESPath expression selecting the user-facing message of an error body.
	DetailPath string
	// Transport is the base round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client implements ports.AccountAPI over HTTP.
type Client struct {
	baseURL    string
	timeout    time.Duration
	detailPath string
	transport  http.RoundTripper
	logger     *slog.Logger
	me         singleflight.Group
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("accounts api base URL is required")
	}
	detailPath := strings.TrimSpace(cfg.DetailPath)
	if detailPath == "" {
		detailPath = DefaultDetailPath
	}
	if _, err := jmespath.Compile(detailPath); err != nil {
		return nil, fmt.Errorf("invalid error detail path %q: %w", detailPath, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    base,
		timeout:    timeout,
		detailPath: detailPath,
		transport:  transport,
		logger:     logger.With("component", "accountapi"),
	}, nil
}

// Login posts credentials to /login.
func (c *Client) Login(ctx context.Context, creds account.Credentials) (account.LoginResult, error) {
	var out account.LoginResult
	err := c.do(ctx, call{method: http.MethodPost, path: "/login", body: creds, out: &out})
	return out, err
}

// Signup posts a new account to /signup.
func (c *Client) Signup(ctx context.Context, req account.SignupRequest) (account.SignupResult, error) {
	var out account.SignupResult
	err := c.do(ctx, call{method: http.MethodPost, path: "/signup", body: req, out: &out})
	return out, err
}

// Me fetches the token owner's profile. Concurrent calls for the same token
// share a single request. The shared request is detached from every caller's
// cancellation (the client timeout still bounds it); each caller stops waiting
// when its own ctx is done.
func (c *Client) Me(ctx context.Context, token string) (account.Profile, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.me.DoChan(token, func() (any, error) {
		var out account.Profile
		err := c.do(shared, call{method: http.MethodGet, path: "/me", token: token, out: &out})
		return out, err
	})

	select {
	case <-ctx.Done():
		return account.Profile{}, transportError(ctx.Err(), call{method: http.MethodGet, path: "/me"})
	case res := <-ch:
		if res.Err != nil {
			return account.Profile{}, res.Err
		}
		return res.Val.(account.Profile), nil
	}
}

// UpdateProfile sends the editable fields to PUT /user.
func (c *Client) UpdateProfile(ctx context.Context, token string, upd account.ProfileUpdate) (account.Profile, error) {
	var out account.Profile
	err := c.do(ctx, call{method: http.MethodPut, path: "/user", token: token, body: upd, out: &out})
	return out, err
}

// ListUsers fetches every account from GET /users.
func (c *Client) ListUsers(ctx context.Context, token string) ([]account.Profile, error) {
	var out []account.Profile
	err := c.do(ctx, call{method: http.MethodGet, path: "/users", token: token, out: &out})
	if out == nil && err == nil {
		out = []account.Profile{}
	}
	return out, err
}

type call struct {
	method string
	path   string
	token  string
	body   any
	out    any
}

func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return &http.Client{Timeout: c.timeout, Transport: c.transport}
	}
	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		},
	}
}

func (c *Client) do(ctx context.Context, cl call) error {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient(cl.token).Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "accounts api request failed",
			"method", cl.method, "path", cl.path, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return transportError(err, cl)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "close response body", "path", cl.path, "error", closeErr)
		}
	}()

	c.logger.DebugContext(ctx, "accounts api request",
		"method", cl.method, "path", cl.path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return c.statusError(cl, resp.StatusCode, body)
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(cl.out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", cl.method, cl.path).
			WithStatus(resp.StatusCode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) statusError(cl call, status int, body []byte) error {
	msg := fmt.Sprintf("%s %s returned %d", cl.method, cl.path, status)
	var appErr *apperrors.AppError
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		appErr = apperrors.Validation(msg)
	case status == http.StatusUnauthorized:
		appErr = apperrors.Unauthorized(msg)
	case status == http.StatusForbidden:
		appErr = apperrors.Forbidden(msg)
	case status == http.StatusNotFound:
		appErr = apperrors.NotFound(msg)
	case status == http.StatusConflict:
		appErr = apperrors.Conflict(msg)
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway || status == http.StatusGatewayTimeout:
		appErr = apperrors.Unavailable(msg)
	default:
		appErr = apperrors.Internal(msg)
	}
	return appErr.WithStatus(status).WithDetail(c.extractDetail(body))
}

// extractDetail returns the message the API put in an error body, or "" when
// the body is not JSON or the expression selects nothing printable.
func (c *Client) extractDetail(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.detailPath, data)
	if err != nil {
		return ""
	}
	switch detail := v.(type) {
	case string:
		return strings.TrimSpace(detail)
	case float64:
		return fmt.Sprint(detail)
	default:
		return ""
	}
}

func transportError(err error, cl call) error {
	msg := apperrors.Messagef("%s %s", cl.method, cl.path)
	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.WrapTemplate(err, apperrors.ErrCodeCanceled, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapTemplate(err, apperrors.ErrCodeTimeout, msg)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.WrapTemplate(err, apperrors.ErrCodeTimeout, msg)
	}
	return apperrors.WrapTemplate(err, apperrors.ErrCodeUnavailable, msg)
}
