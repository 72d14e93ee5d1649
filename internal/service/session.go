package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/target/mmk-accounts-ui/internal/domain/account"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/observability/metrics"
	"github.com/target/mmk-accounts-ui/internal/observability/statsd"
	"github.com/target/mmk-accounts-ui/internal/ports"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a token and none is persisted.
	ErrNotAuthenticated = apperrors.Unauthorized("not authenticated").WithDetail("No authentication token found")

	// ErrNoToken is returned when signup succeeds without handing back a token.
	ErrNoToken = apperrors.Internal("signup response carried no token").WithDetail("No token received from signup")

	// ErrNoAccessToken is returned when login succeeds without an access token.
	ErrNoAccessToken = apperrors.Internal("login response carried no token").WithDetail("No token received from login")
)

// SessionState is the observable part of a session.
type SessionState struct {
	User    *account.Profile
	Loading bool
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API    ports.AccountAPI
	Tokens ports.TokenStore
	// DefaultTTL bounds slots for tokens without an exp claim.
	DefaultTTL time.Duration
	Metrics    statsd.Sink
	Logger     *slog.Logger
	Now        func() time.Time
}

// SessionService opens per-browser sessions over a shared token store.
type SessionService struct {
	api        ports.AccountAPI
	tokens     ports.TokenStore
	defaultTTL time.Duration
	metrics    statsd.Sink
	logger     *slog.Logger
	now        func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		api:        opts.API,
		tokens:     opts.Tokens,
		defaultTTL: opts.DefaultTTL,
		metrics:    opts.Metrics,
		logger:     logger.With("component", "session"),
		now:        now,
	}
}

// NewSessionKey returns a fresh opaque session key.
func (s *SessionService) NewSessionKey() string {
	return uuid.NewString()
}

// New returns an empty session under a fresh key. Nothing is read from or
// written to the token store until the session logs in or signs up.
func (s *SessionService) New() *Session {
	return s.newSession(s.NewSessionKey())
}

// Open restores the session stored under key. When a token is persisted the
// profile is fetched before Open returns, so callers never see a session that
// holds a token but has not yet resolved its user.
func (s *SessionService) Open(ctx context.Context, key string) *Session {
	sess := s.newSession(key)
	if key == "" {
		return sess
	}

	slot, err := s.tokens.Get(ctx, key)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.WarnContext(ctx, "read token slot", "error", err)
		}
		return sess
	}
	sess.FetchProfile(ctx, slot.Token)
	return sess
}

func (s *SessionService) newSession(key string) *Session {
	return &Session{svc: s, key: key, subs: make(map[int]func(SessionState))}
}

// Session is one browser's view of the signed-in user.
// Concurrency: methods are safe for concurrent use; the last completed
// mutation wins.
type Session struct {
	svc *SessionService
	key string

	// notifyMu orders subscriber delivery; it is taken before mu.
	notifyMu sync.Mutex
	mu       sync.RWMutex
	user     *account.Profile
	token    string
	loading  bool
	subs     map[int]func(SessionState)
	nextSub  int
}

// Key returns the session key the token slot is stored under.
func (s *Session) Key() string { return s.key }

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// User returns the cached profile, or nil.
func (s *Session) User() *account.Profile {
	return s.State().User
}

// Token returns the token the session believes valid, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a user is loaded.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Subscribe registers fn to be called after every state change, in the order
// the changes were applied. fn must not mutate the session. The returned
// function removes the subscription.
func (s *Session) Subscribe(fn func(SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Login exchanges credentials for a token, persists it and loads the profile.
// API errors are returned unchanged so callers can show their detail.
func (s *Session) Login(ctx context.Context, email, password string) error {
	start := s.svc.now()
	err := s.login(ctx, email, password)
	s.emit("login", start, err)
	return err
}

func (s *Session) login(ctx context.Context, email, password string) error {
	res, err := s.svc.api.Login(ctx, account.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if res.AccessToken == "" {
		return ErrNoAccessToken
	}
	if err := s.persist(ctx, res.AccessToken); err != nil {
		return err
	}
	s.FetchProfile(ctx, res.AccessToken)
	return nil
}

// Signup creates the account, persists the returned token and loads the profile.
func (s *Session) Signup(ctx context.Context, req account.SignupRequest) error {
	start := s.svc.now()
	err := s.signup(ctx, req)
	s.emit("signup", start, err)
	return err
}

func (s *Session) signup(ctx context.Context, req account.SignupRequest) error {
	dob, err := account.NormalizeDate(req.DateOfBirth)
	if err != nil {
		return apperrors.ValidationField("date_of_birth", err.Error())
	}
	req.DateOfBirth = dob

	res, err := s.svc.api.Signup(ctx, req)
	if err != nil {
		return err
	}
	if res.JWT == "" {
		return ErrNoToken
	}
	if err := s.persist(ctx, res.JWT); err != nil {
		return err
	}
	s.FetchProfile(ctx, res.JWT)
	return nil
}

// FetchProfile loads the profile for token. A failure clears the user and
// discards the persisted token, unless the caller's ctx ended first, in which
// case the token is left in place. Errors are logged, never returned.
func (s *Session) FetchProfile(ctx context.Context, token string) {
	start := s.svc.now()
	s.mutate(func() { s.loading = true })

	profile, err := s.svc.api.Me(ctx, token)
	if err != nil && (apperrors.IsCanceled(err) || ctx.Err() != nil) {
		s.svc.logger.DebugContext(ctx, "profile fetch abandoned, keeping token",
			"error_code", string(apperrors.GetCode(err)), "error", err)
		s.mutate(func() {
			s.user = nil
			s.loading = false
		})
		s.emit("fetch_profile", start, err)
		return
	}
	if err != nil {
		s.svc.logger.InfoContext(ctx, "profile fetch failed, discarding token",
			"error_code", string(apperrors.GetCode(err)), "error", err)
		if delErr := s.svc.tokens.Delete(ctx, s.key); delErr != nil {
			s.svc.logger.WarnContext(ctx, "delete token slot", "error", delErr)
		}
		s.mutate(func() {
			s.user = nil
			s.token = ""
			s.loading = false
		})
		s.emit("fetch_profile", start, err)
		return
	}

	s.mutate(func() {
		s.user = &profile
		s.token = token
		s.loading = false
	})
	s.emit("fetch_profile", start, nil)
}

// UpdateProfile sends upd with the persisted token and caches the result.
func (s *Session) UpdateProfile(ctx context.Context, upd account.ProfileUpdate) error {
	start := s.svc.now()
	err := s.updateProfile(ctx, upd)
	s.emit("update_profile", start, err)
	return err
}

func (s *Session) updateProfile(ctx context.Context, upd account.ProfileUpdate) error {
	token, err := s.persistedToken(ctx)
	if err != nil {
		return err
	}
	profile, err := s.svc.api.UpdateProfile(ctx, token, upd)
	if err != nil {
		return err
	}
	s.mutate(func() { s.user = &profile })
	return nil
}

// ListUsers returns every account using the persisted token.
func (s *Session) ListUsers(ctx context.Context) ([]account.Profile, error) {
	start := s.svc.now()
	users, err := s.listUsers(ctx)
	s.emit("list_users", start, err)
	return users, err
}

func (s *Session) listUsers(ctx context.Context) ([]account.Profile, error) {
	token, err := s.persistedToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.svc.api.ListUsers(ctx, token)
}

// Logout discards the persisted token and the cached profile. The API is not
// called. In-memory state is cleared even when the store delete fails.
func (s *Session) Logout(ctx context.Context) error {
	start := s.svc.now()
	var err error
	if s.key != "" {
		if delErr := s.svc.tokens.Delete(ctx, s.key); delErr != nil {
			err = fmt.Errorf("delete token slot: %w", delErr)
		}
	}
	s.mutate(func() {
		s.user = nil
		s.token = ""
		s.loading = false
	})
	s.emit("logout", start, err)
	return err
}

func (s *Session) persist(ctx context.Context, token string) error {
	if s.key == "" {
		return errors.New("session has no key")
	}
	slot := slotFor(token, s.svc.now(), s.svc.defaultTTL)
	if err := s.svc.tokens.Save(ctx, s.key, slot); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *Session) persistedToken(ctx context.Context) (string, error) {
	if s.key == "" {
		return "", ErrNotAuthenticated
	}
	slot, err := s.svc.tokens.Get(ctx, s.key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("read token slot: %w", err)
	}
	return slot.Token, nil
}

// mutate applies fn under the write lock and then notifies subscribers with
// the resulting state, outside the lock. notifyMu is held throughout so
// concurrent mutations are delivered in the order they were applied.
func (s *Session) mutate(fn func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	wasAuthenticated := s.user != nil
	fn()
	state := s.snapshotLocked()
	subs := make([]func(SessionState), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	if authenticated := state.User != nil; authenticated != wasAuthenticated {
		metrics.SessionTransition(s.svc.metrics, authenticated)
	}
	for _, sub := range subs {
		sub(state)
	}
}

// caller must hold s.mu.
func (s *Session) snapshotLocked() SessionState {
	state := SessionState{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}

func (s *Session) emit(op string, start time.Time, err error) {
	metrics.EmitSessionOperation(s.svc.metrics, metrics.SessionMetric{
		Operation: op,
		Result:    metrics.ResultFor(err),
		Duration:  s.svc.now().Sub(start),
		Err:       err,
	})
}
