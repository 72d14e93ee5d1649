package devapi

// Package devapi provides a self-contained, in-memory accounts API for local
// development. It behaves like the remote service closely enough to click
// through every page without running the backend.

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/target/mmk-accounts-ui/internal/domain/account"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/ports"
)

var _ ports.AccountAPI = (*API)(nil)

// Config controls the dev API. AdminEmail and AdminPassword seed one
// administrator so the user list is reachable out of the box.
type Config struct {
	AdminEmail    string
	AdminPassword string
	TokenDuration time.Duration // default 8h when zero
	Now           func() time.Time
}

type record struct {
	profile  account.Profile
	password string
}

// API implements ports.AccountAPI in memory.
type API struct {
	mu       sync.RWMutex
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	nextID   int64
	byEmail  map[string]*record
	byID     map[int64]*record
}

// New constructs a dev API, seeding the admin account when configured.
func New(cfg Config) (*API, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	ttl := cfg.TokenDuration
	if ttl == 0 {
		ttl = 8 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	a := &API{
		secret:   secret,
		tokenTTL: ttl,
		now:      now,
		byEmail:  make(map[string]*record),
		byID:     make(map[int64]*record),
	}

	if cfg.AdminEmail != "" {
		if cfg.AdminPassword == "" {
			return nil, errors.New("dev api: admin password is required with admin email")
		}
		_, err := a.create(account.SignupRequest{
			Name:         "Dev Admin",
			Email:        cfg.AdminEmail,
			DateOfBirth:  "1990-01-01",
			MobileNumber: "9000000000",
			Password:     cfg.AdminPassword,
			IsAdmin:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}
	return a, nil
}

// Login checks credentials and issues a token.
func (a *API) Login(_ context.Context, creds account.Credentials) (account.LoginResult, error) {
	a.mu.RLock()
	rec, ok := a.byEmail[normalizeEmail(creds.Email)]
	a.mu.RUnlock()
	if !ok || rec.password != creds.Password {
		return account.LoginResult{}, apperrors.Unauthorized("login rejected").
			WithStatus(401).WithDetail("Incorrect email or password")
	}
	tok, err := a.issue(rec.profile.ID)
	if err != nil {
		return account.LoginResult{}, err
	}
	return account.LoginResult{AccessToken: tok, TokenType: "bearer"}, nil
}

// Signup creates an account and issues a token for it.
func (a *API) Signup(_ context.Context, req account.SignupRequest) (account.SignupResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return account.SignupResult{}, apperrors.Validation("signup rejected").
			WithStatus(422).WithDetail("Email and password are required")
	}
	p, err := a.create(req)
	if err != nil {
		return account.SignupResult{}, err
	}
	tok, err := a.issue(p.ID)
	if err != nil {
		return account.SignupResult{}, err
	}
	return account.SignupResult{Profile: p, JWT: tok}, nil
}

// Me returns the profile for token.
func (a *API) Me(_ context.Context, token string) (account.Profile, error) {
	rec, err := a.authenticate(token)
	if err != nil {
		return account.Profile{}, err
	}
	return rec.profile, nil
}

// UpdateProfile replaces the caller's editable fields.
func (a *API) UpdateProfile(_ context.Context, token string, upd account.ProfileUpdate) (account.Profile, error) {
	rec, err := a.authenticate(token)
	if err != nil {
		return account.Profile{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	email := normalizeEmail(upd.Email)
	if other, taken := a.byEmail[email]; taken && other != rec {
		return account.Profile{}, apperrors.Conflict("update rejected").
			WithStatus(409).WithDetail("Email already registered")
	}
	delete(a.byEmail, normalizeEmail(rec.profile.Email))
	rec.profile.Name = strings.TrimSpace(upd.Name)
	rec.profile.Email = strings.TrimSpace(upd.Email)
	rec.profile.DateOfBirth = upd.DateOfBirth
	rec.profile.MobileNumber = upd.MobileNumber
	a.byEmail[email] = rec
	return rec.profile, nil
}

// ListUsers returns every account ordered by id; admins only.
func (a *API) ListUsers(_ context.Context, token string) ([]account.Profile, error) {
	rec, err := a.authenticate(token)
	if err != nil {
		return nil, err
	}
	if !rec.profile.IsAdmin {
		return nil, apperrors.Forbidden("list users rejected").
			WithStatus(403).WithDetail("Not enough permissions")
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]account.Profile, 0, len(a.byID))
	for _, r := range a.byID {
		out = append(out, r.profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a *API) create(req account.SignupRequest) (account.Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	email := normalizeEmail(req.Email)
	if _, taken := a.byEmail[email]; taken {
		return account.Profile{}, apperrors.Validation("signup rejected").
			WithStatus(400).WithDetail("Email already registered")
	}
	a.nextID++
	rec := &record{
		profile: account.Profile{
			ID:           a.nextID,
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.TrimSpace(req.Email),
			DateOfBirth:  req.DateOfBirth,
			MobileNumber: req.MobileNumber,
			IsAdmin:      req.IsAdmin,
		},
		password: req.Password,
	}
	a.byEmail[email] = rec
	a.byID[rec.profile.ID] = rec
	return rec.profile, nil
}

func (a *API) issue(id int64) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(id, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (a *API) authenticate(token string) (*record, error) {
	unauthorized := apperrors.Unauthorized("token rejected").
		WithStatus(401).WithDetail("Could not validate credentials")

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		unauthorized.Cause = err
		return nil, unauthorized
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, unauthorized
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, ok := a.byID[id]
	if !ok {
		return nil, unauthorized
	}
	return rec, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
