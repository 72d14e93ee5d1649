package ports

// Package ports defines interfaces (hexagonal ports) for the accounts UI.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	"github.com/target/mmk-accounts-ui/internal/domain/account"
	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
)

// AccountAPI is the remote accounts REST API.
type AccountAPI interface {
	// Login exchanges credentials for a bearer token (POST /login).
	Login(ctx context.Context, creds account.Credentials) (account.LoginResult, error)

	// Signup creates an account and returns it with a bearer token (POST /signup).
	Signup(ctx context.Context, req account.SignupRequest) (account.SignupResult, error)

	// Me returns the profile the token belongs to (GET /me).
	Me(ctx context.Context, token string) (account.Profile, error)

	// UpdateProfile replaces the editable fields of the caller's profile (PUT /user).
	UpdateProfile(ctx context.Context, token string, upd account.ProfileUpdate) (account.Profile, error)

	// ListUsers returns every account; the API restricts it to admins (GET /users).
	ListUsers(ctx context.Context, token string) ([]account.Profile, error)
}

// TokenStore persists one bearer token slot per session key.
// Get returns an error satisfying IsNotFound when the slot is empty or expired.
type TokenStore interface {
	Save(ctx context.Context, key string, slot domainauth.TokenSlot) error
	Get(ctx context.Context, key string) (domainauth.TokenSlot, error)
	Delete(ctx context.Context, key string) error
}
