package auth

// Package auth contains domain-level types for browser sessions and bearer tokens.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an account's authorization role.
// Keep string form for easy display and logging.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// TokenSlot is the persisted record for one browser (or CLI) session.
// It holds nothing but the bearer token and the instant the slot stops being usable.
type TokenSlot struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the slot is past its expiry at the given instant.
// A zero ExpiresAt never expires.
func (s TokenSlot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TokenClaims are the unverified claims read from a bearer token.
// The UI never trusts these for authorization; they only size the slot TTL.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}
