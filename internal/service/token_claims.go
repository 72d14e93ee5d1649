package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
)

// ParseTokenClaims reads the subject and expiry of a bearer token without
// verifying its signature. The API remains the only authority on validity.
func ParseTokenClaims(token string) (domainauth.TokenClaims, error) {
	if token == "" {
		return domainauth.TokenClaims{}, errors.New("empty token")
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domainauth.TokenClaims{}, fmt.Errorf("parse token claims: %w", err)
	}
	out := domainauth.TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// slotFor sizes the persisted slot for token. A future exp claim wins;
// opaque tokens and tokens without a usable exp fall back to defaultTTL.
func slotFor(token string, now time.Time, defaultTTL time.Duration) domainauth.TokenSlot {
	slot := domainauth.TokenSlot{Token: token}
	if claims, err := ParseTokenClaims(token); err == nil && claims.ExpiresAt.After(now) {
		slot.ExpiresAt = claims.ExpiresAt
		return slot
	}
	if defaultTTL > 0 {
		slot.ExpiresAt = now.Add(defaultTTL)
	}
	return slot
}
