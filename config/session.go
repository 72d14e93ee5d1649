package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where bearer tokens are persisted between requests.
type SessionBackend string

const (
	// SessionBackendRedis keeps token slots in Redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendMemory keeps token slots in process memory (development only).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, memory)", v)
	}
}

// SessionConfig groups browser session settings.
type SessionConfig struct {
	// Backend determines which token store is used.
	Backend SessionBackend `env:"BACKEND" envDefault:"redis"`

	// TTL is used for the token slot when the token carries no exp claim.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// KeyPrefix namespaces token slots in the store.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"accounts:token:"`

	// CookieName is the browser cookie carrying the opaque session id.
	CookieName string `env:"COOKIE_NAME" envDefault:"session_id"`
}

// Sanitize applies defaults to zero values.
func (c *SessionConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = SessionBackendRedis
	}
	if c.TTL <= 0 {
		c.TTL = 24 * time.Hour
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "accounts:token:"
	}
	if strings.TrimSpace(c.CookieName) == "" {
		c.CookieName = "session_id"
	}
}
