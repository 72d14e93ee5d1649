package config

import (
	"fmt"
	"strings"
	"time"
)

// APIMode selects which accounts API implementation the UI talks to.
type APIMode string

const (
	// APIModeHTTP calls the remote REST API at BaseURL.
	APIModeHTTP APIMode = "http"
	// APIModeDev serves accounts from an in-memory fake (development only).
	APIModeDev APIMode = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for APIMode.
func (m *APIMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "http", "dev":
		*m = APIMode(v)
		return nil
	default:
		return fmt.Errorf("invalid APIMode: %q (valid options: http, dev)", v)
	}
}

// DefaultErrorDetailPath is the JMESPath expression used to pull a human readable
// message out of an API error body. It understands both {"detail": "..."} and the
// validation form {"detail": [{"msg": "..."}]}.
const DefaultErrorDetailPath = "detail[0].msg || detail || message"

// APIConfig configures the client for the remote accounts REST API.
type APIConfig struct {
	// Mode selects the remote API or the in-memory dev fake.
	Mode APIMode `env:"MODE" envDefault:"http"`

	// BaseURL is the root of the accounts API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout is the whole-request timeout for every API call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// ErrorDetailPath selects the message shown to users from an API error body.
	ErrorDetailPath string `env:"ERROR_DETAIL_PATH" envDefault:"detail[0].msg || detail || message"`

	// Dev mode seed administrator.
	DevAdminEmail    string `env:"DEV_ADMIN_EMAIL"    envDefault:"admin@example.com"`
	DevAdminPassword string `env:"DEV_ADMIN_PASSWORD" envDefault:"Admin@123"`
}

// Sanitize normalises the API settings.
func (c *APIConfig) Sanitize() {
	if c.Mode == "" {
		c.Mode = APIModeHTTP
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	c.ErrorDetailPath = strings.TrimSpace(c.ErrorDetailPath)
	if c.ErrorDetailPath == "" {
		c.ErrorDetailPath = DefaultErrorDetailPath
	}
}
