package httpx

import (
	"net/http"
	"strings"
	"time"
)

// DefaultSessionCookieName names the cookie carrying the session key.
const DefaultSessionCookieName = "session_id"

// SessionCookieConfig controls the session cookie attributes.
type SessionCookieConfig struct {
	Name   string
	Domain string
	// MaxAge bounds the cookie lifetime; zero makes it a browser-session cookie.
	MaxAge time.Duration
}

func (c SessionCookieConfig) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

func sessionKeyFromRequest(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, cfg SessionCookieConfig, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    key,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge / time.Second),
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request, cfg SessionCookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// isSecureRequest reports HTTPS, accounting for TLS-terminating proxies.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}

// isForwardedHTTPS handles comma-separated X-Forwarded-Proto values.
func isForwardedHTTPS(r *http.Request) bool {
	xfProto := r.Header.Get("X-Forwarded-Proto")
	if xfProto == "" {
		return false
	}
	for _, proto := range strings.Split(xfProto, ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
