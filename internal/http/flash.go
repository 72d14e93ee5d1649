package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/target/mmk-accounts-ui/internal/http/ui/viewmodel"
)

const (
	flashCookieName = "flash"
	// maxFlashMessage caps messages carried through the cookie; longer server
	// details are cut rather than risking an oversized header.
	maxFlashMessage = 500

	noticeSuccess = viewmodel.NoticeSuccess
	noticeError   = viewmodel.NoticeError
)

// setFlash stores a notice for the next page render. It survives exactly one
// redirect: the Flash middleware clears it when read.
func setFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if runes := []rune(message); len(runes) > maxFlashMessage {
		message = string(runes[:maxFlashMessage])
	}
	b, err := json.Marshal(viewmodel.Notice{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash moves a pending notice from its cookie into the request context.
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(flashCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     flashCookieName,
				Value:    "",
				Path:     "/",
				HttpOnly: true,
				Secure:   isSecureRequest(r),
				SameSite: http.SameSiteLaxMode,
				MaxAge:   -1,
			})
			if n := decodeNotice(c.Value); n != nil {
				r = r.WithContext(setNoticeInContext(r.Context(), n))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func decodeNotice(raw string) *viewmodel.Notice {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var n viewmodel.Notice
	if err := json.Unmarshal(b, &n); err != nil || n.Message == "" {
		return nil
	}
	if n.Kind != noticeError {
		n.Kind = noticeSuccess
	}
	return &n
}
