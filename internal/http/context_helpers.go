package httpx

import (
	"context"

	"github.com/target/mmk-accounts-ui/internal/domain/account"
	"github.com/target/mmk-accounts-ui/internal/http/ui/viewmodel"
	"github.com/target/mmk-accounts-ui/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// noticeKey carries the flash notice read for the current request.
type noticeKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *service.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the session opened for the request, or nil.
func GetSessionFromContext(ctx context.Context) *service.Session {
	if s, ok := ctx.Value(sessionKey{}).(*service.Session); ok && s != nil {
		return s
	}
	return nil
}

// CurrentUser returns the signed-in profile for the request, or nil.
func CurrentUser(ctx context.Context) *account.Profile {
	if s := GetSessionFromContext(ctx); s != nil {
		return s.User()
	}
	return nil
}

// IsAdminUser reports whether the request belongs to a signed-in admin.
func IsAdminUser(ctx context.Context) bool {
	u := CurrentUser(ctx)
	return u != nil && u.IsAdmin
}

func setNoticeInContext(ctx context.Context, n *viewmodel.Notice) context.Context {
	if n == nil {
		return ctx
	}
	return context.WithValue(ctx, noticeKey{}, n)
}

func noticeFromContext(ctx context.Context) *viewmodel.Notice {
	if n, ok := ctx.Value(noticeKey{}).(*viewmodel.Notice); ok {
		return n
	}
	return nil
}
