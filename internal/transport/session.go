package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie holds the signed admin session token.
const SessionCookie = "admin_session"

type sessionKey struct{}

// AdminSessionFromContext returns the verified admin session claims, if present.
func AdminSessionFromContext(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(*jwt.RegisteredClaims)
	return claims, ok
}

func withAdminSession(ctx context.Context, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(ctx, sessionKey{}, claims)
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/admin",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
