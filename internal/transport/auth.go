package transport

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator verifies admin credentials and sessions.
type Authenticator interface {
	Login(password string) (string, error)
	Verify(token string) (*jwt.RegisteredClaims, error)
	TTL() time.Duration
}

// RequireAdmin enforces a valid admin session cookie. Page loads are sent to
// the login form; anything else gets 401.
func RequireAdmin(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}

			claims, err := auth.Verify(token)
			if err != nil {
				if r.Method == http.MethodGet || r.Method == http.MethodHead {
					http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
					return
				}
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAdminSession(r.Context(), claims)))
		})
	}
}
