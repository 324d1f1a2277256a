package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/shopAuth/session"
)

// DefaultCookieName is the session cookie used when no override is given.
const DefaultCookieName = "shop.sid"

type sessionContextKey struct{}

// SessionFromContext returns the session resolved by [Sessions] for this
// request.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// Sessions resolves the request's session from its cookie, creating a fresh
// anonymous session when the cookie is absent, invalid, or expired, and
// reissuing the cookie in that case. The session is placed in the request
// context for handlers and the CSRF guard.
func Sessions(store *session.Store, cookieName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(cookieName); err == nil {
				sessionID = c.Value
			}

			sess, created, err := store.Resolve(r.Context(), sessionID)
			if err != nil {
				http.Error(w, "Something went wrong.", http.StatusInternalServerError)
				return
			}

			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sess.SessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
