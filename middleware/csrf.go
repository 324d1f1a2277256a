package middleware

import (
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

// CSRFField is the form field carrying the anti-forgery token.
const CSRFField = "_csrf"

// CSRF validates the session's anti-forgery token on state-changing requests.
// A missing or mismatching token aborts with 403 before the request reaches
// any handler; the rejection is silent, with no flash message. Safe methods
// pass through untouched.
func CSRF() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if err := r.ParseForm(); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if !tokenMatches(r.PostFormValue(CSRFField), sess.CSRFSecret) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func tokenMatches(submitted string, secret [32]byte) bool {
	raw, err := hex.DecodeString(submitted)
	if err != nil || len(raw) != len(secret) {
		return false
	}
	return subtle.ConstantTimeCompare(raw, secret[:]) == 1
}
