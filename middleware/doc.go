// Package middleware provides net/http wrappers for the storefront's session
// and CSRF handling: Sessions resolves the cookie-held session id (creating
// an anonymous session on first contact), and CSRF rejects mutating requests
// whose submitted token does not match the session's secret.
package middleware
