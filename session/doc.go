// Package session provides the Redis-backed server-side session record for
// the storefront: an opaque browser-held identifier mapped to at most one
// bound principal, a per-session CSRF secret, and the one-shot flash message
// queue.
//
// Sessions are created lazily on first contact, destroyed explicitly on
// logout, and expire through the store's TTL. Flash drains are atomic under a
// Redis WATCH transaction, so each queued message is observed by exactly one
// reader.
package session
