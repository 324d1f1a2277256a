// Package shopAuth implements the authentication and session-backed identity
// subsystem of a server-rendered storefront: credential verification for two
// principal kinds (shopper and administrator), shopper signup, single-use
// password reset tickets, Redis-backed sessions with one-shot flash messages,
// and a per-session CSRF guard.
//
// The package is designed for concurrent server workloads: Manager methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// shopAuth is the public surface. It exposes [Manager], [Builder], [Config],
// the [CredentialStore] and [Mailer] contracts, and value types. Flow
// orchestration lives under internal/ and is never exported. HTML rendering,
// catalog CRUD, and static assets are external collaborators reached only
// through interfaces.
//
// # What this package must NOT do
//
//   - Reveal whether the email or the password was wrong on a failed login.
//   - Persist a plaintext password or reset token secret anywhere.
//   - Pair a read with a dependent write on a reset ticket: consumption is a
//     single atomic find-and-clear against the credential store.
package shopAuth
