// Package flows holds the request-scoped orchestration behind the public
// Manager: login, signup, logout, and the password-recovery pair. Each flow
// is a Run function driven by an injected Deps struct, so the host wires
// stores, hashing, mail, and sentinel errors exactly once at build time and
// the flows stay free of package-level state.
package flows
