package session

import "encoding/hex"

// Binding tags which principal population, if any, a session is bound to.
// Exactly one slot exists; binding a session replaces any prior binding
// wholesale, so the shopper and admin states can never disagree.
type Binding uint8

const (
	// BindingNone marks an anonymous session.
	BindingNone Binding = iota
	// BindingShopper marks a session bound to a shopper principal.
	BindingShopper
	// BindingAdmin marks a session bound to an administrator principal.
	BindingAdmin
)

// Flash categories. These two are the only supported categories; Push and
// Drain reject anything else.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Session is the server-side record correlated with a client via an opaque
// id. PrincipalRef is meaningful only when Kind is not BindingNone.
type Session struct {
	SessionID    string
	Kind         Binding
	PrincipalRef string
	CSRFSecret   [32]byte
	CreatedAt    int64
	Flash        map[string][]string
}

// CSRFToken returns the hex form of the session's anti-forgery secret. The
// token is stable for the session's lifetime and dies with it.
func (s *Session) CSRFToken() string {
	return hex.EncodeToString(s.CSRFSecret[:])
}

// Bound reports whether a principal is attached to the session.
func (s *Session) Bound() bool {
	return s.Kind != BindingNone && s.PrincipalRef != ""
}

func validFlashCategory(category string) bool {
	return category == FlashError || category == FlashSuccess
}
