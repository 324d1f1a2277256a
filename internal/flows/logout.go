package flows

import (
	"context"

	"github.com/MrEthical07/shopAuth/session"
)

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	NotReady       error
	SessionMissing error
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	Destroy       func(ctx context.Context, sessionID string) error
	MapStoreError func(error) error

	Errors LogoutErrors
}

// RunLogout destroys the session outright rather than merely unbinding the
// principal; the flash queue and CSRF secret die with it. A nil session is a
// programming error in the caller and surfaces the fatal SessionMissing
// sentinel.
func RunLogout(ctx context.Context, sess *session.Session, d LogoutDeps) error {
	if d.Destroy == nil {
		return d.Errors.NotReady
	}
	if sess == nil || sess.SessionID == "" {
		return d.Errors.SessionMissing
	}

	if err := d.Destroy(ctx, sess.SessionID); err != nil {
		return d.MapStoreError(err)
	}
	return nil
}
