package flows

import (
	"context"

	"github.com/MrEthical07/shopAuth/session"
)

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	NotReady           error
	InvalidCredentials error
}

// LoginDeps captures login dependencies. GetByEmail must compare email
// case-insensitively; IsNotFound distinguishes an absent principal from a
// store failure.
type LoginDeps struct {
	Check              func(kind uint8, email, password string) []FieldError
	NewValidationError func([]FieldError) error

	GetByEmail     func(ctx context.Context, kind uint8, email string) (Principal, string, error)
	VerifyPassword func(plaintext, secretHash string) bool
	Bind           func(ctx context.Context, sess *session.Session, kind uint8, principalRef string) error

	IsNotFound    func(error) bool
	MapStoreError func(error) error

	Errors LoginErrors
}

// RunLogin verifies credentials for the given principal kind and binds the
// principal to sess. An unknown email and a wrong password surface the same
// InvalidCredentials sentinel; no store lookup happens before the pre-check
// passes.
func RunLogin(ctx context.Context, sess *session.Session, kind uint8, email, password string, d LoginDeps) (Principal, error) {
	if d.GetByEmail == nil || d.VerifyPassword == nil || d.Bind == nil {
		return Principal{}, d.Errors.NotReady
	}

	if fields := d.Check(kind, email, password); len(fields) > 0 {
		return Principal{}, d.NewValidationError(fields)
	}

	principal, secretHash, err := d.GetByEmail(ctx, kind, email)
	if err != nil {
		if d.IsNotFound(err) {
			return Principal{}, d.Errors.InvalidCredentials
		}
		return Principal{}, d.MapStoreError(err)
	}

	if !d.VerifyPassword(password, secretHash) {
		return Principal{}, d.Errors.InvalidCredentials
	}

	if err := d.Bind(ctx, sess, kind, principal.ID); err != nil {
		return Principal{}, d.MapStoreError(err)
	}

	return principal, nil
}
