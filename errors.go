package shopAuth

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned by Login for both an unknown email and
	// a wrong password. Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("email or password was wrong")
	// ErrEmailTaken is returned by Signup when a shopper with the given email
	// already exists.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrEmailUnknown is returned by RequestPasswordReset when no shopper
	// matches the email. This flow intentionally reveals account existence,
	// unlike Login.
	ErrEmailUnknown = errors.New("email is not associated with an account")
	// ErrResetTokenInvalid is returned for a wrong, already-consumed, or
	// expired reset token. One message covers all three cases.
	ErrResetTokenInvalid = errors.New("reset token is not valid")
	// ErrSessionMissing reports a logout attempted without a session. This is
	// a programming error in the caller, not a recoverable rejection.
	ErrSessionMissing = errors.New("no session bound to request")
	// ErrStoreUnavailable wraps credential or session store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrMailDelivery is returned when the reset mail could not be dispatched.
	// The stored reset ticket stays valid until expiry or consumption.
	ErrMailDelivery = errors.New("could not send the e-mail")
	// ErrManagerNotReady is returned when a Manager method is called before
	// Builder.Build completed.
	ErrManagerNotReady = errors.New("manager not initialized")
)

// FieldError is one entry of the ordered outcome produced by the pre-check
// validation collaborator.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aborts an operation before any store access. Fields keeps
// the collaborator's order; the submitted form input is echoed back unchanged
// by the HTTP layer.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidation unwraps err into a *ValidationError, or nil when err is of a
// different kind.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
