package shopAuth

import (
	"context"
	"time"

	"github.com/MrEthical07/shopAuth/mailer"
)

// PrincipalKind tags the two account populations of the storefront. A kind is
// fixed at creation; a session binds at most one principal of one kind.
type PrincipalKind uint8

const (
	// KindShopper is a self-service storefront customer.
	KindShopper PrincipalKind = iota + 1
	// KindAdmin is a pre-provisioned administrator. Admin accounts are not
	// created through this subsystem.
	KindAdmin
)

func (k PrincipalKind) String() string {
	switch k {
	case KindShopper:
		return "shopper"
	case KindAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Principal is a persisted account record. SecretHash is always a password
// hasher output, never plaintext. ResetToken and ResetTokenExpiry are either
// both set (an active recovery flow) or both zero; the credential store
// mutates them together.
type Principal struct {
	ID               string
	Kind             PrincipalKind
	Email            string
	Name             string
	SecretHash       string
	ResetToken       string
	ResetTokenExpiry time.Time
}

// CreateShopperInput is the input for [CredentialStore.CreateShopper]. The
// new record starts with an empty cart container.
type CreateShopperInput struct {
	Email      string
	Name       string
	SecretHash string
}

// CredentialStore is the persistence contract for principal records. Email
// lookups compare case-insensitively. Implementations must make
// ConsumeResetToken a single atomic operation: when two concurrent calls race
// on one token, at most one may observe the unexpired token and win.
type CredentialStore interface {
	GetByEmail(ctx context.Context, kind PrincipalKind, email string) (*Principal, error)
	CreateShopper(ctx context.Context, input CreateShopperInput) (*Principal, error)

	// SetResetToken overwrites any prior unconsumed ticket for the shopper;
	// the previous link silently becomes unusable.
	SetResetToken(ctx context.Context, shopperID, token string, expiry time.Time) error

	// GetByResetToken returns the shopper holding token while now < expiry,
	// or ErrResetTokenInvalid.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*Principal, error)

	// ConsumeResetToken sets newHash and clears the reset fields in one
	// atomic write, matching on token while now < expiry. Returns
	// ErrResetTokenInvalid when nothing matched.
	ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) error
}

// Message is the payload of the email transport collaborator.
type Message = mailer.Message

// Receipt identifies a dispatched message at the transport.
type Receipt = mailer.Receipt

// Mailer is the email transport contract. Failures are surfaced to the user
// and never retried automatically by this subsystem.
type Mailer = mailer.Mailer

// LoginInput carries a raw login submission.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput carries a raw signup submission.
type SignupInput struct {
	Email           string
	Name            string
	Password        string
	ConfirmPassword string
}

// NewPasswordInput carries a raw reset-consumption submission.
type NewPasswordInput struct {
	Token              string
	NewPassword        string
	ConfirmNewPassword string
}

// PrincipalRef identifies the principal bound to a session after a
// successful login.
type PrincipalRef struct {
	ID   string
	Kind PrincipalKind
}
