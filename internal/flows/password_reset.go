package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/shopAuth/session"
)

// ResetErrors carries host-level sentinel errors used by the recovery flows.
type ResetErrors struct {
	NotReady     error
	EmailUnknown error
	TokenInvalid error
	MailDelivery error
}

// ResetDeps captures password-recovery dependencies. ConsumeResetToken must
// be a single atomic find-and-clear in the credential store; these flows
// never pair a ticket read with a dependent write.
type ResetDeps struct {
	CheckEmail         func(email string) []FieldError
	CheckNewPassword   func(newPassword, confirm string) []FieldError
	NewValidationError func([]FieldError) error

	GetShopperByEmail func(ctx context.Context, email string) (Principal, error)
	NewToken          func() (string, error)
	Now               func() time.Time
	ResetTTL          time.Duration

	SetResetToken     func(ctx context.Context, shopperID, token string, expiry time.Time) error
	GetByResetToken   func(ctx context.Context, token string, now time.Time) (Principal, error)
	ConsumeResetToken func(ctx context.Context, token, newHash string, now time.Time) error

	HashPassword  func(plaintext string) (string, error)
	SendResetMail func(ctx context.Context, email, token string) error
	PushFlash     func(ctx context.Context, sess *session.Session, category, message string) error

	IsNotFound      func(error) bool
	IsTokenNotFound func(error) bool
	MapStoreError   func(error) error

	Errors ResetErrors
}

// RunRequestPasswordReset issues a fresh single-use ticket for the shopper
// and mails the recovery link. An unknown email is reported as such: this
// flow deliberately reveals account existence, unlike login. Issuance
// overwrites any prior unconsumed ticket. A mail dispatch failure surfaces
// MailDelivery but leaves the stored ticket valid until expiry or
// consumption.
func RunRequestPasswordReset(ctx context.Context, email string, d ResetDeps) error {
	if d.SetResetToken == nil || d.SendResetMail == nil {
		return d.Errors.NotReady
	}

	if fields := d.CheckEmail(email); len(fields) > 0 {
		return d.NewValidationError(fields)
	}

	shopper, err := d.GetShopperByEmail(ctx, email)
	if err != nil {
		if d.IsNotFound(err) {
			return d.Errors.EmailUnknown
		}
		return d.MapStoreError(err)
	}

	token, err := d.NewToken()
	if err != nil {
		return d.MapStoreError(err)
	}

	expiry := d.Now().Add(d.ResetTTL)
	if err := d.SetResetToken(ctx, shopper.ID, token, expiry); err != nil {
		return d.MapStoreError(err)
	}

	if err := d.SendResetMail(ctx, shopper.Email, token); err != nil {
		return d.Errors.MailDelivery
	}
	return nil
}

// RunConsumePasswordReset redeems a ticket: the new password hash replaces
// the old one and both reset fields clear in the store's single atomic
// update. A wrong, already-consumed, or expired token yields one generic
// TokenInvalid; expiry is exclusive, so a token presented at exactly its
// expiry instant is dead.
func RunConsumePasswordReset(ctx context.Context, sess *session.Session, token, newPassword, confirm string, d ResetDeps) error {
	if d.ConsumeResetToken == nil || d.HashPassword == nil {
		return d.Errors.NotReady
	}

	if fields := d.CheckNewPassword(newPassword, confirm); len(fields) > 0 {
		return d.NewValidationError(fields)
	}

	newHash, err := d.HashPassword(newPassword)
	if err != nil {
		return d.MapStoreError(err)
	}

	if err := d.ConsumeResetToken(ctx, token, newHash, d.Now()); err != nil {
		if d.IsTokenNotFound(err) {
			return d.Errors.TokenInvalid
		}
		return d.MapStoreError(err)
	}

	if err := d.PushFlash(ctx, sess, session.FlashSuccess, "Successfully updated your password"); err != nil {
		return d.MapStoreError(err)
	}
	return nil
}

// RunLookupResetToken resolves the shopper behind an unexpired ticket so the
// new-password form is only ever rendered for a live token.
func RunLookupResetToken(ctx context.Context, token string, d ResetDeps) (Principal, error) {
	if d.GetByResetToken == nil {
		return Principal{}, d.Errors.NotReady
	}

	shopper, err := d.GetByResetToken(ctx, token, d.Now())
	if err != nil {
		if d.IsTokenNotFound(err) {
			return Principal{}, d.Errors.TokenInvalid
		}
		return Principal{}, d.MapStoreError(err)
	}
	return shopper, nil
}
