package flows

import (
	"context"

	"github.com/MrEthical07/shopAuth/session"
)

// SignupErrors carries host-level sentinel errors used by the signup flow.
type SignupErrors struct {
	NotReady   error
	EmailTaken error
}

// SignupDeps captures signup dependencies.
type SignupDeps struct {
	Check              func(email, name, password, confirm string) []FieldError
	NewValidationError func([]FieldError) error

	ShopperExists func(ctx context.Context, email string) (bool, error)
	HashPassword  func(plaintext string) (string, error)
	CreateShopper func(ctx context.Context, email, name, secretHash string) (Principal, error)
	PushFlash     func(ctx context.Context, sess *session.Session, category, message string) error

	IsEmailTaken  func(error) bool
	MapStoreError func(error) error

	Errors SignupErrors
}

// RunSignup creates a shopper account. The duplicate-email check runs only
// after syntactic validation passes; a unique-constraint race at insert time
// maps to the same EmailTaken sentinel. On success a flash message is queued
// and the session stays anonymous (no auto-login).
func RunSignup(ctx context.Context, sess *session.Session, email, name, password, confirm string, d SignupDeps) error {
	if d.CreateShopper == nil || d.HashPassword == nil {
		return d.Errors.NotReady
	}

	if fields := d.Check(email, name, password, confirm); len(fields) > 0 {
		return d.NewValidationError(fields)
	}

	exists, err := d.ShopperExists(ctx, email)
	if err != nil {
		return d.MapStoreError(err)
	}
	if exists {
		return d.Errors.EmailTaken
	}

	secretHash, err := d.HashPassword(password)
	if err != nil {
		return d.MapStoreError(err)
	}

	if _, err := d.CreateShopper(ctx, email, name, secretHash); err != nil {
		if d.IsEmailTaken(err) {
			return d.Errors.EmailTaken
		}
		return d.MapStoreError(err)
	}

	if err := d.PushFlash(ctx, sess, session.FlashSuccess, "Successfully signed up!"); err != nil {
		return d.MapStoreError(err)
	}
	return nil
}
