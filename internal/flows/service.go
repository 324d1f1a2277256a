package flows

import (
	"context"

	"github.com/MrEthical07/shopAuth/session"
)

// Service is the centralized flow runner built once by the root manager.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.GetByEmail != nil
}

func (s Service) Login(ctx context.Context, sess *session.Session, kind uint8, email, password string) (Principal, error) {
	return RunLogin(ctx, sess, kind, email, password, s.deps.Login)
}

func (s Service) Signup(ctx context.Context, sess *session.Session, email, name, password, confirm string) error {
	return RunSignup(ctx, sess, email, name, password, confirm, s.deps.Signup)
}

func (s Service) Logout(ctx context.Context, sess *session.Session) error {
	return RunLogout(ctx, sess, s.deps.Logout)
}

func (s Service) RequestPasswordReset(ctx context.Context, email string) error {
	return RunRequestPasswordReset(ctx, email, s.deps.Reset)
}

func (s Service) ConsumePasswordReset(ctx context.Context, sess *session.Session, token, newPassword, confirm string) error {
	return RunConsumePasswordReset(ctx, sess, token, newPassword, confirm, s.deps.Reset)
}

func (s Service) LookupResetToken(ctx context.Context, token string) (Principal, error) {
	return RunLookupResetToken(ctx, token, s.deps.Reset)
}
