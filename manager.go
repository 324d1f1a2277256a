package shopAuth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/shopAuth/internal"
	"github.com/MrEthical07/shopAuth/internal/flows"
	"github.com/MrEthical07/shopAuth/mailer"
	"github.com/MrEthical07/shopAuth/password"
	"github.com/MrEthical07/shopAuth/session"
	"github.com/MrEthical07/shopAuth/validate"
)

// ErrPrincipalNotFound is the CredentialStore contract's miss sentinel for
// email lookups. Manager methods convert it to ErrInvalidCredentials or
// ErrEmailUnknown depending on the flow's disclosure policy.
var ErrPrincipalNotFound = errors.New("principal not found")

// Manager orchestrates credential verification, session binding, and the
// password-recovery lifecycle. Build one through [Builder]; its methods are
// safe for concurrent use afterwards.
type Manager struct {
	config   Config
	creds    CredentialStore
	mail     Mailer
	sessions *session.Store
	hasher   *password.Hasher
	checker  *validate.Checker
	flows    flows.Service
	log      zerolog.Logger
}

// Sessions exposes the session store so the HTTP layer can resolve cookies
// and drain flash queues.
func (m *Manager) Sessions() *session.Store {
	return m.sessions
}

// Login verifies (kind, email, password) and binds the matched principal to
// sess. Unknown email and wrong password return the identical
// ErrInvalidCredentials; a pre-check failure returns a *ValidationError with
// no store access performed.
func (m *Manager) Login(ctx context.Context, sess *session.Session, kind PrincipalKind, input LoginInput) (PrincipalRef, error) {
	if m == nil || !m.flows.Initialized() {
		return PrincipalRef{}, ErrManagerNotReady
	}
	p, err := m.flows.Login(ctx, sess, uint8(kind), input.Email, input.Password)
	if err != nil {
		return PrincipalRef{}, err
	}
	return PrincipalRef{ID: p.ID, Kind: kind}, nil
}

// Signup creates a shopper account with an empty cart, queues a success
// flash, and leaves the session anonymous. The duplicate-email conflict is
// only checked after syntactic validation passes.
func (m *Manager) Signup(ctx context.Context, sess *session.Session, input SignupInput) error {
	if m == nil || !m.flows.Initialized() {
		return ErrManagerNotReady
	}
	return m.flows.Signup(ctx, sess, input.Email, input.Name, input.Password, input.ConfirmPassword)
}

// Logout destroys the current session outright. Calling it without a session
// is a programming error and returns the fatal ErrSessionMissing.
func (m *Manager) Logout(ctx context.Context, sess *session.Session) error {
	if m == nil || !m.flows.Initialized() {
		return ErrManagerNotReady
	}
	return m.flows.Logout(ctx, sess)
}

// RequestPasswordReset issues a single-use recovery ticket and mails the
// link. ErrEmailUnknown reveals account existence by design; ErrMailDelivery
// means the mail failed while the stored ticket stays valid.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	if m == nil || !m.flows.Initialized() {
		return ErrManagerNotReady
	}
	return m.flows.RequestPasswordReset(ctx, email)
}

// ConsumePasswordReset redeems a ticket, replacing the password and clearing
// both reset fields in one atomic store update. Any wrong, replayed, or
// expired token yields the generic ErrResetTokenInvalid.
func (m *Manager) ConsumePasswordReset(ctx context.Context, sess *session.Session, input NewPasswordInput) error {
	if m == nil || !m.flows.Initialized() {
		return ErrManagerNotReady
	}
	return m.flows.ConsumePasswordReset(ctx, sess, input.Token, input.NewPassword, input.ConfirmNewPassword)
}

// LookupResetToken resolves the shopper behind an unexpired ticket so the
// new-password form is never rendered for a dead token.
func (m *Manager) LookupResetToken(ctx context.Context, token string) (PrincipalRef, error) {
	if m == nil || !m.flows.Initialized() {
		return PrincipalRef{}, ErrManagerNotReady
	}
	p, err := m.flows.LookupResetToken(ctx, token)
	if err != nil {
		return PrincipalRef{}, err
	}
	return PrincipalRef{ID: p.ID, Kind: KindShopper}, nil
}

// mapDependencyFailure logs the underlying detail and returns the generic
// sentinel shown to clients.
func (m *Manager) mapDependencyFailure(err error) error {
	m.log.Error().Err(err).Msg("auth dependency failure")
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (m *Manager) flowDeps() flows.Deps {
	return flows.Deps{
		Login:  m.loginDeps(),
		Signup: m.signupDeps(),
		Logout: m.logoutDeps(),
		Reset:  m.resetDeps(),
	}
}

func (m *Manager) loginDeps() flows.LoginDeps {
	return flows.LoginDeps{
		Check: func(kind uint8, email, pw string) []flows.FieldError {
			if PrincipalKind(kind) == KindAdmin {
				return toFlowFields(m.checker.Check(validate.AdminLoginForm{Email: email, Password: pw}))
			}
			return toFlowFields(m.checker.Check(validate.LoginForm{Email: email, Password: pw}))
		},
		NewValidationError: m.newValidationError,
		GetByEmail: func(ctx context.Context, kind uint8, email string) (flows.Principal, string, error) {
			p, err := m.creds.GetByEmail(ctx, PrincipalKind(kind), email)
			if err != nil {
				return flows.Principal{}, "", err
			}
			return toFlowPrincipal(p), p.SecretHash, nil
		},
		VerifyPassword: m.hasher.Verify,
		Bind: func(ctx context.Context, sess *session.Session, kind uint8, ref string) error {
			return m.sessions.Bind(ctx, sess, bindingFor(PrincipalKind(kind)), ref)
		},
		IsNotFound: func(err error) bool {
			return errors.Is(err, ErrPrincipalNotFound)
		},
		MapStoreError: m.mapDependencyFailure,
		Errors: flows.LoginErrors{
			NotReady:           ErrManagerNotReady,
			InvalidCredentials: ErrInvalidCredentials,
		},
	}
}

func (m *Manager) signupDeps() flows.SignupDeps {
	return flows.SignupDeps{
		Check: func(email, name, pw, confirm string) []flows.FieldError {
			return toFlowFields(m.checker.Check(validate.SignupForm{
				Email:           email,
				Name:            name,
				Password:        pw,
				ConfirmPassword: confirm,
			}))
		},
		NewValidationError: m.newValidationError,
		ShopperExists: func(ctx context.Context, email string) (bool, error) {
			_, err := m.creds.GetByEmail(ctx, KindShopper, email)
			if err == nil {
				return true, nil
			}
			if errors.Is(err, ErrPrincipalNotFound) {
				return false, nil
			}
			return false, err
		},
		HashPassword: m.hasher.Hash,
		CreateShopper: func(ctx context.Context, email, name, secretHash string) (flows.Principal, error) {
			p, err := m.creds.CreateShopper(ctx, CreateShopperInput{
				Email:      email,
				Name:       name,
				SecretHash: secretHash,
			})
			if err != nil {
				return flows.Principal{}, err
			}
			return toFlowPrincipal(p), nil
		},
		PushFlash: m.sessions.PushFlash,
		IsEmailTaken: func(err error) bool {
			return errors.Is(err, ErrEmailTaken)
		},
		MapStoreError: m.mapDependencyFailure,
		Errors: flows.SignupErrors{
			NotReady:   ErrManagerNotReady,
			EmailTaken: ErrEmailTaken,
		},
	}
}

func (m *Manager) logoutDeps() flows.LogoutDeps {
	return flows.LogoutDeps{
		Destroy:       m.sessions.Destroy,
		MapStoreError: m.mapDependencyFailure,
		Errors: flows.LogoutErrors{
			NotReady:       ErrManagerNotReady,
			SessionMissing: ErrSessionMissing,
		},
	}
}

func (m *Manager) resetDeps() flows.ResetDeps {
	return flows.ResetDeps{
		CheckEmail: func(email string) []flows.FieldError {
			return toFlowFields(m.checker.Check(validate.ResetRequestForm{Email: email}))
		},
		CheckNewPassword: func(pw, confirm string) []flows.FieldError {
			return toFlowFields(m.checker.Check(validate.NewPasswordForm{
				NewPassword:        pw,
				ConfirmNewPassword: confirm,
			}))
		},
		NewValidationError: m.newValidationError,
		GetShopperByEmail: func(ctx context.Context, email string) (flows.Principal, error) {
			p, err := m.creds.GetByEmail(ctx, KindShopper, email)
			if err != nil {
				return flows.Principal{}, err
			}
			return toFlowPrincipal(p), nil
		},
		NewToken:      internal.NewResetToken,
		Now:           time.Now,
		ResetTTL:      m.config.Reset.TokenTTL,
		SetResetToken: m.creds.SetResetToken,
		GetByResetToken: func(ctx context.Context, token string, now time.Time) (flows.Principal, error) {
			p, err := m.creds.GetByResetToken(ctx, token, now)
			if err != nil {
				return flows.Principal{}, err
			}
			return toFlowPrincipal(p), nil
		},
		ConsumeResetToken: m.creds.ConsumeResetToken,
		HashPassword:      m.hasher.Hash,
		SendResetMail:     m.sendResetMail,
		PushFlash:         m.sessions.PushFlash,
		IsNotFound: func(err error) bool {
			return errors.Is(err, ErrPrincipalNotFound)
		},
		IsTokenNotFound: func(err error) bool {
			return errors.Is(err, ErrResetTokenInvalid) || errors.Is(err, ErrPrincipalNotFound)
		},
		MapStoreError: m.mapDependencyFailure,
		Errors: flows.ResetErrors{
			NotReady:     ErrManagerNotReady,
			EmailUnknown: ErrEmailUnknown,
			TokenInvalid: ErrResetTokenInvalid,
			MailDelivery: ErrMailDelivery,
		},
	}
}

func (m *Manager) sendResetMail(ctx context.Context, email, token string) error {
	link := m.config.resetLink(token)
	receipt, err := m.mail.Send(ctx, Message{
		From:    m.config.Reset.MailFrom,
		To:      email,
		Subject: "Password Reset",
		HTML:    mailer.PasswordResetBody(link),
	})
	if err != nil {
		m.log.Error().Err(err).Str("to", email).Msg("reset mail dispatch failed")
		return err
	}
	m.log.Info().Str("to", email).Str("mail_id", receipt.ID).Msg("reset mail dispatched")
	return nil
}

func (m *Manager) newValidationError(fields []flows.FieldError) error {
	out := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldError{Field: f.Field, Message: f.Message})
	}
	return &ValidationError{Fields: out}
}

func toFlowFields(fields []validate.FieldError) []flows.FieldError {
	if len(fields) == 0 {
		return nil
	}
	out := make([]flows.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, flows.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}

func toFlowPrincipal(p *Principal) flows.Principal {
	return flows.Principal{
		ID:    p.ID,
		Kind:  uint8(p.Kind),
		Email: p.Email,
		Name:  p.Name,
	}
}

func bindingFor(kind PrincipalKind) session.Binding {
	if kind == KindAdmin {
		return session.BindingAdmin
	}
	return session.BindingShopper
}
