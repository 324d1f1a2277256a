package shopAuth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig controls the work factor of the password hasher.
type PasswordConfig struct {
	// Cost is the bcrypt work factor. The storefront default is 12.
	Cost int
}

// ResetConfig controls password-recovery ticket issuance and the recovery
// mail.
type ResetConfig struct {
	// TokenTTL is the ticket lifetime from issuance. Expiry is exclusive:
	// a ticket is usable only while now < issuedAt+TokenTTL.
	TokenTTL time.Duration
	// LinkBaseURL prefixes the single-use link embedded in the mail, e.g.
	// "https://shop.example.com". The token path is appended to it.
	LinkBaseURL string
	// MailFrom is the sender address of the recovery mail.
	MailFrom string
}

// SessionConfig controls the Redis session store.
type SessionConfig struct {
	// TTL is the inactivity window after which the external store drops the
	// session.
	TTL time.Duration
	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string
	// Sliding renews the TTL on every resolve when true.
	Sliding bool
}

// Config is the explicit configuration object passed into the Manager at
// construction time. There are no package-level singletons; every adapter
// receives its settings through here.
type Config struct {
	Password PasswordConfig
	Reset    ResetConfig
	Session  SessionConfig
}

func defaultConfig() Config {
	return Config{
		Password: PasswordConfig{Cost: 12},
		Reset: ResetConfig{
			TokenTTL:    time.Hour,
			LinkBaseURL: "http://localhost:3000",
			MailFrom:    "reset@awesomebookshop.com",
		},
		Session: SessionConfig{
			TTL:       14 * 24 * time.Hour,
			KeyPrefix: "ss",
			Sliding:   true,
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost {
		return errors.New("password cost out of bcrypt range")
	}
	if c.Reset.TokenTTL <= 0 {
		return errors.New("reset token ttl must be positive")
	}
	if c.Reset.LinkBaseURL == "" {
		return errors.New("reset link base url required")
	}
	if c.Reset.MailFrom == "" {
		return errors.New("reset mail sender required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	return nil
}

func (c Config) resetLink(token string) string {
	return strings.TrimRight(c.Reset.LinkBaseURL, "/") + "/newPassword/" + token
}
