package internal

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

// SessionID is the opaque identifier handed to the browser cookie.
type SessionID [16]byte

const (
	csrfSecretSize = 32
	resetTokenSize = 32
)

func NewSessionID() (SessionID, error) {
	var sid SessionID
	_, err := rand.Read(sid[:])
	return sid, err
}

func (s SessionID) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(s[:])
}

func ParseSessionID(sessionID string) (SessionID, error) {
	var sid SessionID

	raw, err := base64.RawURLEncoding.DecodeString(sessionID)
	if err != nil {
		return sid, err
	}
	if len(raw) != len(sid) {
		return sid, errors.New("invalid session id size")
	}

	copy(sid[:], raw)
	return sid, nil
}

// NewCSRFSecret returns the per-session anti-forgery secret. The hex form is
// the token submitted with mutating requests.
func NewCSRFSecret() ([csrfSecretSize]byte, error) {
	var secret [csrfSecretSize]byte
	_, err := rand.Read(secret[:])
	return secret, err
}

// NewResetToken returns a 256-bit reset ticket token, hex-encoded to 64
// characters.
func NewResetToken() (string, error) {
	var raw [resetTokenSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}
