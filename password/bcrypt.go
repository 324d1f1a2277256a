package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for all storefront credentials.
const DefaultCost = 12

// Hasher produces and verifies bcrypt password hashes at a fixed cost.
//
// Hasher instances are intended to be configured during initialization and
// then treated as immutable.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given work factor. Costs below the
// bcrypt minimum or above the maximum are rejected.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns the bcrypt hash of plaintext. A fresh random salt is generated
// per call, so repeated hashes of the same input differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches secretHash. The comparison is
// constant-time. A malformed or truncated stored hash yields false, never an
// error or a panic.
func (h *Hasher) Verify(plaintext, secretHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(plaintext)) == nil
}
