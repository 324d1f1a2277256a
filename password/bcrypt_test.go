package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()

	// Min cost keeps the test suite fast; the production default is 12.
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return h
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash prefix, got %q", hash)
	}

	if !h.Verify("correct horse battery", hash) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("wrong password", hash) {
		t.Fatal("expected non-matching password to fail verification")
	}
}

func TestHashesOfSamePlaintextDiffer(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if first == second {
		t.Fatal("expected salted hashes of identical plaintext to differ")
	}
}

func TestVerifyMalformedHashReturnsFalse(t *testing.T) {
	h := newTestHasher(t)

	for _, malformed := range []string{"", "not-a-hash", "$2b$12$short"} {
		if h.Verify("anything", malformed) {
			t.Fatalf("expected malformed hash %q to fail verification", malformed)
		}
	}
}

func TestNewHasherRejectsOutOfRangeCost(t *testing.T) {
	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("expected error for cost above bcrypt maximum")
	}
	if _, err := NewHasher(2); err == nil {
		t.Fatal("expected error for cost below bcrypt minimum")
	}
}
