// Package password wraps bcrypt hashing and temporary password generation.
//
// The cost is fixed at 12: high enough to keep offline brute force
// expensive, low enough to keep a login verification in the tens of
// milliseconds on current hardware.
package password

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	hashCost = 12

	// tempPasswordBytes is the entropy of a generated temporary password.
	// 12 random bytes encode to 16 URL-safe characters.
	tempPasswordBytes = 12
)

type Hasher struct {
	cost int

	// dummyHash is derived once at construction and reused by DummyVerify,
	// so the dummy path performs exactly one key derivation like Verify.
	dummyHash []byte
}

func NewHasher() *Hasher {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), hashCost)
	if err != nil {
		// bcrypt only fails on an out-of-range cost or oversized input;
		// neither can happen with the fixed parameters above.
		panic(fmt.Sprintf("password: init dummy hash: %v", err))
	}
	return &Hasher{cost: hashCost, dummyHash: dummy}
}

// Hash derives a salted bcrypt hash. A fresh salt is drawn per call, so
// hashing the same plaintext twice yields different strings.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. bcrypt compares
// the derived keys in constant time; the call cost is dominated by the key
// derivation itself.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyVerify burns the same work as a real verification. Called on login
// for unknown or inactive accounts so response timing does not reveal
// whether a username exists.
func (h *Hasher) DummyVerify() {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte("timing-equalizer"))
}

// TemporaryPassword returns a fresh high-entropy one-shot password from a
// cryptographically secure source, using a URL-safe alphabet.
func (h *Hasher) TemporaryPassword() (string, error) {
	b := make([]byte, tempPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
