package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes plaintext passwords and compares candidates
// against stored hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The produced hash
// self-describes its cost and salt, so stored hashes remain verifiable
// after the default cost changes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost factor. A cost
// outside bcrypt's supported range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted, one-way digest. Two calls on the same
// plaintext yield different outputs.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether plaintext matches hashed. bcrypt's comparison
// is constant-effort with respect to the candidate password, and any
// malformed stored hash simply compares as false.
func (h *BcryptHasher) Compare(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
