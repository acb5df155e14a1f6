// Package hashing wraps bcrypt password hashing. bcrypt embeds a fresh
// random salt in every hash, so hashing the same password twice yields
// different strings and verification recomputes from the stored hash.
package hashing

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords at a fixed cost factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's supported range fall
// back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted one-way hash of a password. The plaintext is
// never stored.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
