// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances brute-force resistance against login
// latency.
const DefaultBcryptCost = 12

// Encoder hashes and verifies passwords with bcrypt. Hashing is one-way;
// digests are never reversible.
type Encoder struct {
	cost int
}

// NewEncoder creates an encoder with the given bcrypt cost factor.
// A cost outside bcrypt's supported range falls back to DefaultBcryptCost.
func NewEncoder(cost int) *Encoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Encoder{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (e *Encoder) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), e.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
// A malformed digest fails closed: it is treated as a non-match, never
// surfaced as an error. bcrypt's comparison is timing-safe.
func (e *Encoder) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
