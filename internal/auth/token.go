// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devroster/devroster/internal/config"
	"github.com/devroster/devroster/internal/rbac"
)

// Token verification failures. All three surface to clients as the same
// 401-class response; the distinction exists for logs and metrics.
var (
	// ErrTokenMalformed indicates the token structure could not be parsed.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignature indicates the signature does not match the
	// configured key.
	ErrTokenSignature = errors.New("token signature invalid")

	// ErrTokenExpired indicates the token's expiry is at or before the
	// verification time.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the signed claim set carried by a token: subject and expiry
// in the registered claims, plus the role held at issuance. The role
// claim is informational; authorization re-derives the live role from
// the user store.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies bearer tokens signed with HMAC-SHA256.
// The symmetric secret is loaded once at startup and never rotated.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec from the security configuration.
func NewCodec(cfg *config.SecurityConfig) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required but was empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", cfg.TokenTTL)
	}
	return &Codec{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}, nil
}

// TTL returns the configured validity window.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for subject with the given role, issued
// at now and expiring at now + TTL. Issuance is deterministic given
// identical inputs; only the timestamps vary between calls.
func (c *Codec) Issue(subject string, role rbac.Role, now time.Time) (string, error) {
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString against the configured key at
// the given instant. Expiry is exclusive on the upper end: a token with
// exp <= now fails with ErrTokenExpired. Signing methods other than
// HMAC are rejected outright.
func (c *Codec) Verify(tokenString string, now time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
