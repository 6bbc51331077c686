// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devroster/devroster/internal/config"
	"github.com/devroster/devroster/internal/logging"
)

// unauthorizedMessage is deliberately uniform across malformed, tampered
// and expired tokens as well as unresolvable subjects, so responses leak
// nothing about which check failed.
const unauthorizedMessage = "Unauthorized: invalid or expired token"

// MiddlewareConfig holds configuration for the request authenticator.
type MiddlewareConfig struct {
	// TokenSource selects the authentication mode: config.TokenSourceHeader
	// or config.TokenSourceNone.
	TokenSource string

	// Header is the request header carrying the bearer token.
	Header string

	// Codec verifies tokens.
	Codec *Codec

	// Resolver maps token subjects to live identities.
	Resolver *Resolver
}

// Middleware authenticates inbound requests. Per request it walks
// NoToken -> TokenPresent -> {Validated, Rejected}: a missing token
// passes the request through with an empty authentication context, a bad
// token or unresolvable subject short-circuits with 401, and a validated
// token populates the request context with the resolved Identity.
type Middleware struct {
	tokenSource string
	header      string
	codec       *Codec
	resolver    *Resolver
}

// NewMiddleware creates the request authenticator.
func NewMiddleware(cfg *MiddlewareConfig) (*Middleware, error) {
	switch cfg.TokenSource {
	case config.TokenSourceNone:
	case config.TokenSourceHeader:
		if cfg.Codec == nil {
			return nil, fmt.Errorf("token codec required for header token source")
		}
		if cfg.Resolver == nil {
			return nil, fmt.Errorf("identity resolver required for header token source")
		}
		if cfg.Header == "" {
			return nil, fmt.Errorf("token header name required for header token source")
		}
	default:
		return nil, fmt.Errorf("unsupported token source: %q", cfg.TokenSource)
	}

	return &Middleware{
		tokenSource: cfg.TokenSource,
		header:      cfg.Header,
		codec:       cfg.Codec,
		resolver:    cfg.Resolver,
	}, nil
}

// Authenticate is the request authentication middleware.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokenSource == config.TokenSourceNone {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := m.extractToken(r)
		if tokenString == "" {
			// Unauthenticated pass-through. Downstream authorization
			// denies access to protected operations.
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.codec.Verify(tokenString, time.Now())
		if err != nil {
			RecordTokenVerification(verificationOutcome(err))
			logging.Ctx(r.Context()).Warn().Err(err).Msg("token rejected")
			http.Error(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), claims.Subject)
		if err != nil {
			RecordTokenVerification(verificationOutcome(err))
			logging.Ctx(r.Context()).Warn().Err(err).Str("subject", claims.Subject).Msg("subject rejected")
			http.Error(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		}

		RecordTokenVerification(OutcomeSuccess)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// extractToken pulls the bearer token from the configured header. The
// "Bearer " prefix is optional: the original clients send the raw token.
func (m *Middleware) extractToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get(m.header))
	if raw == "" {
		return ""
	}
	if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return raw
}

// verificationOutcome maps verification errors to metric labels.
func verificationOutcome(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return OutcomeExpired
	case errors.Is(err, ErrTokenSignature):
		return OutcomeBadSignature
	case errors.Is(err, ErrTokenMalformed):
		return OutcomeMalformed
	case errors.Is(err, ErrSubjectNotFound):
		return OutcomeSubjectNotFound
	default:
		return OutcomeError
	}
}
