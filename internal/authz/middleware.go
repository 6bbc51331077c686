// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package authz

import (
	"net/http"

	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/logging"
	"github.com/devroster/devroster/internal/rbac"
)

// Middleware guards routes with permission checks.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{
		enforcer: enforcer,
	}
}

// RequirePermission denies the request unless the authenticated
// identity holds the permission. Requests without an identity get 401,
// authenticated requests without the permission get 403.
func (m *Middleware) RequirePermission(perm rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.IdentityFromContext(r.Context())
			if id == nil {
				recordDecision(perm.String(), DecisionDenied)
				http.Error(w, "Unauthorized: authentication required", http.StatusUnauthorized)
				return
			}

			allowed, err := m.enforcer.Allows(id, perm)
			if err != nil {
				recordDecision(perm.String(), DecisionError)
				logging.Ctx(r.Context()).Error().Err(err).
					Str("subject", id.Subject).
					Str("permission", perm.String()).
					Msg("authorization error")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				recordDecision(perm.String(), DecisionDenied)
				logging.Ctx(r.Context()).Warn().
					Str("subject", id.Subject).
					Str("role", id.Role.String()).
					Str("permission", perm.String()).
					Msg("permission denied")
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			recordDecision(perm.String(), DecisionAllowed)
			next.ServeHTTP(w, r)
		})
	}
}
