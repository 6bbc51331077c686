// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"context"

	"github.com/devroster/devroster/internal/rbac"
)

// Identity is the resolved principal for one request: the subject, the
// role currently stored for it, and the permission set derived from that
// role at resolution time. It is a plain value; capability checks go
// through HasPermission.
type Identity struct {
	Subject     string            `json:"subject"`
	Role        rbac.Role         `json:"role"`
	Permissions []rbac.Permission `json:"permissions"`
	Active      bool              `json:"active"`
}

// HasPermission reports whether the identity holds the permission.
// Inactive identities hold nothing.
func (id *Identity) HasPermission(p rbac.Permission) bool {
	if id == nil || !id.Active {
		return false
	}
	for _, held := range id.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

type contextKey string

// identityContextKey carries the request's resolved identity. The value
// lives and dies with the request context; it is never cached or shared
// across requests.
const identityContextKey contextKey = "identity"

// WithIdentity returns a child context carrying the identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity populated by the Authenticate
// middleware, or nil for an unauthenticated request.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}
