// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/devroster/devroster/internal/config"
	"github.com/devroster/devroster/internal/rbac"
	"github.com/devroster/devroster/internal/store"
)

// ErrSubjectNotFound indicates the subject does not exist or has been
// deactivated. The two cases are deliberately indistinguishable: a valid
// token can outlive the user record it refers to, and the response must
// not reveal which happened.
var ErrSubjectNotFound = errors.New("subject not found")

// Resolver maps a validated token subject to a live Identity. Role and
// permissions come from the user store and the registry on every call,
// never from token claims.
type Resolver struct {
	users store.UserStore
}

// NewResolver creates a resolver backed by the given user store.
func NewResolver(users store.UserStore) *Resolver {
	return &Resolver{users: users}
}

// Resolve loads the subject's current record and derives its permission
// set from the registry. Returns ErrSubjectNotFound for missing or
// inactive subjects.
func (r *Resolver) Resolve(ctx context.Context, subject string) (*Identity, error) {
	user, err := r.users.FindBySubject(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("subject lookup failed: %w", err)
	}
	if !user.Active {
		return nil, ErrSubjectNotFound
	}

	perms, err := rbac.RolePermissions(user.Role)
	if err != nil {
		// A stored role outside the registry is a configuration error;
		// startup validation should have caught it.
		return nil, fmt.Errorf("resolving permissions for %s: %w", subject, err)
	}

	return &Identity{
		Subject:     user.Subject,
		Role:        user.Role,
		Permissions: perms,
		Active:      true,
	}, nil
}

// SeedUsers converts configured users into store records, hashing
// plaintext passwords once at load. Pre-hashed digests are taken
// verbatim.
func SeedUsers(users []config.UserConfig, enc *Encoder) ([]store.User, error) {
	out := make([]store.User, 0, len(users))
	for i, u := range users {
		role, err := rbac.ParseRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("user %d (%s): %w", i, u.Email, err)
		}

		digest := u.PasswordHash
		if digest == "" {
			digest, err = enc.Hash(u.Password)
			if err != nil {
				return nil, fmt.Errorf("user %d (%s): %w", i, u.Email, err)
			}
		}

		out = append(out, store.User{
			Subject:      u.Email,
			PasswordHash: digest,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Role:         role,
			Active:       u.Active,
		})
	}
	return out, nil
}
