// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package store provides the user lookup collaborator consumed by the
// identity resolver. The authentication core only ever reads through
// UserStore; seeding happens once at startup.
package store

import (
	"context"
	"errors"

	"github.com/devroster/devroster/internal/rbac"
)

// ErrNotFound indicates no user record exists for the subject.
var ErrNotFound = errors.New("user not found")

// User is a stored user record, keyed by Subject (the login email).
type User struct {
	Subject      string    `json:"subject"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         rbac.Role `json:"role"`
	Active       bool      `json:"active"`
}

// UserStore is the read-side interface the authentication core consumes.
type UserStore interface {
	// FindBySubject returns the user record for the subject, or
	// ErrNotFound.
	FindBySubject(ctx context.Context, subject string) (*User, error)
}
