// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package store

import (
	"context"
	"fmt"
)

// StaticStore is an immutable in-memory user store built once at startup
// from configuration. Safe for concurrent reads.
type StaticStore struct {
	users map[string]*User
}

// NewStatic builds a static store from pre-hashed user records.
// Duplicate subjects are a configuration error.
func NewStatic(users []User) (*StaticStore, error) {
	m := make(map[string]*User, len(users))
	for i := range users {
		u := users[i]
		if _, dup := m[u.Subject]; dup {
			return nil, fmt.Errorf("duplicate user subject %q", u.Subject)
		}
		m[u.Subject] = &u
	}
	return &StaticStore{users: m}, nil
}

// FindBySubject implements UserStore.
func (s *StaticStore) FindBySubject(_ context.Context, subject string) (*User, error) {
	u, ok := s.users[subject]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the store through the pointer.
	out := *u
	return &out, nil
}
