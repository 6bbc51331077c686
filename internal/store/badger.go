// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// userKeyPrefix namespaces user records inside the badger keyspace.
const userKeyPrefix = "user:"

// BadgerStore is a persistent user store backed by BadgerDB. Records are
// JSON-encoded under "user:<subject>" keys. Badger handles its own
// concurrency; the store is safe for parallel request handling.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the badger database at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// FindBySubject implements UserStore.
func (s *BadgerStore) FindBySubject(_ context.Context, subject string) (*User, error) {
	var user User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + subject))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return &user, nil
}

// Put writes a user record. Used for seeding at startup; the
// authentication core never writes through the UserStore interface.
func (s *BadgerStore) Put(_ context.Context, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user %s: %w", user.Subject, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+user.Subject), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store user %s: %w", user.Subject, err)
	}
	return nil
}

// Seed writes all records, overwriting existing subjects.
func (s *BadgerStore) Seed(ctx context.Context, users []User) error {
	for i := range users {
		if err := s.Put(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
