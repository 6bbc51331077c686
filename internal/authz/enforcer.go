// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package authz

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/rbac"
)

//go:embed model.conf
var embeddedModel string

// EnforcerConfig holds configuration for the Casbin enforcer.
type EnforcerConfig struct {
	// CacheEnabled enables enforcement decision caching.
	CacheEnabled bool

	// CacheTTL is how long to cache decisions.
	CacheTTL time.Duration
}

// DefaultEnforcerConfig returns default configuration.
func DefaultEnforcerConfig() *EnforcerConfig {
	return &EnforcerConfig{
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
	}
}

// Enforcer wraps a Casbin enforcer whose policy mirrors the rbac
// registry.
type Enforcer struct {
	config   *EnforcerConfig
	enforcer *casbin.SyncedEnforcer
	cache    *enforcementCache
}

// NewEnforcer creates an enforcer seeded from the registry. Every
// (role, permission) pair in the registry becomes one policy rule with
// the permission split into object and action.
func NewEnforcer(config *EnforcerConfig) (*Enforcer, error) {
	if config == nil {
		config = DefaultEnforcerConfig()
	}

	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := seedPolicy(enforcer); err != nil {
		return nil, err
	}

	e := &Enforcer{
		config:   config,
		enforcer: enforcer,
	}

	if config.CacheEnabled {
		e.cache = newEnforcementCache(config.CacheTTL)
	}

	return e, nil
}

// seedPolicy generates policy rules from the registry.
func seedPolicy(enforcer *casbin.SyncedEnforcer) error {
	for _, role := range rbac.Roles() {
		perms, err := rbac.RolePermissions(role)
		if err != nil {
			return fmt.Errorf("seeding policy for role %s: %w", role, err)
		}
		for _, perm := range perms {
			resource, action := perm.Split()
			if _, err := enforcer.AddPolicy(role.String(), resource, action); err != nil {
				return fmt.Errorf("failed to add policy %s/%s: %w", role, perm, err)
			}
		}
	}
	return nil
}

// Enforce checks if the subject can perform the action on the object.
func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	if e.cache != nil {
		if allowed, ok := e.cache.get(subject, object, action); ok {
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}

	if e.cache != nil {
		e.cache.set(subject, object, action, allowed)
	}

	return allowed, nil
}

// Allows reports whether the identity may exercise the permission.
// Nil and inactive identities are denied without consulting policy.
func (e *Enforcer) Allows(id *auth.Identity, perm rbac.Permission) (bool, error) {
	if id == nil || !id.Active {
		return false, nil
	}
	resource, action := perm.Split()
	return e.Enforce(id.Role.String(), resource, action)
}

// GetPolicy returns all policy rules.
func (e *Enforcer) GetPolicy() [][]string {
	//nolint:errcheck // GetPolicy only fails if enforcer is nil, which is a programming error
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// Close stops the enforcer and cleans up resources. Cached decisions
// are dropped so a reused enforcer cannot answer from stale state.
func (e *Enforcer) Close() {
	if e.cache != nil {
		e.cache.clear()
		e.cache.stop()
	}
}
