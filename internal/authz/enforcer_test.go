// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package authz

import (
	"testing"
	"time"

	"github.com/devroster/devroster/internal/auth"
	"github.com/devroster/devroster/internal/rbac"
)

func testEnforcer(t *testing.T, cfg *EnforcerConfig) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(cfg)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEnforcer_SeededFromRegistry(t *testing.T) {
	e := testEnforcer(t, nil)

	// One policy rule per (role, permission) pair in the registry.
	want := 0
	for _, role := range rbac.Roles() {
		perms, err := rbac.RolePermissions(role)
		if err != nil {
			t.Fatalf("RolePermissions(%s) error = %v", role, err)
		}
		want += len(perms)
	}
	if got := len(e.GetPolicy()); got != want {
		t.Errorf("policy rules = %d, want %d", got, want)
	}
}

func TestEnforce(t *testing.T) {
	e := testEnforcer(t, nil)

	tests := []struct {
		name    string
		subject string
		object  string
		action  string
		want    bool
	}{
		{name: "user reads developers", subject: "USER", object: "developers", action: "read", want: true},
		{name: "user writes developers", subject: "USER", object: "developers", action: "write", want: false},
		{name: "admin reads developers", subject: "ADMIN", object: "developers", action: "read", want: true},
		{name: "admin writes developers", subject: "ADMIN", object: "developers", action: "write", want: true},
		{name: "unknown role", subject: "SUPERUSER", object: "developers", action: "read", want: false},
		{name: "unknown resource", subject: "ADMIN", object: "payroll", action: "read", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Enforce(tt.subject, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.subject, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	e := testEnforcer(t, nil)

	tests := []struct {
		name string
		id   *auth.Identity
		perm rbac.Permission
		want bool
	}{
		{
			name: "user allowed read",
			id:   &auth.Identity{Subject: "anton@example.com", Role: rbac.RoleUser, Active: true},
			perm: rbac.PermissionDevelopersRead,
			want: true,
		},
		{
			name: "user denied write",
			id:   &auth.Identity{Subject: "anton@example.com", Role: rbac.RoleUser, Active: true},
			perm: rbac.PermissionDevelopersWrite,
			want: false,
		},
		{
			name: "admin allowed write",
			id:   &auth.Identity{Subject: "admin@example.com", Role: rbac.RoleAdmin, Active: true},
			perm: rbac.PermissionDevelopersWrite,
			want: true,
		},
		{
			name: "nil identity denied",
			id:   nil,
			perm: rbac.PermissionDevelopersRead,
			want: false,
		},
		{
			name: "inactive identity denied",
			id:   &auth.Identity{Subject: "gone@example.com", Role: rbac.RoleAdmin, Active: false},
			perm: rbac.PermissionDevelopersRead,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Allows(tt.id, tt.perm)
			if err != nil {
				t.Fatalf("Allows() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnforce_CachedDecisionStable(t *testing.T) {
	e := testEnforcer(t, &EnforcerConfig{CacheEnabled: true, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		allowed, err := e.Enforce("USER", "developers", "read")
		if err != nil {
			t.Fatalf("Enforce() error = %v", err)
		}
		if !allowed {
			t.Fatalf("Enforce() = false on call %d, want true", i+1)
		}
	}

	if allowed, ok := e.cache.get("USER", "developers", "read"); !ok || !allowed {
		t.Error("decision not cached after repeated Enforce()")
	}
}

func TestClose_DropsCachedDecisions(t *testing.T) {
	e := testEnforcer(t, &EnforcerConfig{CacheEnabled: true, CacheTTL: time.Minute})

	if _, err := e.Enforce("USER", "developers", "read"); err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if _, ok := e.cache.get("USER", "developers", "read"); !ok {
		t.Fatal("decision not cached before Close()")
	}

	e.Close()

	if _, ok := e.cache.get("USER", "developers", "read"); ok {
		t.Error("cached decision survived Close()")
	}
}

func TestEnforce_CacheDisabled(t *testing.T) {
	e := testEnforcer(t, &EnforcerConfig{CacheEnabled: false})

	if e.cache != nil {
		t.Fatal("cache allocated despite CacheEnabled=false")
	}
	allowed, err := e.Enforce("ADMIN", "developers", "write")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if !allowed {
		t.Error("Enforce() = false, want true")
	}
}
