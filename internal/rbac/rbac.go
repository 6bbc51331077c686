// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

// Package rbac defines the closed set of roles and permissions and the
// mapping between them. The mapping is process-wide constant data: it is
// validated once at startup and never changes at runtime. Enforcement
// against it lives in internal/authz.
package rbac

import (
	"fmt"
	"strings"
)

// Permission is an atomic named capability in "resource:action" form.
type Permission string

const (
	// PermissionDevelopersRead allows reading roster entries.
	PermissionDevelopersRead Permission = "developers:read"

	// PermissionDevelopersWrite allows creating and deleting roster entries.
	PermissionDevelopersWrite Permission = "developers:write"
)

// Split returns the resource and action halves of the permission.
func (p Permission) Split() (resource, action string) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return string(p), ""
	}
	return parts[0], parts[1]
}

// String returns the string representation of the permission.
func (p Permission) String() string {
	return string(p)
}

// Role is a named bundle of permissions assigned to an identity.
type Role string

const (
	// RoleUser is the default role with read-only roster access.
	RoleUser Role = "USER"

	// RoleAdmin has full roster access.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// rolePermissions is the closed role -> permission mapping.
// Permission sets may overlap across roles; none may be empty.
var rolePermissions = map[Role][]Permission{
	RoleUser:  {PermissionDevelopersRead},
	RoleAdmin: {PermissionDevelopersRead, PermissionDevelopersWrite},
}

// Roles returns all defined roles.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RolePermissions returns the permission set for a role. The returned
// slice is a copy; callers may not mutate the registry through it.
func RolePermissions(r Role) ([]Permission, error) {
	perms, ok := rolePermissions[r]
	if !ok {
		return nil, fmt.Errorf("no permissions mapped for role %q", r)
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out, nil
}

// Validate checks the registry invariants: every defined role has a
// non-empty permission set. A violation is a configuration error and is
// fatal at startup.
func Validate() error {
	for _, r := range Roles() {
		perms, ok := rolePermissions[r]
		if !ok {
			return fmt.Errorf("role %q has no permission mapping", r)
		}
		if len(perms) == 0 {
			return fmt.Errorf("role %q maps to an empty permission set", r)
		}
	}
	return nil
}
