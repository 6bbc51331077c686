// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package rbac

import "testing"

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want []Permission
	}{
		{
			name: "user has read only",
			role: RoleUser,
			want: []Permission{PermissionDevelopersRead},
		},
		{
			name: "admin has read and write",
			role: RoleAdmin,
			want: []Permission{PermissionDevelopersRead, PermissionDevelopersWrite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RolePermissions(tt.role)
			if err != nil {
				t.Fatalf("RolePermissions() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("RolePermissions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("RolePermissions()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRolePermissions_UnknownRole(t *testing.T) {
	if _, err := RolePermissions(Role("SUPERVISOR")); err == nil {
		t.Error("RolePermissions() expected error for unmapped role, got nil")
	}
}

func TestRolePermissions_ReturnsCopy(t *testing.T) {
	perms, err := RolePermissions(RoleUser)
	if err != nil {
		t.Fatalf("RolePermissions() error = %v", err)
	}
	perms[0] = Permission("developers:delete")

	again, err := RolePermissions(RoleUser)
	if err != nil {
		t.Fatalf("RolePermissions() error = %v", err)
	}
	if again[0] != PermissionDevelopersRead {
		t.Errorf("registry mutated through returned slice: got %v", again[0])
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "user", input: "USER", want: RoleUser},
		{name: "admin", input: "ADMIN", want: RoleAdmin},
		{name: "lowercase rejected", input: "admin", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("ParseRole() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPermissionSplit(t *testing.T) {
	resource, action := PermissionDevelopersWrite.Split()
	if resource != "developers" || action != "write" {
		t.Errorf("Split() = (%q, %q), want (developers, write)", resource, action)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
