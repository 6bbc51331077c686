// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devroster/devroster/internal/config"
	"github.com/devroster/devroster/internal/rbac"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_12345"

func testCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(&config.SecurityConfig{
		JWTSecret: testSecret,
		TokenTTL:  ttl,
	})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestNewCodec(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  &config.SecurityConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{JWTSecret: "", TokenTTL: time.Hour},
			wantErr: true,
		},
		{
			name:    "non-positive ttl",
			cfg:     &config.SecurityConfig{JWTSecret: testSecret, TokenTTL: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(tt.cfg)
			if tt.wantErr && err == nil {
				t.Error("NewCodec() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewCodec() unexpected error = %v", err)
			}
		})
	}
}

func TestCodecTTL(t *testing.T) {
	for _, ttl := range []time.Duration{time.Minute, time.Hour, 24 * time.Hour} {
		if got := testCodec(t, ttl).TTL(); got != ttl {
			t.Errorf("TTL() = %v, want %v", got, ttl)
		}
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	codec := testCodec(t, time.Hour)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		subject string
		role    rbac.Role
	}{
		{name: "user token", subject: "anton@example.com", role: rbac.RoleUser},
		{name: "admin token", subject: "admin@example.com", role: rbac.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := codec.Issue(tt.subject, tt.role, now)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			claims, err := codec.Verify(token, now)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.Subject != tt.subject {
				t.Errorf("Subject = %q, want %q", claims.Subject, tt.subject)
			}
			if claims.Role != string(tt.role) {
				t.Errorf("Role = %q, want %q", claims.Role, tt.role)
			}
			if !claims.IssuedAt.Time.Equal(now) {
				t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt.Time, now)
			}
			if !claims.ExpiresAt.Time.Equal(now.Add(time.Hour)) {
				t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, now.Add(time.Hour))
			}
		})
	}
}

func TestIssue_DeterministicForIdenticalInputs(t *testing.T) {
	codec := testCodec(t, time.Hour)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a, err := codec.Issue("anton@example.com", rbac.RoleUser, now)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	b, err := codec.Issue("anton@example.com", rbac.RoleUser, now)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if a != b {
		t.Error("Issue() not byte-identical for identical subject, role and instant")
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	ttl := time.Hour
	codec := testCodec(t, ttl)
	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	token, err := codec.Issue("anton@example.com", rbac.RoleUser, issuedAt)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "one second before expiry", now: issuedAt.Add(ttl - time.Second)},
		{name: "exactly at expiry", now: issuedAt.Add(ttl), wantErr: ErrTokenExpired},
		{name: "after expiry", now: issuedAt.Add(ttl + time.Minute), wantErr: ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(token, tt.now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Verify() unexpected error = %v", err)
			}
		})
	}
}

// flipChar substitutes one character of a base64url segment so the token
// still splits into three parts but no longer matches its signature.
func flipChar(s string, idx int) string {
	b := []byte(s)
	if b[idx] == 'A' {
		b[idx] = 'B'
	} else {
		b[idx] = 'A'
	}
	return string(b)
}

func TestVerify_TamperRejection(t *testing.T) {
	codec := testCodec(t, time.Hour)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	token, err := codec.Issue("anton@example.com", rbac.RoleUser, now)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	tests := []struct {
		name    string
		mutated string
	}{
		{name: "payload byte flipped", mutated: parts[0] + "." + flipChar(parts[1], 4) + "." + parts[2]},
		{name: "signature byte flipped", mutated: parts[0] + "." + parts[1] + "." + flipChar(parts[2], 4)},
		{name: "signature stripped", mutated: parts[0] + "." + parts[1] + "."},
		{name: "two segments only", mutated: parts[0] + "." + parts[1]},
		{name: "empty string", mutated: ""},
		{name: "garbage", mutated: "not_a_jwt_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.mutated, now)
			if err == nil {
				t.Fatal("Verify() accepted a tampered token")
			}
			if !errors.Is(err, ErrTokenSignature) && !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("Verify() error = %v, want signature or malformed failure", err)
			}
			if claims != nil {
				t.Error("Verify() returned claims for a tampered token")
			}
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer := testCodec(t, time.Hour)

	other, err := NewCodec(&config.SecurityConfig{
		JWTSecret: "a_completely_different_secret_key_67890_abcdef",
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	token, err := issuer.Issue("anton@example.com", rbac.RoleUser, now)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token, now); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("Verify() error = %v, want ErrTokenSignature", err)
	}
}
