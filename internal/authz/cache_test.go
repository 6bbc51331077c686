// Devroster - Developer Roster Service with JWT Authentication
// Copyright 2026 Devroster Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/devroster/devroster

package authz

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := newEnforcementCache(time.Minute)
	defer c.stop()

	if _, ok := c.get("USER", "developers", "read"); ok {
		t.Error("get() hit on empty cache")
	}

	c.set("USER", "developers", "read", true)
	c.set("USER", "developers", "write", false)

	if allowed, ok := c.get("USER", "developers", "read"); !ok || !allowed {
		t.Errorf("get() = (%v, %v), want (true, true)", allowed, ok)
	}
	if allowed, ok := c.get("USER", "developers", "write"); !ok || allowed {
		t.Errorf("get() = (%v, %v), want (false, true)", allowed, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newEnforcementCache(10 * time.Millisecond)
	defer c.stop()

	c.set("USER", "developers", "read", true)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.get("USER", "developers", "read"); ok {
		t.Error("get() hit after TTL elapsed")
	}
}

func TestCacheClear(t *testing.T) {
	c := newEnforcementCache(time.Minute)
	defer c.stop()

	c.set("USER", "developers", "read", true)
	c.clear()

	if _, ok := c.get("USER", "developers", "read"); ok {
		t.Error("get() hit after clear()")
	}
}

func TestCacheStopIdempotent(t *testing.T) {
	c := newEnforcementCache(time.Minute)
	c.stop()
	c.stop()
}

func TestCacheNonPositiveTTLDefaulted(t *testing.T) {
	c := newEnforcementCache(0)
	defer c.stop()

	if c.ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m default", c.ttl)
	}
}
