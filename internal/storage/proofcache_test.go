// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/zkid-tui/internal/api"
)

func newTestCache(t *testing.T) *ProofCache {
	t.Helper()
	c, err := OpenProofCache(filepath.Join(t.TempDir(), "proofs.db"))
	if err != nil {
		t.Fatalf("OpenProofCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutAndList(t *testing.T) {
	c := newTestCache(t)

	proofs := []api.Proof{
		{ID: "p1", ProofType: "age_over_18", Name: "bar entry", Status: "active", MaxUsage: 1, CreatedAt: "2026-08-01T10:00:00Z"},
		{ID: "p2", ProofType: "is_human", Name: "captcha skip", Status: "active", MaxUsage: 0, CreatedAt: "2026-08-02T10:00:00Z"},
		{ID: "p3", ProofType: "age_over_18", Name: "old one", Status: "revoked", MaxUsage: 5, CreatedAt: "2026-07-01T10:00:00Z"},
	}
	if err := c.PutAll(proofs); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	all, err := c.List("", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	// Newest first.
	if all[0].ID != "p2" || all[2].ID != "p3" {
		t.Errorf("order = [%s %s %s]", all[0].ID, all[1].ID, all[2].ID)
	}
	// Unlimited usage (0) survives the round trip untouched.
	if all[0].MaxUsage != 0 {
		t.Errorf("p2 max usage = %d, want 0", all[0].MaxUsage)
	}
}

func TestListFilters(t *testing.T) {
	c := newTestCache(t)
	if err := c.PutAll([]api.Proof{
		{ID: "p1", ProofType: "age_over_18", Name: "a", Status: "active"},
		{ID: "p2", ProofType: "is_human", Name: "b", Status: "active"},
		{ID: "p3", ProofType: "age_over_18", Name: "c", Status: "revoked"},
	}); err != nil {
		t.Fatal(err)
	}

	byType, err := c.List("age_over_18", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byType) != 2 {
		t.Errorf("type filter matched %d", len(byType))
	}

	both, err := c.List("age_over_18", "active")
	if err != nil {
		t.Fatal(err)
	}
	if len(both) != 1 || both[0].ID != "p1" {
		t.Errorf("combined filter = %+v", both)
	}
}

func TestPutUpserts(t *testing.T) {
	c := newTestCache(t)
	if err := c.Put(api.Proof{ID: "p1", ProofType: "age_over_18", Name: "v1", Status: "active", UsageCount: 0}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(api.Proof{ID: "p1", ProofType: "age_over_18", Name: "v2", Status: "active", UsageCount: 3}); err != nil {
		t.Fatal(err)
	}

	all, err := c.List("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1 after upsert", len(all))
	}
	if all[0].Name != "v2" || all[0].UsageCount != 3 {
		t.Errorf("upserted row = %+v", all[0])
	}
}

func TestPurgeAll(t *testing.T) {
	c := newTestCache(t)
	if err := c.PutAll([]api.Proof{
		{ID: "p1", ProofType: "age_over_18", Name: "a", Status: "active"},
		{ID: "p2", ProofType: "is_human", Name: "b", Status: "active"},
	}); err != nil {
		t.Fatal(err)
	}

	if err := c.PurgeAll(); err != nil {
		t.Fatalf("PurgeAll: %v", err)
	}
	n, err := c.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("count after purge = %d", n)
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)
	if err := c.Put(api.Proof{ID: "p1", ProofType: "age_over_18", Name: "a", Status: "active"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete("p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete("p1"); err != nil {
		t.Errorf("deleting a missing row should be a no-op: %v", err)
	}
	n, _ := c.Count()
	if n != 0 {
		t.Errorf("count = %d", n)
	}
}
