// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package proofs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/config"
)

func TestParseType(t *testing.T) {
	for _, known := range All() {
		got, ok := ParseType(string(known))
		if !ok || got != known {
			t.Errorf("ParseType(%q) = (%q, %v)", known, got, ok)
		}
	}
	if _, ok := ParseType("age_over_99"); ok {
		t.Error("ParseType accepted an unknown type")
	}
	if _, ok := ParseType(""); ok {
		t.Error("ParseType accepted empty string")
	}
}

func TestTypeDisplayCoversAllTypes(t *testing.T) {
	for _, typ := range All() {
		if typ.Label() == string(typ) {
			t.Errorf("%s has no label", typ)
		}
		if typ.Summary() == "" {
			t.Errorf("%s has no summary", typ)
		}
		if typ.Glyph() == "·" {
			t.Errorf("%s has no glyph", typ)
		}
	}
}

// recordingCache captures proofs handed to the cache.
type recordingCache struct {
	proofs []api.Proof
}

func (c *recordingCache) Put(p api.Proof) error {
	c.proofs = append(c.proofs, p)
	return nil
}

func newTestRequester(t *testing.T, handler http.Handler, cache Cache) *Requester {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"
	client := api.New(cfg)
	client.SetTokens("tok", "ren")
	return NewRequester(client, cache)
}

func TestRequestCoercesNumericInputs(t *testing.T) {
	var got api.GenerateProofRequest
	r := newTestRequester(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/proofs/generate" {
			w.Write([]byte(`{"success":true,"data":{"proofTypes":[]}}`))
			return
		}
		json.NewDecoder(req.Body).Decode(&got)
		w.Write([]byte(`{"success":true,"data":{"proof":{"id":"p1","proofType":"age_over_18","status":"generated"}}}`))
	}), nil)
	ctx := context.Background()

	tests := []struct {
		name          string
		maxUsage      string
		validDays     string
		wantMaxUsage  int
		wantValidDays int
	}{
		{"garbage falls back to defaults", "abc", "xyz", 1, 365},
		{"empty falls back to defaults", "", "", 1, 365},
		{"explicit zero usage means unlimited", "0", "30", 0, 30},
		{"negative usage falls back", "-4", "30", 1, 30},
		{"zero validity falls back", "3", "0", 3, 365},
		{"plain numbers pass through", "5", "90", 5, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := r.Request(ctx, Input{
				Type:      TypeAgeOver18,
				Name:      "test proof",
				MaxUsage:  tt.maxUsage,
				ValidDays: tt.validDays,
			})
			if !res.OK {
				t.Fatalf("Request failed: %s", res.Err)
			}
			if got.MaxUsage != tt.wantMaxUsage {
				t.Errorf("maxUsage = %d, want %d", got.MaxUsage, tt.wantMaxUsage)
			}
			if got.ValidDays != tt.wantValidDays {
				t.Errorf("validDays = %d, want %d", got.ValidDays, tt.wantValidDays)
			}
		})
	}
}

func TestRequestChecksAvailabilityLocally(t *testing.T) {
	var generateCalls atomic.Int32
	r := newTestRequester(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/proofs/types":
			w.Write([]byte(`{"success":true,"data":{"proofTypes":[
				{"type":"age_over_18","name":"Age over 18","available":true},
				{"type":"is_human","name":"Proof of humanity","available":false}]}}`))
		case "/api/proofs/generate":
			generateCalls.Add(1)
			w.Write([]byte(`{"success":true,"data":{"proof":{"id":"p1","proofType":"age_over_18"}}}`))
		}
	}), nil)
	ctx := context.Background()

	if res := r.LoadTypes(ctx); !res.OK {
		t.Fatalf("LoadTypes: %s", res.Err)
	}

	if !r.Available(TypeAgeOver18) {
		t.Error("age_over_18 should be available")
	}
	if r.Available(TypeIsHuman) {
		t.Error("is_human should be unavailable")
	}
	// Types the service never listed are unavailable too.
	if r.Available(TypeUniquePerson) {
		t.Error("unlisted type should be unavailable")
	}

	_, res := r.Request(ctx, Input{Type: TypeIsHuman, Name: "nope"})
	if res.OK {
		t.Fatal("request for unavailable type succeeded")
	}
	if generateCalls.Load() != 0 {
		t.Error("unavailable type reached the network")
	}
}

func TestRequestRequiresName(t *testing.T) {
	var generateCalls atomic.Int32
	r := newTestRequester(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		generateCalls.Add(1)
	}), nil)

	_, res := r.Request(context.Background(), Input{Type: TypeAgeOver18})
	if res.OK {
		t.Fatal("nameless request succeeded")
	}
	if generateCalls.Load() != 0 {
		t.Error("nameless request reached the network")
	}
}

func TestRequestCachesGeneratedProof(t *testing.T) {
	cache := &recordingCache{}
	r := newTestRequester(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"proof":{"id":"p7","proofType":"age_over_18","name":"bar entry","status":"generated"}}}`))
	}), cache)

	proof, res := r.Request(context.Background(), Input{Type: TypeAgeOver18, Name: "bar entry"})
	if !res.OK {
		t.Fatalf("Request: %s", res.Err)
	}
	if proof.ID != "p7" {
		t.Errorf("proof = %+v", proof)
	}
	if len(cache.proofs) != 1 || cache.proofs[0].ID != "p7" {
		t.Errorf("cache = %+v", cache.proofs)
	}
}

func TestRequestSurfacesServiceMessage(t *testing.T) {
	r := newTestRequester(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"error":{"message":"identity attributes missing"}}`))
	}), nil)

	_, res := r.Request(context.Background(), Input{Type: TypeAgeOver18, Name: "x"})
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Err != "identity attributes missing" {
		t.Errorf("err = %q", res.Err)
	}
}
