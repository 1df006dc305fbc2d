// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/zkid-tui/internal/config"
)

// newTestClient wires a client against an httptest server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"
	return New(cfg)
}

func TestSuccessEnvelopeDecodes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing request ID header")
		}
		w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","email":"a@b.c","kycVerified":true}}}`))
	}))
	c.SetTokens("tok-1", "ren-1")

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != "u1" || !user.KycVerified {
		t.Errorf("user = %+v", user)
	}
}

func TestFailureEnvelopeBecomesError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"Email already registered"}}`))
	}))

	_, err := c.SignUp(context.Background(), "a@b.c", "password1", "")
	if err == nil {
		t.Fatal("expected error")
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type %T", err)
	}
	if svcErr.Message != "Email already registered" {
		t.Errorf("message = %q", svcErr.Message)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("400 should map to ErrValidation")
	}
}

func TestFailureEnvelopeWithOKStatus(t *testing.T) {
	// Some deployments report logical failures with HTTP 200.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"message":"proof type unavailable"}}`))
	}))

	_, err := c.ListProofTypes(context.Background())
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if svcErr.Message != "proof type unavailable" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestUnauthorizedRenewsOnceAndRetries(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			if meCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":{"message":"token expired"}}`))
				return
			}
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-access" {
				t.Errorf("retry Authorization = %q", got)
			}
			w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1"}}}`))
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			if r.Header.Get("Authorization") != "" {
				t.Error("renewal request must not carry a bearer token")
			}
			w.Write([]byte(`{"success":true,"data":{"token":"fresh-access","refreshToken":"fresh-renewal"}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	c.SetTokens("stale-access", "ren-1")

	var renewedAccess, renewedRenewal string
	c.OnTokensRenewed(func(a, r string) { renewedAccess, renewedRenewal = a, r })

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me after renewal: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user = %+v", user)
	}
	if got := meCalls.Load(); got != 2 {
		t.Errorf("original request sent %d times, want 2", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("renewal sent %d times, want 1", got)
	}
	if renewedAccess != "fresh-access" || renewedRenewal != "fresh-renewal" {
		t.Errorf("renewal callback got (%q, %q)", renewedAccess, renewedRenewal)
	}
}

func TestSecondUnauthorizedTerminates(t *testing.T) {
	var meCalls atomic.Int32

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			meCalls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"message":"nope"}}`))
		case "/api/auth/refresh":
			w.Write([]byte(`{"success":true,"data":{"token":"fresh","refreshToken":"fresh-r"}}`))
		}
	}))
	c.SetTokens("stale", "ren")

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrAuthRejected) {
		t.Errorf("want ErrAuthRejected, got %v", err)
	}
	// One original attempt plus exactly one resubmit, never more.
	if got := meCalls.Load(); got != 2 {
		t.Errorf("request sent %d times, want 2", got)
	}
}

func TestFailedRenewalExpiresSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"message":"expired"}}`))
		case "/api/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"message":"renewal revoked"}}`))
		}
	}))
	c.SetTokens("stale", "revoked-renewal")

	expired := false
	c.OnSessionExpired(func() { expired = true })

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("want ErrSessionExpired, got %v", err)
	}
	if !expired {
		t.Error("expiry callback not invoked")
	}
	if c.HasToken() {
		t.Error("tokens not cleared after failed renewal")
	}
}

func TestUnauthorizedWithoutRenewalToken(t *testing.T) {
	var refreshCalls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshCalls.Add(1)
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"message":"no"}}`))
	}))
	c.SetTokens("stale", "")

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("want ErrSessionExpired, got %v", err)
	}
	if refreshCalls.Load() != 0 {
		t.Error("renewal attempted without a renewal token")
	}
}

func TestTransportFailure(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "http://127.0.0.1:1/api" // nothing listens here
	c := New(cfg)

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("want ErrTransport, got %v", err)
	}
}

func TestListProofsQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("status") != "active" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"success":true,"data":{"proofs":[{"id":"p1","proofType":"age_over_18"}],"pagination":{"page":2,"pages":3,"total":25}}}`))
	}))
	c.SetTokens("tok", "ren")

	list, err := c.ListProofs(context.Background(), ProofListFilter{Page: 2, Limit: 10, Status: "active"})
	if err != nil {
		t.Fatalf("ListProofs: %v", err)
	}
	if len(list.Proofs) != 1 || list.Pagination.Total != 25 {
		t.Errorf("list = %+v", list)
	}
}

func TestGenerateProof(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/proofs/generate" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"proof":{"id":"p9","proofType":"age_over_18","status":"generated"}}}`))
	}))
	c.SetTokens("tok", "ren")

	proof, err := c.GenerateProof(context.Background(), GenerateProofRequest{
		ProofType: "age_over_18",
		Name:      "bar entry",
		MaxUsage:  1,
		ValidDays: 365,
	})
	if err != nil {
		t.Fatalf("GenerateProof: %v", err)
	}
	if proof.ID != "p9" {
		t.Errorf("proof = %+v", proof)
	}
}
