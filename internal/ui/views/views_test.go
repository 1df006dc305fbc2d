// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/credstore"
	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

func TestRouteRequirements(t *testing.T) {
	tests := []struct {
		view     View
		auth     bool
		kyc      bool
	}{
		{ViewLanding, false, false},
		{ViewLogin, false, false},
		{ViewSignup, false, false},
		{ViewDashboard, true, false},
		{ViewKyc, true, false},
		{ViewProofs, true, false},
		{ViewSettings, true, false},
		{ViewGenerate, true, true},
	}
	for _, tt := range tests {
		r := tt.view.Route()
		if r.RequiresAuth != tt.auth || r.RequiresKyc != tt.kyc {
			t.Errorf("%s route = %+v, want auth=%v kyc=%v", tt.view, r, tt.auth, tt.kyc)
		}
	}
}

func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"
	client := api.New(cfg)

	store, err := credstore.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sess := session.NewManager(client, store)

	return &App{
		Cfg:       cfg,
		Theme:     styles.NewTheme(),
		Client:    client,
		Session:   sess,
		Requester: proofs.NewRequester(client, nil),
	}
}

func TestNavigationHeldWhileLoading(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	root := NewRoot(app)

	// Session has not initialized: a protected target is held, not entered.
	cmd := root.navigate(ViewDashboard)
	if cmd == nil {
		t.Error("held navigation should start the spinner")
	}
	if !root.held || root.pending != ViewDashboard {
		t.Errorf("held=%v pending=%v", root.held, root.pending)
	}
	if root.active == ViewDashboard {
		t.Error("protected view entered while loading")
	}

	// Session settles anonymous: the pending target resolves to login
	// with the origin remembered.
	app.Session.Initialize(context.Background())
	root.handleSessionReady()

	if root.active != ViewLogin {
		t.Errorf("active = %v, want login redirect", root.active)
	}
	if root.origin != ViewDashboard {
		t.Errorf("origin = %v, want dashboard", root.origin)
	}
}

func TestNavigationRedirectsUnverifiedToKyc(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","kycVerified":false},"token":"a","refreshToken":"r"}}`))
	}))
	root := NewRoot(app)

	app.Session.Initialize(context.Background()) // no stored token: anonymous
	if !app.Session.SignIn(context.Background(), "a@b.c", "password1").OK {
		t.Fatal("sign-in failed")
	}

	root.navigate(ViewGenerate)
	if root.active != ViewKyc {
		t.Errorf("active = %v, want kyc redirect for unverified user", root.active)
	}
	if root.origin != ViewGenerate {
		t.Errorf("origin = %v, want generate", root.origin)
	}
}

func TestNavigationAllowsPublicViews(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	root := NewRoot(app)

	// Public screens open even while the session is loading.
	root.navigate(ViewSignup)
	if root.active != ViewSignup {
		t.Errorf("active = %v, want signup", root.active)
	}
}

func TestProofsNameFilter(t *testing.T) {
	s := &proofsScreen{items: []api.Proof{
		{ID: "p1", Name: "Age for bar entry"},
		{ID: "p2", Name: "Humanity check"},
		{ID: "p3", Name: "Bar crawl age"},
	}}

	s.filter = "bar"
	got := s.visible()
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Errorf("filter %q matched %+v", s.filter, got)
	}

	s.filter = "NOTHING"
	if len(s.visible()) != 0 {
		t.Errorf("filter %q should match nothing", s.filter)
	}

	s.filter = ""
	if len(s.visible()) != 3 {
		t.Errorf("empty filter should show everything")
	}
}
