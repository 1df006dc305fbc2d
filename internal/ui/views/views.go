// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views contains the zkid TUI screens and the root model that
// routes between them. Navigation goes through the route guard: every
// switch is decided against the live session snapshot, and protected
// screens are never entered while the session is still loading.
package views

import (
	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/guard"
	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/storage"
	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// View identifies a screen.
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewSignup
	ViewDashboard
	ViewKyc
	ViewProofs
	ViewGenerate
	ViewSettings
)

// String returns the view name shown in the status bar.
func (v View) String() string {
	switch v {
	case ViewLanding:
		return "zkid"
	case ViewLogin:
		return "Sign in"
	case ViewSignup:
		return "Create account"
	case ViewDashboard:
		return "Dashboard"
	case ViewKyc:
		return "Verification"
	case ViewProofs:
		return "Proofs"
	case ViewGenerate:
		return "Generate proof"
	case ViewSettings:
		return "Settings"
	}
	return "?"
}

// Route returns the guard requirements for the view. The generate screen
// is the only one gated on completed verification; the verification
// screen itself must stay reachable for unverified users.
func (v View) Route() guard.Route {
	switch v {
	case ViewDashboard, ViewKyc, ViewProofs, ViewSettings:
		return guard.Route{Name: v.String(), RequiresAuth: true}
	case ViewGenerate:
		return guard.Route{Name: v.String(), RequiresAuth: true, RequiresKyc: true}
	default:
		return guard.Route{Name: v.String()}
	}
}

// =============================================================================
// SHARED DEPENDENCIES
// =============================================================================

// App bundles the wired application services the screens work against.
type App struct {
	Cfg       *config.Config
	Theme     *styles.Theme
	Client    *api.Client
	Session   *session.Manager
	Requester *proofs.Requester
	Cache     *storage.ProofCache
}

// snapshot builds the guard snapshot from the live session.
func (a *App) snapshot() guard.Snapshot {
	return guard.Snapshot{
		Loading:       a.Session.Loading(),
		Authenticated: a.Session.Authenticated(),
		KycVerified:   a.Session.KycVerified(),
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// NavigateMsg asks the root model to switch screens.
type NavigateMsg struct {
	To View
}

// Navigate builds a navigation message.
func Navigate(to View) NavigateMsg { return NavigateMsg{To: to} }

// SessionReadyMsg reports that session initialization finished.
type SessionReadyMsg struct{}

// OpResultMsg carries the outcome of a session operation started by a
// screen, tagged with the view that issued it.
type OpResultMsg struct {
	From   View
	Op     string
	Result session.Result
}

// ProofsLoadedMsg delivers a fetched proofs page.
type ProofsLoadedMsg struct {
	List *api.ProofList
	Err  string
}

// TypesLoadedMsg reports the proof type catalog load.
type TypesLoadedMsg struct {
	Err string
}

// ProofGeneratedMsg delivers a freshly generated proof.
type ProofGeneratedMsg struct {
	Proof *api.Proof
	Err   string
}

// ProofDetailMsg delivers the detail fetch for one proof.
type ProofDetailMsg struct {
	Proof *api.Proof
}

// StatsLoadedMsg delivers the dashboard counters (best effort).
type StatsLoadedMsg struct {
	Stats *api.UserStats
}
