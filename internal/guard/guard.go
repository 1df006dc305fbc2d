// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guard decides whether a navigation target may be entered.
//
// The decision is a pure function of the session snapshot and the route's
// requirements, so it can be tested as a table and reused by both the TUI
// and the headless CLI. While the session is still loading, the guard
// answers "wait" — it never redirects on incomplete information.
package guard

// =============================================================================
// INPUTS
// =============================================================================

// Snapshot is the session state the guard decides on.
type Snapshot struct {
	// Loading is true until session initialization completes.
	Loading bool

	// Authenticated is true when a valid user is loaded.
	Authenticated bool

	// KycVerified is true when the user passed identity verification.
	KycVerified bool
}

// Route describes the requirements of a navigation target.
type Route struct {
	// Name identifies the target, remembered as the origin on redirect.
	Name string

	// RequiresAuth gates the route behind a signed-in session.
	RequiresAuth bool

	// RequiresKyc gates the route behind completed verification.
	// Implies RequiresAuth.
	RequiresKyc bool
}

// =============================================================================
// DECISION
// =============================================================================

// Action is what the caller should do with the navigation attempt.
type Action int

const (
	// ActionAllow lets the navigation proceed.
	ActionAllow Action = iota

	// ActionWait holds navigation until the session finishes loading.
	ActionWait

	// ActionRedirectLogin sends the user to sign-in.
	ActionRedirectLogin

	// ActionRedirectKyc sends the user to identity verification.
	ActionRedirectKyc
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "allow"
	case ActionWait:
		return "wait"
	case ActionRedirectLogin:
		return "redirect-login"
	case ActionRedirectKyc:
		return "redirect-kyc"
	}
	return "unknown"
}

// Decision is the guard's answer for one navigation attempt.
type Decision struct {
	Action Action

	// Origin is the route the user was trying to reach, carried along on
	// redirect so the flow can return there afterwards.
	Origin string
}

// Decide evaluates a navigation attempt. Order matters: loading is checked
// before anything else so an in-flight initialization never causes a
// spurious redirect to login.
func Decide(s Snapshot, r Route) Decision {
	if !r.RequiresAuth && !r.RequiresKyc {
		return Decision{Action: ActionAllow}
	}
	if s.Loading {
		return Decision{Action: ActionWait, Origin: r.Name}
	}
	if !s.Authenticated {
		return Decision{Action: ActionRedirectLogin, Origin: r.Name}
	}
	if r.RequiresKyc && !s.KycVerified {
		return Decision{Action: ActionRedirectKyc, Origin: r.Name}
	}
	return Decision{Action: ActionAllow}
}
