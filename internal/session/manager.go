// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"unicode"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/credstore"
)

// =============================================================================
// STATE
// =============================================================================

// State is the session lifecycle phase.
type State int

const (
	// StateUninitialized is the phase before Initialize has been called.
	StateUninitialized State = iota

	// StateInitializing means Initialize is in flight.
	StateInitializing

	// StateAuthenticated means a valid user is loaded.
	StateAuthenticated

	// StateAnonymous means no valid session exists.
	StateAnonymous
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of a session operation. Err is empty on success
// and otherwise holds text fit for direct display.
type Result struct {
	OK  bool
	Err string
}

// ok is the successful result.
func ok() Result { return Result{OK: true} }

// fail builds a failure result from an error, extracting the service's
// human-readable message when one exists.
func fail(err error) Result {
	var svcErr *api.Error
	switch {
	case errors.As(err, &svcErr):
		return Result{Err: svcErr.UserMessage()}
	case errors.Is(err, api.ErrSessionExpired):
		return Result{Err: "Your session has expired. Please sign in again."}
	case errors.Is(err, api.ErrTransport):
		return Result{Err: "Could not reach the service. Check your connection and try again."}
	default:
		return Result{Err: err.Error()}
	}
}

// failMsg builds a failure result from literal text.
func failMsg(msg string) Result { return Result{Err: msg} }

// =============================================================================
// MANAGER
// =============================================================================

// Manager drives the session state machine. It is safe for concurrent use.
type Manager struct {
	client *api.Client
	store  *credstore.Store

	mu    sync.RWMutex
	state State
	user  *api.User

	initOnce sync.Once
}

// NewManager wires a manager to the API client and credential store.
// Token renewals are persisted as they happen, and a failed renewal
// anywhere in the client drops the session to anonymous.
func NewManager(client *api.Client, store *credstore.Store) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		state:  StateUninitialized,
	}

	client.OnTokensRenewed(func(access, renewal string) {
		if err := store.Save(access, renewal); err != nil {
			log.Printf("session: persisting renewed tokens: %v", err)
		}
	})
	client.OnSessionExpired(func() {
		m.dropSession()
	})
	return m
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading reports whether Initialize has not yet completed. The route
// guard makes no redirect decision while this is true.
func (m *Manager) Loading() bool {
	s := m.State()
	return s == StateUninitialized || s == StateInitializing
}

// Authenticated reports whether a valid user is loaded.
func (m *Manager) Authenticated() bool {
	return m.State() == StateAuthenticated
}

// User returns the loaded user, or nil when anonymous.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// KycVerified reports whether the loaded user passed identity verification.
func (m *Manager) KycVerified() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.KycVerified
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Initialize restores the session from the credential store. It runs the
// restore exactly once; later calls return immediately. A stored token
// that the service rejects is cleared, and the session lands on anonymous.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.setState(StateInitializing)

		access, renewal := m.store.Load()
		if access == "" {
			m.setState(StateAnonymous)
			return
		}

		m.client.SetTokens(access, renewal)
		user, err := m.client.Me(ctx)
		if err != nil {
			log.Printf("session: stored token rejected: %v", err)
			m.dropSession()
			return
		}
		m.setUser(user)
	})
}

// SignUp registers a new account and signs it in. Password rules are
// checked locally first so obviously bad input never leaves the machine.
func (m *Manager) SignUp(ctx context.Context, email, password, username string) Result {
	if msg := CheckPassword(password); msg != "" {
		return failMsg(msg)
	}
	res, err := m.client.SignUp(ctx, email, password, username)
	if err != nil {
		return fail(err)
	}
	return m.adopt(res)
}

// SignIn authenticates with email and password.
func (m *Manager) SignIn(ctx context.Context, email, password string) Result {
	res, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return fail(err)
	}
	return m.adopt(res)
}

// adopt installs a token pair and user from a successful auth response.
func (m *Manager) adopt(res *api.AuthResult) Result {
	m.client.SetTokens(res.Token, res.RefreshToken)
	if err := m.store.Save(res.Token, res.RefreshToken); err != nil {
		// The session works for this process even if persistence failed.
		log.Printf("session: persisting tokens: %v", err)
	}
	u := res.User
	m.setUser(&u)
	return ok()
}

// SignOut ends the session. The remote notification is best-effort; the
// local session always ends regardless of what the network does.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.client.SignOut(ctx); err != nil {
		log.Printf("session: remote sign-out failed (ignored): %v", err)
	}
	m.dropSession()
}

// RefreshUser re-fetches the user record, picking up server-side changes
// such as a completed verification.
func (m *Manager) RefreshUser(ctx context.Context) Result {
	user, err := m.client.Me(ctx)
	if err != nil {
		return fail(err)
	}
	m.setUser(user)
	return ok()
}

// =============================================================================
// ACCOUNT OPERATIONS
// =============================================================================

// LinkWallet attaches a wallet address to the account.
func (m *Manager) LinkWallet(ctx context.Context, walletAddress string) Result {
	if walletAddress == "" {
		return failMsg("Enter a wallet address.")
	}
	user, err := m.client.LinkWallet(ctx, walletAddress)
	if err != nil {
		return fail(err)
	}
	m.setUser(user)
	return ok()
}

// UnlinkWallet detaches the wallet address.
func (m *Manager) UnlinkWallet(ctx context.Context) Result {
	user, err := m.client.UnlinkWallet(ctx)
	if err != nil {
		return fail(err)
	}
	m.setUser(user)
	return ok()
}

// UpdateSettings writes account preferences.
func (m *Manager) UpdateSettings(ctx context.Context, settings api.UserSettings) Result {
	user, err := m.client.UpdateSettings(ctx, settings)
	if err != nil {
		return fail(err)
	}
	m.setUser(user)
	return ok()
}

// ChangePassword replaces the account password after local checks.
func (m *Manager) ChangePassword(ctx context.Context, current, next, confirm string) Result {
	if next != confirm {
		return failMsg("New passwords do not match.")
	}
	if msg := CheckPassword(next); msg != "" {
		return failMsg(msg)
	}
	if err := m.client.ChangePassword(ctx, current, next); err != nil {
		return fail(err)
	}
	return ok()
}

// =============================================================================
// PASSWORD RULES
// =============================================================================

// CheckPassword validates the local password policy: at least 8 characters
// containing at least one letter and one digit. Returns a display message,
// or empty when the password passes.
func CheckPassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters."
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain at least one letter and one digit."
	}
	return ""
}

// =============================================================================
// INTERNAL TRANSITIONS
// =============================================================================

// setState records a lifecycle transition.
func (m *Manager) setState(s State) {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()
	if prev != s {
		log.Printf("session: %s -> %s", prev, s)
	}
}

// setUser installs a user and moves to authenticated.
func (m *Manager) setUser(u *api.User) {
	m.mu.Lock()
	m.user = u
	m.state = StateAuthenticated
	m.mu.Unlock()
}

// dropSession clears tokens, credentials, and user, landing on anonymous.
// It is unconditional: the machine ends up signed out no matter what.
func (m *Manager) dropSession() {
	m.client.ClearTokens()
	if err := m.store.Clear(); err != nil {
		log.Printf("session: clearing credentials: %v", err)
	}
	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}
