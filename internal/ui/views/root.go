// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zkid-tui/internal/guard"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// SCREEN INTERFACE
// =============================================================================

// Screen is one TUI view. Enter is called each time navigation lands on
// the screen; the returned command kicks off its data loading.
type Screen interface {
	Enter() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
	Shortcuts() []components.Shortcut
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Root is the top-level bubbletea model. It owns navigation, the status
// bar, toasts, and the global loading spinner; everything else lives in
// the screens.
type Root struct {
	app *App

	active  View
	origin  View // where to land after a redirect resolves
	pending View // navigation held back while the session loads
	held    bool

	width  int
	height int

	screens   map[View]Screen
	spinner   components.Spinner
	toasts    components.ToastManager
	statusbar components.StatusBar
}

// NewRoot wires the root model and all screens.
func NewRoot(app *App) *Root {
	r := &Root{
		app:       app,
		active:    ViewLanding,
		origin:    ViewDashboard,
		spinner:   components.NewSpinner(app.Theme, app.Cfg.UI.ReducedMotion),
		toasts:    components.NewToastManager(app.Theme),
		statusbar: components.NewStatusBar(app.Theme),
		width:     80,
		height:    24,
	}
	r.screens = map[View]Screen{
		ViewLanding:   newLandingScreen(app),
		ViewLogin:     newLoginScreen(app),
		ViewSignup:    newSignupScreen(app),
		ViewDashboard: newDashboardScreen(app),
		ViewKyc:       newKycScreen(app),
		ViewProofs:    newProofsScreen(app),
		ViewGenerate:  newGenerateScreen(app),
		ViewSettings:  newSettingsScreen(app),
	}
	return r
}

// Init starts session restoration. The TUI stays on the landing screen
// with a spinner until the session settles.
func (r *Root) Init() tea.Cmd {
	startup := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), r.app.Cfg.API.Timeout()+5*time.Second)
		defer cancel()
		r.app.Session.Initialize(ctx)
		return SessionReadyMsg{}
	}
	return tea.Batch(r.spinner.Start("Checking session…"), startup)
}

// Update routes messages.
func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		}

	case SessionReadyMsg:
		return r.handleSessionReady()

	case NavigateMsg:
		return r, r.navigate(msg.To)

	case OpResultMsg:
		return r.handleOpResult(msg)

	case ProofGeneratedMsg:
		cmd := r.screens[r.active].Update(msg)
		if msg.Err != "" {
			return r, tea.Batch(cmd, r.toasts.Error(msg.Err))
		}
		return r, cmd

	case TypesLoadedMsg:
		cmd := r.screens[r.active].Update(msg)
		if msg.Err != "" {
			return r, tea.Batch(cmd, r.toasts.Error(msg.Err))
		}
		return r, cmd

	case ProofsLoadedMsg:
		cmd := r.screens[r.active].Update(msg)
		if msg.Err != "" {
			return r, tea.Batch(cmd, r.toasts.Info(msg.Err))
		}
		return r, cmd

	case components.ToastExpiredMsg:
		r.toasts.Update(msg)
		return r, nil
	}

	var cmds []tea.Cmd
	if cmd := r.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := r.screens[r.active].Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return r, tea.Batch(cmds...)
}

// handleSessionReady resolves startup navigation once the session settles.
func (r *Root) handleSessionReady() (tea.Model, tea.Cmd) {
	r.spinner.Stop()

	if r.held {
		r.held = false
		return r, r.navigate(r.pending)
	}
	if r.app.Session.Authenticated() {
		return r, r.navigate(ViewDashboard)
	}
	return r, r.navigate(ViewLanding)
}

// navigate runs the guard and switches screens accordingly.
func (r *Root) navigate(to View) tea.Cmd {
	decision := guard.Decide(r.app.snapshot(), to.Route())

	switch decision.Action {
	case guard.ActionWait:
		r.pending, r.held = to, true
		return r.spinner.Start("Checking session…")

	case guard.ActionRedirectLogin:
		r.origin = to
		r.active = ViewLogin
		return r.screens[ViewLogin].Enter()

	case guard.ActionRedirectKyc:
		r.origin = to
		r.active = ViewKyc
		return tea.Batch(
			r.toasts.Info("Identity verification is required first."),
			r.screens[ViewKyc].Enter(),
		)
	}

	r.active = to
	return r.screens[to].Enter()
}

// handleOpResult reacts to operation outcomes that move navigation.
func (r *Root) handleOpResult(msg OpResultMsg) (tea.Model, tea.Cmd) {
	// Screens get the message too, to clear their busy state.
	screenCmd := r.screens[r.active].Update(msg)

	if !msg.Result.OK {
		return r, tea.Batch(screenCmd, r.toasts.Error(msg.Result.Err))
	}

	switch msg.Op {
	case "signin", "signup":
		// Return to wherever the user was headed before the redirect.
		target := r.origin
		r.origin = ViewDashboard
		return r, tea.Batch(screenCmd, r.toasts.Success("Signed in."), r.navigate(target))

	case "signout":
		if r.app.Cache != nil {
			if err := r.app.Cache.PurgeAll(); err != nil {
				log.Printf("views: purging proof cache on sign-out: %v", err)
			}
		}
		return r, tea.Batch(screenCmd, r.toasts.Info("Signed out."), r.navigate(ViewLanding))

	case "kyc-complete":
		return r, tea.Batch(screenCmd,
			r.toasts.Success("Identity verified."),
			r.navigate(ViewDashboard))
	}
	return r, screenCmd
}

// View composes the active screen, status bar, and toast overlay.
func (r *Root) View() string {
	contentHeight := r.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	body := r.screens[r.active].View(r.width)
	if r.spinner.Active() {
		body = r.spinner.View() + "\n\n" + body
	}
	body = lipgloss.NewStyle().Height(contentHeight).Render(body)

	bar := r.statusbar.View(r.width, r.statusData())

	out := body + "\n" + bar
	if r.toasts.Active() {
		out += "\n" + r.toasts.View(r.width)
	}
	return out
}

// statusData assembles the status bar contents for this frame.
func (r *Root) statusData() components.StatusBarData {
	data := components.StatusBarData{
		ViewName:  r.active.String(),
		Shortcuts: r.screens[r.active].Shortcuts(),
	}
	if u := r.app.Session.User(); u != nil {
		label := u.Email
		if u.Username != "" {
			label = u.Username
		}
		data.UserLabel = label
		data.KycVerified = u.KycVerified
	}
	return data
}
