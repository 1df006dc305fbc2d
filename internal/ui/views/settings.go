// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// SETTINGS SCREEN
// =============================================================================

// settingsSection is which part of the screen has focus.
type settingsSection int

const (
	sectionPrefs settingsSection = iota
	sectionPassword
	sectionWallet
)

// settingsScreen covers preferences, password change, and wallet linking.
type settingsScreen struct {
	app *App

	section settingsSection
	busy    bool

	emailNotifications bool

	current components.Field
	next    components.Field
	confirm components.Field
	pwFocus int

	wallet components.Field
}

func newSettingsScreen(app *App) *settingsScreen {
	return &settingsScreen{
		app:     app,
		current: components.NewSecretField(app.Theme, "Current password", ""),
		next:    components.NewSecretField(app.Theme, "New password", "8+ chars, letter and digit"),
		confirm: components.NewSecretField(app.Theme, "Confirm new password", ""),
		wallet:  components.NewField(app.Theme, "Wallet address", "0x…"),
	}
}

func (s *settingsScreen) Enter() tea.Cmd {
	s.section = sectionPrefs
	s.busy = false
	s.pwFocus = 0
	for _, f := range s.passwordFields() {
		f.SetValue("")
		f.SetError("")
		f.Blur()
	}
	s.wallet.Blur()
	if u := s.app.Session.User(); u != nil {
		s.emailNotifications = u.Settings.EmailNotifications
		s.wallet.SetValue(u.WalletAddress)
	}
	return nil
}

func (s *settingsScreen) passwordFields() []*components.Field {
	return []*components.Field{&s.current, &s.next, &s.confirm}
}

func (s *settingsScreen) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(OpResultMsg); ok && res.From == ViewSettings {
		s.busy = false
		if res.Result.OK && res.Op == "change-password" {
			for _, f := range s.passwordFields() {
				f.SetValue("")
			}
		}
		return nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return s.forwardToFocused(msg)
	}
	if s.busy {
		return nil
	}

	// Escape backs out one level: text sections return to preferences,
	// preferences returns to the dashboard. Digit keys must stay usable
	// inside the password and wallet inputs, so section switching only
	// happens from the preferences section.
	if key.String() == "esc" {
		if s.section != sectionPrefs {
			s.section = sectionPrefs
			return nil
		}
		return func() tea.Msg { return Navigate(ViewDashboard) }
	}

	switch s.section {
	case sectionPrefs:
		switch key.String() {
		case "2":
			s.section = sectionPassword
			s.pwFocus = 0
			return s.current.Focus()
		case "3":
			s.section = sectionWallet
			return s.wallet.Focus()
		}
		return s.prefsKeys(key)
	case sectionPassword:
		return s.passwordKeys(key)
	case sectionWallet:
		return s.walletKeys(key)
	}
	return nil
}

// forwardToFocused routes non-key messages to the field being edited.
func (s *settingsScreen) forwardToFocused(msg tea.Msg) tea.Cmd {
	switch s.section {
	case sectionPassword:
		return s.passwordFields()[s.pwFocus].Update(msg)
	case sectionWallet:
		return s.wallet.Update(msg)
	}
	return nil
}

// prefsKeys toggles preferences and saves them.
func (s *settingsScreen) prefsKeys(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case " ", "e":
		s.emailNotifications = !s.emailNotifications
		return nil
	case "enter":
		s.busy = true
		app := s.app
		settings := api.UserSettings{EmailNotifications: s.emailNotifications}
		if u := app.Session.User(); u != nil {
			settings.Theme = u.Settings.Theme
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
			defer cancel()
			return OpResultMsg{From: ViewSettings, Op: "settings", Result: app.Session.UpdateSettings(ctx, settings)}
		}
	}
	return nil
}

// passwordKeys drives the change-password form.
func (s *settingsScreen) passwordKeys(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "tab", "down":
		fields := s.passwordFields()
		fields[s.pwFocus].Blur()
		s.pwFocus = (s.pwFocus + 1) % len(fields)
		return fields[s.pwFocus].Focus()
	case "shift+tab", "up":
		fields := s.passwordFields()
		fields[s.pwFocus].Blur()
		s.pwFocus = (s.pwFocus + len(fields) - 1) % len(fields)
		return fields[s.pwFocus].Focus()
	case "enter":
		s.busy = true
		app := s.app
		current, next, confirm := s.current.Value(), s.next.Value(), s.confirm.Value()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
			defer cancel()
			return OpResultMsg{From: ViewSettings, Op: "change-password",
				Result: app.Session.ChangePassword(ctx, current, next, confirm)}
		}
	}
	return s.passwordFields()[s.pwFocus].Update(key)
}

// walletKeys drives wallet linking and unlinking.
func (s *settingsScreen) walletKeys(key tea.KeyMsg) tea.Cmd {
	app := s.app
	switch key.String() {
	case "enter":
		address := strings.TrimSpace(s.wallet.Value())
		s.busy = true
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
			defer cancel()
			return OpResultMsg{From: ViewSettings, Op: "link-wallet", Result: app.Session.LinkWallet(ctx, address)}
		}
	case "ctrl+u":
		s.busy = true
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
			defer cancel()
			res := app.Session.UnlinkWallet(ctx)
			return OpResultMsg{From: ViewSettings, Op: "unlink-wallet", Result: res}
		}
	}
	return s.wallet.Update(key)
}

func (s *settingsScreen) View(width int) string {
	t := s.app.Theme
	u := s.app.Session.User()

	var b strings.Builder
	b.WriteString(t.Title.Render("Settings") + "\n\n")

	sectionTitle := func(name string, sec settingsSection) string {
		if s.section == sec {
			return t.LabelFocused.Render(name)
		}
		return t.Label.Render(name)
	}

	// Preferences.
	b.WriteString(sectionTitle("Preferences", sectionPrefs) + "\n")
	check := "[ ]"
	if s.emailNotifications {
		check = "[x]"
	}
	b.WriteString("  " + check + " Email notifications")
	if s.section == sectionPrefs {
		b.WriteString("   " + t.Hint.Render("space to toggle · enter to save"))
	}
	b.WriteString("\n\n")

	// Password.
	b.WriteString(sectionTitle("Change password (2)", sectionPassword) + "\n")
	if s.section == sectionPassword {
		for _, f := range s.passwordFields() {
			b.WriteString(f.View() + "\n")
		}
		b.WriteString(t.Hint.Render("enter to change") + "\n")
	}
	b.WriteString("\n")

	// Wallet.
	b.WriteString(sectionTitle("Wallet (3)", sectionWallet) + "\n")
	if u != nil && u.WalletAddress != "" {
		b.WriteString("  linked: " + t.Subtle.Render(util.TruncateWidth(u.WalletAddress, 20)) + "\n")
	}
	if s.section == sectionWallet {
		b.WriteString(s.wallet.View() + "\n")
		b.WriteString(t.Hint.Render("enter to link · ctrl+u to unlink") + "\n")
	}

	if s.busy {
		b.WriteString("\n" + t.Hint.Render("Saving…"))
	}
	return t.Card.Render(b.String())
}

func (s *settingsScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "2/3", Desc: "section"},
		{Key: "enter", Desc: "save"},
		{Key: "esc", Desc: "back"},
	}
}
