// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// LANDING SCREEN
// =============================================================================

// landingScreen is the anonymous entry screen.
type landingScreen struct {
	app *App
}

func newLandingScreen(app *App) *landingScreen {
	return &landingScreen{app: app}
}

func (s *landingScreen) Enter() tea.Cmd { return nil }

func (s *landingScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "l", "enter":
		return func() tea.Msg { return Navigate(ViewLogin) }
	case "s":
		return func() tea.Msg { return Navigate(ViewSignup) }
	case "q":
		return tea.Quit
	}
	return nil
}

func (s *landingScreen) View(width int) string {
	t := s.app.Theme

	var b strings.Builder
	b.WriteString(t.Title.Render("zkid — privacy-preserving identity") + "\n\n")
	b.WriteString(t.Subtle.Render("Prove facts about yourself — your age, your humanity,") + "\n")
	b.WriteString(t.Subtle.Render("your standing — without revealing who you are.") + "\n\n")
	b.WriteString(t.Card.Render(
		t.ShortcutKey.Render("l")+"  sign in to an existing account\n"+
			t.ShortcutKey.Render("s")+"  create a new account\n"+
			t.ShortcutKey.Render("q")+"  quit"))
	return b.String()
}

func (s *landingScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "l", Desc: "sign in"},
		{Key: "s", Desc: "sign up"},
		{Key: "q", Desc: "quit"},
	}
}
