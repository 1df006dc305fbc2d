// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// LOGIN SCREEN
// =============================================================================

// loginScreen is the email/password sign-in form.
type loginScreen struct {
	app *App

	email    components.Field
	password components.Field
	focus    int
	busy     bool
}

func newLoginScreen(app *App) *loginScreen {
	s := &loginScreen{
		app:      app,
		email:    components.NewField(app.Theme, "Email", "you@example.com"),
		password: components.NewSecretField(app.Theme, "Password", ""),
	}
	return s
}

func (s *loginScreen) Enter() tea.Cmd {
	s.busy = false
	s.focus = 0
	s.password.SetValue("")
	s.email.SetError("")
	s.password.SetError("")
	s.password.Blur()
	return s.email.Focus()
}

func (s *loginScreen) fields() []*components.Field {
	return []*components.Field{&s.email, &s.password}
}

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(OpResultMsg); ok && res.From == ViewLogin {
		s.busy = false
		return nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if isKey && !s.busy {
		switch key.String() {
		case "tab", "down":
			return s.cycleFocus(1)
		case "shift+tab", "up":
			return s.cycleFocus(-1)
		case "enter":
			return s.submit()
		case "esc":
			return func() tea.Msg { return Navigate(ViewLanding) }
		}
	}
	if s.busy {
		return nil
	}
	return s.fields()[s.focus].Update(msg)
}

// cycleFocus moves focus between the two fields.
func (s *loginScreen) cycleFocus(dir int) tea.Cmd {
	fields := s.fields()
	fields[s.focus].Blur()
	s.focus = (s.focus + dir + len(fields)) % len(fields)
	return fields[s.focus].Focus()
}

// submit validates locally and starts the sign-in.
func (s *loginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()

	s.email.SetError("")
	s.password.SetError("")
	if email == "" || !strings.Contains(email, "@") {
		s.email.SetError("Enter a valid email address.")
		return nil
	}
	if password == "" {
		s.password.SetError("Enter your password.")
		return nil
	}

	s.busy = true
	app := s.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		return OpResultMsg{From: ViewLogin, Op: "signin", Result: app.Session.SignIn(ctx, email, password)}
	}
}

func (s *loginScreen) View(width int) string {
	t := s.app.Theme

	var b strings.Builder
	b.WriteString(t.Title.Render("Sign in") + "\n\n")
	b.WriteString(s.email.View() + "\n\n")
	b.WriteString(s.password.View() + "\n\n")
	if s.busy {
		b.WriteString(t.Hint.Render("Signing in…"))
	} else {
		b.WriteString(t.Hint.Render("enter to sign in · esc to go back"))
	}
	return t.Card.Render(b.String())
}

func (s *loginScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "tab", Desc: "next field"},
		{Key: "enter", Desc: "sign in"},
		{Key: "esc", Desc: "back"},
	}
}
