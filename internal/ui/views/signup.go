// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
)

// =============================================================================
// SIGNUP SCREEN
// =============================================================================

// signupScreen is the account creation form. The password rule is checked
// live while typing so the feedback arrives before submit.
type signupScreen struct {
	app *App

	email    components.Field
	username components.Field
	password components.Field
	confirm  components.Field
	focus    int
	busy     bool
}

func newSignupScreen(app *App) *signupScreen {
	return &signupScreen{
		app:      app,
		email:    components.NewField(app.Theme, "Email", "you@example.com"),
		username: components.NewField(app.Theme, "Username (optional)", ""),
		password: components.NewSecretField(app.Theme, "Password", "8+ chars, letter and digit"),
		confirm:  components.NewSecretField(app.Theme, "Confirm password", ""),
	}
}

func (s *signupScreen) Enter() tea.Cmd {
	s.busy = false
	s.focus = 0
	s.password.SetValue("")
	s.confirm.SetValue("")
	for _, f := range s.fields() {
		f.SetError("")
		f.Blur()
	}
	return s.email.Focus()
}

func (s *signupScreen) fields() []*components.Field {
	return []*components.Field{&s.email, &s.username, &s.password, &s.confirm}
}

func (s *signupScreen) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(OpResultMsg); ok && res.From == ViewSignup {
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

	cmd := s.fields()[s.focus].Update(msg)

	// Live password feedback while the field is focused.
	if s.focus == 2 {
		s.password.SetError(session.CheckPassword(s.password.Value()))
		if s.password.Value() == "" {
			s.password.SetError("")
		}
	}
	return cmd
}

func (s *signupScreen) cycleFocus(dir int) tea.Cmd {
	fields := s.fields()
	fields[s.focus].Blur()
	s.focus = (s.focus + dir + len(fields)) % len(fields)
	return fields[s.focus].Focus()
}

func (s *signupScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	username := strings.TrimSpace(s.username.Value())
	password := s.password.Value()

	for _, f := range s.fields() {
		f.SetError("")
	}
	if email == "" || !strings.Contains(email, "@") {
		s.email.SetError("Enter a valid email address.")
		return nil
	}
	if msg := session.CheckPassword(password); msg != "" {
		s.password.SetError(msg)
		return nil
	}
	if s.confirm.Value() != password {
		s.confirm.SetError("Passwords do not match.")
		return nil
	}

	s.busy = true
	app := s.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		return OpResultMsg{From: ViewSignup, Op: "signup", Result: app.Session.SignUp(ctx, email, password, username)}
	}
}

func (s *signupScreen) View(width int) string {
	t := s.app.Theme

	var b strings.Builder
	b.WriteString(t.Title.Render("Create account") + "\n\n")
	for i, f := range s.fields() {
		b.WriteString(f.View())
		if i < len(s.fields())-1 {
			b.WriteString("\n\n")
		}
	}
	b.WriteString("\n\n")
	if s.busy {
		b.WriteString(t.Hint.Render("Creating account…"))
	} else {
		b.WriteString(t.Hint.Render("enter to create · esc to go back"))
	}
	return t.Card.Render(b.String())
}

func (s *signupScreen) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "tab", Desc: "next field"},
		{Key: "enter", Desc: "create"},
		{Key: "esc", Desc: "back"},
	}
}
