// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/ui/components"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// DASHBOARD SCREEN
// =============================================================================

// dashboardScreen is the signed-in home: identity card, counters, and
// jumping-off points to the other screens.
type dashboardScreen struct {
	app   *App
	stats *api.UserStats
}

func newDashboardScreen(app *App) *dashboardScreen {
	return &dashboardScreen{app: app}
}

func (s *dashboardScreen) Enter() tea.Cmd {
	app := s.app
	// Counters are decoration; a failed fetch just leaves them blank.
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
		defer cancel()
		stats, err := app.Client.GetStats(ctx)
		if err != nil {
			return StatsLoadedMsg{}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

func (s *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		s.stats = msg.Stats
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			return func() tea.Msg { return Navigate(ViewProofs) }
		case "g":
			return func() tea.Msg { return Navigate(ViewGenerate) }
		case "v":
			return func() tea.Msg { return Navigate(ViewKyc) }
		case "s":
			return func() tea.Msg { return Navigate(ViewSettings) }
		case "o":
			app := s.app
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.API.Timeout())
				defer cancel()
				app.Session.SignOut(ctx)
				return OpResultMsg{From: ViewDashboard, Op: "signout", Result: session.Result{OK: true}}
			}
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (s *dashboardScreen) View(width int) string {
	t := s.app.Theme
	u := s.app.Session.User()
	if u == nil {
		return t.Subtle.Render("No session.")
	}

	var id strings.Builder
	id.WriteString(t.Title.Render("Welcome back") + "\n")
	id.WriteString(u.Email + "\n")
	if u.Username != "" {
		id.WriteString(t.Subtle.Render("@"+u.Username) + "\n")
	}
	if u.KycVerified {
		id.WriteString(t.BadgeVerified.Render("identity verified"))
	} else {
		id.WriteString(t.BadgePending.Render("verification needed") + "  " +
			t.Hint.Render("press v to verify"))
	}
	if u.WalletAddress != "" {
		id.WriteString("\n" + t.Subtle.Render("wallet "+util.TruncateWidth(u.WalletAddress, 16)))
	}

	out := t.Card.Render(id.String())

	if s.stats != nil {
		var st strings.Builder
		st.WriteString(t.Label.Render("Proofs") + "  " + util.IntToString(s.stats.TotalProofs))
		st.WriteString("   " + t.Label.Render("Active") + "  " + util.IntToString(s.stats.ActiveProofs))
		st.WriteString("   " + t.Label.Render("Uses") + "  " + util.IntToString(s.stats.TotalUsage))
		if s.stats.ExpiringProofs > 0 {
			st.WriteString("   " + t.BadgePending.Render(util.IntToString(s.stats.ExpiringProofs)+" expiring"))
		}
		out += "\n" + t.Card.Render(st.String())
	}
	return out
}

func (s *dashboardScreen) Shortcuts() []components.Shortcut {
	sc := []components.Shortcut{
		{Key: "p", Desc: "proofs"},
		{Key: "g", Desc: "generate"},
	}
	if !s.app.Session.KycVerified() {
		sc = append(sc, components.Shortcut{Key: "v", Desc: "verify"})
	}
	return append(sc,
		components.Shortcut{Key: "s", Desc: "settings"},
		components.Shortcut{Key: "o", Desc: "sign out"},
	)
}
