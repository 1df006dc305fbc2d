// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint shown on the right of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBarData is everything the bar needs to draw one frame.
type StatusBarData struct {
	// ViewName is the active view's display name.
	ViewName string

	// UserLabel is the signed-in identity (email or username), empty
	// when anonymous.
	UserLabel string

	// KycVerified adds the verified badge next to the user.
	KycVerified bool

	// Shortcuts are the key hints for the active view.
	Shortcuts []Shortcut
}

// StatusBar renders the bottom bar: view name and user on the left,
// shortcuts on the right, trimmed to fit the width.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// View draws the bar at the given width.
func (b StatusBar) View(width int, data StatusBarData) string {
	left := data.ViewName
	if data.UserLabel != "" {
		left += "  " + b.theme.StatusUser.Render(data.UserLabel)
		if data.KycVerified {
			left += " " + b.theme.BadgeVerified.Render("verified")
		}
	}

	var hints []string
	for _, s := range data.Shortcuts {
		hints = append(hints,
			b.theme.ShortcutKey.Render(s.Key)+" "+b.theme.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Not enough room for hints; keep the identity side.
		return b.theme.StatusBar.Width(width).Render(util.TruncateWidth(left, width-2))
	}
	return b.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
