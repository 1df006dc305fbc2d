// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the zkid TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App    lipgloss.Style
	Card   lipgloss.Style
	Title  lipgloss.Style
	Subtle lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Hint         lipgloss.Style
	FieldError   lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusUser   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// BADGE STYLES
	// ==========================================================================

	BadgeVerified lipgloss.Style
	BadgePending  lipgloss.Style
	BadgeRejected lipgloss.Style
	BadgeNeutral  lipgloss.Style

	// ==========================================================================
	// WIZARD / STEP STYLES
	// ==========================================================================

	StepActive   lipgloss.Style
	StepComplete lipgloss.Style
	StepPending  lipgloss.Style
	StepRail     lipgloss.Style

	// ==========================================================================
	// FEEDBACK STYLES
	// ==========================================================================

	Spinner  lipgloss.Style
	ErrorBox lipgloss.Style
	InfoBox  lipgloss.Style
	Success  lipgloss.Style

	// ==========================================================================
	// LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDisabled lipgloss.Style
}

// NewTheme creates a theme configured for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}

	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	t.Title = lipgloss.NewStyle().
		Foreground(Lime).
		Bold(true).
		MarginBottom(1)

	t.Subtle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LabelFocused = lipgloss.NewStyle().
		Foreground(Lime).
		Bold(true)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 1)

	t.StatusUser = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Lime).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.BadgeVerified = badge(Emerald)
	t.BadgePending = badge(Amber)
	t.BadgeRejected = badge(Rose)
	t.BadgeNeutral = badge(TextMuted)

	t.StepActive = lipgloss.NewStyle().
		Foreground(Lime).
		Bold(true)

	t.StepComplete = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StepPending = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StepRail = lipgloss.NewStyle().
		Foreground(Overlay)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Lime)

	t.ErrorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Foreground(Rose).
		Padding(0, 1)

	t.InfoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(Lime).
		Bold(true).
		Padding(0, 1)

	t.ListItemDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Faint(true).
		Padding(0, 1)

	return t
}

// badge builds a pill-shaped status badge style in the given color.
func badge(c lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(c).
		Padding(0, 1).
		Bold(true)
}

// StatusBadge returns the badge style for a proof or KYC status string.
func (t *Theme) StatusBadge(status string) lipgloss.Style {
	switch status {
	case "verified", "generated":
		return t.BadgeVerified
	case "pending":
		return t.BadgePending
	case "revoked", "rejected":
		return t.BadgeRejected
	default:
		return t.BadgeNeutral
	}
}
