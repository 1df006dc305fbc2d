// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the zkid TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Lime - Primary accent, brand color, selections, verified badges
var Lime = lipgloss.AdaptiveColor{Light: "#65A30D", Dark: "#C6FF00"}

// LimeDeep - Darker lime for backgrounds behind lime text
var LimeDeep = lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#365314"}

// Cyan - Info, links, secondary highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Violet - Proof credentials, wizard accents
var Violet = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, revoked proofs, rejected verification
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, pending verification states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success, verified states, generated proofs
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F1014"}

// SurfaceBright - Cards, form containers
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#1A1B23"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#2A2B36"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E4E4EB"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A0A1AD"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#61626E"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F1014"}

// =============================================================================
// STATUS COLOR MAPPING
// =============================================================================

// StatusColor maps a proof or verification status string to its color.
// Unknown statuses render muted rather than failing.
func StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "verified", "generated":
		return Emerald
	case "pending":
		return Amber
	case "revoked", "rejected":
		return Rose
	default:
		return TextMuted
	}
}
