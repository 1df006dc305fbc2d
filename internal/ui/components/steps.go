// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

// =============================================================================
// STEP BAR
// =============================================================================

// StepBar renders the progress rail of a multi-step flow:
//
//	✓ Document ──── ● Liveness ──── ○ Done
//
// Completed steps are checked, the active step is highlighted, pending
// steps are dimmed.
type StepBar struct {
	theme  *styles.Theme
	labels []string
}

// NewStepBar creates a step bar over the given labels, in flow order.
func NewStepBar(theme *styles.Theme, labels []string) StepBar {
	return StepBar{theme: theme, labels: labels}
}

// View draws the bar with the given active index. An index past the end
// renders every step as complete.
func (b StepBar) View(active int) string {
	rail := b.theme.StepRail.Render(" ──── ")

	parts := make([]string, 0, len(b.labels))
	for i, label := range b.labels {
		switch {
		case i < active:
			parts = append(parts, b.theme.StepComplete.Render("✓ "+label))
		case i == active:
			parts = append(parts, b.theme.StepActive.Render("● "+label))
		default:
			parts = append(parts, b.theme.StepPending.Render("○ "+label))
		}
	}
	return strings.Join(parts, rail)
}
