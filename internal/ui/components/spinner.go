// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is a loading indicator with a message line. With reduced motion
// enabled it renders a static marker instead of animating.
type Spinner struct {
	spinner       spinner.Model
	message       string
	active        bool
	reducedMotion bool
}

// NewSpinner creates a spinner styled by the theme.
func NewSpinner(theme *styles.Theme, reducedMotion bool) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner
	return Spinner{spinner: s, reducedMotion: reducedMotion}
}

// Start activates the spinner with a message and returns its tick command.
func (s *Spinner) Start(message string) tea.Cmd {
	s.message = message
	s.active = true
	if s.reducedMotion {
		return nil
	}
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
	s.message = ""
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.active
}

// Update advances the animation.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active || s.reducedMotion {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner line, or nothing when idle.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	if s.reducedMotion {
		return "… " + s.message
	}
	return s.spinner.View() + " " + s.message
}
