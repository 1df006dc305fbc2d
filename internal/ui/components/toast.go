// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toasts in the corner of the screen. Unlike a modal error
// box, a toast auto-dismisses and never steals input from the view.
package components

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind is the severity of a toast notification.
type ToastKind int

const (
	// ToastInfo is an informational toast.
	ToastInfo ToastKind = iota
	// ToastSuccess confirms a completed operation.
	ToastSuccess
	// ToastError reports a failed operation. Errors linger longer.
	ToastError
)

const (
	// infoToastDuration is the auto-dismiss time for info and success.
	infoToastDuration = 4 * time.Second

	// errorToastDuration gives failures more time to be read.
	errorToastDuration = 8 * time.Second

	// maxVisibleToasts caps the stack so toasts never cover the view.
	maxVisibleToasts = 3
)

// toastSeq hands out unique toast IDs.
var toastSeq atomic.Int64

// Toast is one notification.
type Toast struct {
	ID        int64
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// expired reports whether the toast has outlived its duration.
func (t Toast) expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// MESSAGES
// =============================================================================

// ToastExpiredMsg asks the manager to drop expired toasts.
type ToastExpiredMsg struct{}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager owns the active toast stack. It lives on the root model
// and is drawn over whatever view is active.
type ToastManager struct {
	toasts []Toast
	theme  *styles.Theme
}

// NewToastManager creates an empty manager.
func NewToastManager(theme *styles.Theme) ToastManager {
	return ToastManager{theme: theme}
}

// Push adds a toast and returns the command that will expire it.
func (m *ToastManager) Push(message string, kind ToastKind) tea.Cmd {
	d := infoToastDuration
	if kind == ToastError {
		d = errorToastDuration
	}
	m.toasts = append(m.toasts, Toast{
		ID:        toastSeq.Add(1),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	})
	if len(m.toasts) > maxVisibleToasts {
		m.toasts = m.toasts[len(m.toasts)-maxVisibleToasts:]
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return ToastExpiredMsg{} })
}

// Info pushes an informational toast.
func (m *ToastManager) Info(message string) tea.Cmd {
	return m.Push(message, ToastInfo)
}

// Success pushes a success toast.
func (m *ToastManager) Success(message string) tea.Cmd {
	return m.Push(message, ToastSuccess)
}

// Error pushes an error toast.
func (m *ToastManager) Error(message string) tea.Cmd {
	return m.Push(message, ToastError)
}

// Update handles toast lifecycle messages.
func (m *ToastManager) Update(msg tea.Msg) {
	if _, ok := msg.(ToastExpiredMsg); ok {
		m.sweep()
	}
}

// sweep drops expired toasts.
func (m *ToastManager) sweep() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.expired(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// DismissAll clears the stack immediately.
func (m *ToastManager) DismissAll() {
	m.toasts = nil
}

// Active reports whether any toast is visible.
func (m *ToastManager) Active() bool {
	return len(m.toasts) > 0
}

// View renders the toast stack, newest at the bottom, right-aligned into
// the given width.
func (m *ToastManager) View(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}

	var lines []string
	for _, t := range m.toasts {
		lines = append(lines, m.render(t, width))
	}
	return strings.Join(lines, "\n")
}

// render draws one toast.
func (m *ToastManager) render(t Toast, width int) string {
	var style lipgloss.Style
	var prefix string
	switch t.Kind {
	case ToastError:
		style = m.theme.ErrorBox
		prefix = "✗ "
	case ToastSuccess:
		style = m.theme.Success
		prefix = "✓ "
	default:
		style = m.theme.InfoBox
		prefix = "· "
	}

	box := style.Render(prefix + t.Message)
	if width > lipgloss.Width(box) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
	}
	return box
}
