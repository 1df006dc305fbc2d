// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

// =============================================================================
// FORM FIELD
// =============================================================================

// Field is a labeled text input with an optional inline error. Secret
// fields mask their content.
type Field struct {
	Input textinput.Model

	theme *styles.Theme
	label string
	err   string
}

// NewField creates a field with the given label and placeholder.
func NewField(theme *styles.Theme, label, placeholder string) Field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "" // the label carries the prompt role
	return Field{Input: in, theme: theme, label: label}
}

// NewSecretField creates a masked field for passwords.
func NewSecretField(theme *styles.Theme, label, placeholder string) Field {
	f := NewField(theme, label, placeholder)
	f.Input.EchoMode = textinput.EchoPassword
	f.Input.EchoCharacter = '•'
	return f
}

// Focus gives the field input focus.
func (f *Field) Focus() tea.Cmd {
	return f.Input.Focus()
}

// Blur removes input focus.
func (f *Field) Blur() {
	f.Input.Blur()
}

// Focused reports input focus.
func (f *Field) Focused() bool {
	return f.Input.Focused()
}

// Value returns the current text.
func (f *Field) Value() string {
	return f.Input.Value()
}

// SetValue replaces the current text.
func (f *Field) SetValue(v string) {
	f.Input.SetValue(v)
}

// SetError attaches an inline validation message; empty clears it.
func (f *Field) SetError(msg string) {
	f.err = msg
}

// Error returns the inline validation message.
func (f *Field) Error() string {
	return f.err
}

// Update forwards messages to the underlying input.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return cmd
}

// View renders label, input, and error line.
func (f *Field) View() string {
	label := f.theme.Label.Render(f.label)
	if f.Focused() {
		label = f.theme.LabelFocused.Render(f.label)
	}

	out := label + "\n" + f.Input.View()
	if f.err != "" {
		out += "\n" + f.theme.FieldError.Render(f.err)
	}
	return out
}
