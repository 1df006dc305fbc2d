// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/zkid-tui/internal/ui/styles"
)

func TestToastLifecycle(t *testing.T) {
	m := NewToastManager(styles.NewTheme())

	if m.Active() {
		t.Error("new manager should have no toasts")
	}

	cmd := m.Error("boom")
	if cmd == nil {
		t.Error("push must return an expiry command")
	}
	if !m.Active() {
		t.Error("toast not active after push")
	}
	if !strings.Contains(m.View(80), "boom") {
		t.Error("view missing toast message")
	}

	// A fresh toast survives a sweep.
	m.Update(ToastExpiredMsg{})
	if !m.Active() {
		t.Error("unexpired toast swept")
	}

	// An expired one does not.
	m.toasts[0].CreatedAt = time.Now().Add(-time.Minute)
	m.Update(ToastExpiredMsg{})
	if m.Active() {
		t.Error("expired toast kept")
	}
}

func TestToastStackCapped(t *testing.T) {
	m := NewToastManager(styles.NewTheme())
	for i := 0; i < 10; i++ {
		m.Info("toast")
	}
	if got := len(m.toasts); got > maxVisibleToasts {
		t.Errorf("stack size = %d, cap is %d", got, maxVisibleToasts)
	}
}

func TestStepBar(t *testing.T) {
	bar := NewStepBar(styles.NewTheme(), []string{"Document", "Liveness", "Done"})

	view := bar.View(1)
	if !strings.Contains(view, "✓ Document") {
		t.Error("completed step not checked")
	}
	if !strings.Contains(view, "● Liveness") {
		t.Error("active step not marked")
	}
	if !strings.Contains(view, "○ Done") {
		t.Error("pending step not dimmed marker")
	}

	// Past the end: everything complete.
	done := bar.View(3)
	if strings.Contains(done, "●") || strings.Contains(done, "○") {
		t.Error("finished bar should show only completed steps")
	}
}

func TestSpinnerReducedMotion(t *testing.T) {
	s := NewSpinner(styles.NewTheme(), true)

	if cmd := s.Start("Checking session"); cmd != nil {
		t.Error("reduced motion spinner must not tick")
	}
	if !strings.Contains(s.View(), "Checking session") {
		t.Error("view missing message")
	}
	s.Stop()
	if s.View() != "" {
		t.Error("stopped spinner still renders")
	}
}

func TestFieldErrorLine(t *testing.T) {
	f := NewField(styles.NewTheme(), "Email", "you@example.com")
	f.SetValue("nope")
	f.SetError("Enter a valid email address.")

	view := f.View()
	if !strings.Contains(view, "Email") {
		t.Error("view missing label")
	}
	if !strings.Contains(view, "Enter a valid email address.") {
		t.Error("view missing error line")
	}

	f.SetError("")
	if strings.Contains(f.View(), "valid email") {
		t.Error("cleared error still rendered")
	}
}

func TestSecretFieldMasks(t *testing.T) {
	f := NewSecretField(styles.NewTheme(), "Password", "")
	f.SetValue("hunter42")
	if strings.Contains(f.View(), "hunter42") {
		t.Error("secret field rendered its value in plaintext")
	}
}

func TestStatusBarFitsWidth(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	view := bar.View(60, StatusBarData{
		ViewName:  "Dashboard",
		UserLabel: "a@b.c",
		Shortcuts: []Shortcut{{Key: "q", Desc: "quit"}, {Key: "tab", Desc: "next"}},
	})
	if !strings.Contains(view, "Dashboard") {
		t.Error("bar missing view name")
	}
	if !strings.Contains(view, "a@b.c") {
		t.Error("bar missing user")
	}
}
