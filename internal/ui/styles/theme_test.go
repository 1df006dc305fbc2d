// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Rendering through any style must preserve the text content.
	if got := theme.Title.Render("zkid"); got == "" {
		t.Error("Title style rendered empty string")
	}
}

func TestStatusBadge(t *testing.T) {
	theme := NewTheme()
	statuses := []string{"verified", "generated", "pending", "revoked", "rejected", "unknown", ""}
	for _, s := range statuses {
		// Every status maps to some badge; unknown falls back to neutral.
		out := theme.StatusBadge(s).Render(s)
		if s != "" && out == "" {
			t.Errorf("StatusBadge(%q) rendered empty", s)
		}
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("verified") != Emerald {
		t.Error("verified should map to Emerald")
	}
	if StatusColor("pending") != Amber {
		t.Error("pending should map to Amber")
	}
	if StatusColor("revoked") != Rose {
		t.Error("revoked should map to Rose")
	}
	if StatusColor("nonsense") != TextMuted {
		t.Error("unknown status should map to TextMuted")
	}
}
