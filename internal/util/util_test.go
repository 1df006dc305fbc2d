// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"zero width", "hello", 0, ""},
		{"tiny width", "hello", 2, "he"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateWidthCJK(t *testing.T) {
	// Double-width characters count as 2 columns.
	got := TruncateWidth("日本語テスト", 6)
	if StringWidth(got) > 6 {
		t.Errorf("TruncateWidth produced string wider than 6 columns: %q (%d)", got, StringWidth(got))
	}
}

func TestPadRight(t *testing.T) {
	got := PadRight("ab", 5)
	if got != "ab   " {
		t.Errorf("PadRight(\"ab\", 5) = %q", got)
	}
	if w := StringWidth(PadRight("日本語テスト", 4)); w != 4 {
		t.Errorf("PadRight on wide string has width %d, want 4", w)
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken(""); got != "[not set]" {
		t.Errorf("MaskToken(\"\") = %q", got)
	}
	masked := MaskToken("secret-token-value")
	if masked == "secret-token-value" {
		t.Error("MaskToken must not reveal the token")
	}
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  int
		want int
	}{
		{"numeric", "7", 1, 7},
		{"empty", "", 1, 1},
		{"garbage", "abc", 1, 1},
		{"whitespace", "  42 ", 1, 42},
		{"negative", "-3", 1, -3},
		{"float rejected", "1.5", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceInt(tt.raw, tt.def); got != tt.want {
				t.Errorf("CoerceInt(%q, %d) = %d, want %d", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}

func TestCoercePositive(t *testing.T) {
	if got := CoercePositive("0", 365); got != 365 {
		t.Errorf("CoercePositive(\"0\", 365) = %d, want 365", got)
	}
	if got := CoercePositive("-10", 365); got != 365 {
		t.Errorf("CoercePositive(\"-10\", 365) = %d, want 365", got)
	}
	if got := CoercePositive("30", 365); got != 30 {
		t.Errorf("CoercePositive(\"30\", 365) = %d, want 30", got)
	}
}

func TestCoerceNonNegative(t *testing.T) {
	// Zero means "unlimited" for max usage and must be preserved.
	if got := CoerceNonNegative("0", 1); got != 0 {
		t.Errorf("CoerceNonNegative(\"0\", 1) = %d, want 0", got)
	}
	if got := CoerceNonNegative("-1", 1); got != 1 {
		t.Errorf("CoerceNonNegative(\"-1\", 1) = %d, want 1", got)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")

	if err := AtomicWriteFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("file content = %q, want %q", data, "second")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, found %d", len(entries))
	}
}
