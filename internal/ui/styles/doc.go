// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the zkid TUI.
//
// The package defines the adaptive color palette (light/dark aware) and the
// Theme type, which pre-builds every lipgloss style the views use. Views
// never construct styles inline; they pull them from the shared Theme so the
// whole application restyles consistently.
package styles
