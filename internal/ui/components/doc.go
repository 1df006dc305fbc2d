// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the zkid TUI:
// toasts, spinners, the status bar, the wizard step bar, and labeled form
// fields. Components hold no domain state; views feed them what to draw.
package components
