// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command interface for zkid.
//
// Running the binary with no arguments opens the TUI; with a command it
// runs non-interactively and exits, suitable for scripts:
//
//	zkid login                  authenticate and store credentials
//	zkid logout                 end the session
//	zkid status [--json]        show session and verification state
//	zkid proofs list            list proofs (cached when offline)
//	zkid proofs export <id>     print a proof's shareable payload
//	zkid help                   full help
package cli
