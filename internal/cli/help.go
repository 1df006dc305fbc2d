// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// helpText is the full help, rendered through glamour on a terminal.
const helpText = `# zkid

Privacy-preserving identity from your terminal. Prove facts about
yourself — age, humanity, standing — without revealing who you are.

## Usage

    zkid                        open the interactive TUI
    zkid <command> [flags]      run one command and exit

## Commands

| Command | Description |
|---------|-------------|
| login   | Authenticate and store credentials |
| logout  | End the session and clear stored credentials |
| status  | Show session and verification state |
| proofs list | List your proofs (cached copy when offline) |
| proofs export <id> | Print a proof's shareable payload |
| version | Print version information |
| help    | This help |

## Flags

    --json           machine-readable output (status, proofs list)
    --email <addr>   skip the email prompt on login
    --type <type>    filter proofs list by proof type
    --status <s>     filter proofs list by status
    --page <n>       page number for proofs list
    --limit <n>      page size for proofs list
    -q, --quiet      suppress informational lines

## Environment

    ZKID_API_URL     override the service endpoint
    ZKID_DATA_DIR    override the data directory (~/.zkid)
    ZKID_DEBUG=1     log requests (tokens are masked)

## Examples

    zkid login --email you@example.com
    zkid status --json
    zkid proofs list --status active
    zkid proofs export prf_8f2c1
`

// runHelp renders the help text, falling back to plain output when the
// renderer or terminal cannot cope.
func runHelp() int {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		if out, renderErr := r.Render(helpText); renderErr == nil {
			fmt.Print(out)
			return 0
		}
	}
	fmt.Fprint(os.Stdout, helpText)
	return 0
}
