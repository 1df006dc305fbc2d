// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdProofsList
	CmdProofsExport
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	JSON  bool
	Quiet bool

	// login
	Email string

	// proofs list filters
	ProofType string
	Status    string
	Page      int
	Limit     int

	// proofs export
	ProofID string
}

// =============================================================================
// PARSING
// =============================================================================

// Parse interprets the command line. argv excludes the program name.
// No arguments means the TUI.
func Parse(argv []string) (Args, error) {
	args := Args{Command: CmdTUI, Page: 1}

	var positional []string
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "--json":
			args.JSON = true
		case a == "-q" || a == "--quiet":
			args.Quiet = true
		case a == "--email":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("--email requires a value")
			}
			args.Email = argv[i]
		case a == "--type":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("--type requires a value")
			}
			args.ProofType = argv[i]
		case a == "--status":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("--status requires a value")
			}
			args.Status = argv[i]
		case a == "--page":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("--page requires a value")
			}
			if _, err := fmt.Sscanf(argv[i], "%d", &args.Page); err != nil || args.Page < 1 {
				return args, fmt.Errorf("invalid --page %q", argv[i])
			}
		case a == "--limit":
			i++
			if i >= len(argv) {
				return args, fmt.Errorf("--limit requires a value")
			}
			if _, err := fmt.Sscanf(argv[i], "%d", &args.Limit); err != nil || args.Limit < 1 {
				return args, fmt.Errorf("invalid --limit %q", argv[i])
			}
		case strings.HasPrefix(a, "-"):
			return args, fmt.Errorf("unknown flag %q", a)
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) == 0 {
		return args, nil
	}

	switch positional[0] {
	case "login":
		args.Command = CmdLogin
	case "logout":
		args.Command = CmdLogout
	case "status":
		args.Command = CmdStatus
	case "version", "--version", "-v":
		args.Command = CmdVersion
	case "help", "--help", "-h":
		args.Command = CmdHelp
	case "proofs":
		if len(positional) < 2 {
			return args, fmt.Errorf("proofs needs a subcommand: list or export")
		}
		switch positional[1] {
		case "list":
			args.Command = CmdProofsList
		case "export":
			if len(positional) < 3 {
				return args, fmt.Errorf("proofs export needs a proof id")
			}
			args.Command = CmdProofsExport
			args.ProofID = positional[2]
		default:
			return args, fmt.Errorf("unknown proofs subcommand %q", positional[1])
		}
	default:
		return args, fmt.Errorf("unknown command %q", positional[0])
	}
	return args, nil
}
