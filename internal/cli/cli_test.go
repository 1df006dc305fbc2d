// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		want    Command
		wantErr bool
	}{
		{"no args opens TUI", nil, CmdTUI, false},
		{"login", []string{"login"}, CmdLogin, false},
		{"login with email", []string{"login", "--email", "a@b.c"}, CmdLogin, false},
		{"logout", []string{"logout"}, CmdLogout, false},
		{"status json", []string{"status", "--json"}, CmdStatus, false},
		{"proofs list", []string{"proofs", "list"}, CmdProofsList, false},
		{"proofs list filtered", []string{"proofs", "list", "--type", "age_over_18", "--status", "active"}, CmdProofsList, false},
		{"proofs export", []string{"proofs", "export", "prf_1"}, CmdProofsExport, false},
		{"version", []string{"version"}, CmdVersion, false},
		{"help", []string{"help"}, CmdHelp, false},

		{"proofs alone", []string{"proofs"}, CmdTUI, true},
		{"proofs export without id", []string{"proofs", "export"}, CmdTUI, true},
		{"unknown command", []string{"frobnicate"}, CmdTUI, true},
		{"unknown flag", []string{"status", "--nope"}, CmdTUI, true},
		{"email without value", []string{"login", "--email"}, CmdTUI, true},
		{"bad page", []string{"proofs", "list", "--page", "zero"}, CmdTUI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.argv)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%v) expected error", tt.argv)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%v): %v", tt.argv, err)
			}
			if got.Command != tt.want {
				t.Errorf("command = %v, want %v", got.Command, tt.want)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	args, err := Parse([]string{"proofs", "list", "--page", "3", "--limit", "25", "--type", "is_human"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Page != 3 || args.Limit != 25 || args.ProofType != "is_human" {
		t.Errorf("args = %+v", args)
	}

	args, err = Parse([]string{"proofs", "export", "prf_9", "--json"})
	if err != nil {
		t.Fatal(err)
	}
	if args.ProofID != "prf_9" || !args.JSON {
		t.Errorf("args = %+v", args)
	}
}
