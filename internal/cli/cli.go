// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/storage"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env bundles the wired services the CLI commands run against.
type Env struct {
	Cfg     *config.Config
	Client  *api.Client
	Session *session.Manager
	Cache   *storage.ProofCache
}

// Run executes the parsed command and returns the process exit code.
func Run(env *Env, args Args) int {
	ctx := context.Background()

	switch args.Command {
	case CmdLogin:
		return runLogin(ctx, env, args)
	case CmdLogout:
		return runLogout(ctx, env)
	case CmdStatus:
		return runStatus(ctx, env, args)
	case CmdProofsList:
		return runProofsList(ctx, env, args)
	case CmdProofsExport:
		return runProofsExport(ctx, env, args)
	case CmdVersion:
		fmt.Printf("zkid %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return 0
	case CmdHelp:
		return runHelp()
	}
	return 0
}

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// runLogin authenticates interactively and persists the credentials.
func runLogin(ctx context.Context, env *Env, args Args) int {
	env.Session.Initialize(ctx)
	if env.Session.Authenticated() {
		fmt.Println("Already signed in as", userLabel(env))
		return 0
	}

	email := args.Email
	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: reading email:", err)
			return 1
		}
		email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: reading password:", err)
		return 1
	}

	res := env.Session.SignIn(ctx, email, string(passBytes))
	if !res.OK {
		fmt.Fprintln(os.Stderr, "error:", res.Err)
		return 1
	}
	fmt.Println("Signed in as", userLabel(env))
	if !env.Session.KycVerified() {
		fmt.Println("Identity not verified yet — run the TUI to complete verification.")
	}
	return 0
}

// runLogout ends the session locally no matter what the service says.
func runLogout(ctx context.Context, env *Env) int {
	env.Session.Initialize(ctx)
	env.Session.SignOut(ctx)
	if env.Cache != nil {
		if err := env.Cache.PurgeAll(); err != nil {
			fmt.Fprintln(os.Stderr, "warning: purging proof cache:", err)
		}
	}
	fmt.Println("Signed out.")
	return 0
}

// runStatus prints the session and verification state.
func runStatus(ctx context.Context, env *Env, args Args) int {
	env.Session.Initialize(ctx)

	if args.JSON {
		out := map[string]any{
			"authenticated": env.Session.Authenticated(),
			"kycVerified":   env.Session.KycVerified(),
			"endpoint":      env.Cfg.API.BaseURL,
		}
		if u := env.Session.User(); u != nil {
			out["email"] = u.Email
			out["username"] = u.Username
			out["walletLinked"] = u.WalletAddress != ""
		}
		return printJSON(out)
	}

	if !env.Session.Authenticated() {
		fmt.Println("Not signed in. Run `zkid login` first.")
		return 0
	}
	u := env.Session.User()
	fmt.Println("Signed in as ", userLabel(env))
	if u.KycVerified {
		fmt.Println("Verification:  verified")
	} else {
		state := "not verified"
		// The service knows whether a review is already in flight.
		if ks, err := env.Client.GetKycStatus(ctx); err == nil && ks.Status != "" {
			state = ks.Status
		}
		fmt.Println("Verification: ", state)
	}
	if u.WalletAddress != "" {
		fmt.Println("Wallet:       ", util.TruncateWidth(u.WalletAddress, 20))
	}
	fmt.Println("Endpoint:     ", env.Cfg.API.BaseURL)
	return 0
}

// =============================================================================
// PROOF COMMANDS
// =============================================================================

// runProofsList prints the proof listing, falling back to the cache when
// the service is unreachable.
func runProofsList(ctx context.Context, env *Env, args Args) int {
	env.Session.Initialize(ctx)
	if !env.Session.Authenticated() {
		fmt.Fprintln(os.Stderr, "error: not signed in; run `zkid login` first")
		return 1
	}

	limit := args.Limit
	if limit == 0 {
		limit = env.Cfg.UI.PageSize
	}

	var items []api.Proof
	fromCache := false
	list, err := env.Client.ListProofs(ctx, api.ProofListFilter{
		Page: args.Page, Limit: limit,
		ProofType: args.ProofType, Status: args.Status,
	})
	switch {
	case err == nil:
		items = list.Proofs
		if env.Cache != nil {
			_ = env.Cache.PutAll(items)
		}
	case errors.Is(err, api.ErrTransport) && env.Cache != nil:
		cached, cacheErr := env.Cache.List(args.ProofType, args.Status)
		if cacheErr != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		items = cached
		fromCache = true
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if args.JSON {
		return printJSON(map[string]any{"proofs": items, "cached": fromCache})
	}

	if fromCache && !args.Quiet {
		fmt.Println("(offline — cached proofs)")
	}
	if len(items) == 0 {
		fmt.Println("No proofs.")
		return 0
	}
	for _, p := range items {
		label := p.ProofType
		if typ, ok := proofs.ParseType(p.ProofType); ok {
			label = typ.Label()
		}
		usage := "unlimited"
		if p.MaxUsage > 0 {
			usage = fmt.Sprintf("%d/%d", p.UsageCount, p.MaxUsage)
		}
		fmt.Printf("%-10s %-25s %-18s %-10s %s\n",
			p.ID, util.TruncateWidth(p.Name, 24), label, p.Status, usage)
	}
	if err == nil && list.Pagination.Pages > 1 && !args.Quiet {
		fmt.Printf("page %d/%d (%d total)\n",
			list.Pagination.Page, list.Pagination.Pages, list.Pagination.Total)
	}
	return 0
}

// runProofsExport prints a proof's shareable payload as highlighted JSON
// on a terminal, plain JSON otherwise.
func runProofsExport(ctx context.Context, env *Env, args Args) int {
	env.Session.Initialize(ctx)
	if !env.Session.Authenticated() {
		fmt.Fprintln(os.Stderr, "error: not signed in; run `zkid login` first")
		return 1
	}

	payload, err := env.Client.ExportProof(ctx, args.ProofID)
	if err != nil {
		var svcErr *api.Error
		if errors.As(err, &svcErr) {
			fmt.Fprintln(os.Stderr, "error:", svcErr.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: encoding payload:", err)
		return 1
	}

	if !args.JSON && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := highlightJSON(os.Stdout, string(raw)); err == nil {
			return 0
		}
		// Highlighting trouble falls through to plain output.
	}
	fmt.Println(string(raw))
	return 0
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "error: encoding output:", err)
		return 1
	}
	return 0
}

// userLabel picks the friendliest identity string for messages.
func userLabel(env *Env) string {
	u := env.Session.User()
	if u == nil {
		return "(unknown)"
	}
	if u.Username != "" {
		return u.Username + " <" + u.Email + ">"
	}
	return u.Email
}
