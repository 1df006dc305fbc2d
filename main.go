// zkid TUI - A terminal interface for privacy-preserving identity.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/cli"
	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/credstore"
	"github.com/jeranaias/zkid-tui/internal/proofs"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/storage"
	"github.com/jeranaias/zkid-tui/internal/ui/styles"
	"github.com/jeranaias/zkid-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr, "run `zkid help` for usage")
		os.Exit(2)
	}

	// Version and help never touch the service; skip the wiring.
	if args.Command == cli.CmdVersion || args.Command == cli.CmdHelp {
		os.Exit(cli.Run(nil, args))
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: loading config:", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)
	setupLogging(cfg)

	store, err := credstore.New(cfg.DataDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: opening credential store:", err)
		os.Exit(1)
	}

	client := api.New(cfg)
	mgr := session.NewManager(client, store)

	var cache *storage.ProofCache
	if cfg.Storage.CacheProofs {
		cache, err = storage.OpenProofCache(filepath.Join(cfg.DataDir(), "proofs.db"))
		if err != nil {
			// The cache is an optimization; run without it.
			fmt.Fprintln(os.Stderr, "warning: proof cache unavailable:", err)
			cache = nil
		}
	}

	var code int
	if args.Command == cli.CmdTUI {
		code = runTUI(cfg, client, mgr, cache)
	} else {
		env := &cli.Env{Cfg: cfg, Client: client, Session: mgr, Cache: cache}
		code = cli.Run(env, args)
	}
	if cache != nil {
		cache.Close()
	}
	os.Exit(code)
}

// setupLogging routes the diagnostic log. With debug on it appends to
// debug.log in the data directory; otherwise it is discarded so the
// alternate screen stays clean.
func setupLogging(cfg *config.Config) {
	if !cfg.API.Debug {
		log.SetOutput(io.Discard)
		return
	}
	if err := os.MkdirAll(cfg.DataDir(), 0o700); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir(), "debug.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

// runTUI wires the screens and runs the Bubble Tea program.
func runTUI(cfg *config.Config, client *api.Client, mgr *session.Manager, cache *storage.ProofCache) int {
	var requesterCache proofs.Cache
	if cache != nil {
		requesterCache = cache
	}

	app := &views.App{
		Cfg:       cfg,
		Theme:     styles.NewTheme(),
		Client:    client,
		Session:   mgr,
		Requester: proofs.NewRequester(client, requesterCache),
		Cache:     cache,
	}

	// Pick up config edits made while the TUI is open. The running
	// session keeps its client; the new values apply to later lookups.
	if watcher, err := config.NewWatcher(config.DefaultPath(), config.SetGlobal); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(
		views.NewRoot(app),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error running zkid:", err)
		return 1
	}
	return 0
}
