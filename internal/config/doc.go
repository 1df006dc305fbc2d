// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for zkid.
//
// Configuration file location: ~/.zkid/config.toml (TOML). Precedence order:
//
//   - Environment variables (ZKID_API_URL, ZKID_DEBUG, ZKID_DATA_DIR)
//   - Config file values
//   - Built-in defaults
//
// The Watcher type hot-reloads the file on change so a running TUI picks up
// an endpoint switch without restarting.
package config
