// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local proof cache for zkid.
//
// The cache is a SQLite database under the data directory. It holds the
// last-fetched proof records so the proofs list renders instantly while a
// fresh page loads, and so the CLI can answer `proofs list` offline. The
// service stays authoritative: the cache is purged on sign-out and
// overwritten on every successful fetch.
package storage
