// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the authentication lifecycle.
//
// The Manager is a small state machine:
//
//	uninitialized -> initializing -> authenticated | anonymous
//
// Initialize runs exactly once per process. Until it completes, the
// Loading flag is true and the route guard holds navigation. Operations
// return a Result rather than an error so calling UI code can react to
// failure without exception-style handling; the failure text is already
// human-readable.
package session
