// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the zkid privacy-identity
// service.
//
// Every response travels in a JSON envelope:
//
//	{"success": true,  "data": {...}}
//	{"success": false, "error": {"message": "..."}}
//
// The client attaches the bearer token to each request and transparently
// renews it on a 401: the renewal call runs on a bare HTTP client (so it can
// never recurse into itself), and the original request is resubmitted at most
// once. A second 401 ends the session.
package api
