// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the zkid client.
//
// This package contains common helper functions used throughout the
// application for string manipulation, type conversion, and file operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - PadRight: width-aware column padding
//
// Type Conversion:
//   - IntToString: numeric to string conversion
//   - CoerceInt: lenient form-field integer coercion with a default
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
