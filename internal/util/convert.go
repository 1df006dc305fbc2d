// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the zkid client.
package util

import (
	"strconv"
	"strings"
)

// IntToString converts an int to string.
// Uses strconv.Itoa for optimal performance.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// Int64ToString converts an int64 to string.
func Int64ToString(i int64) string {
	return strconv.FormatInt(i, 10)
}

// CoerceInt parses a form-field value as an integer, falling back to def
// when the field is empty or not numeric. Form fields arrive as free text,
// and the service contract treats unparseable numbers as "use the default"
// rather than a rejection.
func CoerceInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// CoercePositive is CoerceInt restricted to positive values: zero and
// negative results also fall back to the default.
func CoercePositive(raw string, def int) int {
	n := CoerceInt(raw, def)
	if n <= 0 {
		return def
	}
	return n
}

// CoerceNonNegative is CoerceInt restricted to values >= 0. Negative
// results fall back to the default. Zero is preserved because several
// fields (max usage) use 0 to mean "unlimited".
func CoerceNonNegative(raw string, def int) int {
	n := CoerceInt(raw, def)
	if n < 0 {
		return def
	}
	return n
}
