// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// highlightJSON writes syntax-highlighted JSON for terminal display.
func highlightJSON(w io.Writer, src string) error {
	return quick.Highlight(w, src, "json", "terminal256", "monokai")
}
