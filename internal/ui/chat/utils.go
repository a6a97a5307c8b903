// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// CLIPBOARD
// =============================================================================

// copyCmd writes text to the system clipboard in the background.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{Err: clipboard.WriteAll(text)}
	}
}

// =============================================================================
// FORMATTING
// =============================================================================

// formatInt formats an integer without pulling in fmt.
func formatInt(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}
