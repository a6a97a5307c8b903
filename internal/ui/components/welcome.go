// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the sonnet TUI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component. It doubles as the onboarding
// gate: when no API key is configured it prompts for one instead of the
// "press any key" line.
type Welcome struct {
	// Display info
	version   string
	modelName string
	hasKey    bool

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version:   "dev",
		modelName: "claude-3-sonnet-20240229",
		theme:     theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelName sets the model name.
func (w *Welcome) SetModelName(name string) {
	w.modelName = name
}

// SetHasKey sets whether an API key is already configured.
func (w *Welcome) SetHasKey(hasKey bool) {
	w.hasKey = hasKey
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	// Calculate box width - responsive to terminal width
	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	// Box overhead: 2 (border top/bottom) + 2*verticalPadding
	boxOverhead := 2 + 2*verticalPadding
	availableContentLines := height - boxOverhead

	var content string
	if availableContentLines >= 14 {
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderSystemInfo()
		content += "\n\n" + w.renderPrompt()
	} else if availableContentLines >= 10 {
		content = w.renderLogo()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderSystemInfo()
		content += "\n" + w.renderPrompt()
	} else {
		content = w.renderLogoCompact()
		content += "\n" + w.renderSystemInfoCompact()
		content += "\n" + w.renderPrompt()
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Align top when the box is taller than the terminal so the logo
	// stays visible rather than being cut off.
	if boxHeight >= height {
		return lipgloss.Place(
			width, height,
			lipgloss.Center, lipgloss.Top,
			box,
		)
	}
	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo.
// Responsive: uses the compact logo for narrow terminals.
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 60 {
		logo := `  ____   ___  _   _ _   _ _____ _____
 / ___| / _ \| \ | | \ | | ____|_   _|
 \___ \| | | |  \| |  \| |  _|   | |
  ___) | |_| | |\  | |\  | |___  | |
 |____/ \___/|_| \_|_| \_|_____| |_|
                                     `
		return logoStyle.Render(logo)
	}

	return w.renderLogoCompact()
}

// renderLogoCompact renders a compact text-based logo.
func (w Welcome) renderLogoCompact() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 40 {
		return logoStyle.Render(`+--------------------+
|       sonnet       |
+--------------------+`)
	}

	return logoStyle.Render("sonnet - Claude chat client")
}

// renderVersion renders the version subtitle.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Claude chat client v" + w.version)
}

// renderSystemInfo renders model and key status.
func (w Welcome) renderSystemInfo() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(8)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	keyStatus := styles.RenderError("not configured")
	if w.hasKey {
		keyStatus = styles.RenderSuccess("configured")
	}

	lines := []string{
		labelStyle.Render("Model: ") + valueStyle.Render(w.modelName),
		labelStyle.Render("Key:   ") + keyStatus,
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSystemInfoCompact renders a single-line system info.
func (w Welcome) renderSystemInfoCompact() string {
	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	return valueStyle.Render(w.modelName)
}

// renderPrompt renders the call-to-action line. Without a key the user is
// pointed at /key; with one, any key starts the chat.
func (w Welcome) renderPrompt() string {
	if !w.hasKey {
		return lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render("No API key found. Set ANTHROPIC_API_KEY or use /key <key>")
	}
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("Press any key to continue...")
}

// =============================================================================
// KEYBOARD SHORTCUT HELP
// =============================================================================

// KeyboardShortcuts returns a formatted list of keyboard shortcuts.
func KeyboardShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send message"},
		{"Ctrl+C", "Quit"},
		{"Ctrl+L", "Clear screen"},
		{"Up/Down", "Scroll messages"},
		{"Tab", "Tab completion"},
		{"Esc", "Dismiss/Cancel"},
		{"PgUp/PgDn", "Page scroll"},
	}

	lines := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		lines[i] = keyStyle.Render(s.key) + descStyle.Render(s.desc)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	return titleStyle.Render("Keyboard Shortcuts") + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, lines...)
}
