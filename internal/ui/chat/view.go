// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/ui/components"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	sections := make([]string, 0, 6)

	if m.width < 60 {
		sections = append(sections, m.header.ViewCompact())
	} else {
		sections = append(sections, m.header.View())
	}

	sections = append(sections, m.viewport.View())

	if m.thinking.IsActive() {
		sections = append(sections, "  "+m.thinking.View())
	}

	// Toasts sit just above the input so they never cover messages the
	// user is reading.
	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
		aligned := lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Right).
			Render(stack)
		sections = append(sections, aligned)
	}

	if m.showCompletions {
		sections = append(sections, m.completionPopup.View())
	}

	sections = append(sections, m.input.View())
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	categoryStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("sonnet help"))
	sb.WriteString("\n\n")

	byCategory := m.registry.ByCategory()
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		sb.WriteString(categoryStyle.Render(category))
		sb.WriteString("\n")

		cmds := byCategory[category]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		for _, cmd := range cmds {
			usage := cmd.Name
			if cmd.Usage != "" {
				usage = cmd.Usage
			}
			sb.WriteString("  " + nameStyle.Render(usage) + descStyle.Render(cmd.Description))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(components.KeyboardShortcuts())
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Press any key to close"))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 3).
		Render(sb.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}
	return box
}
