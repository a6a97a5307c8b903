// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sonnet TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusWaiting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	ModelName      string // Current model display name
	AttachmentName string // Staged attachment, empty when none
	TokenCount     int    // Estimated tokens in current context
	MaxTokens      int    // Maximum context tokens
	Status         Status // Current status
	Width          int    // Available width
	ShowShortcuts  bool   // Show keyboard shortcuts
	ShowTokens     bool   // Show token counts (ui.show_tokens)
	theme          *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		MaxTokens:     4096,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		ShowTokens:    true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetTokenUsage updates the token count display.
func (s *StatusBar) SetTokenUsage(used, max int) {
	s.TokenCount = used
	s.MaxTokens = max
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetAttachment updates the staged attachment name.
func (s *StatusBar) SetAttachment(name string) {
	s.AttachmentName = name
}

// SetModel updates the model name. If the model is in the registry the
// friendly name is shown and the context size is taken from its info.
func (s *StatusBar) SetModel(modelName string) {
	if info, ok := model.GetModelInfo(modelName); ok {
		s.ModelName = info.Name
		if info.MaxContext > 0 {
			s.MaxTokens = info.MaxContext
		}
	} else {
		s.ModelName = modelName
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: ContextBar [@]Status
func (s *StatusBar) viewNarrow() string {
	contextBar := s.renderContextBar(6)

	parts := []string{contextBar}

	if s.AttachmentName != "" {
		attachStyle := lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
		parts = append(parts, attachStyle.Render("@"))
	}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.Icon()))

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")
	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: model | @file | Ctx: ContextBar | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	if s.ModelName != "" {
		modelName := s.ModelName
		// Rune-based truncation to handle Unicode correctly
		modelRunes := []rune(modelName)
		if len(modelRunes) > 15 {
			modelName = string(modelRunes[:12]) + "..."
		}
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, modelStyle.Render(modelName))
	}

	if s.AttachmentName != "" {
		attachStyle := lipgloss.NewStyle().Foreground(styles.Emerald)
		parts = append(parts, attachStyle.Render("@ "+s.AttachmentName))
	}

	contextLabel := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Ctx:")
	parts = append(parts, contextLabel+" "+s.renderContextBar(10))

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals.
func (s *StatusBar) viewWide() string {
	// Left section: model, attachment, token count
	leftParts := []string{}

	if s.ModelName != "" {
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, modelStyle.Render(s.ModelName))
	}

	if s.AttachmentName != "" {
		attachStyle := lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
		leftParts = append(leftParts, attachStyle.Render("@ "+s.AttachmentName))
	}

	if s.ShowTokens {
		tokenStr := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(formatNumber(s.TokenCount) + " tok")
		leftParts = append(leftParts, tokenStr)
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Center section: context bar, with the numeric counts behind the
	// same ui.show_tokens switch as the left-section count.
	contextLabel := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Ctx: ")
	centerSection := contextLabel + s.renderContextBar(10)
	if s.ShowTokens {
		centerSection += " " + s.renderContextPercent()
	}

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing between the three sections
	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + centerWidth + rightWidth

	spacing := s.Width - totalContent - 4
	if spacing < 4 {
		spacing = 4
	}

	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderContextBar renders the context usage bar with the given block count.
// Format: [####------]
func (s *StatusBar) renderContextBar(blocks int) string {
	percent := 0.0
	if s.MaxTokens > 0 {
		percent = float64(s.TokenCount) / float64(s.MaxTokens) * 100
	}

	filled := int(percent / 100 * float64(blocks))
	if filled > blocks {
		filled = blocks
	}
	empty := blocks - filled

	// Choose color based on percentage
	barColor := styles.Cyan
	if percent >= 90 {
		barColor = styles.Rose
	} else if percent >= 75 {
		barColor = styles.Amber
	} else if percent >= 50 {
		barColor = styles.Emerald
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Overlay)

	filledPart := filledStyle.Render(strings.Repeat("#", filled))
	emptyPart := emptyStyle.Render(strings.Repeat("-", empty))

	return "[" + filledPart + emptyPart + "]"
}

// renderContextPercent renders the context percentage with token counts.
func (s *StatusBar) renderContextPercent() string {
	percent := 0.0
	if s.MaxTokens > 0 {
		percent = float64(s.TokenCount) / float64(s.MaxTokens) * 100
	}

	color := styles.TextMuted
	if percent >= 90 {
		color = styles.Rose
	} else if percent >= 75 {
		color = styles.Amber
	}

	percentStyle := lipgloss.NewStyle().Foreground(color)

	// Format: 2,048/4,096 (50.0%)
	return percentStyle.Render(
		formatNumber(s.TokenCount) + "/" + formatNumber(s.MaxTokens) +
			" (" + formatPercent(percent) + ")",
	)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("Tab") + descStyle.Render("complete"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusWaiting:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// ==========================================================================
// HELPER FUNCTIONS (using shared helpers from helpers.go)
// ==========================================================================

// formatNumber formats a number with thousand separators.
func formatNumber(n int) string {
	return fmtNumber(n)
}

// formatPercent formats a percentage with one decimal place.
func formatPercent(p float64) string {
	return fmtPercent(p)
}
