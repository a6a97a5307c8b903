// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the sonnet TUI.

This package defines the complete color palette and themed lipgloss styles
used throughout the application. All colors use Lip Gloss AdaptiveColor
for automatic light/dark terminal detection.

# Color System (colors.go)

  - Purple - Primary accent for assistant messages and selections
  - Cyan - Brand color for info, commands, and user highlights
  - Emerald - Success states and staged attachments
  - Amber - Warnings and degraded attachments
  - Rose - Errors and critical warnings

Message bubbles use semantic color tokens (UserBubbleBg, AssistantBubbleFg,
and so on) so components never hard-code hex values.

# Theme (theme.go)

Theme bundles every lipgloss style the components need, created once at
startup via NewTheme, which probes the terminal with termenv for true-color
support and background darkness. GetLayoutMode maps the current width onto
narrow/medium/wide breakpoints for responsive rendering.

# Accessibility

Status states always pair a color with an ASCII shape indicator
(StatusIndicators) so they stay readable for colorblind users, and the
high-contrast variants are used for success/error/warning text.
*/
package styles
