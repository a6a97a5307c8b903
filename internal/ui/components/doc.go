// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the sonnet TUI.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries.

# Core Components

## Input Components

InputArea (input.go) - Styled text input with character counter.
CompletionPopup (completion.go) - Tab completion popup for commands and arguments.

## Display Components

Header (header.go) - Application header with the current model name.
StatusBar (statusbar.go) - Bottom status bar with context usage and shortcuts.
MessageBubble (message.go) - Styled message bubbles for chat messages.
ChatViewport (viewport.go) - Scrollable message area with scroll indicators.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with customizable styles.
ErrorToast (error_toast.go) - Transient error/warning/status toasts.

## Specialized Views

Welcome (welcome.go) - First-run welcome screen and API key gate.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetModel("claude-3-sonnet-20240229")
	view := header.View()

# Bubble Tea Integration

Stateful components implement the Bubble Tea Model interface:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousand-separated number formatting
  - fmtPercent() - Percentage formatting with one decimal place
*/
package components
