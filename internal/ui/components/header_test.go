// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the sonnet TUI.
package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	if h.Title != "sonnet" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "sonnet")
	}
	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}
}

func TestHeaderView_ContainsTitle(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetModel("Claude 3 Sonnet")

	view := h.View()
	if !strings.Contains(view, "sonnet") {
		t.Error("View() should contain title 'sonnet'")
	}
	if !strings.Contains(view, "Claude 3 Sonnet") {
		t.Error("View() should contain the model name")
	}
}

func TestHeaderView_MinimumWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(10) // Below the 40-column floor

	view := h.View()
	if view == "" {
		t.Error("View() should render even at tiny widths")
	}
}

func TestHeaderViewCompact(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetModel("claude-3-opus-20240229")

	view := h.ViewCompact()
	if !strings.Contains(view, "sonnet") {
		t.Error("ViewCompact() should contain the title")
	}
	if strings.Contains(view, "\n") {
		t.Error("ViewCompact() should be a single line")
	}
}

// =============================================================================
// GRADIENT TESTS
// =============================================================================

func TestGradientTitle(t *testing.T) {
	out := GradientTitle("sonnet", lipgloss.Color("#A78BFA"), lipgloss.Color("#22D3EE"))
	if out == "" {
		t.Error("GradientTitle() returned empty string")
	}

	// Short input takes the single-color path
	short := GradientTitle("ab", lipgloss.Color("#A78BFA"), lipgloss.Color("#22D3EE"))
	if short == "" {
		t.Error("GradientTitle() short input returned empty string")
	}

	if GradientTitle("", lipgloss.Color("#A78BFA"), lipgloss.Color("#22D3EE")) != "" {
		t.Error("GradientTitle() empty input should return empty string")
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("FF8000")
	if r != 255 || g != 128 || b != 0 {
		t.Errorf("parseHexColor(FF8000) = %d,%d,%d, want 255,128,0", r, g, b)
	}

	// Invalid input defaults to white
	r, g, b = parseHexColor("xyz")
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("parseHexColor(xyz) = %d,%d,%d, want white", r, g, b)
	}
}

func TestFormatHexColor(t *testing.T) {
	if got := formatHexColor(255, 128, 0); got != "#FF8000" {
		t.Errorf("formatHexColor(255,128,0) = %q, want #FF8000", got)
	}
}
