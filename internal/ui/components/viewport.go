// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sonnet TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable chat area with indicators
// =============================================================================

// ChatViewport represents a scrollable chat viewport with proper scroll tracking
type ChatViewport struct {
	viewport    viewport.Model
	messages    []*model.Message
	width       int
	height      int
	ready       bool
	autoScroll  bool // Auto-scroll to bottom on new content
	theme       *styles.Theme
	messageList *MessageList

	// Scroll position tracking for proper scroll behavior
	scrollY    int // Current scroll position (line offset)
	maxScrollY int // Maximum scroll position (total lines - visible height)
}

// NewChatViewport creates a new ChatViewport
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:    vp,
		messages:    []*model.Message{},
		width:       80,
		height:      20,
		ready:       false,
		autoScroll:  true,
		theme:       theme,
		messageList: NewMessageList(theme),
	}
}

// SetSize updates the viewport dimensions
func (cv *ChatViewport) SetSize(width, height int) {
	cv.width = width
	cv.height = height
	cv.viewport.Width = width - 2 // Account for scroll indicator
	cv.viewport.Height = height
	cv.messageList.SetWidth(width - 4) // Account for padding
	cv.ready = true

	// Re-render content with new size
	cv.updateContent()
}

// SetMessages updates the messages to display
func (cv *ChatViewport) SetMessages(messages []*model.Message) {
	cv.messages = messages
	cv.messageList.SetMessages(messages)
	cv.updateContent()

	// Auto-scroll to bottom if enabled
	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// AppendMessage adds a message to the list
func (cv *ChatViewport) AppendMessage(msg *model.Message) {
	cv.messages = append(cv.messages, msg)
	cv.messageList.SetMessages(cv.messages)
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// RefreshLastMessage re-renders after the last message is completed in place
func (cv *ChatViewport) RefreshLastMessage() {
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// updateContent re-renders the message content and updates scroll tracking
func (cv *ChatViewport) updateContent() {
	content := cv.messageList.View()

	// Wrap content for proper width calculation
	wrappedContent := wrapContentForViewport(content, cv.width-2)
	cv.viewport.SetContent(wrappedContent)

	// Update scroll position tracking
	lines := strings.Count(wrappedContent, "\n") + 1
	cv.maxScrollY = maxInt0(0, lines-cv.height)

	// Sync scrollY with viewport's actual position
	cv.scrollY = cv.viewport.YOffset

	// Ensure scrollY is within bounds
	if cv.scrollY > cv.maxScrollY {
		cv.scrollY = cv.maxScrollY
	}
	if cv.scrollY < 0 {
		cv.scrollY = 0
	}
}

// ScrollToBottom scrolls to the bottom of the viewport
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.scrollY = cv.maxScrollY
	cv.autoScroll = true
}

// ScrollToTop scrolls to the top of the viewport
func (cv *ChatViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.scrollY = 0
	cv.autoScroll = false
}

// ScrollUp scrolls up by the specified number of lines
func (cv *ChatViewport) ScrollUp(lines int) {
	cv.autoScroll = false // User took control - disable auto-scroll
	cv.scrollY = maxInt0(0, cv.scrollY-lines)
	cv.viewport.SetYOffset(cv.scrollY)
}

// ScrollDown scrolls down by the specified number of lines
func (cv *ChatViewport) ScrollDown(lines int) {
	cv.scrollY = minInt(cv.maxScrollY, cv.scrollY+lines)
	cv.viewport.SetYOffset(cv.scrollY)

	// Re-enable auto-scroll if at bottom
	if cv.scrollY >= cv.maxScrollY {
		cv.autoScroll = true
	}
}

// PageUp scrolls up by one page
func (cv *ChatViewport) PageUp() {
	cv.autoScroll = false // User took control
	cv.scrollY = maxInt0(0, cv.scrollY-cv.height)
	cv.viewport.SetYOffset(cv.scrollY)
}

// PageDown scrolls down by one page
func (cv *ChatViewport) PageDown() {
	cv.scrollY = minInt(cv.maxScrollY, cv.scrollY+cv.height)
	cv.viewport.SetYOffset(cv.scrollY)

	// Re-enable auto-scroll if at bottom
	if cv.scrollY >= cv.maxScrollY {
		cv.autoScroll = true
	}
}

// AtTop returns true if the viewport is at the top
func (cv *ChatViewport) AtTop() bool {
	return cv.viewport.AtTop()
}

// AtBottom returns true if the viewport is at the bottom
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// ScrollPercent returns the scroll position as a percentage
func (cv *ChatViewport) ScrollPercent() float64 {
	return cv.viewport.ScrollPercent()
}

// EnableAutoScroll enables automatic scrolling to bottom
func (cv *ChatViewport) EnableAutoScroll() {
	cv.autoScroll = true
}

// DisableAutoScroll disables automatic scrolling
func (cv *ChatViewport) DisableAutoScroll() {
	cv.autoScroll = false
}

// Update handles viewport updates with proper scroll tracking
func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			cv.ScrollUp(1)
			return cv, nil
		case "down", "j":
			cv.ScrollDown(1)
			return cv, nil
		case "pgup":
			cv.PageUp()
			return cv, nil
		case "pgdn", "pgdown":
			cv.PageDown()
			return cv, nil
		case "home", "g":
			cv.ScrollToTop()
			return cv, nil
		case "end", "G":
			cv.ScrollToBottom()
			return cv, nil
		}

	case tea.MouseMsg:
		// Handle mouse wheel scrolling with smooth behavior
		switch msg.Type {
		case tea.MouseWheelUp:
			cv.ScrollUp(3)
			return cv, nil
		case tea.MouseWheelDown:
			cv.ScrollDown(3)
			return cv, nil
		}
	}

	// Let the underlying viewport handle any other messages
	cv.viewport, cmd = cv.viewport.Update(msg)

	// Sync our scroll tracking with viewport's actual position
	cv.scrollY = cv.viewport.YOffset

	return cv, cmd
}

// View renders the viewport with scroll indicators
func (cv *ChatViewport) View() string {
	if !cv.ready {
		return ""
	}

	// Main viewport content
	viewportContent := cv.viewport.View()

	// Scroll indicators
	topIndicator := cv.renderTopIndicator()
	bottomIndicator := cv.renderBottomIndicator()

	// Build the complete view
	var result strings.Builder

	if topIndicator != "" {
		result.WriteString(topIndicator)
		result.WriteString("\n")
	}

	result.WriteString(viewportContent)

	if bottomIndicator != "" {
		result.WriteString("\n")
		result.WriteString(bottomIndicator)
	}

	return result.String()
}

// ==========================================================================
// SCROLL INDICATORS
// ==========================================================================

// renderTopIndicator renders the "more above" indicator
func (cv *ChatViewport) renderTopIndicator() string {
	if cv.AtTop() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	indicator := arrowStyle.Render("^") + " " +
		textStyle.Render("scroll up for more") + " " +
		arrowStyle.Render("^")

	return indicatorStyle.Render(indicator)
}

// renderBottomIndicator renders the "more below" indicator with scroll position
func (cv *ChatViewport) renderBottomIndicator() string {
	if cv.AtBottom() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	posStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	scrollPos := ""
	if cv.maxScrollY > 0 {
		scrollPos = posStyle.Render(fmt.Sprintf(" [%d/%d] ", cv.scrollY+1, cv.maxScrollY+1))
	}

	indicator := arrowStyle.Render("v") + scrollPos +
		textStyle.Render("scroll down for more") + " " +
		arrowStyle.Render("v")

	return indicatorStyle.Render(indicator)
}

// GetScrollPosition returns the current scroll position as a formatted string
// for display in the UI (e.g., "[15/100]")
func (cv *ChatViewport) GetScrollPosition() string {
	if cv.maxScrollY <= 0 {
		return ""
	}
	return fmt.Sprintf("[%d/%d]", cv.scrollY+1, cv.maxScrollY+1)
}

// =============================================================================
// CONTENT WRAPPING WITH RUNEWIDTH SUPPORT
// =============================================================================

// wrapContentForViewport wraps content to fit within the specified width,
// using go-runewidth for proper Unicode and wide character handling.
// This ensures Asian characters, emojis, and other wide characters are handled correctly.
func wrapContentForViewport(content string, width int) string {
	if width <= 0 {
		return content
	}

	var wrapped strings.Builder
	for _, line := range strings.Split(content, "\n") {
		// Check if line already fits
		lineWidth := runewidth.StringWidth(line)
		if lineWidth <= width {
			if wrapped.Len() > 0 {
				wrapped.WriteByte('\n')
			}
			wrapped.WriteString(line)
			continue
		}

		// Wrap long lines using word boundaries when possible
		wrappedLine := wordWrapWithRunewidth(line, width)
		if wrapped.Len() > 0 {
			wrapped.WriteByte('\n')
		}
		wrapped.WriteString(wrappedLine)
	}

	return wrapped.String()
}

// wordWrapWithRunewidth wraps a single line to the specified width,
// using runewidth for proper character width calculation.
// It tries to break at word boundaries when possible.
func wordWrapWithRunewidth(line string, width int) string {
	if width <= 0 {
		return line
	}

	runes := []rune(line)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0
	lastSpaceIdx := -1

	for i, r := range runes {
		charWidth := runewidth.RuneWidth(r)

		// Track last space position for word-boundary breaks
		if r == ' ' {
			lastSpaceIdx = i
		}

		// Check if adding this character would exceed width
		if currentWidth+charWidth > width {
			if lastSpaceIdx > 0 && currentLine.Len() > 0 {
				// Break at the last word boundary
				lineStr := currentLine.String()
				if result.Len() > 0 {
					result.WriteByte('\n')
				}
				result.WriteString(strings.TrimRight(lineStr, " "))

				currentLine.Reset()
				currentLine.WriteRune(r)
				currentWidth = charWidth
				lastSpaceIdx = -1
			} else {
				// No good break point, force break at current position
				if currentLine.Len() > 0 {
					if result.Len() > 0 {
						result.WriteByte('\n')
					}
					result.WriteString(currentLine.String())
					currentLine.Reset()
				}
				currentLine.WriteRune(r)
				currentWidth = charWidth
				lastSpaceIdx = -1
			}
		} else {
			currentLine.WriteRune(r)
			currentWidth += charWidth
		}
	}

	// Write remaining content
	if currentLine.Len() > 0 {
		if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// maxInt0 returns the maximum of two integers.
// Used for scroll position calculations.
func maxInt0(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
