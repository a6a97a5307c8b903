// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sonnet TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single conversation message as a styled bubble.
// User messages align right, assistant messages align left, system messages
// are centered.
type MessageBubble struct {
	Message  *model.Message
	Width    int
	ShowMeta bool // Show timestamp and token stats below the bubble
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		ShowMeta: true,
		theme:    theme,
	}
}

// SetWidth sets the available render width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}

	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUser()
	case model.RoleAssistant:
		return b.renderAssistant()
	case model.RoleSystem:
		return b.renderSystem()
	default:
		return b.Message.Content
	}
}

// renderUser renders a right-aligned user bubble with an optional
// attachment chip above it.
func (b *MessageBubble) renderUser() string {
	maxBubble := b.bubbleWidth()

	content := b.Message.Content
	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		MaxWidth(maxBubble).
		Render(content)

	parts := []string{}

	if b.Message.HasAttachment() {
		chip := lipgloss.NewStyle().
			Foreground(styles.AttachmentFg).
			Background(styles.AttachmentBg).
			Padding(0, 1).
			Render("@ " + b.Message.AttachmentName)
		parts = append(parts, chip)
	}

	parts = append(parts, bubble)

	if b.ShowMeta {
		parts = append(parts, b.renderMeta())
	}

	block := lipgloss.JoinVertical(lipgloss.Right, parts...)

	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(block)
}

// renderAssistant renders a left-aligned assistant bubble. Pending
// messages render nothing; the thinking indicator owns that state.
func (b *MessageBubble) renderAssistant() string {
	if b.Message.IsPending {
		return ""
	}

	maxBubble := b.bubbleWidth()

	// An empty completed response is legal; show a placeholder instead
	// of a blank bubble.
	var content string
	if b.Message.Content == "" {
		content = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("(no content)")
	} else {
		// Fenced blocks go through the syntax highlighter, then any
		// remaining `inline code` spans get their subtle background.
		content = ParseCodeBlocks(b.Message.Content, maxBubble-6)
		content = ParseInlineCode(content)
	}

	bubble := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(styles.AssistantBubbleBorder).
		PaddingLeft(2).
		MaxWidth(maxBubble).
		Render(content)

	parts := []string{bubble}
	if b.ShowMeta {
		parts = append(parts, b.renderMeta())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSystem renders a centered system notice.
func (b *MessageBubble) renderSystem() string {
	notice := lipgloss.NewStyle().
		Foreground(styles.SystemBubbleFg).
		Italic(true).
		MaxWidth(b.bubbleWidth()).
		Render(b.Message.Content)

	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Center).
		Render(notice)
}

// renderMeta renders the timestamp/stats footer line.
func (b *MessageBubble) renderMeta() string {
	metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	parts := []string{b.Message.Timestamp.Format("15:04")}

	if b.Message.Role == model.RoleAssistant {
		if b.Message.TokenCount > 0 {
			parts = append(parts, "~"+fmtNumber(b.Message.TokenCount)+" tok")
		}
		if b.Message.Duration > 0 {
			parts = append(parts, formatDuration(b.Message.Duration))
		}
	}

	return metaStyle.Render(strings.Join(parts, " | "))
}

// bubbleWidth returns the max bubble width for the current render width.
func (b *MessageBubble) bubbleWidth() int {
	w := b.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// formatDuration formats a completion duration for the meta line.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return toStr(int(d.Milliseconds())) + "ms"
	}
	// One decimal place of seconds
	tenths := int(d.Seconds() * 10)
	return toStr(tenths/10) + "." + toStr(tenths%10) + "s"
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a conversation's messages as a vertical stack of
// bubbles with blank lines between them.
type MessageList struct {
	messages []*model.Message
	width    int
	theme    *styles.Theme
}

// NewMessageList creates an empty message list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		width: 80,
		theme: theme,
	}
}

// SetMessages replaces the displayed messages.
func (l *MessageList) SetMessages(messages []*model.Message) {
	l.messages = messages
}

// SetWidth sets the render width for all bubbles.
func (l *MessageList) SetWidth(width int) {
	l.width = width
}

// Len returns the number of messages in the list.
func (l *MessageList) Len() int {
	return len(l.messages)
}

// View renders the full message list.
func (l *MessageList) View() string {
	if len(l.messages) == 0 {
		return l.renderEmpty()
	}

	var rendered []string
	for _, msg := range l.messages {
		bubble := NewMessageBubble(msg, l.theme)
		bubble.SetWidth(l.width)
		view := bubble.View()
		if view == "" {
			continue
		}
		rendered = append(rendered, view)
	}

	return strings.Join(rendered, "\n\n")
}

// renderEmpty renders the placeholder shown before the first message.
func (l *MessageList) renderEmpty() string {
	hint := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("No messages yet. Type a message, or /help for commands.")

	return lipgloss.NewStyle().
		Width(l.width).
		Align(lipgloss.Center).
		Render(hint)
}
