// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/attachment"
	"github.com/jeranaias/sonnet-tui/internal/ui/components"
)

// =============================================================================
// MESSAGES
// =============================================================================

// completionMsg carries the result of a completion request.
type completionMsg struct {
	// Text is the assistant response. May be empty: the API can legally
	// return an empty message and that is not an error.
	Text string

	// Duration is the wall-clock time of the request.
	Duration time.Duration

	// Warning is set when the turn was degraded, e.g. the staged
	// attachment could not be encoded and was dropped from the send.
	Warning string

	// Err is the request error, nil on success.
	Err error
}

// clipboardResultMsg reports the outcome of a clipboard write.
type clipboardResultMsg struct {
	Err error
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

// sendCmd performs the completion request in the background.
//
// The caller has already appended the user message and a pending assistant
// message to the conversation. This command encodes the staged attachment,
// assembles the wire messages with the attachment riding on the final user
// turn, and performs one synchronous request. No retry on failure.
//
// Attachment encoding failures degrade rather than abort: the text still
// goes out and the warning surfaces as a toast. The attachment is consumed
// either way.
func (m *Model) sendCmd(staged *attachment.Attachment) tea.Cmd {
	// The returned closure runs on its own goroutine while the update loop
	// keeps mutating the live conversation (/clear, /model, system notices).
	// Snapshot the history here, on the update thread; the closure must only
	// touch goroutine-private state.
	conv := m.conversation.Clone()
	client := m.client

	return func() tea.Msg {
		var blocks []anthropic.ContentBlock
		var warning string

		if staged != nil {
			encoded, err := staged.Encode()
			if err != nil {
				warning = "Attachment " + staged.Name + " dropped: " + err.Error()
			} else {
				blocks = encoded
			}
		}

		messages := conv.ToAPIMessagesWithAttachment(blocks)

		start := time.Now()
		resp, err := client.Complete(context.Background(), messages)
		if err != nil {
			return completionMsg{Err: err, Warning: warning}
		}

		return completionMsg{
			Text:     resp.GetText(),
			Duration: time.Since(start),
			Warning:  warning,
		}
	}
}

// submitMessage stages the user turn and kicks off the request.
func (m *Model) submitMessage(text string) tea.Cmd {
	userMsg := m.conversation.AddUserMessage(text)
	if m.staged != nil {
		userMsg.AttachmentName = m.staged.Name
	}
	m.conversation.AddPendingAssistantMessage()

	m.viewport.SetMessages(m.conversation.GetHistory())
	m.viewport.ScrollToBottom()

	// The attachment belongs to this turn only.
	staged := m.staged
	m.staged = nil
	m.statusBar.SetAttachment("")

	m.state = StateWaiting
	m.statusBar.SetStatus(components.StatusWaiting)

	return tea.Batch(
		m.sendCmd(staged),
		m.thinking.Start(),
	)
}
