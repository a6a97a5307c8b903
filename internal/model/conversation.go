// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
)

// MaxMessages is the maximum number of messages to keep in conversation history.
// When exceeded, old messages are pruned to prevent unbounded memory growth.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat conversation with history and metadata.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages
	Messages []*Message `json:"messages"`

	// Model configuration
	Model string `json:"model"`

	// Context tracking
	TokensUsed int `json:"tokens_used"`
}

// NewConversation creates a new conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// NewConversationWithModel creates a new conversation with a specific model.
func NewConversationWithModel(model string) *Conversation {
	conv := NewConversation()
	conv.Model = model
	return conv
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTokenEstimate()
	c.updateTitle()
	c.pruneOldMessages()
}

// AddUserMessage creates and adds a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddPendingAssistantMessage creates and adds an assistant message awaiting
// its completion response.
func (c *Conversation) AddPendingAssistantMessage() *Message {
	msg := NewPendingAssistantMessage()
	c.AddMessage(msg)
	return msg
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// GetLastUserMessage returns the most recent user message.
func (c *Conversation) GetLastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// CompleteLast fills in the last (pending) assistant message.
func (c *Conversation) CompleteLast(text string, duration time.Duration) {
	last := c.GetLastMessage()
	if last != nil && last.IsPending {
		last.Complete(text, duration)
		c.updateTokenEstimate()
	}
}

// DropLast removes the most recent message. Used to unwind a pending
// assistant message when the request fails; the user message stays.
func (c *Conversation) DropLast() {
	if len(c.Messages) == 0 {
		return
	}
	c.Messages = c.Messages[:len(c.Messages)-1]
	c.UpdatedAt = time.Now()
	c.updateTokenEstimate()
}

// ClearHistory removes all messages from the conversation.
func (c *Conversation) ClearHistory() {
	c.Messages = make([]*Message, 0)
	c.TokensUsed = 0
	c.Title = ""
	c.UpdatedAt = time.Now()
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// GetHistory returns the message history for display.
func (c *Conversation) GetHistory() []*Message {
	return c.Messages
}

// =============================================================================
// API MESSAGE ASSEMBLY
// =============================================================================

// ToAPIMessages converts the conversation to Messages API wire form.
//
// Pure over history: stored messages are never mutated, and calling this
// twice yields the same result. Pending and system messages are skipped;
// the Messages API only accepts user and assistant turns.
func (c *Conversation) ToAPIMessages() []anthropic.Message {
	return c.ToAPIMessagesWithAttachment(nil)
}

// ToAPIMessagesWithAttachment converts the conversation to Messages API
// wire form, attaching the given content blocks to the LAST user message.
//
// The attachment applies only when the last user message is also the final
// message of the conversation (the turn being sent). Its content becomes
// [text block, attachment blocks...]; the stored message keeps its plain
// text. A nil or empty block list degrades to the plain text-only form.
func (c *Conversation) ToAPIMessagesWithAttachment(blocks []anthropic.ContentBlock) []anthropic.Message {
	// Find the index of the last user message.
	lastUserIdx := -1
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			lastUserIdx = i
			break
		}
	}

	// The attachment only rides on the turn being sent: the last user
	// message must also be the last sendable message overall.
	attachIdx := -1
	if len(blocks) > 0 && lastUserIdx >= 0 && isLastSendable(c.Messages, lastUserIdx) {
		attachIdx = lastUserIdx
	}

	messages := make([]anthropic.Message, 0, len(c.Messages))
	for i, msg := range c.Messages {
		if msg.Role == RoleSystem || msg.IsPending {
			continue
		}

		var role string
		switch msg.Role {
		case RoleUser:
			role = "user"
		case RoleAssistant:
			role = "assistant"
		default:
			continue
		}

		if i == attachIdx {
			content := make([]anthropic.ContentBlock, 0, len(blocks)+1)
			content = append(content, anthropic.TextBlock{Text: msg.Content})
			content = append(content, blocks...)
			messages = append(messages, anthropic.Message{
				Role:    role,
				Content: anthropic.BlockContent(content...),
			})
			continue
		}

		if msg.Content == "" {
			continue
		}
		messages = append(messages, anthropic.Message{
			Role:    role,
			Content: anthropic.TextContent(msg.Content),
		})
	}

	return messages
}

// isLastSendable reports whether idx is the last message that would be
// sent to the API (pending and system messages don't count).
func isLastSendable(messages []*Message, idx int) bool {
	for i := len(messages) - 1; i > idx; i-- {
		if messages[i].Role == RoleSystem || messages[i].IsPending {
			continue
		}
		return false
	}
	return true
}

// =============================================================================
// TOKEN TRACKING
// =============================================================================

// EstimateTokens estimates the total token count of the conversation.
func (c *Conversation) EstimateTokens() int {
	total := 0
	for _, msg := range c.Messages {
		total += msg.EstimateTokens()
		// Overhead for message structure (~4 tokens per message).
		total += 4
	}
	return total
}

// updateTokenEstimate updates the running token usage.
func (c *Conversation) updateTokenEstimate() {
	c.TokensUsed = c.EstimateTokens()
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}

	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// SetTitle manually sets the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:         c.ID,
		Title:      c.Title,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Model:      c.Model,
		TokensUsed: c.TokensUsed,
		Messages:   make([]*Message, len(c.Messages)),
	}

	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}

	return clone
}

// pruneOldMessages removes old messages when history exceeds MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
}
