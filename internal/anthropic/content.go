// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// CONTENT BLOCKS
// =============================================================================

// ContentBlock is a single element of a structured message body.
// The Messages API knows two request block types: text and base64 images.
type ContentBlock interface {
	// BlockType returns the wire-level "type" discriminator.
	BlockType() string
}

// TextBlock is a plain text content block.
type TextBlock struct {
	Text string
}

// BlockType implements ContentBlock.
func (TextBlock) BlockType() string { return "text" }

// ImageBlock is a base64-encoded image content block.
type ImageBlock struct {
	// MediaType is the MIME type of the encoded bytes (e.g. "image/jpeg").
	MediaType string

	// Data is the standard base64 encoding of the image bytes.
	Data string
}

// BlockType implements ContentBlock.
func (ImageBlock) BlockType() string { return "image" }

// wireTextBlock is the wire form of a text block.
type wireTextBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// wireImageBlock is the wire form of an image block.
type wireImageBlock struct {
	Type   string          `json:"type"`
	Source wireImageSource `json:"source"`
}

type wireImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// MarshalJSON renders the block in Messages API wire form.
func (b TextBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTextBlock{Type: "text", Text: b.Text})
}

// MarshalJSON renders the block in Messages API wire form.
func (b ImageBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireImageBlock{
		Type: "image",
		Source: wireImageSource{
			Type:      "base64",
			MediaType: b.MediaType,
			Data:      b.Data,
		},
	})
}

// =============================================================================
// MESSAGE CONTENT
// =============================================================================

// MessageContent is the body of a message: either plain text or an ordered
// list of content blocks. Exactly one of the two forms is active; Blocks
// being non-nil selects the structured form.
type MessageContent struct {
	Text   string
	Blocks []ContentBlock
}

// TextContent creates a plain text message body.
func TextContent(text string) MessageContent {
	return MessageContent{Text: text}
}

// BlockContent creates a structured message body.
func BlockContent(blocks ...ContentBlock) MessageContent {
	return MessageContent{Blocks: blocks}
}

// IsBlocks returns true if the structured form is active.
func (c MessageContent) IsBlocks() bool {
	return c.Blocks != nil
}

// MarshalJSON emits a bare JSON string for plain text and an array of
// blocks for structured content. The Messages API accepts both shapes.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Blocks != nil {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts both wire shapes.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		c.Blocks = nil
		return json.Unmarshal(data, &c.Text)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid message content: %w", err)
	}

	blocks := make([]ContentBlock, 0, len(raw))
	for _, item := range raw {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			return fmt.Errorf("invalid content block: %w", err)
		}

		switch head.Type {
		case "text":
			var tb wireTextBlock
			if err := json.Unmarshal(item, &tb); err != nil {
				return fmt.Errorf("invalid text block: %w", err)
			}
			blocks = append(blocks, TextBlock{Text: tb.Text})
		case "image":
			var ib wireImageBlock
			if err := json.Unmarshal(item, &ib); err != nil {
				return fmt.Errorf("invalid image block: %w", err)
			}
			blocks = append(blocks, ImageBlock{
				MediaType: ib.Source.MediaType,
				Data:      ib.Source.Data,
			})
		default:
			return fmt.Errorf("unknown content block type %q", head.Type)
		}
	}

	c.Text = ""
	c.Blocks = blocks
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// Message is a single message in Messages API wire form.
type Message struct {
	Role    string         `json:"role"` // "user" or "assistant"
	Content MessageContent `json:"content"`
}

// NewUserMessage creates a plain text user message.
func NewUserMessage(text string) Message {
	return Message{Role: "user", Content: TextContent(text)}
}

// NewAssistantMessage creates a plain text assistant message.
func NewAssistantMessage(text string) Message {
	return Message{Role: "assistant", Content: TextContent(text)}
}

// NewUserBlockMessage creates a user message with structured content.
func NewUserBlockMessage(blocks ...ContentBlock) Message {
	return Message{Role: "user", Content: BlockContent(blocks...)}
}
