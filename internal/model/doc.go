// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat conversations, messages, and model information.
//
// # Key Types
//
//   - Conversation: Container for a chat session with messages and metadata
//   - Message: Single message with role, content, and timestamp
//   - ModelInfo: Information about a Claude model (ID, display name, context window)
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Create a conversation and add a turn:
//
//	conv := model.NewConversationWithModel("claude-3-sonnet-20240229")
//	conv.AddUserMessage("Hello!")
//	msgs := conv.ToAPIMessages()
//
// Look up model information:
//
//	info, ok := model.GetModelInfo("sonnet")
//	if ok {
//	    fmt.Printf("Model: %s, Context: %d tokens\n", info.ID, info.MaxContext)
//	}
package model
