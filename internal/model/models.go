// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "strings"

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-3-sonnet-20240229"

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo contains detailed information about a model.
// This is used for model selection and display in the UI.
type ModelInfo struct {
	// ID is the model identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Tier categorizes the model's capability level
	Tier string `json:"tier"`

	// MaxContext is the maximum context window size in tokens
	MaxContext int `json:"max_context"`

	// Vision indicates the model accepts image content blocks
	Vision bool `json:"vision"`

	// Description is a brief explanation of the model's strengths
	Description string `json:"description"`
}

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// Models is the registry of known Claude models with their metadata.
var Models = map[string]ModelInfo{
	"haiku": {
		ID:          "claude-3-haiku-20240307",
		Name:        "Claude 3 Haiku",
		Tier:        "Fast",
		MaxContext:  200000,
		Vision:      true,
		Description: "Fast and efficient for simple tasks",
	},
	"sonnet": {
		ID:          "claude-3-sonnet-20240229",
		Name:        "Claude 3 Sonnet",
		Tier:        "Balanced",
		MaxContext:  200000,
		Vision:      true,
		Description: "Best balance of speed and capability",
	},
	"opus": {
		ID:          "claude-3-opus-20240229",
		Name:        "Claude 3 Opus",
		Tier:        "Powerful",
		MaxContext:  200000,
		Vision:      true,
		Description: "Most capable for complex reasoning",
	},
}

// =============================================================================
// LOOKUP FUNCTIONS
// =============================================================================

// GetModelInfo looks up a model by short name or full API identifier.
func GetModelInfo(name string) (ModelInfo, bool) {
	if info, ok := Models[name]; ok {
		return info, true
	}
	for _, info := range Models {
		if info.ID == name {
			return info, true
		}
	}
	return ModelInfo{}, false
}

// ResolveModelID maps a short name to its full API identifier.
// Unknown names pass through unchanged so users can type a raw model ID.
func ResolveModelID(name string) string {
	name = strings.TrimSpace(name)
	if info, ok := Models[name]; ok {
		return info.ID
	}
	return name
}

// ModelNames returns the registry's short names for completion.
func ModelNames() []string {
	names := make([]string, 0, len(Models))
	for name := range Models {
		names = append(names, name)
	}
	return names
}
