// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/attachment"
	"github.com/jeranaias/sonnet-tui/internal/model"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// HandlerContext provides access to application runtime state for command
// handlers. This is populated by the main application when executing commands.
type HandlerContext struct {
	// CurrentModel is the currently selected model
	CurrentModel string

	// LastResponse is the last assistant response (for /copy)
	LastResponse string

	// StagedAttachment is the path of the currently staged attachment
	StagedAttachment string
}

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the application state.

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct{}

// ModelSwitchMsg indicates a model switch request.
type ModelSwitchMsg struct {
	Model   string // The model ID to switch to
	Message string // Optional message to display after switching
	Error   error
}

// ClearConversationMsg triggers clearing the conversation.
type ClearConversationMsg struct{}

// AttachFileMsg carries a successfully staged attachment.
type AttachFileMsg struct {
	Attachment *attachment.Attachment
}

// DetachFileMsg removes the staged attachment.
type DetachFileMsg struct{}

// CopyToClipboardMsg triggers copying to clipboard.
type CopyToClipboardMsg struct {
	Content string
}

// ShowStatusMsg triggers showing detailed status.
type ShowStatusMsg struct{}

// ShowConfigMsg triggers showing configuration.
type ShowConfigMsg struct {
	Key   string // Optional specific key
	Value string // For setting
}

// ConfigUpdateMsg indicates a config value was updated.
type ConfigUpdateMsg struct {
	Key      string
	Value    interface{}
	OldValue interface{}
	Error    error
}

// ThemeSwitchMsg indicates a theme change request.
type ThemeSwitchMsg struct {
	Theme string
}

// SetAPIKeyMsg carries a new API key entered by the user.
type SetAPIKeyMsg struct {
	Key   string
	Error error
}

// ErrorMsg indicates an error occurred.
type ErrorMsg struct {
	Title   string
	Message string
	Tip     string
}

// SystemMessageMsg adds a system message to the chat.
type SystemMessageMsg struct {
	Content string
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

// HandleHelp shows help information.
func HandleHelp(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowHelpMsg{}
	}
}

// HandleQuit exits the application.
func HandleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

// HandleNew starts a new conversation.
func HandleNew(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ClearConversationMsg{}
	}
}

// HandleClear clears the conversation history.
func HandleClear(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ClearConversationMsg{}
	}
}

// HandleCopy copies the last response to clipboard.
func HandleCopy(ctx *Context, args []string) tea.Cmd {
	content := ""
	if ctx != nil && ctx.HandlerCtx != nil {
		content = ctx.HandlerCtx.LastResponse
	}
	return func() tea.Msg {
		return CopyToClipboardMsg{Content: content}
	}
}

// HandleAttach stages a file to be sent with the next message.
// Validation happens here so the user gets immediate feedback on
// unsupported types or missing files, before typing their message.
func HandleAttach(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return func() tea.Msg {
			return ErrorMsg{
				Title:   "No file specified",
				Message: "Usage: /attach <path>",
				Tip:     "Supported: " + strings.Join(attachment.ValidExtensions(), ", "),
			}
		}
	}

	path := strings.Join(args, " ")
	return func() tea.Msg {
		att, err := attachment.Stage(path)
		if err != nil {
			return ErrorMsg{
				Title:   "Cannot attach file",
				Message: err.Error(),
				Tip:     "Supported: " + strings.Join(attachment.ValidExtensions(), ", "),
			}
		}
		return AttachFileMsg{Attachment: att}
	}
}

// HandleDetach removes the staged attachment.
func HandleDetach(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return DetachFileMsg{}
	}
}

// HandleModel switches or shows the current model.
// When called without arguments, lists available models with their
// descriptions. When called with a model name, switches to that model.
func HandleModel(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		currentModel := ""
		if ctx != nil && ctx.Client != nil {
			currentModel = ctx.Client.GetModel()
		}
		content := renderModelList(currentModel)
		return func() tea.Msg {
			return SystemMessageMsg{Content: content}
		}
	}

	modelName := args[0]

	var switchMessage string
	if info, ok := model.GetModelInfo(modelName); ok {
		if ctx != nil && ctx.Client != nil {
			ctx.Client.SetModel(info.ID)
		}
		if ctx != nil && ctx.Config != nil {
			ctx.Config.Model = info.ID
		}
		switchMessage = fmt.Sprintf("Switched to %s (%s)\n%s", info.Name, info.Tier, info.Description)
		modelName = info.ID
	} else {
		// Unknown model - pass the raw ID through to the API.
		if ctx != nil && ctx.Client != nil {
			ctx.Client.SetModel(modelName)
		}
		if ctx != nil && ctx.Config != nil {
			ctx.Config.Model = modelName
		}
		switchMessage = fmt.Sprintf("Switched to %s", modelName)
	}

	return func() tea.Msg {
		return ModelSwitchMsg{Model: modelName, Message: switchMessage}
	}
}

// HandleModels lists available models.
func HandleModels(ctx *Context, args []string) tea.Cmd {
	currentModel := ""
	if ctx != nil && ctx.Client != nil {
		currentModel = ctx.Client.GetModel()
	}
	content := renderModelList(currentModel)
	return func() tea.Msg {
		return SystemMessageMsg{Content: content}
	}
}

// renderModelList formats the model registry for display.
func renderModelList(currentModel string) string {
	names := model.ModelNames()
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Available models:\n\n")
	for _, name := range names {
		info := model.Models[name]
		current := ""
		if name == currentModel || info.ID == currentModel {
			current = " (current)"
		}
		sb.WriteString(fmt.Sprintf("  %-8s %s [%s]%s\n", name, info.Description, info.Tier, current))
	}
	sb.WriteString("\nUse /model <name> to switch models")
	return sb.String()
}

// HandleConfig shows or edits configuration.
func HandleConfig(ctx *Context, args []string) tea.Cmd {
	switch len(args) {
	case 0:
		// Show the whole config (key redacted).
		if ctx != nil && ctx.Config != nil {
			content := ctx.Config.String()
			return func() tea.Msg {
				return SystemMessageMsg{Content: content}
			}
		}
		return func() tea.Msg {
			return ShowConfigMsg{}
		}

	case 1:
		key := args[0]
		if ctx != nil && ctx.Config != nil {
			value, err := ctx.Config.Get(key)
			if err != nil {
				return func() tea.Msg {
					return ErrorMsg{Title: "Unknown config key", Message: err.Error()}
				}
			}
			return func() tea.Msg {
				return SystemMessageMsg{Content: fmt.Sprintf("%s = %v", key, value)}
			}
		}
		return func() tea.Msg {
			return ShowConfigMsg{Key: key}
		}

	default:
		key := args[0]
		value := strings.Join(args[1:], " ")
		if ctx != nil && ctx.Config != nil {
			oldValue, _ := ctx.Config.Get(key)
			if err := ctx.Config.Set(key, value); err != nil {
				return func() tea.Msg {
					return ConfigUpdateMsg{Key: key, Error: err}
				}
			}
			return func() tea.Msg {
				return ConfigUpdateMsg{Key: key, Value: value, OldValue: oldValue}
			}
		}
		return func() tea.Msg {
			return ShowConfigMsg{Key: key, Value: value}
		}
	}
}

// HandleTheme changes the color theme.
func HandleTheme(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		current := "dark"
		if ctx != nil && ctx.Config != nil {
			current = ctx.Config.UI.Theme
		}
		return func() tea.Msg {
			return SystemMessageMsg{Content: fmt.Sprintf("Current theme: %s\nAvailable: dark, light, auto", current)}
		}
	}

	theme := strings.ToLower(args[0])
	if ctx != nil && ctx.Config != nil {
		ctx.Config.UI.Theme = theme
	}
	return func() tea.Msg {
		return ThemeSwitchMsg{Theme: theme}
	}
}

// HandleStatus shows detailed status information.
func HandleStatus(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowStatusMsg{}
	}
}

// HandleKey sets the Anthropic API key.
func HandleKey(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return func() tea.Msg {
			return ErrorMsg{
				Title:   "No key provided",
				Message: "Usage: /key <api-key>",
				Tip:     "Keys start with sk-ant-",
			}
		}
	}

	key := strings.TrimSpace(args[0])
	return func() tea.Msg {
		if !anthropic.ValidateAPIKey(key) {
			return SetAPIKeyMsg{Error: fmt.Errorf("invalid API key format (keys start with sk-ant-)")}
		}
		return SetAPIKeyMsg{Key: key}
	}
}
