// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sonnet-tui/internal/commands"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.Width = msg.Width
		m.theme.Height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()

	case completionMsg:
		return m.handleCompletion(msg)

	case clipboardResultMsg:
		if msg.Err != nil {
			m.toasts.AddError("Copy failed: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("Copied to clipboard")
		}
		return m, nil
	}

	// Slash command results.
	if next, cmd, handled := m.handleCommandMsg(msg); handled {
		return next, cmd
	}

	// Everything else feeds the spinner animation.
	var cmd tea.Cmd
	m.thinking, cmd = m.thinking.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYBOARD HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Quit always works.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// The help overlay swallows every other key.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Dismiss):
		m.clearCompletions()
		return m, nil

	case key.Matches(msg, m.keyMap.Complete):
		return m.handleTab(false)

	case key.Matches(msg, m.keyMap.PrevOption):
		return m.handleTab(true)

	case key.Matches(msg, m.keyMap.Send):
		if m.showCompletions {
			m.acceptCompletion()
			return m, nil
		}
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.ClearChat):
		return m, func() tea.Msg { return commands.ClearConversationMsg{} }

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.PageUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.PageDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.ScrollToTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.ScrollToBottom()
		return m, nil
	}

	// Plain typing goes to the input. Any edit invalidates the current
	// completion popup; it reopens on the next Tab.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before && m.showCompletions {
		m.clearCompletions()
	}
	return m, cmd
}

// handleSubmit dispatches the input line: slash commands run through the
// command system, anything else becomes a chat message.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.Reset()
	m.clearCompletions()

	if commands.IsCommand(text) {
		result := m.parser.Parse(text)
		if result.Command == nil {
			m.toasts.AddError("Unknown command: " + result.CommandName + " (try /help)")
			return m, nil
		}
		if err := commands.ValidateArgs(result.Command, result.Args); err != nil {
			m.toasts.AddError(err.Error())
			return m, nil
		}
		return m, result.Command.Handler(m.commandContext(), result.Args)
	}

	// One request in flight at a time.
	if m.state == StateWaiting {
		m.toasts.AddWarning("Still waiting for the previous response")
		m.input.SetValue(text)
		return m, nil
	}

	return m, m.submitMessage(text)
}

// =============================================================================
// TAB COMPLETION
// =============================================================================

func (m Model) handleTab(reverse bool) (Model, tea.Cmd) {
	value := m.input.Value()
	if !strings.HasPrefix(value, "/") {
		return m, nil
	}

	if m.showCompletions {
		if reverse {
			m.completionState.Prev()
			m.completionPopup.Prev()
		} else {
			m.completionState.Next()
			m.completionPopup.Next()
		}
		return m, nil
	}

	comps := m.completer.Complete(value, m.input.CursorPosition())
	if len(comps) == 0 {
		return m, nil
	}

	m.completionState.Update(value, comps)
	m.completionPopup.SetCompletions(comps)

	// A single match completes immediately.
	if len(comps) == 1 {
		m.acceptCompletion()
		return m, nil
	}

	m.showCompletions = true
	return m, nil
}

// acceptCompletion splices the selected completion into the input.
func (m *Model) acceptCompletion() {
	value := m.completionState.Accept()
	if value == "" {
		m.clearCompletions()
		return
	}

	input := m.input.Value()
	if idx := strings.LastIndex(input, " "); idx >= 0 {
		// Completing an argument: replace the token after the last space.
		m.input.SetValue(input[:idx+1] + value)
	} else {
		// Completing the command name; values carry their leading slash.
		m.input.SetValue(value + " ")
	}
	m.input.SetCursorPosition(len(m.input.Value()))
	m.clearCompletions()
}

func (m *Model) clearCompletions() {
	m.showCompletions = false
	m.completionState.Clear()
	m.completionPopup.Clear()
}

// =============================================================================
// COMPLETION RESPONSE
// =============================================================================

func (m Model) handleCompletion(msg completionMsg) (Model, tea.Cmd) {
	m.thinking.Stop()
	m.state = StateReady

	if msg.Warning != "" {
		m.toasts.AddWarning(msg.Warning)
	}

	if msg.Err != nil {
		// Drop the pending assistant message; the user message stays so
		// the turn can be resent by hand.
		m.conversation.DropLast()
		m.viewport.SetMessages(m.conversation.GetHistory())
		m.statusBar.SetStatus(components.StatusError)
		m.toasts.AddError(msg.Err.Error())
		m.layout()
		return m, nil
	}

	m.conversation.CompleteLast(msg.Text, msg.Duration)
	m.lastResponse = msg.Text
	m.viewport.SetMessages(m.conversation.GetHistory())
	m.viewport.ScrollToBottom()
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetTokenUsage(m.conversation.TokensUsed, m.statusBar.MaxTokens)
	m.layout()
	return m, nil
}

// =============================================================================
// COMMAND MESSAGES
// =============================================================================

// handleCommandMsg applies messages produced by slash command handlers.
// The third return value reports whether the message was recognized.
func (m Model) handleCommandMsg(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case commands.ShowHelpMsg:
		m.showHelp = true
		return m, nil, true

	case commands.ClearConversationMsg:
		m.conversation.ClearHistory()
		m.viewport.SetMessages(m.conversation.GetHistory())
		m.statusBar.SetTokenUsage(0, m.statusBar.MaxTokens)
		m.toasts.AddStatus("Conversation cleared")
		return m, nil, true

	case commands.AttachFileMsg:
		m.staged = msg.Attachment
		m.statusBar.SetAttachment(msg.Attachment.Name)
		m.toasts.AddSuccess("Attached " + msg.Attachment.Name)
		return m, nil, true

	case commands.DetachFileMsg:
		if m.staged != nil {
			m.toasts.AddStatus("Removed " + m.staged.Name)
		}
		m.staged = nil
		m.statusBar.SetAttachment("")
		return m, nil, true

	case commands.ModelSwitchMsg:
		m.conversation.Model = msg.Model
		m.header.SetModel(msg.Model)
		m.statusBar.SetModel(msg.Model)
		if msg.Message != "" {
			m.addSystemMessage(msg.Message)
		}
		m.saveConfig()
		return m, nil, true

	case commands.SetAPIKeyMsg:
		if msg.Error != nil {
			m.toasts.AddError(msg.Error.Error())
			return m, nil, true
		}
		m.client.SetAPIKey(msg.Key)
		if m.cfg != nil {
			m.cfg.API.Key = msg.Key
			m.saveConfig()
		}
		m.toasts.AddSuccess("API key updated")
		return m, nil, true

	case commands.ThemeSwitchMsg:
		m.saveConfig()
		m.toasts.AddStatus("Theme set to " + msg.Theme + " (takes effect on restart)")
		return m, nil, true

	case commands.ConfigUpdateMsg:
		if msg.Error != nil {
			m.toasts.AddError("Config: " + msg.Error.Error())
			return m, nil, true
		}
		m.saveConfig()
		m.toasts.AddSuccess("Config updated: " + msg.Key)
		return m, nil, true

	case commands.CopyToClipboardMsg:
		if msg.Content == "" {
			m.toasts.AddWarning("Nothing to copy yet")
			return m, nil, true
		}
		return m, copyCmd(msg.Content), true

	case commands.ShowStatusMsg:
		m.addSystemMessage(m.renderStatus())
		return m, nil, true

	case commands.ShowConfigMsg:
		// Handlers resolve config directly when they hold a Config;
		// this is the fallback when they don't.
		if m.cfg == nil {
			m.toasts.AddWarning("No config loaded")
			return m, nil, true
		}
		m.addSystemMessage(m.cfg.String())
		return m, nil, true

	case commands.ErrorMsg:
		text := msg.Message
		if msg.Title != "" {
			text = msg.Title + ": " + msg.Message
		}
		if msg.Tip != "" {
			text += " (" + msg.Tip + ")"
		}
		m.toasts.AddError(text)
		return m, nil, true

	case commands.SystemMessageMsg:
		m.addSystemMessage(msg.Content)
		return m, nil, true
	}

	return m, nil, false
}

// addSystemMessage appends a system message and refreshes the viewport.
func (m *Model) addSystemMessage(content string) {
	m.conversation.AddMessage(model.NewSystemMessage(content))
	m.viewport.SetMessages(m.conversation.GetHistory())
	m.viewport.ScrollToBottom()
}

// saveConfig persists the config, surfacing failures as toasts.
func (m *Model) saveConfig() {
	if m.cfg == nil {
		return
	}
	if err := config.Save(m.cfg); err != nil {
		m.toasts.AddWarning("Could not save config: " + err.Error())
	}
}

// renderStatus builds the /status report.
func (m *Model) renderStatus() string {
	var sb strings.Builder
	sb.WriteString("Status\n\n")
	sb.WriteString("  Model:      " + m.client.GetModel() + "\n")
	sb.WriteString("  API key:    " + m.client.APIKeyMasked() + "\n")
	sb.WriteString("  Messages:   " + formatInt(m.conversation.MessageCount()) + "\n")
	sb.WriteString("  Tokens:     ~" + formatInt(m.conversation.TokensUsed) + "\n")
	if m.staged != nil {
		sb.WriteString("  Attachment: " + m.staged.Name + " (" + m.staged.Kind.String() + ")\n")
	} else {
		sb.WriteString("  Attachment: none\n")
	}
	return sb.String()
}
