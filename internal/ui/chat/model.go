// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/attachment"
	"github.com/jeranaias/sonnet-tui/internal/commands"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/components"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Waiting for a completion response
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Core services
	cfg    *config.Config
	client *anthropic.Client

	// Conversation
	conversation *model.Conversation

	// Attachment staged for the next turn
	staged *attachment.Attachment

	// Command system
	registry        *commands.Registry
	parser          *commands.Parser
	completer       *commands.Completer
	completionState *commands.CompletionState

	// UI components
	header          *components.Header
	statusBar       *components.StatusBar
	input           *components.InputArea
	viewport        *components.ChatViewport
	completionPopup *components.CompletionPopup
	thinking        components.ThinkingIndicator
	toasts          *components.ToastManager

	// Key bindings
	keyMap KeyMap

	// Overlays
	showHelp        bool
	showCompletions bool

	// Last assistant response, kept for /copy
	lastResponse string
}

// New creates a new chat model wired to the given config and API client.
func New(theme *styles.Theme, cfg *config.Config, client *anthropic.Client) Model {
	conv := model.NewConversationWithModel(client.GetModel())

	registry := commands.NewRegistry()

	header := components.NewHeader(theme)
	header.SetModel(client.GetModel())

	statusBar := components.NewStatusBar(theme)
	statusBar.SetModel(client.GetModel())
	if cfg != nil {
		statusBar.ShowTokens = cfg.UI.ShowTokens
	}

	input := components.NewInputArea(theme)

	return Model{
		state:           StateReady,
		theme:           theme,
		width:           80,
		height:          24,
		cfg:             cfg,
		client:          client,
		conversation:    conv,
		registry:        registry,
		parser:          commands.NewParser(registry),
		completer:       commands.NewCompleter(registry),
		completionState: commands.NewCompletionState(),
		header:          header,
		statusBar:       statusBar,
		input:           input,
		viewport:        components.NewChatViewport(theme),
		completionPopup: components.NewCompletionPopup(theme),
		thinking:        components.NewThinkingIndicator(),
		toasts:          components.NewToastManager(),
		keyMap:          DefaultKeyMap(),
	}
}

// Init initializes the chat model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		components.ToastTickCmd(),
	)
}

// Conversation exposes the active conversation (for export and testing).
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// commandContext builds the handler context for slash command execution.
func (m *Model) commandContext() *commands.Context {
	stagedPath := ""
	if m.staged != nil {
		stagedPath = m.staged.Path
	}
	return commands.NewContext(m.cfg, m.client, m.conversation).
		WithHandlerContext(&commands.HandlerContext{
			CurrentModel:     m.client.GetModel(),
			LastResponse:     m.lastResponse,
			StagedAttachment: stagedPath,
		})
}

// layout recomputes component sizes after a terminal resize.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.completionPopup.SetWidth(m.width - 4)

	// Header and status bar are fixed height; input takes 3 lines plus
	// the counter line. What's left belongs to the viewport.
	chromeHeight := headerHeight(m.width) + 5 + 1
	viewportHeight := m.height - chromeHeight
	if m.thinking.IsActive() {
		viewportHeight--
	}
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	m.viewport.SetSize(m.width, viewportHeight)
}

// headerHeight returns the rendered height of the header for a width.
// Narrow terminals get the single-line compact header.
func headerHeight(width int) int {
	if width < 60 {
		return 1
	}
	return 4
}
