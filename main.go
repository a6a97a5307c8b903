// sonnet - A terminal client for the Anthropic Messages API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/cli"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/ui/chat"
	"github.com/jeranaias/sonnet-tui/internal/ui/components"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args))
	case cli.CmdChat:
		exitOnError(cli.HandleChat(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdSetup:
		exitOnError(cli.HandleSetup(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	case cli.CmdUnknown:
		cli.HandleUnknown(args)
	default:
		runTUI(args)
	}
}

func exitOnError(err error) {
	if err != nil {
		cli.Exit(err)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sonnet: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	cfg.ApplyEnvOverrides()

	if args.Model != "" {
		cfg.Model = args.Model
	}

	client := anthropic.NewClient(cfg.API.Key)
	if cfg.API.BaseURL != "" {
		client.WithBaseURL(cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs > 0 {
		client.WithTimeout(cli.TimeoutFromSecs(cfg.API.TimeoutSecs))
	}
	if cfg.API.RequestsPerMinute > 0 {
		client.WithRequestsPerMinute(cfg.API.RequestsPerMinute)
	}
	if cfg.API.MaxTokens > 0 {
		client.SetMaxTokens(cfg.API.MaxTokens)
	}
	if cfg.Model != "" {
		client.SetModel(cfg.Model)
	}

	theme := styles.NewTheme()
	m := NewModel(theme, cfg, client)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sonnet: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application screen.
type State int

const (
	StateWelcome State = iota
	StateChat
)

// Model is the top-level Bubble Tea model: a welcome screen that hands
// off to the chat view.
type Model struct {
	state State

	theme *styles.Theme

	width  int
	height int

	welcome   components.Welcome
	chatModel chat.Model
}

// NewModel builds the application model.
func NewModel(theme *styles.Theme, cfg *config.Config, client *anthropic.Client) *Model {
	welcome := components.NewWelcome(theme)
	welcome.SetVersion(Version)
	welcome.SetModelName(client.GetModel())
	welcome.SetHasKey(client.IsConfigured())

	return &Model{
		state:     StateWelcome,
		theme:     theme,
		welcome:   welcome,
		chatModel: chat.New(theme, cfg, client),
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.welcome.Init(),
		m.chatModel.Init(),
	)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.welcome.SetSize(msg.Width, msg.Height)

		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	// Everything else belongs to the chat view: command results,
	// completion responses, toast ticks, spinner frames.
	var cmd tea.Cmd
	m.chatModel, cmd = m.chatModel.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateWelcome {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			// Any other key opens the chat. The /key command there
			// handles key entry when none is configured yet.
			m.state = StateChat
			var cmd tea.Cmd
			m.chatModel, cmd = m.chatModel.Update(tea.WindowSizeMsg{
				Width:  m.width,
				Height: m.height,
			})
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.chatModel, cmd = m.chatModel.Update(msg)
	return m, cmd
}

// View renders the current screen.
func (m *Model) View() string {
	switch m.state {
	case StateChat:
		return m.chatModel.View()
	default:
		return m.welcome.View()
	}
}
