// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the sonnet CLI.
//
// Handles "sonnet chat", a plain line-based alternative to the TUI for
// people who want readline-style history and a scrolling transcript.
//
// Interactive commands (during chat):
//   /help, /h        Show available commands
//   /clear, /c       Clear conversation history
//   /model [name]    Show or switch model
//   /attach FILE     Stage a file for the next message
//   /detach          Remove the staged file
//   /status, /s      Show session statistics
//   /quit, /q        Exit chat
//   Ctrl+C           Cancel the current line
//   Ctrl+D           Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/attachment"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/model"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader wraps liner with persistent history in the config dir.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &lineReader{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	r.loadHistory()
	return r
}

func (r *lineReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// readInput reads a line with history navigation on the arrow keys.
func (r *lineReader) readInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists history with owner-only permissions; the file
// can contain anything the user typed.
func (r *lineReader) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

func (r *lineReader) close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession holds the state for one REPL run.
type chatSession struct {
	client       *anthropic.Client
	conversation *model.Conversation
	staged       *attachment.Attachment
	args         Args
	startTime    time.Time
}

// HandleChat implements "sonnet chat".
func HandleChat(args Args) error {
	if err := RequiresTTY("run the chat REPL"); err != nil {
		return err
	}

	client, _, err := loadClient(args)
	if err != nil {
		return err
	}

	s := &chatSession{
		client:       client,
		conversation: model.NewConversationWithModel(client.GetModel()),
		args:         args,
		startTime:    time.Now(),
	}

	reader := newLineReader()
	defer reader.close()

	if !args.Quiet {
		s.printWelcome()
	}

	for {
		input, err := reader.readInput(promptStyle.Render("you> "))
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println(infoStyle.Render("(line cancelled; /quit or Ctrl+D to exit)"))
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := s.runCommand(input); quit {
				break
			}
			continue
		}

		s.sendTurn(input)
	}

	if !s.args.Quiet {
		s.printSummary()
	}
	return nil
}

// =============================================================================
// TURNS
// =============================================================================

// sendTurn sends one user message and prints the reply. Errors drop
// the turn from history so it can be resent by hand; a staged
// attachment is consumed either way.
func (s *chatSession) sendTurn(text string) {
	s.conversation.AddUserMessage(text)

	var blocks []anthropic.ContentBlock
	if s.staged != nil {
		encoded, err := s.staged.Encode()
		if err != nil {
			fmt.Println(warningStyle.Render(
				"warning: attachment " + s.staged.Name + " dropped: " + err.Error()))
		} else {
			blocks = encoded
		}
		s.staged = nil
	}

	messages := s.conversation.ToAPIMessagesWithAttachment(blocks)

	start := time.Now()
	resp, err := s.client.Complete(context.Background(), messages)
	if err != nil {
		s.conversation.DropLast()
		fmt.Println(warningStyle.Render("error: " + err.Error()))
		return
	}

	reply := resp.GetText()
	s.conversation.AddPendingAssistantMessage()
	s.conversation.CompleteLast(reply, time.Since(start))

	if reply == "" {
		fmt.Println(infoStyle.Render("(no content)"))
		return
	}

	if IsStdoutTTY() && !s.args.Raw {
		fmt.Print(renderMarkdown(reply))
	} else {
		fmt.Println(reply)
	}
}

// =============================================================================
// REPL COMMANDS
// =============================================================================

// runCommand executes a slash command; returns true to exit the REPL.
func (s *chatSession) runCommand(input string) bool {
	fields := strings.Fields(input)
	cmd, cmdArgs := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		s.printHelp()

	case "/clear", "/c":
		s.conversation.ClearHistory()
		fmt.Println(infoStyle.Render("Conversation cleared"))

	case "/model":
		if len(cmdArgs) == 0 {
			fmt.Println(infoStyle.Render("Model: " + s.client.GetModel()))
			break
		}
		resolved := model.ResolveModelID(cmdArgs[0])
		if _, ok := model.GetModelInfo(resolved); !ok {
			fmt.Println(warningStyle.Render(
				"Unknown model: " + cmdArgs[0] + " (known: " + strings.Join(model.ModelNames(), ", ") + ")"))
			break
		}
		s.client.SetModel(resolved)
		s.conversation.Model = resolved
		fmt.Println(infoStyle.Render("Switched to " + resolved))

	case "/attach":
		if len(cmdArgs) == 0 {
			fmt.Println(warningStyle.Render("usage: /attach <file>"))
			break
		}
		att, err := attachment.Stage(strings.Join(cmdArgs, " "))
		if err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			break
		}
		s.staged = att
		fmt.Println(infoStyle.Render("Attached " + att.Name + " (" + att.Kind.String() + ")"))

	case "/detach":
		if s.staged != nil {
			fmt.Println(infoStyle.Render("Removed " + s.staged.Name))
		}
		s.staged = nil

	case "/status", "/s":
		s.printStatus()

	default:
		fmt.Println(warningStyle.Render("Unknown command: " + cmd + " (try /help)"))
	}

	return false
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *chatSession) printWelcome() {
	fmt.Println(welcomeStyle.Render("sonnet chat"))
	fmt.Println(infoStyle.Render("Model: " + s.client.GetModel()))
	fmt.Println(infoStyle.Render("Type a message, /help for commands, /quit to exit."))
	fmt.Println()
}

func (s *chatSession) printHelp() {
	rows := [][2]string{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/model [name]", "Show or switch model"},
		{"/attach FILE", "Stage a file for the next message"},
		{"/detach", "Remove the staged file"},
		{"/status, /s", "Show session statistics"},
		{"/quit, /q", "Exit chat"},
	}
	for _, row := range rows {
		fmt.Printf("  %s %s\n",
			commandStyle.Render(fmt.Sprintf("%-16s", row[0])),
			infoStyle.Render(row[1]))
	}
}

func (s *chatSession) printStatus() {
	fmt.Println(infoStyle.Render("  Model:      " + s.client.GetModel()))
	fmt.Println(infoStyle.Render("  API key:    " + s.client.APIKeyMasked()))
	fmt.Println(infoStyle.Render("  Messages:   " + formatNumber(s.conversation.MessageCount())))
	fmt.Println(infoStyle.Render("  Tokens:     ~" + formatNumber(s.conversation.TokensUsed)))
	if s.staged != nil {
		fmt.Println(infoStyle.Render("  Attachment: " + s.staged.Name + " (" + s.staged.Kind.String() + ")"))
	} else {
		fmt.Println(infoStyle.Render("  Attachment: none"))
	}
}

func (s *chatSession) printSummary() {
	elapsed := time.Since(s.startTime).Round(time.Second)
	fmt.Println()
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"Session: %d messages, ~%s tokens, %s",
		s.conversation.MessageCount(),
		formatNumber(s.conversation.TokensUsed),
		elapsed)))
}
