// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the sonnet CLI.
//
// Handles "sonnet ask" which sends a single question to the API and
// prints the answer, markdown-rendered when stdout is a terminal.
//
// Examples:
//   sonnet ask "explain goroutines in two sentences"
//   sonnet ask -a chart.png "what does this chart show?"
//   sonnet ask --raw "print a haiku" > haiku.txt

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/attachment"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	askLabelStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	askMetaStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	askWarnStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant markdown for terminal display.
// Initialized once; nil when glamour setup fails, in which case output
// falls back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err == nil {
		markdownRenderer = r
	}
}

// renderMarkdown renders markdown for the terminal, falling back to
// the raw text on any failure.
func renderMarkdown(text string) string {
	if markdownRenderer == nil {
		return text
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// =============================================================================
// CLIENT SETUP
// =============================================================================

// loadClient loads configuration and builds a ready API client.
// The model flag, when set, overrides the configured model.
func loadClient(args Args) (*anthropic.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, &ConfigError{Err: err}
	}
	cfg.ApplyEnvOverrides()

	client := anthropic.NewClient(cfg.API.Key)
	if cfg.API.BaseURL != "" {
		client.WithBaseURL(cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs > 0 {
		client.WithTimeout(TimeoutFromSecs(cfg.API.TimeoutSecs))
	}
	if cfg.API.RequestsPerMinute > 0 {
		client.WithRequestsPerMinute(cfg.API.RequestsPerMinute)
	}
	if cfg.API.MaxTokens > 0 {
		client.SetMaxTokens(cfg.API.MaxTokens)
	}

	model := cfg.Model
	if args.Model != "" {
		model = args.Model
	}
	if model != "" {
		client.SetModel(model)
	}

	if !client.IsConfigured() {
		return nil, nil, fmt.Errorf("%w (run 'sonnet setup' or set ANTHROPIC_API_KEY)", anthropic.ErrNotConfigured)
	}

	return client, cfg, nil
}

// TimeoutFromSecs converts a config timeout to a duration.
func TimeoutFromSecs(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk implements "sonnet ask".
func HandleAsk(args Args) error {
	question := strings.TrimSpace(strings.Join(args.Positional, " "))
	if question == "" {
		return &UsageError{Command: "ask", Reason: "a question is required"}
	}

	client, _, err := loadClient(args)
	if err != nil {
		return err
	}

	msg, err := buildAskMessage(question, args.Attach)
	if err != nil {
		return err
	}

	resp, err := client.Complete(context.Background(), []anthropic.Message{msg})
	if err != nil {
		return err
	}

	displayResponse(resp, args)
	return nil
}

// buildAskMessage builds the outgoing user message, encoding the
// attachment when one was given. An attachment that cannot be encoded
// is dropped with a warning; the question still goes out.
func buildAskMessage(question, attachPath string) (anthropic.Message, error) {
	if attachPath == "" {
		return anthropic.NewUserMessage(question), nil
	}

	att, err := attachment.Stage(attachPath)
	if err != nil {
		// A file that fails staging (missing, wrong type) is a hard
		// error: the user named it explicitly.
		return anthropic.Message{}, err
	}

	blocks, err := att.Encode()
	if err != nil {
		fmt.Fprintln(os.Stderr, askWarnStyle.Render(
			"warning: attachment "+att.Name+" dropped: "+err.Error()))
		return anthropic.NewUserMessage(question), nil
	}

	content := append([]anthropic.ContentBlock{anthropic.TextBlock{Text: question}}, blocks...)
	return anthropic.NewUserBlockMessage(content...), nil
}

// displayResponse prints the answer. Markdown rendering and metadata
// only apply when stdout is a terminal; piped output stays plain so it
// composes with other tools.
func displayResponse(resp *anthropic.MessagesResponse, args Args) {
	text := resp.GetText()
	if text == "" {
		if !args.Quiet {
			fmt.Fprintln(os.Stderr, askMetaStyle.Render("(model returned no content)"))
		}
		return
	}

	if IsStdoutTTY() && !args.Raw {
		fmt.Print(renderMarkdown(text))
	} else {
		fmt.Println(text)
	}

	if args.Verbose && IsStdoutTTY() {
		meta := fmt.Sprintf("%s | %s in / %s out tokens",
			resp.Model,
			formatNumber(resp.Usage.InputTokens),
			formatNumber(resp.Usage.OutputTokens))
		fmt.Println(askMetaStyle.Render(meta))
	}
}

// formatNumber formats an integer with thousands separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var out strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		out.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if out.Len() > 0 {
			out.WriteString(",")
		}
		out.WriteString(s[i : i+3])
	}
	return out.String()
}
