// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args launches TUI", nil, CmdTUI},
		{"ask", []string{"ask", "hello"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"status", []string{"status"}, CmdStatus},
		{"config", []string{"config"}, CmdConfig},
		{"setup", []string{"setup"}, CmdSetup},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
		{"unknown", []string{"frobnicate"}, CmdUnknown},
		{"flags only still TUI", []string{"--verbose"}, CmdTUI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseArgs_Flags(t *testing.T) {
	cmd, args := ParseArgs([]string{"ask", "-m", "opus", "-a", "chart.png", "-v", "what", "is", "this"})

	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "opus", args.Model)
	assert.Equal(t, "chart.png", args.Attach)
	assert.True(t, args.Verbose)
	assert.Equal(t, []string{"what", "is", "this"}, args.Positional)
}

func TestParseArgs_EqualsSyntax(t *testing.T) {
	_, args := ParseArgs([]string{"--model=claude-3-opus-20240229", "--attach=a.png", "ask", "q"})

	assert.Equal(t, "claude-3-opus-20240229", args.Model)
	assert.Equal(t, "a.png", args.Attach)
}

func TestParseArgs_FlagsAfterCommand(t *testing.T) {
	cmd, args := ParseArgs([]string{"ask", "question", "--raw", "-q"})

	assert.Equal(t, CmdAsk, cmd)
	assert.True(t, args.Raw)
	assert.True(t, args.Quiet)
	assert.Equal(t, []string{"question"}, args.Positional)
}

func TestParseArgs_UnknownKeepsWord(t *testing.T) {
	_, args := ParseArgs([]string{"frobnicate"})
	assert.Equal(t, "frobnicate", args.Unknown)
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"usage", &UsageError{Command: "ask", Reason: "missing question"}, ExitUsageError},
		{"config", &ConfigError{Err: errors.New("bad toml")}, ExitConfigError},
		{"tty", &TTYRequiredError{Operation: "run setup"}, ExitUsageError},
		{"not configured", anthropic.ErrNotConfigured, ExitAuthError},
		{"auth failed", anthropic.ErrAuthFailed, ExitAuthError},
		{"model not found", anthropic.ErrModelNotFound, ExitNotFoundError},
		{"deadline", context.DeadlineExceeded, ExitTimeoutError},
		{"api 401", &anthropic.APIError{Status: 401}, ExitAuthError},
		{"api 404", &anthropic.APIError{Status: 404}, ExitNotFoundError},
		{"api 500", &anthropic.APIError{Status: 500}, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestGetExitCode_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), anthropic.ErrAuthFailed)
	assert.Equal(t, ExitAuthError, GetExitCode(wrapped))
}

// =============================================================================
// TEXT HELPERS
// =============================================================================

func TestWrapText(t *testing.T) {
	out := WrapText("one two three four five", 12)
	for _, line := range []string{"one two", "three four"} {
		assert.Contains(t, out, line)
	}

	// Existing newlines are preserved.
	out = WrapText("a\nb", 80)
	assert.Equal(t, "a\nb", out)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "(not set)", maskValue(""))
	assert.Equal(t, "***", maskValue("short"))

	masked := maskValue("sk-ant-abcdefgh1234")
	assert.Equal(t, "***1234", masked)
	assert.NotContains(t, masked, "abcdefgh")
}
