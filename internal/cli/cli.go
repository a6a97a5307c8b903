// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line argument parsing for sonnet.
//
// Parsing is deliberately hand-rolled rather than pulling in a flag
// framework: the surface is small, the default action (no args) is
// launching the TUI, and error messages stay fully under our control.

package cli

import (
	"fmt"
	"os"
	"strings"
)

// =============================================================================
// VERSION INFO - Injected at build time via -ldflags
// =============================================================================

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// GitCommit is the short commit hash of this build.
	GitCommit = "unknown"
	// BuildDate is the build timestamp in RFC 3339.
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies which subcommand was requested.
type Command int

const (
	// CmdTUI launches the full-screen terminal UI (the default).
	CmdTUI Command = iota
	// CmdAsk sends a one-shot question and prints the answer.
	CmdAsk
	// CmdChat starts the line-based REPL.
	CmdChat
	// CmdStatus prints configuration and connectivity info.
	CmdStatus
	// CmdConfig gets or sets configuration values.
	CmdConfig
	// CmdSetup runs interactive first-run setup.
	CmdSetup
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
	// CmdUnknown is returned for unrecognized commands.
	CmdUnknown
)

// Args holds the parsed flags and positional arguments.
type Args struct {
	// Positional arguments after the command name (question text,
	// config key/value, and so on).
	Positional []string

	// Model overrides the configured model (-m, --model).
	Model string

	// Attach is a file to include with an ask (-a, --attach).
	Attach string

	// Verbose enables extra diagnostic output (-v, --verbose).
	Verbose bool

	// Quiet suppresses non-essential output (-q, --quiet).
	Quiet bool

	// Raw disables markdown rendering for ask/chat output (--raw).
	Raw bool

	// Unknown holds the unrecognized command word, if any.
	Unknown string
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads os.Args and returns the requested command and arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse so
// tests can drive it directly.
func ParseArgs(argv []string) (Command, Args) {
	var args Args

	rest := parseFlags(argv, &args)
	if len(rest) == 0 {
		return CmdTUI, args
	}

	cmd := rest[0]
	args.Positional = rest[1:]

	switch cmd {
	case "ask":
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "status":
		return CmdStatus, args
	case "config":
		return CmdConfig, args
	case "setup":
		return CmdSetup, args
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		args.Unknown = cmd
		return CmdUnknown, args
	}
}

// parseFlags peels flags off the argument list and returns what remains.
// Flags may appear before or after the command word.
func parseFlags(argv []string, args *Args) []string {
	var rest []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-m", "--model":
			if i+1 < len(argv) {
				i++
				args.Model = argv[i]
			}
		case "-a", "--attach":
			if i+1 < len(argv) {
				i++
				args.Attach = argv[i]
			}
		case "-v", "--verbose":
			args.Verbose = true
		case "-q", "--quiet":
			args.Quiet = true
		case "--raw":
			args.Raw = true
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
				continue
			}
			if strings.HasPrefix(arg, "--attach=") {
				args.Attach = strings.TrimPrefix(arg, "--attach=")
				continue
			}
			rest = append(rest, arg)
		}
	}

	return rest
}

// =============================================================================
// USAGE
// =============================================================================

const usageText = `sonnet - a terminal client for Claude

Usage:
  sonnet                      Launch the TUI
  sonnet ask "question"       Ask a one-shot question
  sonnet chat                 Start an interactive chat REPL
  sonnet status               Show configuration and key status
  sonnet config [key] [val]   Show or change configuration
  sonnet setup                Interactive first-run setup
  sonnet version              Print version information
  sonnet help                 Show this help

Flags:
  -m, --model NAME      Override the configured model
  -a, --attach FILE     Attach an image or workbook to an ask
  -v, --verbose         Verbose output
  -q, --quiet           Minimal output
  --raw                 Disable markdown rendering

Examples:
  sonnet ask "explain goroutines in two sentences"
  sonnet ask -a chart.png "what does this chart show?"
  sonnet config model claude-3-opus-20240229
  ANTHROPIC_API_KEY=sk-ant-... sonnet

The API key is read from the config file (~/.sonnet/config.toml) or
the ANTHROPIC_API_KEY environment variable.`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Println(usageText)
}

// HandleHelp implements "sonnet help".
func HandleHelp(_ Args) {
	PrintUsage()
}

// HandleVersion implements "sonnet version".
func HandleVersion(args Args) {
	if args.Quiet {
		fmt.Println(Version)
		return
	}
	fmt.Printf("sonnet %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
}

// HandleUnknown reports an unrecognized command and exits with a usage
// error.
func HandleUnknown(args Args) {
	fmt.Fprintf(os.Stderr, "sonnet: unknown command %q\n\n", args.Unknown)
	PrintUsage()
	os.Exit(ExitUsageError)
}
