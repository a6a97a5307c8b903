// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the sonnet command-line surface.
//
// Running sonnet with no command launches the full-screen TUI; the
// subcommands here cover everything that works better as a one-shot or
// a plain REPL:
//
//	sonnet              Launch the TUI (default)
//	sonnet ask "..."    One-shot question, markdown-rendered answer
//	sonnet chat         Line-based REPL with history
//	sonnet status       Show configuration and connectivity info
//	sonnet config       Get/set configuration values
//	sonnet setup        Interactive first-run setup (API key)
//	sonnet version      Print version information
//	sonnet help         Print usage
//
// Parsing is hand-rolled: Parse inspects os.Args, peels off global
// flags, and returns a Command plus an Args struct. Handlers print
// human output to stdout and errors to stderr; exit codes are mapped
// by GetExitCode.
package cli
