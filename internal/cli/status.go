// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Configuration and environment report for the sonnet CLI.
//
// Handles "sonnet status": shows where config was loaded from, the
// masked API key, the active model, and (with -v) terminal details.

package cli

import (
	"fmt"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/config"
	"github.com/jeranaias/sonnet-tui/internal/model"
)

// HandleStatus implements "sonnet status".
func HandleStatus(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return &ConfigError{Err: err}
	}
	cfg.ApplyEnvOverrides()

	client := anthropic.NewClient(cfg.API.Key)

	path, _ := config.ConfigPath()
	activeModel := cfg.Model
	if args.Model != "" {
		activeModel = args.Model
	}

	fmt.Println(welcomeStyle.Render("sonnet status"))
	fmt.Println()
	fmt.Println(infoStyle.Render("  Config:     " + path))
	fmt.Println(infoStyle.Render("  API key:    " + client.APIKeyMasked()))
	fmt.Println(infoStyle.Render("  Model:      " + activeModel))

	if info, ok := model.GetModelInfo(activeModel); ok {
		fmt.Println(infoStyle.Render("  Context:    " + formatNumber(info.MaxContext) + " tokens"))
	}
	fmt.Println(infoStyle.Render("  Max output: " + formatNumber(cfg.API.MaxTokens) + " tokens"))
	fmt.Println(infoStyle.Render("  Theme:      " + cfg.UI.Theme))

	if !client.IsConfigured() {
		fmt.Println()
		fmt.Println(warningStyle.Render("  No API key configured. Run 'sonnet setup' or set ANTHROPIC_API_KEY."))
	}

	if args.Verbose {
		width := GetTerminalWidth()
		fmt.Println()
		fmt.Println(infoStyle.Render("  Terminal:"))
		fmt.Println(infoStyle.Render(fmt.Sprintf("    stdin TTY:  %v", IsTTY())))
		fmt.Println(infoStyle.Render(fmt.Sprintf("    stdout TTY: %v", IsStdoutTTY())))
		fmt.Println(infoStyle.Render(fmt.Sprintf("    colors:     %v", ColorsEnabled())))
		fmt.Println(infoStyle.Render(fmt.Sprintf("    width:      %d", width)))
	}

	return nil
}
