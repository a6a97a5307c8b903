// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - Interactive first-run setup for the sonnet CLI.
//
// Handles "sonnet setup": prompts for the API key with echo disabled,
// validates its shape, and writes the config file with owner-only
// permissions.

package cli

import (
	"fmt"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
	"github.com/jeranaias/sonnet-tui/internal/config"
)

// HandleSetup implements "sonnet setup".
func HandleSetup(args Args) error {
	if err := RequiresTTY("run setup"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not block re-running setup.
		fmt.Println(warningStyle.Render("warning: existing config unreadable, starting fresh: " + err.Error()))
		cfg = config.Default()
	}

	fmt.Println(welcomeStyle.Render("sonnet setup"))
	fmt.Println(infoStyle.Render("Get an API key at https://console.anthropic.com/settings/keys"))
	if cfg.API.Key != "" {
		fmt.Println(infoStyle.Render("A key is already configured; press Enter to keep it."))
	}
	fmt.Println()

	key, err := ReadSecret("API key (sk-ant-...): ")
	if err != nil {
		return err
	}

	if key == "" && cfg.API.Key != "" {
		fmt.Println(infoStyle.Render("Keeping existing key."))
		return nil
	}

	if !anthropic.ValidateAPIKey(key) {
		return &UsageError{Command: "setup", Reason: "that does not look like an Anthropic API key (keys start with sk-ant-)"}
	}

	cfg.API.Key = key
	if args.Model != "" {
		cfg.Model = args.Model
	}

	if err := config.Save(cfg); err != nil {
		return &ConfigError{Err: err}
	}

	path, _ := config.ConfigPath()
	fmt.Println()
	fmt.Println(commandStyle.Render("Saved " + path))
	fmt.Println(infoStyle.Render("Run 'sonnet' to start chatting."))
	return nil
}
