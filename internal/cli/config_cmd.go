// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration get/set command for the sonnet CLI.
//
// Handles "sonnet config":
//   sonnet config                 List all keys and current values
//   sonnet config model           Print one value
//   sonnet config model NAME      Set a value and save

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/sonnet-tui/internal/config"
)

// HandleConfig implements "sonnet config".
func HandleConfig(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return &ConfigError{Err: err}
	}

	switch len(args.Positional) {
	case 0:
		return listConfig(cfg)
	case 1:
		return showConfigKey(cfg, args.Positional[0])
	default:
		key := args.Positional[0]
		value := strings.Join(args.Positional[1:], " ")
		return setConfigKey(cfg, key, value)
	}
}

func listConfig(cfg *config.Config) error {
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if key == "api.key" {
			value = maskValue(fmt.Sprintf("%v", value))
		}
		fmt.Printf("  %s %v\n",
			commandStyle.Render(fmt.Sprintf("%-24s", key)),
			value)
	}
	return nil
}

func showConfigKey(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return &UsageError{Command: "config", Reason: err.Error()}
	}
	if key == "api.key" {
		value = maskValue(fmt.Sprintf("%v", value))
	}
	fmt.Printf("%v\n", value)
	return nil
}

func setConfigKey(cfg *config.Config, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Command: "config", Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return &UsageError{Command: "config", Reason: err.Error()}
	}
	if err := config.Save(cfg); err != nil {
		return &ConfigError{Err: err}
	}
	fmt.Println(infoStyle.Render("Set " + key))
	return nil
}

// maskValue hides all but a short tail of a secret value.
func maskValue(v string) string {
	if v == "" {
		return "(not set)"
	}
	if len(v) <= 6 {
		return "***"
	}
	return "***" + v[len(v)-4:]
}
