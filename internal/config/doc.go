// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sonnet.
//
// Configuration lives in TOML at ~/.sonnet/config.toml, with sensible
// defaults, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Anthropic API settings (key, endpoint, limits)
//   - UIConfig: Terminal UI settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SONNET_*, ANTHROPIC_API_KEY)
//   - ~/.sonnet/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	model := cfg.Model
//	timeout := cfg.API.TimeoutSecs
package config
