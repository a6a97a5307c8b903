// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for the sonnet CLI.
//
// Handlers ALWAYS return errors rather than printing and swallowing
// them; main maps the returned error to an exit code via GetExitCode.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/jeranaias/sonnet-tui/internal/anthropic"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates authentication failure
	ExitAuthError = 4
	// ExitNetworkError indicates a network or connectivity error
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError indicates the command was invoked with bad arguments.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: sonnet %s: %s", e.Command, e.Reason)
}

// ConfigError wraps a configuration load/save failure.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to the appropriate process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var ttyErr *TTYRequiredError
	if errors.As(err, &ttyErr) {
		return ExitUsageError
	}

	if errors.Is(err, anthropic.ErrNotConfigured) || errors.Is(err, anthropic.ErrAuthFailed) {
		return ExitAuthError
	}
	if errors.Is(err, anthropic.ErrModelNotFound) {
		return ExitNotFoundError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeoutError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ExitTimeoutError
		}
		return ExitNetworkError
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == 401 || apiErr.Status == 403:
			return ExitAuthError
		case apiErr.Status == 404:
			return ExitNotFoundError
		default:
			return ExitGeneralError
		}
	}

	return ExitGeneralError
}

// Exit prints the error to stderr and exits with its mapped code.
func Exit(err error) {
	if err == nil {
		os.Exit(ExitSuccess)
	}
	fmt.Fprintf(os.Stderr, "sonnet: %v\n", err)
	os.Exit(GetExitCode(err))
}
