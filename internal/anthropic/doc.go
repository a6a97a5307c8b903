// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic implements a client for the Anthropic Messages API.
//
// The client performs single synchronous completion requests. It does not
// stream and it does not retry: a failed request surfaces a typed error and
// the caller decides what to do with the turn.
package anthropic
