// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the sonnet TUI.

The chat view is a Bubble Tea model composed from the components package:
a header, a scrollable message viewport, a text input with tab completion,
and a status bar showing the current model, staged attachment, and context
usage.

# Message Flow

When the user submits a message:

 1. The text is added to the conversation as a user message, carrying the
    name of any staged attachment.
 2. A pending assistant message is appended and the thinking indicator
    starts.
 3. A background command encodes the staged attachment (if any), assembles
    the API messages with the attachment riding on the final user turn, and
    performs a single synchronous completion request.
 4. On success the pending message is completed with the response text; on
    failure it is dropped so the user message survives for manual resend.

An attachment that cannot be encoded does not abort the turn: the message
is sent without it and a warning toast explains what happened. Either way
the staged attachment is consumed by the send.

# Slash Commands

Input starting with "/" is routed through the commands package. Command
handlers return Bubble Tea messages (AttachFileMsg, ModelSwitchMsg, ...)
which the chat model applies to its state in Update.
*/
package chat
