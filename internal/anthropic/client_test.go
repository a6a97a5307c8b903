// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "sk-ant-REDACTED"

// newTestClient returns a client pointed at the given server with pacing off.
func newTestClient(serverURL string) *Client {
	return NewClient(testKey).
		WithBaseURL(serverURL).
		WithRequestsPerMinute(0).
		WithTimeout(5 * time.Second)
}

// =============================================================================
// COMPLETION TESTS
// =============================================================================

func TestComplete_Success(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody MessagesRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"model": "claude-3-sonnet-20240229",
			"role": "assistant",
			"content": [{"type": "text", "text": "hello there"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 4}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.Complete(context.Background(), []Message{NewUserMessage("hi")})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, APIVersion, gotVersion)
	assert.Equal(t, DefaultModel, gotBody.Model)
	assert.Equal(t, DefaultMaxTokens, gotBody.MaxTokens)
	assert.Equal(t, "hello there", resp.GetText())
	assert.Equal(t, 4, resp.Usage.OutputTokens)
}

func TestComplete_EmptyContentIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_02",
			"model": "claude-3-sonnet-20240229",
			"role": "assistant",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 5, "output_tokens": 0}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.Complete(context.Background(), []Message{NewUserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "", resp.GetText())
}

func TestComplete_NotConfigured(t *testing.T) {
	client := NewClient("")

	_, err := client.Complete(context.Background(), []Message{NewUserMessage("hi")})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestComplete_NoRetryOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"type": "api_error", "message": "boom"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Complete(context.Background(), []Message{NewUserMessage("hi")})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed request must not be retried")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestComplete_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`,
			sentinel: ErrAuthFailed,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error": {"type": "rate_limit_error", "message": "slow down"}}`,
			sentinel: ErrRateLimited,
		},
		{
			name:     "model not found",
			status:   http.StatusNotFound,
			body:     `{"error": {"type": "not_found_error", "message": "no such model"}}`,
			sentinel: ErrModelNotFound,
		},
		{
			name:     "overloaded",
			status:   529,
			body:     `{"error": {"type": "overloaded_error", "message": "busy"}}`,
			sentinel: ErrOverloaded,
		},
		{
			name:     "unparseable body falls back to sentinel",
			status:   http.StatusUnauthorized,
			body:     `<html>nope</html>`,
			sentinel: ErrAuthFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.Complete(context.Background(), []Message{NewUserMessage("hi")})
			assert.True(t, errors.Is(err, tc.sentinel), "got %v, want %v", err, tc.sentinel)
		})
	}
}

// =============================================================================
// CONTENT WIRE FORMAT TESTS
// =============================================================================

func TestMessageContent_MarshalText(t *testing.T) {
	msg := NewUserMessage("plain text")

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role": "user", "content": "plain text"}`, string(data))
}

func TestMessageContent_MarshalBlocks(t *testing.T) {
	msg := NewUserBlockMessage(
		TextBlock{Text: "look at this"},
		ImageBlock{MediaType: "image/jpeg", Data: "QUJD"},
	)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role": "user",
		"content": [
			{"type": "text", "text": "look at this"},
			{"type": "image", "source": {"type": "base64", "media_type": "image/jpeg", "data": "QUJD"}}
		]
	}`, string(data))
}

func TestMessageContent_UnmarshalBothShapes(t *testing.T) {
	var plain MessageContent
	require.NoError(t, json.Unmarshal([]byte(`"just text"`), &plain))
	assert.False(t, plain.IsBlocks())
	assert.Equal(t, "just text", plain.Text)

	var structured MessageContent
	require.NoError(t, json.Unmarshal([]byte(`[
		{"type": "text", "text": "a"},
		{"type": "image", "source": {"type": "base64", "media_type": "image/png", "data": "eA=="}}
	]`), &structured))
	require.True(t, structured.IsBlocks())
	require.Len(t, structured.Blocks, 2)
	assert.Equal(t, TextBlock{Text: "a"}, structured.Blocks[0])
	assert.Equal(t, ImageBlock{MediaType: "image/png", Data: "eA=="}, structured.Blocks[1])
}

func TestMessageContent_UnmarshalUnknownBlock(t *testing.T) {
	var c MessageContent
	err := json.Unmarshal([]byte(`[{"type": "tool_use"}]`), &c)
	assert.Error(t, err)
}

// =============================================================================
// KEY HANDLING TESTS
// =============================================================================

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"valid key", testKey, true},
		{"empty", "", false},
		{"wrong prefix", "sk-or-abcdefghijklmnopqrstuvwxyz", false},
		{"too short", "sk-ant-short", false},
		{"leading whitespace ok", "  " + testKey, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateAPIKey(tc.key))
		})
	}
}

func TestAPIKeyMasked_NeverLeaksKey(t *testing.T) {
	client := NewClient(testKey)
	masked := client.APIKeyMasked()

	assert.NotContains(t, masked, "abcdefghijklmnop")
	assert.Contains(t, masked, "REDACTED")

	assert.Equal(t, "[not set]", NewClient("").APIKeyMasked())
}
