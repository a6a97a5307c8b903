// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Messages API.
const (
	// DefaultBaseURL is the base URL for the Anthropic API.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "claude-3-sonnet-20240229"

	// DefaultMaxTokens is the completion token cap sent with every request.
	DefaultMaxTokens = 4096

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// APIVersion is the anthropic-version header value.
	APIVersion = "2023-06-01"

	// MaxResponseSize is the maximum allowed response body size.
	// Response size limit prevents memory exhaustion on a broken endpoint.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// DefaultRequestsPerMinute is the client-side pacing limit.
	// This only spaces out requests; a rejected request is never retried.
	DefaultRequestsPerMinute = 50
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all API requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common API errors.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Anthropic API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrOverloaded indicates the API is temporarily overloaded.
	ErrOverloaded = errors.New("API overloaded")
)

// APIError represents an error response from the Anthropic API.
type APIError struct {
	Type    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("Anthropic error [%s] (HTTP %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("Anthropic error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// MessagesRequest is the request body for the /v1/messages endpoint.
type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// MessagesResponse is the response body from the /v1/messages endpoint.
type MessagesResponse struct {
	ID         string          `json:"id"`
	Model      string          `json:"model"`
	Role       string          `json:"role"`
	Content    []ResponseBlock `json:"content"`
	StopReason string          `json:"stop_reason"`
	Usage      Usage           `json:"usage"`
}

// ResponseBlock is a content block in a completion response.
type ResponseBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage holds token accounting for a completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GetText returns the text of the first content block.
// An empty content list yields an empty string, not an error: the turn
// completed, the model just said nothing.
func (r *MessagesResponse) GetText() string {
	if len(r.Content) > 0 {
		return r.Content[0].Text
	}
	return ""
}

// apiErrorResponse is the wire form of an API error body.
type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the Anthropic Messages API.
//
// The UI mutates the client (SetModel, SetAPIKey) on the update thread
// while Complete may be running on a command goroutine, so the mutable
// fields are guarded by mu.
type Client struct {
	mu        sync.RWMutex
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	timeout   time.Duration

	// limiter spaces out requests client-side. It never retries.
	limiter *rate.Limiter

	httpClient *http.Client
}

// NewClient creates a new client with the given API key.
//
// If the API key is empty the client is still created; Complete requests
// fail with ErrNotConfigured before any network I/O.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		maxTokens:  DefaultMaxTokens,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(float64(DefaultRequestsPerMinute)/60.0), 1),
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithRequestsPerMinute sets the client-side pacing limit.
// A value <= 0 disables pacing.
func (c *Client) WithRequestsPerMinute(rpm int) *Client {
	if rpm <= 0 {
		c.limiter = nil
	} else {
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
	return c
}

// SetModel sets the model to use for completion requests.
func (c *Client) SetModel(model string) {
	if model != "" {
		c.mu.Lock()
		c.model = model
		c.mu.Unlock()
	}
}

// GetModel returns the current model.
func (c *Client) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetMaxTokens sets the completion token cap.
func (c *Client) SetMaxTokens(max int) {
	if max > 0 {
		c.mu.Lock()
		c.maxTokens = max
		c.mu.Unlock()
	}
}

// SetAPIKey replaces the API key on a live client. Used when the user
// supplies a key at runtime via /key.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = strings.TrimSpace(apiKey)
	c.mu.Unlock()
}

// IsConfigured returns true if the client has an API key configured.
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// APIKeyMasked returns a masked version of the API key for display.
// Never exposes key fragments; shows a fingerprint instead.
func (c *Client) APIKeyMasked() string {
	c.mu.RLock()
	key := c.apiKey
	c.mu.RUnlock()

	if key == "" {
		return "[not set]"
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(key), hex.EncodeToString(h[:4]))
}

// =============================================================================
// COMPLETION
// =============================================================================

// Complete performs a single synchronous completion request.
//
// There is no retry: a transient failure aborts the turn and the caller
// keeps the user's message in history so the turn can be resent by hand.
func (c *Client) Complete(ctx context.Context, messages []Message) (*MessagesResponse, error) {
	// Snapshot the mutable settings up front; the user can switch model
	// or key mid-request without corrupting this one.
	c.mu.RLock()
	apiKey := c.apiKey
	model := c.model
	maxTokens := c.maxTokens
	c.mu.RUnlock()

	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if len(messages) == 0 {
		return nil, errors.New("no messages to send")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqBody := MessagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  messages,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	setHeaders(req, apiKey)

	resp, err := c.httpClient.Do(req)

	// Clear the credential header immediately after the request so the
	// request object can never leak it through logging.
	req.Header.Del("x-api-key")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}

	var msgResp MessagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &msgResp, nil
}

// setHeaders sets the required headers for Messages API requests.
func setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", APIVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "sonnet/0.1.0")
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}

	return body, nil
}

// handleErrorResponse converts HTTP error responses to typed Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		e := &APIError{
			Type:    apiErr.Error.Type,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}

		switch statusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, e.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrModelNotFound, e.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, e.Message)
		case 529:
			return fmt.Errorf("%w: %s", ErrOverloaded, e.Message)
		default:
			return e
		}
	}

	// Fallback for unparseable error bodies.
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case 529:
		return ErrOverloaded
	default:
		return &APIError{
			Message: string(body),
			Status:  statusCode,
		}
	}
}

// ValidateAPIKey checks if the API key format appears plausible.
// This doesn't verify the key with the API, just catches obvious typos.
func ValidateAPIKey(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)

	if !strings.HasPrefix(apiKey, "sk-ant-") {
		return false
	}

	if len(apiKey) < 30 {
		return false
	}

	return true
}
