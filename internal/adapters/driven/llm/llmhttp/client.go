// Package llmhttp is the JSON-over-HTTP transport shared by the LLM adapters.
// It maps provider status codes onto domain errors so callers can use
// errors.Is regardless of which provider is configured.
package llmhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 8 << 20

// ErrUnreachable indicates the request never got an HTTP response.
var ErrUnreachable = errors.New("provider unreachable")

// Config configures a Client.
type Config struct {
	// Provider prefixes every error, e.g. "openai".
	Provider string

	// BaseURL is joined with request paths. A trailing slash is ignored.
	BaseURL string

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// Header is sent with every request.
	Header http.Header

	// ErrorMessage extracts the provider's error text from a failed reply.
	// Defaults to the trimmed body.
	ErrorMessage func(body []byte) string
}

// Client sends JSON requests to one provider.
type Client struct {
	provider     string
	baseURL      string
	http         *http.Client
	header       http.Header
	errorMessage func([]byte) string
}

// StatusError is a non-2xx reply that has no matching domain error.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// New creates a client.
func New(cfg Config) *Client {
	errorMessage := cfg.ErrorMessage
	if errorMessage == nil {
		errorMessage = rawMessage
	}
	header := cfg.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &Client{
		provider:     cfg.Provider,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		http:         &http.Client{Timeout: cfg.Timeout},
		header:       header,
		errorMessage: errorMessage,
	}
}

// BaseURL returns the URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// Post sends in as JSON to path and decodes the reply into out.
// A nil out discards the reply.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", c.provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// Get fetches path and decodes the reply into out.
// A nil out discards the reply.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	for k, v := range c.header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", c.provider, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w (status %d)", c.provider, domain.ErrLLMAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %s", c.provider, domain.ErrRateLimited, c.errorMessage(body))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Message: c.errorMessage(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

func rawMessage(body []byte) string {
	return strings.TrimSpace(string(body))
}

// NestedErrorMessage reads {"error":{"message":"..."}} replies as sent by
// OpenAI and Anthropic, falling back to the raw body.
func NestedErrorMessage(body []byte) string {
	var reply struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &reply) == nil && reply.Error != nil && reply.Error.Message != "" {
		return reply.Error.Message
	}
	return rawMessage(body)
}

// FlatErrorMessage reads {"error":"..."} replies as sent by Ollama,
// falling back to the raw body.
func FlatErrorMessage(body []byte) string {
	var reply struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &reply) == nil && reply.Error != "" {
		return reply.Error
	}
	return rawMessage(body)
}
