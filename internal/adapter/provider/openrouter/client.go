// Package openrouter implements provider.StructuredCompleter on top of the
// OpenRouter chat-completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

const (
	defaultBaseURL  = "https://openrouter.ai/api/v1/chat/completions"
	defaultSiteName = "flashgen"
	maxTimeout      = 60 * time.Second
	maxErrorBody    = 2 << 10
)

// Options configures a Client.
type Options struct {
	APIKey   string
	BaseURL  string
	SiteURL  string
	SiteName string
	Timeout  time.Duration
}

// Client calls OpenRouter. It never retries.
type Client struct {
	apiKey     string
	baseURL    string
	siteURL    string
	siteName   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. A zero or oversized timeout is clamped to
// 60 seconds. An empty API key is accepted here and reported per call.
func NewClient(opts Options, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 || timeout > maxTimeout {
		timeout = maxTimeout
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	siteName := opts.SiteName
	if siteName == "" {
		siteName = defaultSiteName
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		siteURL:    opts.SiteURL,
		siteName:   siteName,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "openrouter"),
	}
}

// CompleteJSON sends one chat completion constrained to JSON output and
// returns the message content.
func (c *Client) CompleteJSON(ctx context.Context, req provider.Request) (json.RawMessage, error) {
	apiKey := provider.ResolveAPIKey(ctx, c.apiKey)
	if apiKey == "" {
		return nil, &provider.ConfigurationError{Msg: "openrouter API key is not set"}
	}

	payload, err := buildPayload(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openrouter: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openrouter: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.siteURL != "" {
		httpReq.Header.Set("HTTP-Referer", c.siteURL)
	}
	httpReq.Header.Set("X-Title", c.siteName)

	c.log.DebugContext(ctx, "openrouter request",
		slog.String("model", req.Model),
		slog.Int("messages", len(req.Messages)),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, toNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, toNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WarnContext(ctx, "openrouter api error",
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
		c.log.DebugContext(ctx, "openrouter api error body", slog.String("body", truncate(respBody, maxErrorBody)))
		return nil, &provider.APIError{StatusCode: resp.StatusCode, Body: truncate(respBody, maxErrorBody)}
	}

	content, err := extractContent(respBody)
	if err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "openrouter response",
		slog.Int("status", resp.StatusCode),
		slog.Int("content_len", len(content)),
		slog.Duration("duration", time.Since(start)),
	)

	return json.RawMessage(content), nil
}

func buildPayload(req provider.Request) (*chatRequest, error) {
	messages, err := provider.AugmentSystemPrompt(req.Messages, req.Schema)
	if err != nil {
		return nil, err
	}

	return &chatRequest{
		Model:          req.Model,
		Messages:       messages,
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    req.Params.Temperature,
		MaxTokens:      req.Params.MaxTokens,
	}, nil
}

func extractContent(body []byte) (string, error) {
	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &provider.InvalidResponseJSONError{Msg: "failed to parse API response as JSON", Err: err}
	}

	if len(envelope.Choices) == 0 || strings.TrimSpace(envelope.Choices[0].Message.Content) == "" {
		return "", &provider.InvalidResponseJSONError{Msg: "no message content found in API response"}
	}

	content := strings.TrimSpace(envelope.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", &provider.InvalidResponseJSONError{
			Msg:     "message content is not valid JSON",
			Preview: provider.Preview(content, 200),
		}
	}

	return content, nil
}

func toNetworkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &provider.NetworkError{Msg: "request to openrouter timed out", Err: err}
	}
	return &provider.NetworkError{Msg: "failed to connect to openrouter", Err: err}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
