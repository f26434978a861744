// Package gemini implements provider.StructuredCompleter with the Google
// Generative AI SDK. It is an alternative to the OpenRouter adapter and is
// selected with ai.provider=gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

const maxTimeout = 60 * time.Second

// Client calls Gemini models. A new SDK client is created per call so the
// per-request credential override can be honoured.
type Client struct {
	apiKey  string
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Client. The timeout is clamped to 60 seconds.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 || timeout > maxTimeout {
		timeout = maxTimeout
	}
	return &Client{
		apiKey:  apiKey,
		timeout: timeout,
		log:     logger.With("adapter", "gemini"),
	}
}

// CompleteJSON runs the transcript through the model with JSON output
// enforced and returns the concatenated text parts.
func (c *Client) CompleteJSON(ctx context.Context, req provider.Request) (json.RawMessage, error) {
	apiKey := provider.ResolveAPIKey(ctx, c.apiKey)
	if apiKey == "" {
		return nil, &provider.ConfigurationError{Msg: "gemini API key is not set"}
	}

	messages, err := provider.AugmentSystemPrompt(req.Messages, req.Schema)
	if err != nil {
		return nil, err
	}
	system, history, last, err := splitTranscript(messages)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &provider.NetworkError{Msg: "create gemini client", Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	model.ResponseMIMEType = "application/json"
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if req.Params.Temperature != nil {
		model.SetTemperature(float32(*req.Params.Temperature))
	}
	if req.Params.MaxTokens != nil {
		model.SetMaxOutputTokens(int32(*req.Params.MaxTokens))
	}

	chat := model.StartChat()
	chat.History = history

	c.log.DebugContext(ctx, "gemini request", slog.String("model", req.Model), slog.Int("history", len(history)))

	resp, err := chat.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, mapError(err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, &provider.InvalidResponseJSONError{Msg: "no message content found in API response"}
	}
	if !json.Valid([]byte(text)) {
		return nil, &provider.InvalidResponseJSONError{
			Msg:     "message content is not valid JSON",
			Preview: provider.Preview(text, 200),
		}
	}

	return json.RawMessage(text), nil
}

// splitTranscript separates the system prompt, the prior turns, and the
// final user turn that is sent.
func splitTranscript(messages []provider.Message) (string, []*genai.Content, string, error) {
	var system []string
	var turns []provider.Message
	for _, m := range messages {
		if m.Role == provider.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != provider.RoleUser {
		return "", nil, "", fmt.Errorf("gemini: transcript must end with a user message")
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == provider.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

func mapError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &provider.InvalidResponseJSONError{Msg: "response blocked by safety filters", Err: err}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &provider.APIError{StatusCode: gErr.Code, Body: gErr.Message}
	}

	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) && coded.HTTPCode() > 0 {
		return &provider.APIError{StatusCode: coded.HTTPCode(), Body: err.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.NetworkError{Msg: "request to gemini timed out", Err: err}
	}
	return &provider.NetworkError{Msg: "gemini call failed", Err: err}
}
