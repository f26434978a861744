// Package provider defines the structured-output contract shared by the
// language-model adapters: a caller supplies a JSON schema and a chat
// transcript and receives either a value matching the schema or one of a
// closed set of typed failures.
package provider

import (
	"context"
	"encoding/json"
)

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Params are optional generation parameters. Nil fields are omitted.
type Params struct {
	Temperature *float64
	MaxTokens   *int
}

// Schema describes the JSON shape the model must return. Document is a
// JSON-schema object; it is rendered into the system prompt.
type Schema struct {
	Name     string
	Document map[string]any
}

// Request is a single structured completion call.
type Request struct {
	Schema   Schema
	Messages []Message
	Model    string
	Params   Params
}

// StructuredCompleter issues one completion and returns the raw JSON the
// model produced. Implementations return the error types in errors.go and
// never retry.
type StructuredCompleter interface {
	CompleteJSON(ctx context.Context, req Request) (json.RawMessage, error)
}

type apiKeyCtxKey struct{}

// WithAPIKey overrides the configured credential for calls made with ctx.
func WithAPIKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, apiKeyCtxKey{}, key)
}

// APIKeyFromCtx returns the per-call credential override, if any.
func APIKeyFromCtx(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(apiKeyCtxKey{}).(string)
	return key, ok && key != ""
}

// ResolveAPIKey prefers the per-call override over the configured key.
func ResolveAPIKey(ctx context.Context, configured string) string {
	if key, ok := APIKeyFromCtx(ctx); ok {
		return key
	}
	return configured
}
