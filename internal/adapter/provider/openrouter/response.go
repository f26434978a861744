package openrouter

import "github.com/heartmarshall/flashgen-backend/internal/provider"

// chatRequest is the JSON body of a chat-completions call.
type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []provider.Message `json:"messages"`
	ResponseFormat responseFormat     `json:"response_format"`
	Temperature    *float64           `json:"temperature,omitempty"`
	MaxTokens      *int               `json:"max_tokens,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse captures only the fields the client reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
