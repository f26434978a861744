package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

// Model is the model name reported for stubbed generations.
const Model = "stub"

// Completer is an offline provider for local development. It returns
// 3 to 5 canned flashcards depending on the length of the last user
// message and never fails.
type Completer struct{}

// New creates a stub completer.
func New() *Completer { return &Completer{} }

// CompleteJSON returns {"flashcards":[...]} with deterministic content.
func (c *Completer) CompleteJSON(ctx context.Context, req provider.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &provider.NetworkError{Msg: "stub call cancelled", Err: err}
	}

	var text string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == provider.RoleUser {
			text = req.Messages[i].Content
			break
		}
	}

	count := min(5, max(3, utf8.RuneCountInString(text)/2000))

	type card struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	cards := make([]card, count)
	for i := range cards {
		cards[i] = card{
			Question: fmt.Sprintf("Sample question %d about the provided text?", i+1),
			Answer:   fmt.Sprintf("Sample answer %d drawn from the source.", i+1),
		}
	}

	out, err := json.Marshal(map[string]any{"flashcards": cards})
	if err != nil {
		return nil, fmt.Errorf("stub: encode: %w", err)
	}
	return out, nil
}
