package generation

import (
	"strings"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

const systemPrompt = `You are an expert educator who writes flashcards for spaced-repetition study.
Read the text supplied by the user and produce between 3 and 15 flashcards that cover its most important facts, definitions and ideas.
Rules:
- Each flashcard is a question and an answer.
- Each card must be self-contained and understandable without the source text.
- Questions must not exceed 200 characters; answers must not exceed 500 characters.
- Write in the same language as the source text.
- Do not number the cards and do not repeat the same fact twice.`

const userPromptPrefix = "Create flashcards from the following text:\n\n"

// proposalSchema is embedded into the system prompt so that providers
// without native schema support still return the right shape.
var proposalSchema = provider.Schema{
	Name: "flashcard_proposals",
	Document: map[string]any{
		"type":     "object",
		"required": []string{"flashcards"},
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"question", "answer"},
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
						"answer":   map[string]any{"type": "string", "minLength": 1, "maxLength": 500},
					},
				},
			},
		},
	},
}

// proposalSet is the decoded model answer. Tags mirror proposalSchema.
type proposalSet struct {
	Flashcards []proposalItem `json:"flashcards" validate:"required,min=1,dive"`
}

type proposalItem struct {
	Question string `json:"question" validate:"required,max=200"`
	Answer   string `json:"answer"   validate:"required,max=500"`
}

func buildMessages(text string) []provider.Message {
	return []provider.Message{
		{Role: provider.RoleSystem, Content: systemPrompt},
		{Role: provider.RoleUser, Content: userPromptPrefix + text},
	}
}

// normalize trims every proposal and rejects empty sets or blank fields.
func (p proposalSet) normalize() ([]proposalItem, error) {
	if len(p.Flashcards) == 0 {
		return nil, errNoProposals
	}

	out := make([]proposalItem, 0, len(p.Flashcards))
	for _, fc := range p.Flashcards {
		q := strings.TrimSpace(fc.Question)
		a := strings.TrimSpace(fc.Answer)
		if q == "" || a == "" {
			return nil, errInvalidProposals
		}
		out = append(out, proposalItem{Question: q, Answer: a})
	}
	return out, nil
}
