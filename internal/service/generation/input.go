package generation

import (
	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/validation"
)

// CreateInput holds the parameters for a generation.
// SourceText is used exactly as given for length and hash.
type CreateInput struct {
	SourceText string
	// APIKey optionally overrides the configured provider credential.
	APIKey string
}

// Validate checks the source text against the configured bounds.
func (i CreateInput) Validate(minLen, maxLen int) error {
	res := validation.SourceTextWithBounds(i.SourceText, minLen, maxLen)
	if !res.IsValid {
		return domain.NewValidationError("source_text", res.Message)
	}
	return nil
}

// Result is the outcome of Create. Generation is nil and Saved is false
// for anonymous callers; their proposals carry no IDs.
type Result struct {
	Generation *domain.Generation
	Proposals  []domain.Flashcard
	Saved      bool
}
