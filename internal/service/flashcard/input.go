package flashcard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// CrossFieldMessage explains the generation_id rule for mixed batches.
const CrossFieldMessage = "generation_id is required for AI sources (ai-full, ai-edited) and must not be present for manual sources"

// CardInput is one card of a create batch.
type CardInput struct {
	Question string
	Answer   string
	Source   domain.Source
}

// CreateInput holds the parameters for creating a batch of flashcards.
type CreateInput struct {
	Flashcards   []CardInput
	GenerationID *int64
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs domain.FieldErrors

	switch {
	case len(i.Flashcards) == 0:
		errs.Add("flashcards", "At least one flashcard is required")
	case len(i.Flashcards) > MaxBatchSize:
		errs.Addf("flashcards", "Cannot create more than %d flashcards at once", MaxBatchSize)
	}

	hasAI, hasManual := false, false
	for idx, c := range i.Flashcards {
		prefix := fmt.Sprintf("flashcards.%d.", idx)
		checkText(&errs, prefix+"question", "Question", c.Question, MaxQuestionLen)
		checkText(&errs, prefix+"answer", "Answer", c.Answer, MaxAnswerLen)
		if !c.Source.IsValid() {
			errs.Add(prefix+"source", "Source must be one of: manual, ai-full, ai-edited")
		}
		switch {
		case c.Source.IsAI():
			hasAI = true
		case c.Source == domain.SourceManual:
			hasManual = true
		}
	}

	if i.GenerationID != nil && *i.GenerationID <= 0 {
		errs.Add("generation_id", "must be a positive integer")
	}

	// A batch is either all manual without a generation or all AI with one.
	// A single generation_id cannot satisfy a mixed batch.
	if len(i.Flashcards) > 0 && (hasAI && hasManual || hasAI != (i.GenerationID != nil)) {
		errs.Add("generation_id", CrossFieldMessage)
	}

	return errs.Err()
}

// ListInput holds the parameters for listing flashcards.
// Zero values select the defaults.
type ListInput struct {
	Page         int
	Limit        int
	Source       *domain.Source
	GenerationID *int64
	Sort         domain.FlashcardSort
	Order        domain.SortOrder
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs domain.FieldErrors
	if i.Page < 0 {
		errs.Add("page", "must be a positive integer")
	}
	if i.Limit < 0 || i.Limit > MaxLimit {
		errs.Addf("limit", "must be between 1 and %d", MaxLimit)
	}
	if i.Source != nil && !i.Source.IsValid() {
		errs.Add("source", "Source must be one of: manual, ai-full, ai-edited")
	}
	if i.GenerationID != nil && *i.GenerationID <= 0 {
		errs.Add("generation_id", "must be a positive integer")
	}
	if i.Sort != "" && !i.Sort.IsValid() {
		errs.Add("sort", "must be one of: created_at, updated_at, question")
	}
	if i.Order != "" && !i.Order.IsValid() {
		errs.Add("order", "must be one of: asc, desc")
	}
	return errs.Err()
}

// normalized fills defaults. Call after Validate.
func (i ListInput) normalized() (page, limit int, f domain.FlashcardFilter) {
	page, limit = i.Page, i.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	f = domain.FlashcardFilter{
		Source:       i.Source,
		GenerationID: i.GenerationID,
		Sort:         i.Sort,
		Order:        i.Order,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	if f.Sort == "" {
		f.Sort = domain.FlashcardSortCreatedAt
	}
	if f.Order == "" {
		f.Order = domain.SortOrderDesc
	}
	return page, limit, f
}

// UpdateInput holds the parameters for editing one flashcard.
type UpdateInput struct {
	ID       int64
	Question *string
	Answer   *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs domain.FieldErrors
	if i.ID <= 0 {
		errs.Add("id", "must be a positive integer")
	}
	if i.Question == nil && i.Answer == nil {
		errs.Add("body", "At least one field (question or answer) must be provided")
	}
	if i.Question != nil {
		checkText(&errs, "question", "Question", *i.Question, MaxQuestionLen)
	}
	if i.Answer != nil {
		checkText(&errs, "answer", "Answer", *i.Answer, MaxAnswerLen)
	}
	return errs.Err()
}

// DeleteBatchInput holds the parameters for deleting several flashcards.
type DeleteBatchInput struct {
	IDs []int64
}

// Validate checks all fields and collects all errors.
func (i DeleteBatchInput) Validate() error {
	var errs domain.FieldErrors
	switch {
	case len(i.IDs) == 0:
		errs.Add("flashcard_ids", "At least one flashcard ID is required")
	case len(i.IDs) > MaxBatchSize:
		errs.Addf("flashcard_ids", "Cannot delete more than %d flashcards at once", MaxBatchSize)
	}
	for idx, id := range i.IDs {
		if id <= 0 {
			errs.Add(fmt.Sprintf("flashcard_ids.%d", idx), "must be a positive integer")
		}
	}
	return errs.Err()
}

func checkText(errs *domain.FieldErrors, field, label, value string, maxLen int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0:
		errs.Add(field, label+" cannot be empty")
	case n > maxLen:
		errs.Addf(field, "%s cannot exceed %d characters", label, maxLen)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
