package domain

import (
	"time"

	"github.com/google/uuid"
)

// Source tells where a flashcard's content came from.
type Source string

const (
	SourceManual   Source = "manual"
	SourceAIFull   Source = "ai-full"
	SourceAIEdited Source = "ai-edited"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceAIFull, SourceAIEdited:
		return true
	}
	return false
}

// IsAI reports whether the card originates from a generation.
// AI-sourced cards must reference a generation; manual cards must not.
func (s Source) IsAI() bool {
	return s == SourceAIFull || s == SourceAIEdited
}

// Flashcard is a persisted question/answer pair owned by a user.
type Flashcard struct {
	ID           int64
	UserID       uuid.UUID
	GenerationID *int64
	Question     string
	Answer       string
	Source       Source
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FlashcardSort is a column flashcards can be ordered by.
type FlashcardSort string

const (
	FlashcardSortCreatedAt FlashcardSort = "created_at"
	FlashcardSortUpdatedAt FlashcardSort = "updated_at"
	FlashcardSortQuestion  FlashcardSort = "question"
)

func (s FlashcardSort) String() string { return string(s) }

func (s FlashcardSort) IsValid() bool {
	switch s {
	case FlashcardSortCreatedAt, FlashcardSortUpdatedAt, FlashcardSortQuestion:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

func (o SortOrder) String() string { return string(o) }

func (o SortOrder) IsValid() bool {
	return o == SortOrderAsc || o == SortOrderDesc
}

// FlashcardFilter narrows and orders a flashcard listing.
// Limit and Offset are already normalized by the caller.
type FlashcardFilter struct {
	Source       *Source
	GenerationID *int64
	Sort         FlashcardSort
	Order        SortOrder
	Limit        int
	Offset       int
}
