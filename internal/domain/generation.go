package domain

import (
	"time"

	"github.com/google/uuid"
)

// Generation records one successful run of the proposal pipeline.
// It is written together with its proposals and never updated afterwards.
type Generation struct {
	ID                 int64
	UserID             uuid.UUID
	Model              string
	SourceTextLength   int
	SourceTextHash     string
	GeneratedCount     int
	GenerationDuration int // seconds
	CreatedAt          time.Time
}

// Proposal is a question/answer pair suggested by the language model.
type Proposal struct {
	Question string
	Answer   string
}

// GenerationErrorLog records a failed provider call for later diagnosis.
// UserID is nil for anonymous callers.
type GenerationErrorLog struct {
	ID               int64
	UserID           *uuid.UUID
	ErrorCode        string
	ErrorMessage     string
	Model            string
	SourceTextLength int
	SourceTextHash   string
	CreatedAt        time.Time
}
