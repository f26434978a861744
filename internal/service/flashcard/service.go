// Package flashcard manages a user's stored flashcards: batch creation of
// manual and reviewed AI cards, listing, single-card edits and deletion.
// Every operation requires an authenticated caller and only ever touches
// that caller's cards.
package flashcard

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/observability"
)

const (
	MaxBatchSize = 100
	DefaultLimit = 50
	MaxLimit     = 200

	MaxQuestionLen = 200
	MaxAnswerLen   = 500
)

type flashcardRepo interface {
	CreateBatch(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Flashcard, error)
	List(ctx context.Context, userID uuid.UUID, f domain.FlashcardFilter) ([]domain.Flashcard, int, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, question, answer *string) (domain.Flashcard, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	DeleteBatch(ctx context.Context, userID uuid.UUID, ids []int64) (int, error)
}

type generationRepo interface {
	GetOwner(ctx context.Context, id int64) (uuid.UUID, error)
}

// Service provides flashcard operations.
type Service struct {
	flashcards  flashcardRepo
	generations generationRepo
	metrics     *observability.Collector
	log         *slog.Logger
}

// NewService creates a new flashcard service. metrics may be nil.
func NewService(
	log *slog.Logger,
	flashcards flashcardRepo,
	generations generationRepo,
	metrics *observability.Collector,
) *Service {
	return &Service{
		flashcards:  flashcards,
		generations: generations,
		metrics:     metrics,
		log:         log.With("service", "flashcard"),
	}
}
