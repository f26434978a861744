// Package generation turns pasted source text into flashcard proposals:
// it asks the structured-output provider for question/answer pairs and,
// for authenticated callers, stores the generation and its proposals in a
// single transaction.
package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/observability"
	"github.com/heartmarshall/flashgen-backend/internal/provider"
	"github.com/heartmarshall/flashgen-backend/internal/validation"
)

type generationRepo interface {
	Create(ctx context.Context, g domain.Generation) (domain.Generation, error)
}

type flashcardRepo interface {
	CreateBatch(ctx context.Context, cards []domain.Flashcard) ([]domain.Flashcard, error)
}

type errorLogRepo interface {
	Insert(ctx context.Context, e domain.GenerationErrorLog) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options configures the model call and the accepted source bounds.
type Options struct {
	Model        string
	Temperature  *float64
	MaxTokens    *int
	MinSourceLen int
	MaxSourceLen int
}

// Service orchestrates flashcard generation.
type Service struct {
	completer   provider.StructuredCompleter
	generations generationRepo
	flashcards  flashcardRepo
	errorLogs   errorLogRepo
	tx          txManager
	metrics     *observability.Collector
	opts        Options
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new generation service. metrics may be nil.
func NewService(
	log *slog.Logger,
	completer provider.StructuredCompleter,
	generations generationRepo,
	flashcards flashcardRepo,
	errorLogs errorLogRepo,
	tx txManager,
	metrics *observability.Collector,
	opts Options,
) *Service {
	if opts.MinSourceLen == 0 {
		opts.MinSourceLen = validation.MinSourceLen
	}
	if opts.MaxSourceLen == 0 {
		opts.MaxSourceLen = validation.MaxSourceLen
	}

	return &Service{
		completer:   completer,
		generations: generations,
		flashcards:  flashcards,
		errorLogs:   errorLogs,
		tx:          tx,
		metrics:     metrics,
		opts:        opts,
		now:         time.Now,
		log:         log.With("service", "generation"),
	}
}
