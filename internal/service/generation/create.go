package generation

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/observability"
	"github.com/heartmarshall/flashgen-backend/internal/provider"
	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

// Create generates flashcard proposals for input.SourceText.
//
// The caller identity is optional and read from ctx. Authenticated callers
// get the generation and its proposals stored atomically; anonymous callers
// get the proposals back without anything being written.
//
// Every failure is a *Error.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Result, error) {
	if err := input.Validate(s.opts.MinSourceLen, s.opts.MaxSourceLen); err != nil {
		return nil, &Error{
			Code:    CodeValidationError,
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Err:     err,
		}
	}

	text := input.SourceText
	meta := sourceMeta{
		length: utf8.RuneCountInString(text),
		hash:   md5Hex(text),
	}

	start := s.now()

	items, err := s.propose(provider.WithAPIKey(ctx, input.APIKey), text)
	elapsed := s.now().Sub(start)
	if err != nil {
		aiErr := s.failAI(ctx, meta, err)
		s.metrics.ObserveGeneration(observability.OutcomeAIError, elapsed, 0)
		return nil, aiErr
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		s.metrics.ObserveGeneration(observability.OutcomeAnonymous, elapsed, len(items))
		s.log.InfoContext(ctx, "generation completed without persistence",
			slog.Int("proposals", len(items)),
			slog.Int("source_text_length", meta.length),
		)
		return &Result{Proposals: unsavedProposals(items)}, nil
	}

	gen := domain.Generation{
		UserID:             userID,
		Model:              s.opts.Model,
		SourceTextLength:   meta.length,
		SourceTextHash:     meta.hash,
		GeneratedCount:     len(items),
		GenerationDuration: int(math.Round(elapsed.Seconds())),
	}

	var saved []domain.Flashcard
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.generations.Create(ctx, gen)
		if err != nil {
			return &Error{
				Code:    CodeDatabaseError,
				Status:  http.StatusInternalServerError,
				Message: "Failed to save generation metadata",
				Err:     err,
			}
		}
		gen = created

		saved, err = s.flashcards.CreateBatch(ctx, proposalCards(userID, gen.ID, items))
		if err != nil {
			return &Error{
				Code:    CodeDatabaseError,
				Status:  http.StatusInternalServerError,
				Message: "Failed to save flashcard proposals",
				Err:     err,
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveGeneration(observability.OutcomeDBError, elapsed, len(items))
		s.log.ErrorContext(ctx, "generation persistence failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)

		var genErr *Error
		if errors.As(err, &genErr) {
			return nil, genErr
		}
		return nil, &Error{
			Code:    CodeDatabaseError,
			Status:  http.StatusInternalServerError,
			Message: "An unexpected error occurred",
			Err:     err,
		}
	}

	s.metrics.ObserveGeneration(observability.OutcomeSaved, elapsed, len(items))
	s.metrics.AddFlashcardsCreated(string(domain.SourceAIFull), len(saved))
	s.log.InfoContext(ctx, "generation saved",
		slog.String("user_id", userID.String()),
		slog.Int64("generation_id", gen.ID),
		slog.Int("proposals", len(saved)),
		slog.Int("duration_s", gen.GenerationDuration),
	)

	return &Result{Generation: &gen, Proposals: saved, Saved: true}, nil
}

type sourceMeta struct {
	length int
	hash   string
}

func (s *Service) propose(ctx context.Context, text string) ([]proposalItem, error) {
	set, err := provider.Complete[proposalSet](ctx, s.completer, provider.Request{
		Schema:   proposalSchema,
		Messages: buildMessages(text),
		Model:    s.opts.Model,
		Params: provider.Params{
			Temperature: s.opts.Temperature,
			MaxTokens:   s.opts.MaxTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	return set.normalize()
}

// failAI logs the provider failure, records it in the error log and builds
// the returned error. A failing error-log insert is only logged.
func (s *Service) failAI(ctx context.Context, meta sourceMeta, cause error) *Error {
	code, status, msg := classifyAI(cause)

	s.log.WarnContext(ctx, "generation failed",
		slog.String("ai_code", string(code)),
		slog.Int("status", status),
		slog.String("error", cause.Error()),
	)

	logErr := s.errorLogs.Insert(context.WithoutCancel(ctx), domain.GenerationErrorLog{
		UserID:           ctxutil.OptionalUserID(ctx),
		ErrorCode:        string(code),
		ErrorMessage:     cause.Error(),
		Model:            s.opts.Model,
		SourceTextLength: meta.length,
		SourceTextHash:   meta.hash,
	})
	if logErr != nil {
		s.log.ErrorContext(ctx, "failed to record generation error",
			slog.String("ai_code", string(code)),
			slog.String("error", logErr.Error()),
		)
	}

	return &Error{
		Code:    CodeAIError,
		AICode:  code,
		Status:  status,
		Message: msg,
		Err:     cause,
	}
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func proposalCards(userID uuid.UUID, generationID int64, items []proposalItem) []domain.Flashcard {
	cards := make([]domain.Flashcard, len(items))
	for i, it := range items {
		cards[i] = domain.Flashcard{
			UserID:       userID,
			GenerationID: &generationID,
			Question:     it.Question,
			Answer:       it.Answer,
			Source:       domain.SourceAIFull,
		}
	}
	return cards
}

func unsavedProposals(items []proposalItem) []domain.Flashcard {
	cards := make([]domain.Flashcard, len(items))
	for i, it := range items {
		cards[i] = domain.Flashcard{
			Question: it.Question,
			Answer:   it.Answer,
			Source:   domain.SourceAIFull,
		}
	}
	return cards
}

