package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

// ListResult is one page of a user's flashcards.
type ListResult struct {
	Items      []domain.Flashcard
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// Create stores a batch of flashcards for the caller. AI-sourced batches must
// reference a generation owned by the caller.
func (s *Service) Create(ctx context.Context, input CreateInput) ([]domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	if input.GenerationID != nil {
		if err := s.checkGeneration(ctx, userID, *input.GenerationID); err != nil {
			return nil, err
		}
	}

	cards := make([]domain.Flashcard, len(input.Flashcards))
	for i, c := range input.Flashcards {
		cards[i] = domain.Flashcard{
			UserID:       userID,
			GenerationID: input.GenerationID,
			Question:     strings.TrimSpace(c.Question),
			Answer:       strings.TrimSpace(c.Answer),
			Source:       c.Source,
		}
	}

	created, err := s.flashcards.CreateBatch(ctx, cards)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && input.GenerationID != nil {
			return nil, notFound(fmt.Sprintf("Generation with ID %d not found", *input.GenerationID), err)
		}
		s.log.ErrorContext(ctx, "create flashcards failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return nil, databaseError("Failed to create flashcards", err)
	}

	bySource := make(map[domain.Source]int, 3)
	for _, c := range created {
		bySource[c.Source]++
	}
	for src, n := range bySource {
		s.metrics.AddFlashcardsCreated(src.String(), n)
	}

	s.log.InfoContext(ctx, "flashcards created",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(created)),
	)
	return created, nil
}

func (s *Service) checkGeneration(ctx context.Context, userID uuid.UUID, generationID int64) error {
	owner, err := s.generations.GetOwner(ctx, generationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(fmt.Sprintf("Generation with ID %d not found", generationID), err)
		}
		return databaseError("Failed to validate generation", err)
	}
	if owner != userID {
		return &Error{
			Code:    CodeForbidden,
			Status:  http.StatusForbidden,
			Message: "Generation does not belong to the current user",
			Err:     domain.ErrForbidden,
		}
	}
	return nil
}

// List returns one page of the caller's flashcards.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	page, limit, filter := input.normalized()
	items, total, err := s.flashcards.List(ctx, userID, filter)
	if err != nil {
		return nil, databaseError("Failed to list flashcards", err)
	}
	if items == nil {
		items = []domain.Flashcard{}
	}

	return &ListResult{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Get returns one of the caller's flashcards.
func (s *Service) Get(ctx context.Context, id int64) (domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Flashcard{}, domain.ErrUnauthorized
	}
	if id <= 0 {
		return domain.Flashcard{}, validationFailed(domain.NewValidationError("id", "must be a positive integer"))
	}

	card, err := s.flashcards.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Flashcard{}, repoError(err, fmt.Sprintf("Flashcard with ID %d not found", id), "Failed to fetch flashcard")
	}
	return card, nil
}

// Update edits the question and/or answer of one of the caller's flashcards.
// The source is left unchanged.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Flashcard{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.Flashcard{}, validationFailed(err)
	}

	card, err := s.flashcards.Update(ctx, userID, input.ID, trimPtr(input.Question), trimPtr(input.Answer))
	if err != nil {
		return domain.Flashcard{}, repoError(err, fmt.Sprintf("Flashcard with ID %d not found", input.ID), "Failed to update flashcard")
	}

	s.log.InfoContext(ctx, "flashcard updated",
		slog.String("user_id", userID.String()),
		slog.Int64("flashcard_id", card.ID),
	)
	return card, nil
}

// Delete removes one of the caller's flashcards. Deleting a card that does
// not exist or belongs to someone else succeeds without effect.
func (s *Service) Delete(ctx context.Context, id int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id <= 0 {
		return validationFailed(domain.NewValidationError("id", "must be a positive integer"))
	}

	if err := s.flashcards.Delete(ctx, userID, id); err != nil {
		return databaseError("Failed to delete flashcard", err)
	}
	s.metrics.AddFlashcardsDeleted(1)
	return nil
}

// DeleteBatch removes the caller's flashcards among input.IDs and reports
// how many rows were deleted. Unknown or foreign ids are skipped.
func (s *Service) DeleteBatch(ctx context.Context, input DeleteBatchInput) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return 0, validationFailed(err)
	}

	n, err := s.flashcards.DeleteBatch(ctx, userID, input.IDs)
	if err != nil {
		return 0, databaseError("Failed to delete flashcards", err)
	}

	s.metrics.AddFlashcardsDeleted(n)
	s.log.InfoContext(ctx, "flashcards deleted",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(input.IDs)),
		slog.Int("deleted", n),
	)
	return n, nil
}
