package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/service/generation"
)

// APIKeyHeader optionally carries a caller-supplied provider key.
const APIKeyHeader = "X-AI-Api-Key"

type generationService interface {
	Create(ctx context.Context, input generation.CreateInput) (*generation.Result, error)
}

// GenerationHandler serves POST /generations.
type GenerationHandler struct {
	svc generationService
	log *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(svc generationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{svc: svc, log: logger.With("handler", "generations")}
}

type createGenerationRequest struct {
	SourceText string `json:"source_text"`
}

type proposalResponse struct {
	ID           *int64     `json:"id,omitempty"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Source       string     `json:"source"`
	GenerationID *int64     `json:"generation_id,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type generationResponse struct {
	ID                  int64              `json:"id"`
	UserID              string             `json:"user_id"`
	Model               string             `json:"model"`
	SourceTextLength    int                `json:"source_text_length"`
	SourceTextHash      string             `json:"source_text_hash"`
	GeneratedCount      int                `json:"generated_count"`
	GenerationDuration  int                `json:"generation_duration"`
	CreatedAt           time.Time          `json:"created_at"`
	FlashcardsProposals []proposalResponse `json:"flashcardsProposals"`
}

type createGenerationResponse struct {
	Generation          *generationResponse `json:"generation"`
	FlashcardsProposals []proposalResponse  `json:"flashcardsProposals"`
	Saved               bool                `json:"saved"`
}

// Create handles POST /generations.
func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGenerationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}

	result, err := h.svc.Create(r.Context(), generation.CreateInput{
		SourceText: req.SourceText,
		APIKey:     r.Header.Get(APIKeyHeader),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCreateGenerationResponse(result))
}

func (h *GenerationHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		h.log.ErrorContext(r.Context(), "unexpected generation error", slog.String("error", err.Error()))
		writeInternal(w)
		return
	}

	switch genErr.Code {
	case generation.CodeValidationError:
		details, _ := validationDetails(genErr)
		writeValidation(w, details)
	case generation.CodeAIError:
		errText := "AI processing error"
		if genErr.Status == http.StatusServiceUnavailable {
			errText = "Service unavailable"
		}
		writeJSON(w, genErr.Status, errorResponse{
			Error:   errText,
			Message: genErr.Message,
			Details: map[string]string{"code": string(genErr.AICode)},
		})
	default:
		h.log.ErrorContext(r.Context(), "generation failed",
			slog.String("code", string(genErr.Code)),
			slog.String("error", err.Error()),
		)
		writeInternal(w)
	}
}

func toCreateGenerationResponse(res *generation.Result) createGenerationResponse {
	proposals := make([]proposalResponse, len(res.Proposals))
	for i, p := range res.Proposals {
		proposals[i] = toProposalResponse(p)
	}

	out := createGenerationResponse{
		FlashcardsProposals: proposals,
		Saved:               res.Saved,
	}
	if res.Generation != nil {
		g := res.Generation
		out.Generation = &generationResponse{
			ID:                  g.ID,
			UserID:              g.UserID.String(),
			Model:               g.Model,
			SourceTextLength:    g.SourceTextLength,
			SourceTextHash:      g.SourceTextHash,
			GeneratedCount:      g.GeneratedCount,
			GenerationDuration:  g.GenerationDuration,
			CreatedAt:           g.CreatedAt,
			FlashcardsProposals: proposals,
		}
	}
	return out
}

func toProposalResponse(f domain.Flashcard) proposalResponse {
	p := proposalResponse{
		Question:     f.Question,
		Answer:       f.Answer,
		Source:       f.Source.String(),
		GenerationID: f.GenerationID,
	}
	if f.ID != 0 {
		id := f.ID
		p.ID = &id
	}
	if !f.CreatedAt.IsZero() {
		created := f.CreatedAt
		p.CreatedAt = &created
	}
	return p
}
