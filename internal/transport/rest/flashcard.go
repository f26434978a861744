package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
	"github.com/heartmarshall/flashgen-backend/internal/service/flashcard"
	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

type flashcardService interface {
	Create(ctx context.Context, input flashcard.CreateInput) ([]domain.Flashcard, error)
	List(ctx context.Context, input flashcard.ListInput) (*flashcard.ListResult, error)
	Get(ctx context.Context, id int64) (domain.Flashcard, error)
	Update(ctx context.Context, input flashcard.UpdateInput) (domain.Flashcard, error)
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, input flashcard.DeleteBatchInput) (int, error)
}

// FlashcardHandler serves the /flashcards endpoints. All of them require an
// authenticated caller.
type FlashcardHandler struct {
	svc flashcardService
	log *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(svc flashcardService, logger *slog.Logger) *FlashcardHandler {
	return &FlashcardHandler{svc: svc, log: logger.With("handler", "flashcards")}
}

type flashcardItemRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source" validate:"required,oneof=manual ai-full ai-edited"`
}

type createFlashcardsRequest struct {
	Flashcards   []flashcardItemRequest `json:"flashcards" validate:"required,min=1,max=100,dive"`
	GenerationID *int64                 `json:"generation_id" validate:"omitempty,gt=0"`
}

type updateFlashcardRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

type deleteBatchRequest struct {
	FlashcardIDs []int64 `json:"flashcard_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

type listQuery struct {
	Page         int    `query:"page" validate:"omitempty,min=1"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Source       string `query:"source" validate:"omitempty,oneof=manual ai-full ai-edited"`
	GenerationID int64  `query:"generation_id" validate:"omitempty,gt=0"`
	Sort         string `query:"sort" validate:"omitempty,oneof=created_at updated_at question"`
	Order        string `query:"order" validate:"omitempty,oneof=asc desc"`
}

type flashcardResponse struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Source       string    `json:"source"`
	GenerationID *int64    `json:"generation_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type createFlashcardsResponse struct {
	CreatedCount int                 `json:"created_count"`
	Flashcards   []flashcardResponse `json:"flashcards"`
}

type paginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type listFlashcardsResponse struct {
	Data       []flashcardResponse `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}

type deleteBatchResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// Create handles POST /flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}

	var req createFlashcardsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if details := checkStruct(req); details != nil {
		writeValidation(w, details)
		return
	}

	input := flashcard.CreateInput{
		Flashcards:   make([]flashcard.CardInput, len(req.Flashcards)),
		GenerationID: req.GenerationID,
	}
	for i, c := range req.Flashcards {
		input.Flashcards[i] = flashcard.CardInput{
			Question: c.Question,
			Answer:   c.Answer,
			Source:   domain.Source(c.Source),
		}
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createFlashcardsResponse{
		CreatedCount: len(created),
		Flashcards:   toFlashcardResponses(created),
	})
}

// List handles GET /flashcards.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}

	q, details := parseListQuery(r)
	if details == nil {
		details = checkStruct(q)
	}
	if details != nil {
		writeValidation(w, details)
		return
	}

	input := flashcard.ListInput{
		Page:  q.Page,
		Limit: q.Limit,
		Sort:  domain.FlashcardSort(q.Sort),
		Order: domain.SortOrder(q.Order),
	}
	if q.Source != "" {
		src := domain.Source(q.Source)
		input.Source = &src
	}
	if q.GenerationID != 0 {
		input.GenerationID = &q.GenerationID
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFlashcardsResponse{
		Data: toFlashcardResponses(res.Items),
		Pagination: paginationResponse{
			Page:  res.Page,
			Limit: res.Limit,
			Total: res.Total,
		},
	})
}

// Get handles GET /flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	card, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlashcardResponse(card))
}

// Update handles PATCH /flashcards/{id}.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateFlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}

	card, err := h.svc.Update(r.Context(), flashcard.UpdateInput{
		ID:       id,
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlashcardResponse(card))
}

// Delete handles DELETE /flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBatch handles POST /flashcards/batch-delete.
func (h *FlashcardHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if !authenticated(r) {
		writeUnauthorized(w)
		return
	}

	var req deleteBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if details := checkStruct(req); details != nil {
		writeValidation(w, details)
		return
	}

	n, err := h.svc.DeleteBatch(r.Context(), flashcard.DeleteBatchInput{IDs: req.FlashcardIDs})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteBatchResponse{DeletedCount: n})
}

func (h *FlashcardHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		writeUnauthorized(w)
		return
	}

	var fcErr *flashcard.Error
	if !errors.As(err, &fcErr) {
		h.log.ErrorContext(r.Context(), "unexpected flashcard error", slog.String("error", err.Error()))
		writeInternal(w)
		return
	}

	switch fcErr.Code {
	case flashcard.CodeValidationError:
		details, _ := validationDetails(fcErr)
		writeValidation(w, details)
	case flashcard.CodeNotFound:
		writeError(w, http.StatusNotFound, "Not found", fcErr.Message)
	case flashcard.CodeForbidden:
		writeError(w, http.StatusForbidden, "Forbidden", fcErr.Message)
	default:
		h.log.ErrorContext(r.Context(), "flashcard operation failed",
			slog.String("message", fcErr.Message),
			slog.String("error", err.Error()),
		)
		writeInternal(w)
	}
}

func authenticated(r *http.Request) bool {
	_, ok := ctxutil.UserIDFromCtx(r.Context())
	return ok
}

// pathID parses the {id} URL parameter, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, map[string][]string{"id": {"must be a positive integer"}})
		return 0, false
	}
	return id, true
}

func parseListQuery(r *http.Request) (listQuery, map[string][]string) {
	values := r.URL.Query()
	q := listQuery{
		Source: values.Get("source"),
		Sort:   values.Get("sort"),
		Order:  values.Get("order"),
	}

	details := map[string][]string{}
	parseInt := func(name string) int64 {
		raw := values.Get(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			details[name] = append(details[name], "must be a positive integer")
			return 0
		}
		return n
	}
	q.Page = int(parseInt("page"))
	q.Limit = int(parseInt("limit"))
	q.GenerationID = parseInt("generation_id")

	if len(details) > 0 {
		return q, details
	}
	return q, nil
}

func toFlashcardResponse(f domain.Flashcard) flashcardResponse {
	return flashcardResponse{
		ID:           f.ID,
		Question:     f.Question,
		Answer:       f.Answer,
		Source:       f.Source.String(),
		GenerationID: f.GenerationID,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFlashcardResponses(cards []domain.Flashcard) []flashcardResponse {
	out := make([]flashcardResponse, len(cards))
	for i, c := range cards {
		out[i] = toFlashcardResponse(c)
	}
	return out
}
