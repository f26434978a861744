package apiclient

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/flashgen-backend/internal/review"
)

const (
	msgNetwork        = "Network error. Please check your connection and try again."
	msgSessionExpired = "Your session has expired. Please log in again."
	msgUnexpected     = "An unexpected error occurred. Please try again."
)

type generationRequest struct {
	SourceText string `json:"source_text"`
}

type generationResponse struct {
	Generation *struct {
		ID int64 `json:"id"`
	} `json:"generation"`
	FlashcardsProposals []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"flashcardsProposals"`
	Saved bool `json:"saved"`
}

type saveItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

type saveRequest struct {
	Flashcards   []saveItem `json:"flashcards"`
	GenerationID *int64     `json:"generation_id,omitempty"`
}

// Generate calls POST /generations.
func (c *Client) Generate(ctx context.Context, text string) (review.Generated, error) {
	resp, err := c.do(ctx, http.MethodPost, "/generations", generationRequest{SourceText: text})
	if err != nil {
		c.log.WarnContext(ctx, "generation request failed", slog.String("error", err.Error()))
		return review.Generated{}, &review.ErrorState{Message: msgNetwork, CanRetry: true}
	}
	if !resp.ok() {
		return review.Generated{}, generationError(resp)
	}

	var body generationResponse
	if err := c.decode(resp, &body); err != nil {
		return review.Generated{}, &review.ErrorState{Message: msgUnexpected, CanRetry: true}
	}

	out := review.Generated{Proposals: make([]review.Draft, len(body.FlashcardsProposals))}
	if body.Generation != nil {
		id := body.Generation.ID
		out.GenerationID = &id
	}
	for i, p := range body.FlashcardsProposals {
		out.Proposals[i] = review.Draft{Question: p.Question, Answer: p.Answer}
	}
	return out, nil
}

// Save calls POST /flashcards with the reviewed cards.
func (c *Client) Save(ctx context.Context, generationID *int64, cards []review.SaveCard) error {
	req := saveRequest{
		Flashcards:   make([]saveItem, len(cards)),
		GenerationID: generationID,
	}
	for i, card := range cards {
		req.Flashcards[i] = saveItem{Question: card.Question, Answer: card.Answer, Source: card.Source.String()}
	}

	resp, err := c.do(ctx, http.MethodPost, "/flashcards", req)
	if err != nil {
		c.log.WarnContext(ctx, "save request failed", slog.String("error", err.Error()))
		return &review.ErrorState{Message: msgNetwork, CanRetry: true}
	}
	if !resp.ok() {
		return saveError(resp)
	}
	return nil
}

func sessionExpired() *review.ErrorState {
	return &review.ErrorState{
		Message:        msgSessionExpired,
		ShouldRedirect: true,
		RedirectURL:    LoginURL,
	}
}

func generationError(r response) *review.ErrorState {
	switch r.status {
	case http.StatusBadRequest:
		return &review.ErrorState{Message: "Invalid data provided. Please check your input and try again.", CanRetry: true}
	case http.StatusUnauthorized:
		return sessionExpired()
	case http.StatusUnprocessableEntity:
		return &review.ErrorState{Message: "AI couldn't process this text. Please try with different content.", CanRetry: true}
	case http.StatusInternalServerError:
		return &review.ErrorState{Message: "Server error occurred. Please try again.", CanRetry: true}
	case http.StatusServiceUnavailable:
		return &review.ErrorState{Message: "AI service is currently unavailable. Please try again or use shorter text.", CanRetry: true}
	}

	msg := msgUnexpected
	if env := r.envelope(); env.Message != "" {
		msg = env.Message
	}
	return &review.ErrorState{Message: msg, CanRetry: true}
}

func saveError(r response) *review.ErrorState {
	switch r.status {
	case http.StatusBadRequest:
		return &review.ErrorState{Message: "Invalid flashcard data. Please check and try again.", CanRetry: true}
	case http.StatusUnauthorized:
		return sessionExpired()
	case http.StatusNotFound:
		return &review.ErrorState{Message: "Generation not found. Please try generating flashcards again."}
	case http.StatusInternalServerError:
		return &review.ErrorState{Message: "Server error occurred while saving. Please try again.", CanRetry: true}
	}

	msg := "Failed to save flashcards. Please try again."
	if env := r.envelope(); env.Message != "" {
		msg = env.Message
	}
	return &review.ErrorState{Message: msg, CanRetry: true}
}
