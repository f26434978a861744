// Package review implements the client-side lifecycle of a generation
// session: submitting source text, reviewing the proposed flashcards
// (select, deselect, edit) and saving the selected subset.
//
// All state changes go through Transition, a pure function over an
// immutable State. Machine wraps it for hosts that need the resulting
// network requests and redirects carried out.
package review

import (
	"slices"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// View is the screen the session is currently in.
type View string

const (
	ViewIdle       View = "idle"
	ViewGenerating View = "generating"
	ViewReviewing  View = "reviewing"
	ViewSaving     View = "saving"
	ViewError      View = "error"
)

// Proposal is the editable view model of one generated flashcard.
type Proposal struct {
	ID               int
	Question         string
	Answer           string
	Source           domain.Source
	IsSelected       bool
	IsEditing        bool
	IsModified       bool
	OriginalQuestion string
	OriginalAnswer   string
}

// withText sets question and answer and recomputes IsModified and Source.
// Editing back to the original text restores the ai-full source.
func (p Proposal) withText(question, answer string) Proposal {
	p.Question = question
	p.Answer = answer
	p.IsModified = p.Question != p.OriginalQuestion || p.Answer != p.OriginalAnswer
	if p.IsModified {
		p.Source = domain.SourceAIEdited
	} else {
		p.Source = domain.SourceAIFull
	}
	return p
}

// ErrorState is a failure as presented to the user.
type ErrorState struct {
	Message        string
	CanRetry       bool
	ShouldRedirect bool
	RedirectURL    string
}

func (e *ErrorState) Error() string { return e.Message }

// Draft is a proposal as returned by the generation endpoint.
type Draft struct {
	Question string
	Answer   string
}

// Generated is the successful outcome of a generation request.
// GenerationID is nil when the server did not persist the generation.
type Generated struct {
	GenerationID *int64
	Proposals    []Draft
}

// SaveCard is one selected proposal in a save request.
type SaveCard struct {
	Question string
	Answer   string
	Source   domain.Source
}

// State is a snapshot of a review session. Transition never mutates a
// State it receives.
type State struct {
	View         View
	SourceText   string
	Proposals    []Proposal
	GenerationID *int64
	Error        *ErrorState
	// Epoch identifies the latest request; responses carrying another
	// epoch are stale.
	Epoch uint64
}

// SelectedCount is the number of selected proposals.
func (s State) SelectedCount() int {
	n := 0
	for _, p := range s.Proposals {
		if p.IsSelected {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Proposals = slices.Clone(s.Proposals)
	if s.GenerationID != nil {
		id := *s.GenerationID
		s.GenerationID = &id
	}
	if s.Error != nil {
		e := *s.Error
		s.Error = &e
	}
	return s
}

func (s State) find(id int) int {
	return slices.IndexFunc(s.Proposals, func(p Proposal) bool { return p.ID == id })
}

func (s State) selectedCards() []SaveCard {
	cards := make([]SaveCard, 0, s.SelectedCount())
	for _, p := range s.Proposals {
		if p.IsSelected {
			cards = append(cards, SaveCard{Question: p.Question, Answer: p.Answer, Source: p.Source})
		}
	}
	return cards
}

func newProposals(drafts []Draft) []Proposal {
	out := make([]Proposal, len(drafts))
	for i, d := range drafts {
		out[i] = Proposal{
			ID:               i + 1,
			Question:         d.Question,
			Answer:           d.Answer,
			Source:           domain.SourceAIFull,
			IsSelected:       true,
			OriginalQuestion: d.Question,
			OriginalAnswer:   d.Answer,
		}
	}
	return out
}
