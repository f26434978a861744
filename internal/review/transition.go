package review

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/flashgen-backend/internal/validation"
)

var (
	// ErrIllegalTransition means the event is not accepted in the current view.
	ErrIllegalTransition = errors.New("review: illegal transition")
	// ErrGuard means the event is accepted in the current view but its
	// precondition does not hold.
	ErrGuard = errors.New("review: guard rejected event")
)

// Transition applies ev to s. On error the returned state is s unchanged
// and no effects are emitted. Responses from superseded requests are
// dropped without error.
func Transition(s State, ev Event) (State, []Effect, error) {
	switch ev := ev.(type) {
	case Submit:
		return submit(s, ev)
	case GenerateSucceeded:
		if ev.Epoch != s.Epoch {
			return s, nil, nil
		}
		if s.View != ViewGenerating {
			return s, nil, illegal(s, ev)
		}
		next := s.Clone()
		next.View = ViewReviewing
		next.Proposals = newProposals(ev.Result.Proposals)
		next.GenerationID = ev.Result.GenerationID
		next.Error = nil
		return next, nil, nil
	case GenerateFailed:
		if ev.Epoch != s.Epoch {
			return s, nil, nil
		}
		if s.View != ViewGenerating {
			return s, nil, illegal(s, ev)
		}
		return fail(s, ev.Err)
	case Toggle:
		return toggle(s, ev)
	case Edit:
		return edit(s, ev)
	case SetEditing:
		return setEditing(s, ev)
	case SelectAll:
		if s.View != ViewReviewing {
			return s, nil, illegal(s, ev)
		}
		next := s.Clone()
		for i := range next.Proposals {
			next.Proposals[i].IsSelected = ev.Selected
			if !ev.Selected {
				next.Proposals[i].IsEditing = false
			}
		}
		return next, nil, nil
	case Save:
		return save(s)
	case SaveSucceeded:
		if ev.Epoch != s.Epoch {
			return s, nil, nil
		}
		if s.View != ViewSaving {
			return s, nil, illegal(s, ev)
		}
		return State{View: ViewIdle, Epoch: s.Epoch}, nil, nil
	case SaveFailed:
		if ev.Epoch != s.Epoch {
			return s, nil, nil
		}
		if s.View != ViewSaving {
			return s, nil, illegal(s, ev)
		}
		return fail(s, ev.Err)
	case Cancel:
		if s.View == ViewIdle {
			return s, nil, illegal(s, ev)
		}
		return State{View: ViewIdle, Epoch: s.Epoch + 1}, nil, nil
	case Dismiss:
		if s.View != ViewError {
			return s, nil, illegal(s, ev)
		}
		next := s.Clone()
		next.Error = nil
		next.View = ViewIdle
		if len(next.Proposals) > 0 {
			next.View = ViewReviewing
		}
		return next, nil, nil
	default:
		return s, nil, fmt.Errorf("%w: unknown event %T", ErrIllegalTransition, ev)
	}
}

func illegal(s State, ev Event) error {
	return fmt.Errorf("%w: %T in %s", ErrIllegalTransition, ev, s.View)
}

func guard(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGuard, fmt.Sprintf(format, args...))
}

func submit(s State, ev Submit) (State, []Effect, error) {
	if s.View != ViewIdle {
		return s, nil, illegal(s, ev)
	}
	if res := validation.SourceText(ev.Text); !res.IsValid {
		return s, nil, guard("%s", res.Message)
	}

	next := State{View: ViewGenerating, SourceText: ev.Text, Epoch: s.Epoch + 1}
	return next, []Effect{RequestGeneration{Epoch: next.Epoch, Text: ev.Text}}, nil
}

func fail(s State, es ErrorState) (State, []Effect, error) {
	next := s.Clone()
	next.View = ViewError
	next.Error = &es

	var effects []Effect
	if es.ShouldRedirect && es.RedirectURL != "" {
		effects = append(effects, ScheduleRedirect{URL: es.RedirectURL, After: RedirectDelay})
	}
	return next, effects, nil
}

func toggle(s State, ev Toggle) (State, []Effect, error) {
	if s.View != ViewReviewing {
		return s, nil, illegal(s, ev)
	}
	i := s.find(ev.ID)
	if i < 0 {
		return s, nil, guard("proposal %d not found", ev.ID)
	}

	next := s.Clone()
	p := &next.Proposals[i]
	p.IsSelected = !p.IsSelected
	if !p.IsSelected {
		p.IsEditing = false
	}
	return next, nil, nil
}

func edit(s State, ev Edit) (State, []Effect, error) {
	if s.View != ViewReviewing {
		return s, nil, illegal(s, ev)
	}
	i := s.find(ev.ID)
	if i < 0 {
		return s, nil, guard("proposal %d not found", ev.ID)
	}
	p := s.Proposals[i]
	if !p.IsSelected {
		return s, nil, guard("proposal %d is not selected", ev.ID)
	}

	question, answer := p.Question, p.Answer
	var res validation.FieldResult
	switch ev.Field {
	case FieldQuestion:
		res = validation.Question(ev.Value)
		question = ev.Value
	case FieldAnswer:
		res = validation.Answer(ev.Value)
		answer = ev.Value
	default:
		return s, nil, guard("unknown field %q", ev.Field)
	}
	if !res.IsValid {
		return s, nil, guard("%s", res.Error)
	}

	next := s.Clone()
	next.Proposals[i] = p.withText(question, answer)
	return next, nil, nil
}

func setEditing(s State, ev SetEditing) (State, []Effect, error) {
	if s.View != ViewReviewing {
		return s, nil, illegal(s, ev)
	}
	i := s.find(ev.ID)
	if i < 0 {
		return s, nil, guard("proposal %d not found", ev.ID)
	}
	if ev.Editing && !s.Proposals[i].IsSelected {
		return s, nil, guard("proposal %d is not selected", ev.ID)
	}

	next := s.Clone()
	next.Proposals[i].IsEditing = ev.Editing
	return next, nil, nil
}

func save(s State) (State, []Effect, error) {
	if s.View != ViewReviewing {
		return s, nil, illegal(s, Save{})
	}
	if s.SelectedCount() == 0 {
		return s, nil, guard("no proposals selected")
	}

	next := s.Clone()
	next.View = ViewSaving
	next.Epoch++
	next.Error = nil
	return next, []Effect{RequestSave{
		Epoch:        next.Epoch,
		GenerationID: next.GenerationID,
		Cards:        next.selectedCards(),
	}}, nil
}
