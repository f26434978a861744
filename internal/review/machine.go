package review

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Gateway performs the network calls of a review session.
// Failures should be *ErrorState; other errors are reported with a generic
// retryable message.
type Gateway interface {
	Generate(ctx context.Context, text string) (Generated, error)
	Save(ctx context.Context, generationID *int64, cards []SaveCard) error
}

// Redirector navigates away from the session, e.g. to a login page.
type Redirector interface {
	Redirect(url string)
}

// Machine holds the state of one session and runs the effects emitted by
// Transition. Gateway calls run on their own goroutines; their outcomes
// are applied as events, so a response that arrives after Cancel is
// dropped by the epoch check.
type Machine struct {
	mu    sync.Mutex
	state State

	gateway    Gateway
	redirector Redirector
	log        *slog.Logger
	onChange   func(State)
	afterFunc  func(d time.Duration, f func())

	inflight sync.WaitGroup
}

// NewMachine creates a Machine in the idle view.
func NewMachine(gw Gateway, redirector Redirector, logger *slog.Logger) *Machine {
	return &Machine{
		state:      State{View: ViewIdle},
		gateway:    gw,
		redirector: redirector,
		log:        logger.With("component", "review"),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// OnChange registers fn to be called with every new state. fn runs
// without the machine lock held.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Dispatch applies ev and starts the resulting effects. Requests use ctx.
func (m *Machine) Dispatch(ctx context.Context, ev Event) error {
	m.mu.Lock()
	next, effects, err := Transition(m.state, ev)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = next
	onChange := m.onChange
	snapshot := next.Clone()
	m.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
	for _, eff := range effects {
		m.run(ctx, eff)
	}
	return nil
}

// Wait blocks until all in-flight requests have reported back.
func (m *Machine) Wait() {
	m.inflight.Wait()
}

func (m *Machine) run(ctx context.Context, eff Effect) {
	switch eff := eff.(type) {
	case RequestGeneration:
		m.inflight.Add(1)
		go func() {
			defer m.inflight.Done()
			res, err := m.gateway.Generate(ctx, eff.Text)
			if err != nil {
				m.report(ctx, GenerateFailed{Epoch: eff.Epoch, Err: toErrorState(err)})
				return
			}
			m.report(ctx, GenerateSucceeded{Epoch: eff.Epoch, Result: res})
		}()
	case RequestSave:
		m.inflight.Add(1)
		go func() {
			defer m.inflight.Done()
			if err := m.gateway.Save(ctx, eff.GenerationID, eff.Cards); err != nil {
				m.report(ctx, SaveFailed{Epoch: eff.Epoch, Err: toErrorState(err)})
				return
			}
			m.report(ctx, SaveSucceeded{Epoch: eff.Epoch})
		}()
	case ScheduleRedirect:
		if m.redirector == nil {
			return
		}
		m.afterFunc(eff.After, func() { m.redirector.Redirect(eff.URL) })
	}
}

func (m *Machine) report(ctx context.Context, ev Event) {
	if err := m.Dispatch(ctx, ev); err != nil {
		m.log.DebugContext(ctx, "response dropped", slog.String("error", err.Error()))
	}
}

func toErrorState(err error) ErrorState {
	var es *ErrorState
	if errors.As(err, &es) {
		return *es
	}
	return ErrorState{Message: "An unexpected error occurred. Please try again.", CanRetry: true}
}
