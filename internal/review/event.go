package review

import "time"

// RedirectDelay is how long an error stays visible before a redirect.
const RedirectDelay = 2 * time.Second

// Event is an input to Transition.
type Event interface{ event() }

// Field names an editable proposal field.
type Field string

const (
	FieldQuestion Field = "question"
	FieldAnswer   Field = "answer"
)

type (
	// Submit starts a generation for Text.
	Submit struct{ Text string }
	// GenerateSucceeded delivers the generation response.
	GenerateSucceeded struct {
		Epoch  uint64
		Result Generated
	}
	// GenerateFailed delivers a generation failure.
	GenerateFailed struct {
		Epoch uint64
		Err   ErrorState
	}
	// Toggle flips the selection of one proposal.
	Toggle struct{ ID int }
	// Edit replaces one field of a selected proposal.
	Edit struct {
		ID    int
		Field Field
		Value string
	}
	// SetEditing opens or closes the edit mode of a proposal.
	SetEditing struct {
		ID      int
		Editing bool
	}
	// SelectAll selects or deselects every proposal.
	SelectAll struct{ Selected bool }
	// Save persists the selected proposals.
	Save struct{}
	// SaveSucceeded delivers a successful save response.
	SaveSucceeded struct{ Epoch uint64 }
	// SaveFailed delivers a save failure.
	SaveFailed struct {
		Epoch uint64
		Err   ErrorState
	}
	// Cancel discards the session.
	Cancel struct{}
	// Dismiss clears the current error.
	Dismiss struct{}
)

func (Submit) event()            {}
func (GenerateSucceeded) event() {}
func (GenerateFailed) event()    {}
func (Toggle) event()            {}
func (Edit) event()              {}
func (SetEditing) event()        {}
func (SelectAll) event()         {}
func (Save) event()              {}
func (SaveSucceeded) event()     {}
func (SaveFailed) event()        {}
func (Cancel) event()            {}
func (Dismiss) event()           {}

// Effect is work a host must perform after a transition.
type Effect interface{ effect() }

type (
	// RequestGeneration asks the host to call the generation endpoint and
	// report back with GenerateSucceeded or GenerateFailed.
	RequestGeneration struct {
		Epoch uint64
		Text  string
	}
	// RequestSave asks the host to store Cards and report back with
	// SaveSucceeded or SaveFailed.
	RequestSave struct {
		Epoch        uint64
		GenerationID *int64
		Cards        []SaveCard
	}
	// ScheduleRedirect asks the host to navigate to URL after a delay.
	ScheduleRedirect struct {
		URL   string
		After time.Duration
	}
)

func (RequestGeneration) effect() {}
func (RequestSave) effect()       {}
func (ScheduleRedirect) effect()  {}
