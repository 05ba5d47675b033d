// Package status tracks the overall outcome of one generator run. Every
// phase reads the tracker's aborted flag before doing work; the end phase
// reads the accumulated messages to build the final report.
package status

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MessageType classifies a status message for final-report rendering.
type MessageType int

const (
	Success MessageType = iota
	Error
	Warning
)

func (t MessageType) String() string {
	switch t {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Message is one immutable entry in the run's status narration.
type Message struct {
	Type    MessageType
	Title   string
	Message string
}

// Tracker records {running, aborted, completed} plus the ordered message
// list for one run. Execution is strictly sequential across phases, so no
// locking is needed.
type Tracker struct {
	runID     string
	running   bool
	aborted   bool
	completed bool
	messages  []Message
	log       zerolog.Logger
}

// NewTracker creates a tracker for a single run.
func NewTracker(log zerolog.Logger) *Tracker {
	id := uuid.NewString()
	return &Tracker{
		runID: id,
		log:   log.With().Str("run_id", id).Logger(),
	}
}

// RunID identifies this run in logs.
func (t *Tracker) RunID() string { return t.runID }

// Start marks the run as running. Called exactly once, before any phase.
func (t *Tracker) Start() {
	t.running = true
	t.log.Debug().Msg("generator run started")
}

// Abort marks the run aborted and appends msg. Calling it again is safe;
// only the first call changes the run's fate, but every message is kept.
func (t *Tracker) Abort(msg Message) {
	if !t.aborted {
		t.log.Debug().Str("title", msg.Title).Msg("generator run aborted")
	}
	t.aborted = true
	t.messages = append(t.messages, msg)
}

// AddMessage appends an informational message without altering the run state.
func (t *Tracker) AddMessage(msg Message) {
	t.messages = append(t.messages, msg)
}

// Complete marks the run completed and appends msgs. The caller must only
// invoke this from the final phase, and only when the run was not aborted.
func (t *Tracker) Complete(msgs ...Message) {
	if t.aborted {
		return
	}
	t.completed = true
	t.messages = append(t.messages, msgs...)
	t.log.Debug().Msg("generator run completed")
}

// IsAborted is the cooperative cancellation check run at the top of every
// phase after initialization.
func (t *Tracker) IsAborted() bool { return t.aborted }

// Completed reports whether the run finished successfully.
func (t *Tracker) Completed() bool { return t.completed }

// Running reports whether Start was called.
func (t *Tracker) Running() bool { return t.running }

// Messages returns a copy of the accumulated messages in append order.
func (t *Tracker) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
