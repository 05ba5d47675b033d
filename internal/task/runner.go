// Package task executes ordered lists of named pre-flight tasks against a
// shared context. Tasks run strictly sequentially: later tasks read context
// values written by earlier ones, and interleaved console output from
// concurrent tasks would be unreadable.
package task

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// State is a task's lifecycle position, published to the report sink so the
// user sees each check go from pending to its outcome in real time.
type State int

const (
	Pending State = iota
	Running
	Succeeded
	Failed
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Context is the sole channel through which sibling tasks exchange results.
// It lives for one Runner.Run call and is discarded afterwards; callers copy
// out what they need before discarding it.
type Context map[string]any

// Action performs one task's work. It may mutate ctx and may return a nested
// task list; the runner executes nested tasks against the same context before
// moving to the next sibling.
type Action func(ctx context.Context, tc Context) ([]Descriptor, error)

// Descriptor names a task, its action, and an optional enablement predicate.
// Descriptors are built fresh for every batch and discarded with it.
type Descriptor struct {
	Title   string
	Run     Action
	Enabled func(tc Context) bool
}

// Publisher receives task state transitions. Implementations render them;
// the runner itself knows nothing about presentation.
type Publisher interface {
	TaskState(title string, state State, detail string)
}

// NullPublisher discards all transitions.
type NullPublisher struct{}

func (NullPublisher) TaskState(string, State, string) {}

// Runner is execution plumbing for Descriptor batches. It carries no task
// semantics of its own.
type Runner struct {
	pub Publisher
	log zerolog.Logger
}

func NewRunner(pub Publisher, log zerolog.Logger) *Runner {
	if pub == nil {
		pub = NullPublisher{}
	}
	return &Runner{pub: pub, log: log}
}

// Run executes tasks in order against tc. The first failure stops the batch:
// remaining siblings are never attempted and the triggering error is
// returned. On success it returns tc for the caller to copy results from.
func (r *Runner) Run(ctx context.Context, tasks []Descriptor, tc Context) (Context, error) {
	if tc == nil {
		tc = Context{}
	}
	for _, t := range tasks {
		if t.Enabled != nil && !t.Enabled(tc) {
			r.log.Debug().Str("task", t.Title).Msg("task disabled, skipping")
			r.pub.TaskState(t.Title, Skipped, "")
			continue
		}

		r.log.Debug().Str("task", t.Title).Msg("task starting")
		r.pub.TaskState(t.Title, Running, "")

		children, err := t.Run(ctx, tc)
		if err != nil {
			r.log.Debug().Str("task", t.Title).Err(err).Msg("task failed")
			r.pub.TaskState(t.Title, Failed, err.Error())
			return tc, fmt.Errorf("task %q: %w", t.Title, err)
		}
		r.pub.TaskState(t.Title, Succeeded, "")

		if len(children) > 0 {
			if _, err := r.Run(ctx, children, tc); err != nil {
				return tc, err
			}
		}
	}
	return tc, nil
}
