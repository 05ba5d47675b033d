package task

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) TaskState(title string, state State, detail string) {
	p.events = append(p.events, title+":"+state.String())
}

func noop(ctx context.Context, tc Context) ([]Descriptor, error) { return nil, nil }

func TestRunnerFailFast(t *testing.T) {
	var ran []string
	boom := errors.New("task two exploded")
	tasks := []Descriptor{
		{Title: "one", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			ran = append(ran, "one")
			return nil, nil
		}},
		{Title: "two", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			ran = append(ran, "two")
			return nil, boom
		}},
		{Title: "three", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			ran = append(ran, "three")
			return nil, nil
		}},
	}

	r := NewRunner(nil, zerolog.Nop())
	_, err := r.Run(context.Background(), tasks, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRunnerSharesContextBetweenSiblings(t *testing.T) {
	tasks := []Descriptor{
		{Title: "writer", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			tc["accounts"] = 3
			return nil, nil
		}},
		{Title: "reader", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			if tc["accounts"] != 3 {
				return nil, errors.New("context value missing")
			}
			return nil, nil
		}},
	}

	r := NewRunner(nil, zerolog.Nop())
	tc, err := r.Run(context.Background(), tasks, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, tc["accounts"])
}

func TestRunnerSkipsDisabledTasks(t *testing.T) {
	pub := &recordingPublisher{}
	tasks := []Descriptor{
		{Title: "enabled", Run: noop},
		{Title: "disabled", Run: noop, Enabled: func(tc Context) bool { return false }},
	}

	r := NewRunner(pub, zerolog.Nop())
	_, err := r.Run(context.Background(), tasks, nil)

	require.NoError(t, err)
	assert.Contains(t, pub.events, "disabled:skipped")
	assert.NotContains(t, pub.events, "disabled:running")
}

func TestRunnerRunsNestedTasksBeforeNextSibling(t *testing.T) {
	var order []string
	child := Descriptor{Title: "child", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
		order = append(order, "child")
		return nil, nil
	}}
	tasks := []Descriptor{
		{Title: "parent", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			order = append(order, "parent")
			return []Descriptor{child}, nil
		}},
		{Title: "sibling", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			order = append(order, "sibling")
			return nil, nil
		}},
	}

	r := NewRunner(nil, zerolog.Nop())
	_, err := r.Run(context.Background(), tasks, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"parent", "child", "sibling"}, order)
}

func TestRunnerNestedFailureStopsBatch(t *testing.T) {
	boom := errors.New("child failed")
	var siblingRan bool
	tasks := []Descriptor{
		{Title: "parent", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			return []Descriptor{{Title: "child", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
				return nil, boom
			}}}, nil
		}},
		{Title: "sibling", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) {
			siblingRan = true
			return nil, nil
		}},
	}

	r := NewRunner(nil, zerolog.Nop())
	_, err := r.Run(context.Background(), tasks, nil)

	assert.ErrorIs(t, err, boom)
	assert.False(t, siblingRan)
}

func TestRunnerPublishesStates(t *testing.T) {
	pub := &recordingPublisher{}
	boom := errors.New("nope")
	tasks := []Descriptor{
		{Title: "good", Run: noop},
		{Title: "bad", Run: func(ctx context.Context, tc Context) ([]Descriptor, error) { return nil, boom }},
	}

	r := NewRunner(pub, zerolog.Nop())
	_, _ = r.Run(context.Background(), tasks, nil)

	assert.Equal(t, []string{"good:running", "good:succeeded", "bad:running", "bad:failed"}, pub.events)
}
