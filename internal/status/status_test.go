package status

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestTracker() *Tracker {
	return NewTracker(zerolog.Nop())
}

func TestTrackerLifecycle(t *testing.T) {
	tr := newTestTracker()
	assert.False(t, tr.Running())
	assert.NotEmpty(t, tr.RunID())

	tr.Start()
	assert.True(t, tr.Running())
	assert.False(t, tr.IsAborted())
	assert.False(t, tr.Completed())

	tr.Complete(Message{Type: Success, Title: "Done", Message: "all good"})
	assert.True(t, tr.Completed())
	assert.False(t, tr.IsAborted())
	assert.Len(t, tr.Messages(), 1)
}

func TestAbortAndCompleteAreMutuallyExclusive(t *testing.T) {
	tr := newTestTracker()
	tr.Start()
	tr.Abort(Message{Type: Error, Title: "Boom", Message: "it broke"})

	tr.Complete(Message{Type: Success, Title: "Done", Message: "should not land"})

	assert.True(t, tr.IsAborted())
	assert.False(t, tr.Completed())
	assert.Len(t, tr.Messages(), 1)
}

func TestAbortIsIdempotent(t *testing.T) {
	tr := newTestTracker()
	tr.Start()
	tr.Abort(Message{Type: Error, Title: "First", Message: "first cause"})
	tr.Abort(Message{Type: Error, Title: "Second", Message: "later cause"})

	assert.True(t, tr.IsAborted())
	msgs := tr.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "First", msgs[0].Title)
}

func TestMessagesKeepAppendOrder(t *testing.T) {
	tr := newTestTracker()
	tr.Start()
	tr.AddMessage(Message{Type: Success, Title: "one", Message: "1"})
	tr.AddMessage(Message{Type: Warning, Title: "two", Message: "2"})
	tr.Complete(Message{Type: Success, Title: "three", Message: "3"})

	msgs := tr.Messages()
	assert.Equal(t, []string{"one", "two", "three"}, []string{msgs[0].Title, msgs[1].Title, msgs[2].Title})
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := newTestTracker()
	tr.AddMessage(Message{Type: Success, Title: "one", Message: "1"})

	msgs := tr.Messages()
	msgs[0].Title = "mutated"

	assert.Equal(t, "one", tr.Messages()[0].Title)
}
