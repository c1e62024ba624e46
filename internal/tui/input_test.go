package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/input"
	"github.com/hay-kot/sshdeck/pkg/tuitest"
	"github.com/muesli/cancelreader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader hands out scripted event batches and blocks until cancelled
// once they run out.
type fakeReader struct {
	batches chan []input.Event
	errs    chan error

	once     sync.Once
	canceled chan struct{}
	panicMsg string
}

func newFakeReader(batches ...[]input.Event) *fakeReader {
	r := &fakeReader{
		batches:  make(chan []input.Event, len(batches)+8),
		errs:     make(chan error, 1),
		canceled: make(chan struct{}),
	}
	for _, b := range batches {
		r.batches <- b
	}
	return r
}

func (r *fakeReader) ReadEvents() ([]input.Event, error) {
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	select {
	case b := <-r.batches:
		return b, nil
	case err := <-r.errs:
		return nil, err
	case <-r.canceled:
		return nil, cancelreader.ErrCanceled
	}
}

func (r *fakeReader) Cancel() bool {
	r.once.Do(func() { close(r.canceled) })
	return true
}

func receiveN(t *testing.T, q *Queue, n int) []Command {
	t.Helper()
	out := make([]Command, 0, n)
	for len(out) < n {
		select {
		case cmd := <-q.C():
			out = append(out, cmd)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d of %d commands", len(out), n)
		}
	}
	return out
}

func TestReadInput_ForwardsCommandsInOrder(t *testing.T) {
	r := newFakeReader(
		[]input.Event{tuitest.KeyPress('j'), tuitest.KeyPress('j')},
		append([]input.Event{tuitest.KeyPress('/')}, tuitest.KeyPresses("we")...),
	)
	q := NewQueue(16)
	d := NewDispatcher(DefaultKeyMap(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ReadInput(ctx, r, d, q) }()

	got := receiveN(t, q, 5)
	assert.Equal(t, []Command{
		MoveSelection{Dir: Down},
		MoveSelection{Dir: Down},
		EnterSearch{},
		AppendToQuery{Char: 'w'},
		AppendToQuery{Char: 'e'},
	}, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("ReadInput did not stop after cancel")
	}

	select {
	case <-q.Disconnected():
		t.Fatal("clean stop must not disconnect the queue")
	default:
	}
}

func TestReadInput_ReadErrorDisconnects(t *testing.T) {
	r := newFakeReader()
	cause := errors.New("read /dev/tty: input/output error")
	r.errs <- cause

	q := NewQueue(4)
	err := ReadInput(context.Background(), r, NewDispatcher(DefaultKeyMap(), nil), q)
	require.ErrorIs(t, err, cause)

	<-q.Disconnected()
	assert.ErrorIs(t, q.Err(), ErrDisconnected)
	assert.ErrorIs(t, q.Err(), cause)
}

func TestReadInput_PanicDisconnects(t *testing.T) {
	r := newFakeReader()
	r.panicMsg = "boom"

	q := NewQueue(4)
	err := ReadInput(context.Background(), r, NewDispatcher(DefaultKeyMap(), nil), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	<-q.Disconnected()
	assert.ErrorIs(t, q.Err(), ErrDisconnected)
}

func TestReadInput_CancelledReadIsClean(t *testing.T) {
	r := newFakeReader()
	r.Cancel()

	q := NewQueue(4)
	err := ReadInput(context.Background(), r, NewDispatcher(DefaultKeyMap(), nil), q)
	assert.NoError(t, err)
}
