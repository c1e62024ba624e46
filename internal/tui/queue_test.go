package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_TrySendDropsWhenFull(t *testing.T) {
	q := NewQueue(2)

	assert.True(t, q.TrySend(MoveSelection{Dir: Down}))
	assert.True(t, q.TrySend(MoveSelection{Dir: Up}))
	assert.False(t, q.TrySend(Exit{}), "third command should be dropped")

	assert.Equal(t, MoveSelection{Dir: Down}, <-q.C())
	assert.Equal(t, MoveSelection{Dir: Up}, <-q.C())
	assert.Empty(t, q.C())
}

func TestQueue_SendWaitsForSpace(t *testing.T) {
	q := NewQueue(1)
	require.True(t, q.TrySend(MoveSelection{Dir: Down}))

	done := make(chan error, 1)
	go func() { done <- q.Send(context.Background(), FatalSignal{Reason: "test"}) }()

	select {
	case <-done:
		t.Fatal("Send returned while the queue was full")
	case <-time.After(20 * time.Millisecond):
	}

	<-q.C()
	require.NoError(t, <-done)
	assert.Equal(t, FatalSignal{Reason: "test"}, <-q.C())
}

func TestQueue_SendHonorsContext(t *testing.T) {
	q := NewQueue(1)
	require.True(t, q.TrySend(Exit{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Send(ctx, Exit{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueue_Disconnect(t *testing.T) {
	q := NewQueue(4)
	assert.NoError(t, q.Err())

	cause := errors.New("tty went away")
	q.Disconnect(cause)
	q.Disconnect(errors.New("second cause is ignored"))

	select {
	case <-q.Disconnected():
	default:
		t.Fatal("Disconnected should be closed")
	}

	err := q.Err()
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "second cause")

	assert.False(t, q.TrySend(Exit{}))
	assert.ErrorIs(t, q.Send(context.Background(), Exit{}), ErrDisconnected)
}

func TestQueue_MinimumSize(t *testing.T) {
	q := NewQueue(0)
	assert.True(t, q.TrySend(Exit{}))
	assert.False(t, q.TrySend(Exit{}))
}
