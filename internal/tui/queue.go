package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrDisconnected reports that a producer stopped unexpectedly.
var ErrDisconnected = errors.New("input producer disconnected")

// Queue is the single channel between producers and the control loop.
// Producers never block on TrySend; a full queue drops the command.
type Queue struct {
	ch   chan Command
	gone chan struct{}
	once sync.Once
	err  error
}

// NewQueue returns a queue buffering up to size commands.
func NewQueue(size int) *Queue {
	return &Queue{
		ch:   make(chan Command, max(size, 1)),
		gone: make(chan struct{}),
	}
}

// C is the receive side used by the control loop.
func (q *Queue) C() <-chan Command { return q.ch }

// TrySend enqueues cmd without blocking. It returns false when the buffer is
// full or the queue has been disconnected.
func (q *Queue) TrySend(cmd Command) bool {
	select {
	case <-q.gone:
		return false
	default:
	}

	select {
	case q.ch <- cmd:
		return true
	default:
		log.Warn().Str("command", commandName(cmd)).Msg("command queue full, dropping")
		return false
	}
}

// Send enqueues cmd, waiting for buffer space. It is reserved for commands
// that must not be dropped, such as FatalSignal.
func (q *Queue) Send(ctx context.Context, cmd Command) error {
	select {
	case <-q.gone:
		return ErrDisconnected
	default:
	}

	select {
	case q.ch <- cmd:
		return nil
	case <-q.gone:
		return ErrDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect marks the queue as broken because a producer failed. Only the
// first call has an effect.
func (q *Queue) Disconnect(err error) {
	q.once.Do(func() {
		q.err = err
		close(q.gone)
	})
}

// Disconnected is closed once a producer has failed.
func (q *Queue) Disconnected() <-chan struct{} { return q.gone }

// Err returns the cause passed to Disconnect. It is only meaningful after
// Disconnected is closed.
func (q *Queue) Err() error {
	select {
	case <-q.gone:
		if q.err == nil {
			return ErrDisconnected
		}
		return errors.Join(ErrDisconnected, q.err)
	default:
		return nil
	}
}
