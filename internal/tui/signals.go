package tui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

// SignalSource subscribes to operating system signals.
type SignalSource struct {
	Notify func(c chan<- os.Signal, sig ...os.Signal)
	Stop   func(c chan<- os.Signal)
}

// OSSignals returns the process signal source.
func OSSignals() SignalSource {
	return SignalSource{Notify: signal.Notify, Stop: signal.Stop}
}

// Subscription is a live interrupt and terminate subscription. Taking it
// before the terminal is acquired, and stopping it only after the terminal
// is restored, keeps a signal from killing the process in raw mode.
type Subscription struct {
	ch   chan os.Signal
	stop func(chan<- os.Signal)
	once sync.Once
}

// Subscribe starts catching interrupt and terminate signals from src.
// Signals that arrive before Listen runs are buffered.
func Subscribe(src SignalSource) *Subscription {
	ch := make(chan os.Signal, 1)
	src.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return &Subscription{ch: ch, stop: src.Stop}
}

// Stop ends the subscription. Later calls do nothing.
func (s *Subscription) Stop() {
	s.once.Do(func() { s.stop(s.ch) })
}

// Listen forwards signals to q as FatalSignal until ctx is cancelled. Sends
// wait for buffer space; a shutdown request is never dropped. The
// subscription stays active after Listen returns.
func (s *Subscription) Listen(ctx context.Context, q *Queue) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-s.ch:
			log.Warn().Str("signal", sig.String()).Msg("received signal")
			err := q.Send(ctx, FatalSignal{Reason: sig.String()})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		}
	}
}

// ListenSignals subscribes to src for the duration of the call and forwards
// signals to q until ctx is cancelled.
func ListenSignals(ctx context.Context, src SignalSource, q *Queue) error {
	sub := Subscribe(src)
	defer sub.Stop()
	return sub.Listen(ctx, q)
}
