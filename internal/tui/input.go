package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/x/input"
	"github.com/muesli/cancelreader"
	"github.com/rs/zerolog/log"
)

// EventReader is the part of *input.Reader the input producer needs.
type EventReader interface {
	ReadEvents() ([]input.Event, error)
	Cancel() bool
}

// ReadInput polls r for key and mouse events and forwards decoded commands
// to q until ctx is cancelled. A read failure or panic disconnects q so the
// control loop shuts down instead of waiting forever.
func ReadInput(ctx context.Context, r EventReader, d *Dispatcher, q *Queue) (err error) {
	logger := log.With().Str("component", "input").Logger()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("input producer panic: %v", rec)
			logger.Error().Err(err).Msg("producer failed")
			q.Disconnect(err)
		}
	}()

	stop := context.AfterFunc(ctx, func() { r.Cancel() })
	defer stop()

	for {
		events, err := r.ReadEvents()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, cancelreader.ErrCanceled) {
				return nil
			}
			logger.Error().Err(err).Msg("read input")
			q.Disconnect(err)
			return fmt.Errorf("read input: %w", err)
		}

		for _, ev := range events {
			if d.Dispatch(ev, q.TrySend) {
				logger.Debug().Str("mode", d.Mode().String()).Msg("dispatched")
			}
		}
	}
}
