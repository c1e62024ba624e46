package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrInterrupted is returned when the session ends because of a fatal signal.
var ErrInterrupted = errors.New("interrupted")

// Layout describes where a renderer puts the list for a given screen size.
type Layout struct {
	ListTop  int // screen row of the first list row
	ListRows int // rows available to the list
}

// Renderer paints frames. It receives a read-only snapshot and must not
// retain it past the call.
type Renderer interface {
	Layout(width, height int) Layout
	Render(v View, width, height int) error
}

// SizeFunc reports the terminal size.
type SizeFunc func() (width, height int, err error)

// Fallback size used before the terminal has reported one.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// LoopOptions configures a Loop.
type LoopOptions struct {
	Tick     time.Duration
	Size     SizeFunc
	Geometry *FrameGeometry
}

// Loop is the single consumer. It owns the BrowserState, applies commands in
// arrival order and repaints at least once per tick.
type Loop struct {
	state    *BrowserState
	queue    *Queue
	renderer Renderer
	opts     LoopOptions
	log      zerolog.Logger

	width, height int
}

// NewLoop creates a loop over state.
func NewLoop(state *BrowserState, queue *Queue, renderer Renderer, opts LoopOptions) *Loop {
	if opts.Tick <= 0 {
		opts.Tick = 100 * time.Millisecond
	}
	if opts.Geometry == nil {
		opts.Geometry = &FrameGeometry{}
	}
	return &Loop{
		state:    state,
		queue:    queue,
		renderer: renderer,
		opts:     opts,
		log:      log.With().Str("component", "loop").Logger(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Run paints and applies commands until Exit (nil), FatalSignal
// (ErrInterrupted), a producer failure (ErrDisconnected), a render failure,
// or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.opts.Tick)
	defer ticker.Stop()

	for {
		if err := l.paint(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.queue.C():
			if out := l.applyReady(cmd); out != Continue {
				return outcomeErr(out)
			}
		case <-l.queue.Disconnected():
			// Apply what producers enqueued before failing.
			if out := l.drain(); out != Continue {
				return outcomeErr(out)
			}
			err := l.queue.Err()
			l.log.Error().Err(err).Msg("producer disconnected, shutting down")
			return err
		case <-ticker.C:
		}
	}
}

// applyReady applies first and then every command already buffered, so a
// burst of input costs one repaint. It stops at the first non-Continue
// outcome, discarding anything queued behind it.
func (l *Loop) applyReady(first Command) Outcome {
	out := l.apply(first)
	for pending := len(l.queue.C()); out == Continue && pending > 0; pending-- {
		select {
		case cmd := <-l.queue.C():
			out = l.apply(cmd)
		default:
			return out
		}
	}
	return out
}

func (l *Loop) drain() Outcome {
	for {
		select {
		case cmd := <-l.queue.C():
			if out := l.apply(cmd); out != Continue {
				return out
			}
		default:
			return Continue
		}
	}
}

func (l *Loop) apply(cmd Command) Outcome {
	out := l.state.Apply(cmd)
	if l.log.GetLevel() <= zerolog.DebugLevel {
		l.log.Debug().
			Str("command", commandName(cmd)).
			Str("mode", l.state.Mode().Kind().String()).
			Int("selected", l.state.Selection().Index()).
			Msg("applied")
	}
	return out
}

func (l *Loop) paint() error {
	if l.opts.Size != nil {
		if w, h, err := l.opts.Size(); err == nil && w > 0 && h > 0 {
			l.width, l.height = w, h
		}
	}

	layout := l.renderer.Layout(l.width, l.height)
	l.state.SetViewportHeight(layout.ListRows)

	v := l.state.View()
	if err := l.renderer.Render(v, l.width, l.height); err != nil {
		return err
	}

	l.opts.Geometry.Store(Geometry{
		Top:    layout.ListTop,
		Rows:   layout.ListRows,
		Offset: v.Offset,
		Count:  len(v.Visible),
	})
	return nil
}

func outcomeErr(out Outcome) error {
	if out == Interrupted {
		return ErrInterrupted
	}
	return nil
}
