// Package tui implements the interactive host browser: the command
// vocabulary, the mode machine, selection tracking, input producers and the
// control loop that ties them together.
package tui

import (
	"context"
	"time"

	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// producerGrace bounds how long shutdown waits for producers blocked in a
// device read. Anything still polling is left to process exit.
const producerGrace = 250 * time.Millisecond

// Options configures a Browser.
type Options struct {
	Tick      time.Duration
	QueueSize int
	Keys      KeyMap
	Size      SizeFunc
	Signals   SignalSource

	// Subscription, when set, is used instead of subscribing through
	// Signals. The caller owns it and stops it after Run returns.
	Subscription *Subscription
}

// Browser wires the producers, the queue and the control loop for one
// session over a fixed store.
type Browser struct {
	store    *entry.Store
	renderer Renderer
	events   EventReader
	opts     Options
}

// New creates a Browser. events supplies keyboard and mouse input.
func New(store *entry.Store, renderer Renderer, events EventReader, opts Options) *Browser {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if len(opts.Keys.Quit.Keys()) == 0 {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Subscription == nil && opts.Signals.Notify == nil {
		opts.Signals = OSSignals()
	}
	return &Browser{
		store:    store,
		renderer: renderer,
		events:   events,
		opts:     opts,
	}
}

// Run blocks until the session ends. It returns nil after a normal quit,
// ErrInterrupted after a fatal signal, and an error wrapping
// ErrDisconnected when an input producer fails.
func (b *Browser) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		queue    = NewQueue(b.opts.QueueSize)
		geometry = &FrameGeometry{}
		dispatch = NewDispatcher(b.opts.Keys, geometry)
		state    = NewBrowserState(b.store)
		loop     = NewLoop(state, queue, b.renderer, LoopOptions{
			Tick:     b.opts.Tick,
			Size:     b.opts.Size,
			Geometry: geometry,
		})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ReadInput(gctx, b.events, dispatch, queue) })
	g.Go(func() error {
		if sub := b.opts.Subscription; sub != nil {
			return sub.Listen(gctx, queue)
		}
		return ListenSignals(gctx, b.opts.Signals, queue)
	})

	runErr := loop.Run(ctx)
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			log.Debug().Err(err).Msg("producer exited with error")
		}
	case <-time.After(producerGrace):
		log.Debug().Msg("producers still polling at shutdown")
	}

	return runErr
}
