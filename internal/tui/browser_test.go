package tui

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/charmbracelet/x/input"
	"github.com/hay-kot/sshdeck/pkg/tuitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBrowser(t *testing.T, b *Browser) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := b.Run(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded, "browser did not finish")
	return err
}

func TestBrowser_QuitFromKeyboard(t *testing.T) {
	r := &recordingRenderer{}
	events := newFakeReader(tuitest.KeyPresses("jjq"))
	fake := newFakeSignals()

	b := New(newStore("a", "b", "c"), r, events, Options{
		Tick:    5 * time.Millisecond,
		Signals: fake.source(),
	})

	require.NoError(t, runBrowser(t, b))
	require.NotEmpty(t, r.frames)
}

func TestBrowser_SearchThenQuit(t *testing.T) {
	r := &recordingRenderer{}
	keys := append([]input.Event{tuitest.KeyPress('/')}, tuitest.KeyPresses("db")...)
	keys = append(keys, tuitest.KeyPress('q'), tuitest.KeyEsc(), tuitest.KeyPress('q'))
	events := newFakeReader(keys)

	b := New(newStore("web1", "web2", "db1"), r, events, Options{
		Tick:    5 * time.Millisecond,
		Signals: newFakeSignals().source(),
	})

	// The first q is query text, so only the second one quits.
	require.NoError(t, runBrowser(t, b))
}

func TestBrowser_SignalInterrupts(t *testing.T) {
	r := &recordingRenderer{}
	fake := newFakeSignals()

	b := New(newStore("a"), r, newFakeReader(), Options{
		Tick:    5 * time.Millisecond,
		Signals: fake.source(),
	})

	go func() {
		ch := <-fake.subscribed
		ch <- os.Interrupt
	}()

	err := runBrowser(t, b)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestBrowser_SignalBeforeRunInterrupts(t *testing.T) {
	fake := newFakeSignals()
	sub := Subscribe(fake.source())
	ch := <-fake.subscribed
	ch <- syscall.SIGTERM

	b := New(newStore("a"), &recordingRenderer{}, newFakeReader(), Options{
		Tick:         5 * time.Millisecond,
		Subscription: sub,
	})

	assert.ErrorIs(t, runBrowser(t, b), ErrInterrupted)
	assert.Nil(t, b.opts.Signals.Notify, "caller subscription replaces the default source")

	select {
	case <-fake.stopped:
		t.Fatal("browser stopped a subscription it does not own")
	default:
	}
	sub.Stop()
}

func TestBrowser_CtrlCInterrupts(t *testing.T) {
	b := New(newStore("a"), &recordingRenderer{}, newFakeReader([]input.Event{tuitest.Ctrl('c')}), Options{
		Signals: newFakeSignals().source(),
	})

	assert.ErrorIs(t, runBrowser(t, b), ErrInterrupted)
}

func TestBrowser_ReaderFailure(t *testing.T) {
	events := newFakeReader()
	events.errs <- errors.New("eof on tty")

	b := New(newStore("a"), &recordingRenderer{}, events, Options{
		Tick:    5 * time.Millisecond,
		Signals: newFakeSignals().source(),
	})

	err := runBrowser(t, b)
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestNew_Defaults(t *testing.T) {
	b := New(newStore(), &recordingRenderer{}, newFakeReader(), Options{})

	assert.Equal(t, 256, b.opts.QueueSize)
	assert.NotEmpty(t, b.opts.Keys.Quit.Keys())
	assert.NotNil(t, b.opts.Signals.Notify)
}
