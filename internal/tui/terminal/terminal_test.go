package terminal

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRaw struct {
	raw        bool
	makeErr    error
	restoreErr error
	restores   int
}

func (f *fakeRaw) MakeRaw() error {
	if f.makeErr != nil {
		return f.makeErr
	}
	f.raw = true
	return nil
}

func (f *fakeRaw) Restore() error {
	f.restores++
	f.raw = false
	return f.restoreErr
}

// failingWriter fails on the write whose content contains fail. It only
// implements io.Writer so io.WriteString cannot bypass the failure.
type failingWriter struct {
	buf  bytes.Buffer
	fail string
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.fail != "" && strings.Contains(string(p), w.fail) {
		return 0, errors.New("write failed")
	}
	return w.buf.Write(p)
}

func (w *failingWriter) String() string { return w.buf.String() }

func TestManager_AcquireRelease(t *testing.T) {
	var out bytes.Buffer
	raw := &fakeRaw{}
	m := New(&out, raw, Options{Mouse: true})

	require.NoError(t, m.Acquire())
	assert.True(t, raw.raw)

	acquired := out.String()
	assert.Equal(t,
		ansi.SetModeAltScreenSaveCursor+ansi.SetModeMouseButtonEvent+ansi.SetModeMouseExtSgr+ansi.HideCursor,
		acquired)

	out.Reset()
	require.NoError(t, m.Release())
	assert.False(t, raw.raw)
	assert.Equal(t,
		ansi.ShowCursor+ansi.ResetModeMouseExtSgr+ansi.ResetModeMouseButtonEvent+ansi.EraseEntireScreen+ansi.ResetModeAltScreenSaveCursor,
		out.String(),
		"restored in reverse order")
	assert.Equal(t, 1, m.Releases())
}

func TestManager_NoMouse(t *testing.T) {
	var out bytes.Buffer
	m := New(&out, &fakeRaw{}, Options{})

	require.NoError(t, m.Acquire())
	assert.NotContains(t, out.String(), ansi.SetModeMouseButtonEvent)

	require.NoError(t, m.Release())
	assert.NotContains(t, out.String(), ansi.ResetModeMouseButtonEvent)
}

func TestManager_ReleaseExactlyOnce(t *testing.T) {
	var out bytes.Buffer
	raw := &fakeRaw{}
	m := New(&out, raw, Options{Mouse: true})
	require.NoError(t, m.Acquire())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Release()
		}()
	}
	wg.Wait()
	_ = m.Release()

	assert.Equal(t, 1, m.Releases())
	assert.Equal(t, 1, raw.restores)
	assert.Equal(t, 1, strings.Count(out.String(), ansi.ShowCursor))
}

func TestManager_ReleaseWithoutAcquire(t *testing.T) {
	var out bytes.Buffer
	raw := &fakeRaw{}
	m := New(&out, raw, Options{})

	require.NoError(t, m.Release())
	assert.Empty(t, out.String())
	assert.Zero(t, raw.restores)
	assert.Error(t, m.Acquire(), "a released manager cannot be reused")
}

func TestManager_RawModeFailure(t *testing.T) {
	var out bytes.Buffer
	m := New(&out, &fakeRaw{makeErr: errors.New("not a tty")}, Options{})

	err := m.Acquire()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enter raw mode")
	assert.Empty(t, out.String(), "nothing was written")
}

func TestManager_PartialAcquireIsUndone(t *testing.T) {
	tests := []struct {
		name       string
		fail       string
		wantUndone []string
	}{
		{
			name:       "alternate screen",
			fail:       ansi.SetModeAltScreenSaveCursor,
			wantUndone: nil,
		},
		{
			name:       "mouse",
			fail:       ansi.SetModeMouseButtonEvent,
			wantUndone: []string{ansi.ResetModeAltScreenSaveCursor},
		},
		{
			name:       "cursor",
			fail:       ansi.HideCursor,
			wantUndone: []string{ansi.ResetModeMouseButtonEvent, ansi.ResetModeAltScreenSaveCursor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &failingWriter{fail: tt.fail}
			raw := &fakeRaw{}
			m := New(w, raw, Options{Mouse: true})

			err := m.Acquire()
			require.Error(t, err)
			assert.False(t, raw.raw, "raw mode is always undone")
			assert.Equal(t, 1, raw.restores)
			assert.Contains(t, err.Error(), "write failed")
			assert.Equal(t, 1, m.Releases(), "failed acquire restores once")
			for _, seq := range tt.wantUndone {
				assert.Contains(t, w.String(), seq)
			}
			assert.NotContains(t, w.String(), tt.fail, "failed step left no output")

			// A deferred Release after the failure must not restore twice.
			_ = m.Release()
			assert.Equal(t, 1, raw.restores)
			assert.Equal(t, 1, m.Releases())
		})
	}
}

func TestManager_ReleaseContinuesPastErrors(t *testing.T) {
	var out bytes.Buffer
	raw := &fakeRaw{restoreErr: errors.New("tcsetattr failed")}
	m := New(&out, raw, Options{})
	require.NoError(t, m.Acquire())

	err := m.Release()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore raw mode")
	assert.Contains(t, out.String(), ansi.ShowCursor, "cursor shown even though raw restore failed")
	assert.Equal(t, err, m.Release(), "later calls return the first result")
}
