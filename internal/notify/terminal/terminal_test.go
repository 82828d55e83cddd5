package terminal_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify/terminal"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 5, 13, 7, 0, 0, time.UTC) }

func TestDisplayerDisplay(t *testing.T) {
	tests := map[string]struct {
		bell   bool
		msg    model.Message
		expOut string
	}{
		"A message with body should be printed in two lines.": {
			msg:    model.Message{Title: "⚠️ 1 overdue task!", Body: "Pay rent", Tag: "nudge-overdue"},
			expOut: "[1:07 PM] ⚠️ 1 overdue task!\n    Pay rent\n",
		},

		"A message without body should be printed in one line.": {
			msg:    model.Message{Title: "🎉 Test Notification", Tag: "nudge-test"},
			expOut: "[1:07 PM] 🎉 Test Notification\n",
		},

		"Bell should be rung before the message.": {
			bell:   true,
			msg:    model.Message{Title: "📋 2 tasks pending", Tag: "nudge-pending"},
			expOut: "\a[1:07 PM] 📋 2 tasks pending\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			d, err := terminal.NewDisplayer(terminal.DisplayerConfig{Out: &out, Bell: test.bell, Now: fixedNow})
			require.NoError(t, err)

			err = d.Display(context.Background(), test.msg)
			require.NoError(t, err)
			assert.Equal(t, test.expOut, out.String())
		})
	}
}

// blockingWriter blocks the first write until released.
type blockingWriter struct {
	mu      sync.Mutex
	writes  int
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingWriter) Write(p []byte) (int, error) {
	b.once.Do(func() {
		close(b.started)
		<-b.release
	})
	b.mu.Lock()
	b.writes++
	b.mu.Unlock()
	return len(p), nil
}

func TestDisplayerCoalescesInFlightMessages(t *testing.T) {
	w := &blockingWriter{started: make(chan struct{}), release: make(chan struct{})}
	d, err := terminal.NewDisplayer(terminal.DisplayerConfig{Out: w, Now: fixedNow})
	require.NoError(t, err)

	msg := model.Message{Title: "⚠️ 1 overdue task!", Tag: "nudge-overdue"}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, d.Display(context.Background(), msg))
	}()
	<-w.started

	// Same message while the first one is still being displayed.
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, d.Display(context.Background(), msg))
	}()

	time.Sleep(50 * time.Millisecond)
	close(w.release)
	wg.Wait()

	assert.Equal(t, 1, w.writes)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestDisplayerWriteError(t *testing.T) {
	d, err := terminal.NewDisplayer(terminal.DisplayerConfig{Out: failingWriter{}})
	require.NoError(t, err)

	err = d.Display(context.Background(), model.Message{Title: "t"})
	assert.Error(t, err)
}
