package sync

import (
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebounceReArmsForChangesLandingMidFlush(t *testing.T) {
	const interval = 100 * time.Millisecond

	var mu stdsync.Mutex
	flushes := 0
	var d *debouncer
	d = newDebouncer(interval, func() {
		mu.Lock()
		flushes++
		first := flushes == 1
		mu.Unlock()

		// A mutation arrives while the first flush is still writing. It must
		// not be lost until the next mutation or Close.
		if first {
			d.NoteNonCritical()
		}
	})

	d.NoteCritical()

	mu.Lock()
	require.Equal(t, 1, flushes)
	mu.Unlock()

	// The trailing timer re-armed during the flush fires one more write.
	time.Sleep(interval + 150*time.Millisecond)

	mu.Lock()
	require.Equal(t, 2, flushes)
	mu.Unlock()
}

func TestDebounceCancelDropsPendingFlush(t *testing.T) {
	const interval = 50 * time.Millisecond

	var mu stdsync.Mutex
	flushes := 0
	d := newDebouncer(interval, func() {
		mu.Lock()
		flushes++
		mu.Unlock()
	})

	d.NoteNonCritical()
	d.Cancel()

	time.Sleep(interval + 100*time.Millisecond)

	mu.Lock()
	require.Equal(t, 0, flushes)
	mu.Unlock()

	require.Equal(t, stateIdle, d.State())
}
