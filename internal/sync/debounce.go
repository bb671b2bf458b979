package sync

import (
	stdsync "sync"
	"time"
)

type flushState int

const (
	stateIdle flushState = iota
	statePendingDebounced
	stateFlushing
)

// debouncer coalesces bursts of non-critical writes into a single trailing
// flush. Every non-critical note while a flush is pending pushes the
// deadline out again, so only the last mutation of a burst pays the write.
type debouncer struct {
	mu       stdsync.Mutex
	state    flushState
	rearm    bool
	interval time.Duration
	timer    *time.Timer
	flush    func()
}

func newDebouncer(interval time.Duration, flush func()) *debouncer {
	return &debouncer{interval: interval, flush: flush}
}

// NoteNonCritical schedules (or reschedules) the trailing flush.
func (d *debouncer) NoteNonCritical() {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case stateIdle:
		d.state = statePendingDebounced
		d.timer = time.AfterFunc(d.interval, d.fire)
	case statePendingDebounced:
		d.timer.Reset(d.interval)
	case stateFlushing:
		// The in-flight flush may have snapshotted before this change landed;
		// re-arm the trailing timer once it finishes.
		d.rearm = true
	}
}

// NoteCritical cancels any pending trailing flush and runs the flush
// immediately on the caller's goroutine.
func (d *debouncer) NoteCritical() {
	d.mu.Lock()
	if d.state == statePendingDebounced && d.timer != nil {
		d.timer.Stop()
	}
	d.state = stateFlushing
	d.mu.Unlock()

	d.flush()
	d.settle()
}

func (d *debouncer) fire() {
	d.mu.Lock()
	if d.state != statePendingDebounced {
		d.mu.Unlock()
		return
	}
	d.state = stateFlushing
	d.mu.Unlock()

	d.flush()
	d.settle()
}

// settle returns to idle after a flush, or re-arms the trailing timer when a
// non-critical note landed while the flush was running.
func (d *debouncer) settle() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rearm {
		d.rearm = false
		d.state = statePendingDebounced
		d.timer = time.AfterFunc(d.interval, d.fire)
		return
	}

	if d.state == stateFlushing {
		d.state = stateIdle
	}
}

// Cancel drops any pending flush without running it.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.rearm = false
	d.state = stateIdle
}

func (d *debouncer) State() flushState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
