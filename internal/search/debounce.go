package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a search runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs only the last of a burst of triggers, once the triggers have
// stopped for the configured delay.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool

	// inflight counts scheduled functions that have neither run nor been stopped.
	inflight sync.WaitGroup
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any function scheduled earlier that has not
// started yet. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.pending = fn
	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()
		fn()
	})
}

// Flush runs the scheduled function immediately on the calling goroutine if it
// is still waiting for its delay. If it has already fired, Flush waits for it
// to finish.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	if d.timer == nil || !d.timer.Stop() {
		fn = nil
	}
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn == nil {
		d.inflight.Wait()
		return
	}
	defer d.inflight.Done()
	fn()
}

// Stop cancels the pending function, if any, and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.timer = nil
}
