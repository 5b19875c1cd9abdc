package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiet period after the last event before a batch is delivered.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer coalesces bursts of changed paths into sorted, duplicate-free batches.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
	stopped  bool
}

// NewDebouncer creates a Debouncer calling callback once window has passed
// without new paths.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs on the timer goroutine; the callback is invoked asynchronously.
func (d *Debouncer) fire() {
	paths := d.take(false)
	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush delivers the pending paths immediately and waits for the callback.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		// the timer already fired and owns the batch
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	paths := d.take(false)
	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Stop discards pending paths and ignores later additions.
func (d *Debouncer) Stop() {
	d.take(true)
}

func (d *Debouncer) take(stop bool) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if stop {
		d.stopped = true
		clear(d.pending)
		return nil
	}

	paths := slices.Sorted(maps.Keys(d.pending))
	clear(d.pending)
	return paths
}
