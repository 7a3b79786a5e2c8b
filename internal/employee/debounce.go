package employee

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period a search term must survive before it
// is committed to the filter.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid search input: only the last term within a quiet
// window reaches the commit callback. Each Trigger cancels the pending
// timer, so a steady stream of keystrokes commits exactly once, after the
// stream pauses.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	commit  func(string)
	timer   *time.Timer
	pending string
}

// NewDebouncer creates a debouncer committing through fn after quiet. A
// non-positive quiet falls back to DefaultDebounce.
func NewDebouncer(quiet time.Duration, fn func(string)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultDebounce
	}
	return &Debouncer{quiet: quiet, commit: fn}
}

// Trigger records the term and restarts the quiet window.
func (d *Debouncer) Trigger(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = term
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	term := d.pending
	d.timer = nil
	d.mu.Unlock()
	d.commit(term)
}

// Flush commits any pending term immediately instead of waiting out the
// quiet window.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	term := d.pending
	d.mu.Unlock()
	d.commit(term)
}

// Stop cancels any pending commit.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
