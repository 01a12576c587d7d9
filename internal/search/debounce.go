package search

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period a query must survive before it fires
const DefaultDelay = 300 * time.Millisecond

// Debouncer is a cancellable scheduled task. Each new input cancels whatever
// was pending and starts the window again.
//
// Callback hosts use Trigger. Tick-driven hosts (bubbletea) call Next on every
// keystroke, schedule their own tick carrying the returned token, and ask
// Current when the tick arrives.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger cancels any pending call and schedules fn(value) after the delay
func (d *Debouncer) Trigger(value string, fn func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	token := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if d.Current(token) {
			fn(value)
		}
	})
}

// Next invalidates any pending call and returns the token for the new one
func (d *Debouncer) Next() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return d.seq
}

// Current reports whether token still belongs to the latest input
func (d *Debouncer) Current(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.seq
}

// Cancel drops the pending call, if any
func (d *Debouncer) Cancel() {
	d.Next()
}
