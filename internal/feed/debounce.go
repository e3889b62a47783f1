package feed

import (
	"sync"
	"time"
)

// Debouncer delays propagation of a rapidly-changing string value until it
// has been stable for the quiescence window. Each Set cancels any pending
// delivery, so only the last value before a pause fires.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	fn     func(string)
	timer  *time.Timer
}

// NewDebouncer creates a debouncer that calls fn with the settled value.
// fn runs on a timer goroutine.
func NewDebouncer(window time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Set schedules value for delivery after the quiescence window, replacing
// any pending value.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.fn(value)
	})
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
