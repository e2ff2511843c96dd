package selector

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultScrollQuiet is how long scrolling must stay idle before the list
// counts as settled.
const DefaultScrollQuiet = 200 * time.Millisecond

// Debouncer calls fire once activity has been idle for the quiet period.
// Every Trigger restarts the wait. After Close, fire is never called again,
// even for a timer that had already expired but not yet run.
type Debouncer struct {
	clock clock.Clock
	quiet time.Duration
	fire  func()

	mu     sync.Mutex
	timer  *clock.Timer
	gen    uint64
	closed bool
}

// NewDebouncer returns a Debouncer on clk. A nil clk uses the wall clock and a
// non-positive quiet uses DefaultScrollQuiet.
func NewDebouncer(clk clock.Clock, quiet time.Duration, fire func()) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	if quiet <= 0 {
		quiet = DefaultScrollQuiet
	}
	return &Debouncer{clock: clk, quiet: quiet, fire: fire}
}

// Quiet returns the idle period.
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Trigger records activity and restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.expire(gen) })
}

// Pending reports whether a fire is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops a scheduled fire without closing the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Close cancels any scheduled fire and disables the debouncer for good.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	d.closed = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fire := d.fire
	d.mu.Unlock()

	if fire != nil {
		fire()
	}
}
