// Package timer operates the exercise countdown. A Timer counts whole seconds
// down from a configured initial value, plays an alert shortly before zero and
// deactivates itself when the countdown ends.
package timer

import (
	"sync"
	"time"
)

const (
	// DefaultSeconds is the length of a countdown cycle.
	DefaultSeconds = 30
	// DefaultAlertAt is the number of seconds remaining when the alert fires.
	DefaultAlertAt = 4
	// Interval is the period of the tick source.
	Interval = time.Second
)

// Snapshot is a point-in-time copy of the timer state.
type Snapshot struct {
	Remaining int
	Initial   int
	Active    bool
}

// Timer is a single countdown clock. Its state is guarded by a mutex so that
// ticks from the tick source and calls from the caller may interleave.
type Timer struct {
	clock   Clock
	ticker  Ticker
	now     func() time.Time
	armedAt time.Time
	onTick  func(Snapshot)
	onAlert func()
	onDone  func()
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex

	initial   int
	alertAt   int
	remaining int
	active    bool
	alerted   bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithInitial sets the countdown length in seconds. Values below 1 are
// ignored.
func WithInitial(seconds int) Option {
	return func(t *Timer) {
		if seconds >= 1 {
			t.initial = seconds
		}
	}
}

// WithAlertAt sets the seconds remaining at which the alert hook fires. Zero
// disables the alert.
func WithAlertAt(seconds int) Option {
	return func(t *Timer) {
		if seconds >= 0 {
			t.alertAt = seconds
		}
	}
}

// WithClock replaces the tick source.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// OnTick registers a hook invoked after every tick processed while active.
func OnTick(fn func(Snapshot)) Option {
	return func(t *Timer) {
		t.onTick = fn
	}
}

// OnAlert registers a hook invoked once per countdown cycle.
func OnAlert(fn func()) Option {
	return func(t *Timer) {
		t.onAlert = fn
	}
}

// OnDone registers a hook invoked when the countdown reaches zero.
func OnDone(fn func()) Option {
	return func(t *Timer) {
		t.onDone = fn
	}
}

// New creates an inactive timer with remaining set to its initial value.
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:   realClock{},
		now:     time.Now,
		initial: DefaultSeconds,
		alertAt: DefaultAlertAt,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.remaining = t.initial

	return t
}

func (t *Timer) snapshot() Snapshot {
	return Snapshot{
		Remaining: t.remaining,
		Initial:   t.initial,
		Active:    t.active,
	}
}

// Snapshot returns the current timer state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot()
}

// Toggle flips the active flag. Every activation restarts the full countdown
// rather than resuming it.
func (t *Timer) Toggle() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = !t.active
	if t.active {
		t.remaining = t.initial
		t.alerted = false
		t.rearmLocked()
	}

	return t.snapshot()
}

// Reset forces the timer back to its initial value and deactivates it.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remaining = t.initial
	t.active = false
	t.alerted = false
	t.rearmLocked()
}

// rearmLocked restarts the tick interval so that the first decrement comes a
// full second after the countdown restarts. t.mu must be held.
func (t *Timer) rearmLocked() {
	t.armedAt = t.now()

	if t.ticker != nil {
		t.ticker.Reset(Interval)
	}
}

// Tick advances the countdown by one second. It has no effect while the timer
// is inactive. Hooks run after the lock is released.
func (t *Timer) Tick() {
	t.mu.Lock()
	t.tickLocked()
}

// tickAt handles a tick fired at ts. Ticks fired before the countdown was
// last re-armed are dropped.
func (t *Timer) tickAt(ts time.Time) {
	t.mu.Lock()

	if ts.Before(t.armedAt) {
		t.mu.Unlock()
		return
	}

	t.tickLocked()
}

// tickLocked applies one tick. It is entered with t.mu held and releases it.
func (t *Timer) tickLocked() {
	if !t.active {
		t.mu.Unlock()
		return
	}

	prev := t.remaining
	t.remaining = max(prev-1, 0)

	alert := !t.alerted && prev >= t.alertAt && t.remaining < t.alertAt
	if alert {
		t.alerted = true
	}

	done := t.remaining == 0
	if done {
		t.active = false
	}

	snap := t.snapshot()

	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(snap)
	}

	if alert && t.onAlert != nil {
		t.onAlert()
	}

	if done && t.onDone != nil {
		t.onDone()
	}
}

// Start acquires the tick source and begins feeding ticks to the timer in a
// separate goroutine. Calling Start on a started timer has no effect.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return
	}

	stop := make(chan struct{})
	t.stop = stop

	ticker := t.clock.NewTicker(Interval)
	t.ticker = ticker

	t.wg.Add(1)

	go func() {
		defer t.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case ts := <-ticker.C():
				t.tickAt(ts)
			}
		}
	}()
}

// Stop releases the tick source and blocks until no further ticks can fire.
// It must not be called from within a hook.
func (t *Timer) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.ticker = nil
	t.mu.Unlock()

	if stop != nil {
		close(stop)
	}

	t.wg.Wait()
}
