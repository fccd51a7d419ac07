package timer

import "time"

// Clock creates the periodic tick source that drives a Timer.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker is a cancellable interval handle.
type Ticker interface {
	C() <-chan time.Time
	Stop()
	// Reset restarts the interval so that the next tick arrives d from now.
	Reset(d time.Duration)
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}

func (r *realTicker) Reset(d time.Duration) {
	r.t.Reset(d)
}
