package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
	resets  []time.Duration
}

func (f *fakeTicker) Reset(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resets = append(f.resets, d)
}

func (f *fakeTicker) resetCalls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]time.Duration(nil), f.resets...)
}

func (f *fakeTicker) C() <-chan time.Time {
	return f.c
}

func (f *fakeTicker) Stop() {
	f.once.Do(func() {
		close(f.stopped)
	})
}

type fakeClock struct {
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		ticker: &fakeTicker{
			c:       make(chan time.Time),
			stopped: make(chan struct{}),
		},
	}
}

func (f *fakeClock) NewTicker(time.Duration) Ticker {
	return f.ticker
}

func TestFullCycle(t *testing.T) {
	var alerts, dones, ticks, alertRemaining int

	tm := New(
		WithInitial(30),
		WithAlertAt(4),
		OnTick(func(Snapshot) { ticks++ }),
		OnDone(func() { dones++ }),
	)
	tm.onAlert = func() {
		alerts++
		alertRemaining = tm.Snapshot().Remaining
	}

	snap := tm.Toggle()
	require.True(t, snap.Active)
	require.Equal(t, 30, snap.Remaining)

	for i := 0; i < 30; i++ {
		tm.Tick()
	}

	snap = tm.Snapshot()
	assert.Equal(t, 0, snap.Remaining)
	assert.False(t, snap.Active)
	assert.Equal(t, 1, alerts)
	assert.Equal(t, 3, alertRemaining)
	assert.Equal(t, 1, dones)
	assert.Equal(t, 30, ticks)

	// further ticks are ignored once inactive
	tm.Tick()
	assert.Equal(t, 30, ticks)
	assert.Equal(t, 0, tm.Snapshot().Remaining)
}

func TestAlertOncePerCycle(t *testing.T) {
	var alerts int

	tm := New(WithInitial(10), WithAlertAt(4), OnAlert(func() { alerts++ }))

	tm.Toggle()

	for i := 0; i < 8; i++ {
		tm.Tick()
	}

	assert.Equal(t, 1, alerts)

	// pausing and re-activating restarts the cycle
	tm.Toggle()
	tm.Toggle()

	for i := 0; i < 10; i++ {
		tm.Tick()
	}

	assert.Equal(t, 2, alerts)
}

func TestAlertSkippedWhenShorterThanThreshold(t *testing.T) {
	var alerts int

	tm := New(WithInitial(3), WithAlertAt(4), OnAlert(func() { alerts++ }))

	tm.Toggle()

	for i := 0; i < 3; i++ {
		tm.Tick()
	}

	assert.Equal(t, 0, alerts)
	assert.False(t, tm.Snapshot().Active)
}

func TestToggleRestartsCountdown(t *testing.T) {
	tm := New(WithInitial(30))

	snap := tm.Toggle()
	assert.Equal(t, Snapshot{Remaining: 30, Initial: 30, Active: true}, snap)

	tm.Tick()
	tm.Tick()

	snap = tm.Toggle()
	assert.False(t, snap.Active)
	assert.Equal(t, 28, snap.Remaining)

	snap = tm.Toggle()
	assert.True(t, snap.Active)
	assert.Equal(t, 30, snap.Remaining)
}

func TestToggleTwiceBeforeTick(t *testing.T) {
	tm := New(WithInitial(30))

	first := tm.Toggle()
	second := tm.Toggle()
	third := tm.Toggle()

	assert.True(t, first.Active)
	assert.Equal(t, 30, first.Remaining)
	assert.False(t, second.Active)
	assert.Equal(t, 30, second.Remaining)
	assert.True(t, third.Active)
	assert.Equal(t, 30, third.Remaining)
}

func TestReset(t *testing.T) {
	tm := New(WithInitial(20))

	tm.Toggle()
	tm.Tick()
	tm.Reset()

	assert.Equal(t, Snapshot{Remaining: 20, Initial: 20, Active: false}, tm.Snapshot())

	// reset while inactive is also a no-op on the value
	tm.Reset()
	assert.Equal(t, 20, tm.Snapshot().Remaining)
}

func TestInactiveTickIsNoop(t *testing.T) {
	var ticks int

	tm := New(OnTick(func(Snapshot) { ticks++ }))
	tm.Tick()

	assert.Equal(t, DefaultSeconds, tm.Snapshot().Remaining)
	assert.Zero(t, ticks)
}

func TestInvalidOptionsIgnored(t *testing.T) {
	tm := New(WithInitial(0), WithAlertAt(-1))

	assert.Equal(t, DefaultSeconds, tm.initial)
	assert.Equal(t, DefaultAlertAt, tm.alertAt)
}

func TestStartStop(t *testing.T) {
	clock := newFakeClock()
	ticked := make(chan Snapshot, 1)

	tm := New(
		WithInitial(5),
		WithClock(clock),
		OnTick(func(s Snapshot) { ticked <- s }),
	)

	tm.Start()
	tm.Start() // second start is ignored
	tm.Toggle()

	clock.ticker.c <- time.Now()

	select {
	case s := <-ticked:
		assert.Equal(t, 4, s.Remaining)
	case <-time.After(time.Second):
		t.Fatal("tick was not delivered")
	}

	tm.Stop()

	select {
	case <-clock.ticker.stopped:
	default:
		t.Fatal("ticker was not released")
	}

	// stopping twice is safe
	tm.Stop()
}

func TestActivationRearmsTicker(t *testing.T) {
	clock := newFakeClock()

	tm := New(WithInitial(30), WithClock(clock))
	tm.Start()
	t.Cleanup(tm.Stop)

	assert.Empty(t, clock.ticker.resetCalls())

	tm.Toggle()
	assert.Equal(t, []time.Duration{Interval}, clock.ticker.resetCalls())

	// pausing leaves the tick source alone
	tm.Toggle()
	assert.Len(t, clock.ticker.resetCalls(), 1)

	tm.Reset()
	assert.Equal(t, []time.Duration{Interval, Interval}, clock.ticker.resetCalls())
}

func TestTickFiredBeforeActivationIsDropped(t *testing.T) {
	clock := newFakeClock()
	ticked := make(chan Snapshot, 1)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base

	tm := New(
		WithInitial(30),
		WithClock(clock),
		OnTick(func(s Snapshot) { ticked <- s }),
	)
	tm.now = func() time.Time { return now }

	tm.Start()
	t.Cleanup(tm.Stop)

	tm.Toggle()

	// fired by the old interval, 250ms before the countdown started
	clock.ticker.c <- base.Add(-250 * time.Millisecond)
	clock.ticker.c <- base.Add(time.Second)

	select {
	case s := <-ticked:
		assert.Equal(t, 29, s.Remaining)
	case <-time.After(time.Second):
		t.Fatal("tick was not delivered")
	}

	assert.Equal(t, 29, tm.Snapshot().Remaining)
}
