package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/metrics"
	"github.com/xhess/bodie/sound"
	"github.com/xhess/bodie/store"
	"github.com/xhess/bodie/timer"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeCatalog struct {
	workouts map[string]*models.WorkoutDetail
	err      error
	calls    int
}

func (f *fakeCatalog) Workout(
	_ context.Context,
	id string,
) (*models.WorkoutDetail, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	w, ok := f.workouts[id]
	if !ok {
		return nil, &catalog.FetchError{WorkoutID: id, Err: catalog.ErrWorkoutNotFound}
	}

	return w, nil
}

type fakePlayer struct {
	mu       sync.Mutex
	plays    int
	releases int
}

func (f *fakePlayer) Load(string) (sound.Handle, error) {
	return 1, nil
}

func (f *fakePlayer) Play(sound.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.plays++

	return nil
}

func (f *fakePlayer) Release(sound.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.releases++

	return nil
}

func (f *fakePlayer) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.plays, f.releases
}

type fakeTicker struct {
	c       chan time.Time
	stopped bool
	resets  int
	mu      sync.Mutex
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
}

func (f *fakeTicker) Reset(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resets++
}

func (f *fakeTicker) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.resets
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stopped
}

type fakeClock struct {
	ticker *fakeTicker
}

func (f *fakeClock) NewTicker(time.Duration) timer.Ticker {
	return f.ticker
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticker: &fakeTicker{c: make(chan time.Time)}}
}

func exercise(id string) *models.Exercise {
	return &models.Exercise{ID: id, Name: "Exercise " + id}
}

func workout(id string, exerciseIDs ...string) *models.WorkoutDetail {
	d := &models.WorkoutDetail{
		Workout:   models.Workout{ID: id, Name: "Workout " + id},
		Exercises: make([]models.WorkoutExercise, 0, len(exerciseIDs)),
	}

	for _, e := range exerciseIDs {
		d.Exercises = append(d.Exercises, models.WorkoutExercise{Exercise: exercise(e)})
	}

	return d
}

type fixture struct {
	catalog *fakeCatalog
	store   *store.Memory
	player  *fakePlayer
	clock   *fakeClock
}

func newFixture() *fixture {
	return &fixture{
		catalog: &fakeCatalog{
			workouts: map[string]*models.WorkoutDetail{
				"W1": workout("W1", "A", "B", "C"),
				"W2": workout("W2", "A", "B", "C", "D", "E", "F"),
			},
		},
		store:  store.NewMemory(),
		player: &fakePlayer{},
		clock:  newFakeClock(),
	}
}

func (f *fixture) controller(t *testing.T, workoutID string, opts ...Option) *Controller {
	t.Helper()

	base := []Option{
		WithLogger(discard),
		WithCue(sound.NewCue(f.player, "countdown", discard)),
		WithTimer(timer.WithClock(f.clock), timer.WithInitial(30)),
	}

	c := New(workoutID, f.catalog, f.store, append(base, opts...)...)
	t.Cleanup(c.Close)

	return c
}

func (f *fixture) loaded(t *testing.T, workoutID string, opts ...Option) *Controller {
	t.Helper()

	c := f.controller(t, workoutID, opts...)
	require.NoError(t, c.Load(context.Background()))

	return c
}

func windowIDs(c *Controller, count int) []string {
	var ids []string

	for _, item := range c.CurrentWindow(count) {
		ids = append(ids, item.Exercise.ID)
	}

	return ids
}

func TestLoadDefaults(t *testing.T) {
	f := newFixture()

	c := f.controller(t, "W1")
	assert.Equal(t, Loading, c.State())
	assert.NotEmpty(t, c.ID())

	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, Ready, c.State())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"", "", ""}, c.Weights())
	assert.Equal(t, "Workout W1", c.Workout().Name)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "A", cur.ID)

	assert.ErrorIs(t, c.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, 1, f.catalog.calls)
}

func TestLoadFailure(t *testing.T) {
	f := newFixture()
	f.catalog.err = errors.New("connection refused")

	c := f.controller(t, "W1")

	err := c.Load(context.Background())

	var fe *catalog.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "W1", fe.WorkoutID)

	assert.Equal(t, Failed, c.State())
	assert.Equal(t, err, c.Err())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Weights())

	assert.ErrorIs(t, c.Advance(), ErrNotReady)
	assert.ErrorIs(t, c.MarkWeight(0, "10"), ErrNotReady)
	assert.ErrorIs(t, c.Load(context.Background()), ErrAlreadyLoaded)

	_, err = c.ToggleTimer()
	assert.ErrorIs(t, err, ErrNotReady)

	count, err := metrics.New(f.store, discard).WorkoutCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a failed load is not a workout")
}

func TestLoadUnknownWorkout(t *testing.T) {
	f := newFixture()

	c := f.controller(t, "missing")

	err := c.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrWorkoutNotFound)
	assert.Equal(t, "error", c.State().String())
}

func TestAdvanceAllExercises(t *testing.T) {
	f := newFixture()

	var completions []models.Exercise

	c := f.loaded(t, "W2", WithOnComplete(func(e models.Exercise) {
		completions = append(completions, e)
	}))

	for i := range c.Len() - 1 {
		require.NoError(t, c.Advance())
		assert.Equal(t, i+1, c.Index())
		assert.True(t, c.IsCompleted(i))
	}

	assert.Equal(t, Ready, c.State())
	assert.Equal(t, 5, c.Index())
	assert.Empty(t, completions)

	require.NoError(t, c.Advance())
	assert.Equal(t, Completed, c.State())
	require.Len(t, completions, 1)
	assert.Equal(t, "F", completions[0].ID)

	require.NoError(t, c.Advance())
	assert.Equal(t, Completed, c.State())
	assert.Equal(t, 5, c.Index())
	assert.Len(t, completions, 1)
}

func TestAdvanceResetsTimerAndPlaysCue(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	snap, err := c.ToggleTimer()
	require.NoError(t, err)
	require.True(t, snap.Active)

	c.timer.Tick()
	c.timer.Tick()
	assert.Equal(t, 28, c.Timer().Remaining)

	require.NoError(t, c.Advance())

	assert.Equal(t, timer.Snapshot{Remaining: 30, Initial: 30}, c.Timer())

	plays, _ := f.player.counts()
	assert.Equal(t, 1, plays)
}

func TestTimerRestartsRearmTickSource(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	assert.Zero(t, f.clock.ticker.resetCount())

	_, err := c.ToggleTimer()
	require.NoError(t, err)
	assert.Equal(t, 1, f.clock.ticker.resetCount())

	require.NoError(t, c.Advance())
	assert.Equal(t, 2, f.clock.ticker.resetCount())
}

func TestTicksRecordTimeSpent(t *testing.T) {
	f := newFixture()

	var seen []int

	c := f.loaded(t, "W1", WithOnTick(func(s timer.Snapshot) {
		seen = append(seen, s.Remaining)
	}))

	c.timer.Tick()

	_, err := c.ToggleTimer()
	require.NoError(t, err)

	c.timer.Tick()
	c.timer.Tick()
	c.timer.Tick()

	assert.Equal(t, []int{29, 28, 27}, seen)

	spent, err := metrics.New(f.store, discard).TimeSpent()
	require.NoError(t, err)
	assert.Equal(t, 3, spent)
}

func TestTimerAlertAndTimeUp(t *testing.T) {
	f := newFixture()

	var timeUps int

	c := f.loaded(t, "W1",
		WithTimer(timer.WithInitial(5), timer.WithAlertAt(2)),
		WithOnTimeUp(func() { timeUps++ }),
	)

	_, err := c.ToggleTimer()
	require.NoError(t, err)

	for range 5 {
		c.timer.Tick()
	}

	plays, _ := f.player.counts()
	assert.Equal(t, 1, plays)
	assert.Equal(t, 1, timeUps)
	assert.False(t, c.Timer().Active)
}

func TestMarkWeight(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	for i := range c.Len() {
		require.NoError(t, c.MarkWeight(i, "w"+string(rune('0'+i))))
	}

	var weights []string
	for _, item := range c.CurrentWindow(3) {
		weights = append(weights, item.Weight)
	}

	assert.Equal(t, []string{"w0", "w1", "w2"}, weights)

	require.NoError(t, c.MarkWeight(1, ""))
	require.NoError(t, c.MarkWeight(2, "heavy!"))
	assert.Equal(t, []string{"w0", "", "heavy!"}, c.Weights())

	for _, i := range []int{-1, 3, 100} {
		err := c.MarkWeight(i, "x")
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	assert.Equal(t, []string{"w0", "", "heavy!"}, c.Weights())
}

func TestWeightsReturnsCopy(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	w := c.Weights()
	w[0] = "mutated"

	assert.Equal(t, "", c.Weights()[0])
}

func TestCurrentWindow(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W2")

	assert.Equal(t, []string{"A", "B", "C", "D"}, windowIDs(c, 4))
	assert.Equal(t, []string{"A", "B", "C", "D"}, windowIDs(c, 4), "restartable")
	assert.Empty(t, windowIDs(c, 0))

	for range 4 {
		require.NoError(t, c.Advance())
	}

	assert.Equal(t, []string{"E", "F"}, windowIDs(c, 4))

	var items []WindowItem
	for _, item := range c.CurrentWindow(2) {
		items = append(items, item)
	}

	want := []WindowItem{
		{Index: 4, Exercise: *exercise("E"), InFocus: true},
		{Index: 5, Exercise: *exercise("F")},
	}

	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("CurrentWindow() mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrentWindowIsLazy(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	window := c.CurrentWindow(2)

	require.NoError(t, c.MarkWeight(1, "40"))
	require.NoError(t, c.Advance())

	var items []WindowItem
	for _, item := range window {
		items = append(items, item)
	}

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Exercise.ID, "start index is fixed when called")
	assert.True(t, items[0].Completed)
	assert.False(t, items[0].InFocus)
	assert.Equal(t, "40", items[1].Weight)
	assert.True(t, items[1].InFocus)
}

func TestCurrentWindowStopsEarly(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W2")

	var n int

	for range c.CurrentWindow(6) {
		n++
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}

func TestEndToEnd(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.Set(store.KeyWorkoutCount, "7"))

	c := f.loaded(t, "W1")
	assert.Equal(t, []string{"", "", ""}, c.Weights())

	require.NoError(t, c.MarkWeight(0, "50"))
	require.NoError(t, c.Advance())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, []string{"50", "", ""}, c.Weights())

	require.NoError(t, c.Advance())
	assert.Equal(t, 2, c.Index())

	require.NoError(t, c.Advance())
	assert.Equal(t, Completed, c.State())

	c.Close()

	rec := metrics.New(f.store, discard)

	last, err := rec.LastExercise()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "C", last.Exercise.ID)
	assert.Equal(t, "W1", last.WorkoutID)

	count, err := rec.WorkoutCount()
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	// A new session for the same workout picks up the saved weights.
	again := f.loaded(t, "W1")
	assert.Equal(t, []string{"50", "", ""}, again.Weights())
	assert.Equal(t, 0, again.Index())
	assert.NotEqual(t, c.ID(), again.ID())

	count, err = rec.WorkoutCount()
	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestSavedWeightsResized(t *testing.T) {
	cases := []struct {
		name  string
		saved string
		want  []string
	}{
		{"shorter", `["5"]`, []string{"5", "", ""}},
		{"longer", `["1","2","3","4"]`, []string{"1", "2", "3"}},
		{"corrupt", `{not json`, []string{"", "", ""}},
		{"empty", ``, []string{"", "", ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			require.NoError(t, f.store.Set(store.WeightsKey("W1"), tc.saved))

			c := f.loaded(t, "W1")
			assert.Equal(t, tc.want, c.Weights())
		})
	}
}

type failingStore struct {
	*store.Memory
}

func (failingStore) Set(key, _ string) error {
	return &store.PersistenceError{Op: "set", Key: key, Err: errors.New("disk full")}
}

func TestPersistenceFailuresAreNotFatal(t *testing.T) {
	f := newFixture()

	c := New("W1", f.catalog, failingStore{store.NewMemory()},
		WithLogger(discard),
		WithTimer(timer.WithClock(f.clock)),
	)
	t.Cleanup(c.Close)

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.MarkWeight(0, "50"))
	require.NoError(t, c.Advance())

	c.Close()

	assert.Equal(t, []string{"50", "", ""}, c.Weights())
	assert.Equal(t, 1, c.Index())
}

func TestConcurrentMarkWeight(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, c.MarkWeight(i%3, "x"))
		}()
	}

	wg.Wait()
	c.Close()

	assert.Equal(t, []string{"x", "x", "x"}, c.Weights())

	v, found, err := f.store.Get(store.WeightsKey("W1"))
	require.NoError(t, err)
	require.True(t, found)

	var saved []string
	require.NoError(t, json.Unmarshal([]byte(v), &saved))
	assert.Len(t, saved, 3)
}

func TestClose(t *testing.T) {
	f := newFixture()
	c := f.loaded(t, "W1")

	c.Close()
	c.Close()

	assert.True(t, f.clock.ticker.isStopped())

	_, releases := f.player.counts()
	assert.Equal(t, 1, releases)

	require.NoError(t, c.MarkWeight(0, "after close"))
	assert.Equal(t, "after close", c.Weights()[0])

	_, found, _ := f.store.Get(store.WeightsKey("W1"))
	assert.False(t, found)
}

func TestCloseBeforeLoad(t *testing.T) {
	f := newFixture()
	c := f.controller(t, "W1")

	c.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, Ready, c.State())
	assert.False(t, f.clock.ticker.isStopped(), "tick source never acquired")
}

func TestSessionCommand(t *testing.T) {
	cmd, err := sessionCommand("")
	require.NoError(t, err)
	assert.Nil(t, cmd)

	cmd, err = sessionCommand(`notify-send "Workout done" 'all sets'`)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.True(t, slices.Equal(
		[]string{"notify-send", "Workout done", "all sets"},
		cmd.Args,
	))

	_, err = sessionCommand(`echo "unterminated`)
	assert.Error(t, err)
}
