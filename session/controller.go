package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/store"
	"github.com/xhess/bodie/timer"
)

// Load fetches the workout and the weights saved by earlier sessions. On
// failure the controller enters the Failed state and the returned error, a
// *catalog.FetchError, is kept for Err. A successful load counts as a workout
// start and starts the timer's tick source.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()

	if c.state != Loading || c.loadStarted {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}

	c.loadStarted = true

	c.mu.Unlock()

	detail, err := c.catalog.Workout(ctx, c.workoutID)
	if err != nil {
		var fe *catalog.FetchError
		if !errors.As(err, &fe) {
			err = &catalog.FetchError{WorkoutID: c.workoutID, Err: err}
		}

		c.mu.Lock()
		c.state = Failed
		c.err = err
		c.mu.Unlock()

		c.logger.Error("loading workout failed", slog.Any("error", err))

		return err
	}

	exercises := detail.ExerciseList()
	weights := c.readWeights(len(exercises))

	c.mu.Lock()
	c.workout = detail.Workout
	c.exercises = exercises
	c.weights = weights
	c.state = Ready

	if !c.closed {
		c.timer.Start()
	}

	c.mu.Unlock()

	count, err := c.recorder.RecordSessionStart()
	if err == nil {
		c.logger.Info(
			"session started",
			slog.Int("exercises", len(exercises)),
			slog.Int("workout_count", count),
		)
	}

	return nil
}

// readWeights returns the saved weights resized to n entries. Any failure is
// logged and yields empty weights.
func (c *Controller) readWeights(n int) []string {
	weights := make([]string, n)
	key := store.WeightsKey(c.workoutID)

	v, found, err := c.store.Get(key)
	if err != nil {
		c.logger.Error("reading weights failed", slog.Any("error", err))
		return weights
	}

	if !found || v == "" {
		return weights
	}

	var saved []string

	if err := json.Unmarshal([]byte(v), &saved); err != nil {
		c.logger.Error(
			"reading weights failed",
			slog.Any("error", &store.PersistenceError{Op: "decode", Key: key, Err: err}),
		)

		return weights
	}

	if len(saved) != n {
		c.logger.Warn(
			"saved weights do not match exercise count",
			slog.Int("saved", len(saved)),
			slog.Int("exercises", n),
		)
	}

	copy(weights, saved)

	return weights
}

// flushLocked schedules a write of the current weights. c.mu must be held.
// Writes are not ordered against each other; the last one to finish wins.
func (c *Controller) flushLocked() {
	if c.closed {
		return
	}

	weights := slices.Clone(c.weights)
	key := store.WeightsKey(c.workoutID)

	c.flushes.Add(1)

	go func() {
		defer c.flushes.Done()

		b, err := json.Marshal(weights)
		if err == nil {
			err = c.store.Set(key, string(b))
		}

		if err != nil {
			c.logger.Error("saving weights failed", slog.Any("error", err))
		}
	}()
}

// Advance moves focus to the next exercise, resets the countdown and plays
// the cue. At the last exercise it completes the session instead: the
// exercise is recorded as the last completed one and the completion hook
// fires. Advancing a completed session has no effect.
func (c *Controller) Advance() error {
	c.mu.Lock()

	switch c.state {
	case Completed:
		c.mu.Unlock()
		return nil
	case Loading, Failed:
		c.mu.Unlock()
		return ErrNotReady
	case Ready:
	}

	c.completed[c.index] = true

	if c.index < len(c.exercises)-1 {
		c.index++
		c.flushLocked()
		c.mu.Unlock()

		c.timer.Reset()
		c.cue.Play()

		return nil
	}

	c.state = Completed
	last := c.exercises[c.index]
	c.flushLocked()
	c.mu.Unlock()

	c.timer.Reset()

	_ = c.recorder.RecordLastExercise(c.workoutID, last)

	c.logger.Info("session completed", slog.String("exercise_id", last.ID))

	if c.onComplete != nil {
		c.onComplete(last)
	}

	c.runSessionCmd()

	return nil
}

// MarkWeight sets the weight text for the exercise at index i and schedules a
// save. The text is not validated.
func (c *Controller) MarkWeight(i int, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Loading || c.state == Failed {
		return ErrNotReady
	}

	if i < 0 || i >= len(c.weights) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	c.weights[i] = v
	c.flushLocked()

	return nil
}

// CurrentWindow yields up to count exercises starting at the index in focus
// when CurrentWindow is called. Entries are read as the sequence is
// iterated, and the sequence may be iterated more than once.
func (c *Controller) CurrentWindow(count int) iter.Seq2[int, WindowItem] {
	c.mu.Lock()
	start := c.index
	c.mu.Unlock()

	return func(yield func(int, WindowItem) bool) {
		for i := start; i < start+count; i++ {
			item, ok := c.item(i)
			if !ok || !yield(i, item) {
				return
			}
		}
	}
}

func (c *Controller) item(i int) (WindowItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.exercises) {
		return WindowItem{}, false
	}

	return WindowItem{
		Index:     i,
		Exercise:  c.exercises[i],
		Weight:    c.weights[i],
		Completed: c.completed[i],
		InFocus:   i == c.index && c.state == Ready,
	}, true
}

// ToggleTimer starts or pauses the countdown.
func (c *Controller) ToggleTimer() (timer.Snapshot, error) {
	if c.State() != Ready {
		return c.timer.Snapshot(), ErrNotReady
	}

	return c.timer.Toggle(), nil
}

// Timer returns the countdown state.
func (c *Controller) Timer() timer.Snapshot {
	return c.timer.Snapshot()
}

// State returns the current stage of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Err returns the load failure of a session in the Failed state.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

// Index returns the position of the exercise in focus.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.index
}

// Len returns the number of exercises.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.exercises)
}

// Current returns the exercise in focus. It reports false before the
// exercises are loaded.
func (c *Controller) Current() (models.Exercise, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index >= len(c.exercises) {
		return models.Exercise{}, false
	}

	return c.exercises[c.index], true
}

// Weights returns a copy of the weights.
func (c *Controller) Weights() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.weights)
}

// IsCompleted reports whether the exercise at index i has been advanced
// past.
func (c *Controller) IsCompleted(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.completed[i]
}

// Workout returns the workout metadata.
func (c *Controller) Workout() models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.workout
}

// WorkoutID returns the id of the workout being run.
func (c *Controller) WorkoutID() string {
	return c.workoutID
}

// ID returns the unique id of this session run.
func (c *Controller) ID() string {
	return c.id
}

// Close stops the countdown's tick source, releases the cue and waits for
// pending saves. It is safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.timer.Stop()
		c.cue.Close()
		c.flushes.Wait()
	})
}
