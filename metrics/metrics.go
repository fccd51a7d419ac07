// Package metrics maintains the durable counters that outlive a single
// workout session: how many workouts were started, how many seconds were spent
// under an active timer, and which exercise was completed last.
package metrics

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/store"
)

// Recorder reads and updates counters in a Store. Read-modify-write cycles are
// serialised within the process.
type Recorder struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// New returns a Recorder backed by s.
func New(s store.Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Recorder{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// readInt returns the integer stored under key, defaulting to 0 when the key
// is absent or holds something other than a non-negative integer.
func (r *Recorder) readInt(key string) (int, error) {
	v, found, err := r.store.Get(key)
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		r.logger.Warn(
			"resetting unreadable counter",
			slog.String("key", key),
			slog.String("value", v),
		)

		return 0, nil
	}

	return n, nil
}

func (r *Recorder) increment(key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.readInt(key)
	if err != nil {
		r.logger.Error("reading counter failed", slog.String("key", key), slog.Any("error", err))
		return 0, err
	}

	n++

	if err := r.store.Set(key, strconv.Itoa(n)); err != nil {
		r.logger.Error("writing counter failed", slog.String("key", key), slog.Any("error", err))
		return 0, err
	}

	return n, nil
}

// RecordSessionStart increments the workout count and returns the new value.
// Every call increments, including repeat visits to the same workout.
func (r *Recorder) RecordSessionStart() (int, error) {
	return r.increment(store.KeyWorkoutCount)
}

// RecordTick adds one second to the time spent total.
func (r *Recorder) RecordTick() (int, error) {
	return r.increment(store.KeyTimeSpent)
}

// RecordLastExercise overwrites the last completed exercise.
func (r *Recorder) RecordLastExercise(workoutID string, e models.Exercise) error {
	b, err := json.Marshal(models.LastExercise{
		WorkoutID:   workoutID,
		Exercise:    e,
		CompletedAt: r.now(),
	})
	if err != nil {
		return err
	}

	err = r.store.Set(store.KeyLastExercise, string(b))
	if err != nil {
		r.logger.Error("storing last exercise failed", slog.Any("error", err))
	}

	return err
}

// WorkoutCount returns the number of recorded session starts.
func (r *Recorder) WorkoutCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readInt(store.KeyWorkoutCount)
}

// TimeSpent returns the accumulated seconds spent with an active timer.
func (r *Recorder) TimeSpent() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readInt(store.KeyTimeSpent)
}

// LastExercise returns the most recently completed exercise, or nil if none
// has been recorded.
func (r *Recorder) LastExercise() (*models.LastExercise, error) {
	v, found, err := r.store.Get(store.KeyLastExercise)
	if err != nil || !found {
		return nil, err
	}

	var last models.LastExercise

	if err := json.Unmarshal([]byte(v), &last); err != nil {
		return nil, &store.PersistenceError{Op: "decode", Key: store.KeyLastExercise, Err: err}
	}

	return &last, nil
}
