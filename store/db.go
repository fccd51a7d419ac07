package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhess/bodie/internal/osutil"
)

// Store is the durable string-keyed storage shared by every session.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the
	// key is absent
	Get(key string) (string, bool, error)
	// Set creates or overwrites the value stored under key
	Set(key, value string) error
	// RemoveMany deletes the given keys. Missing keys are ignored
	RemoveMany(keys ...string) error
	// Close releases the underlying handle
	Close() error
}

// Supported drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var errUnknownDriver = errors.New("unknown store driver")

// Store keys shared between packages.
const (
	KeyAuthToken    = "authToken"
	KeyUserEmail    = "userEmail"
	KeyUserData     = "userData"
	KeyWorkoutCount = "workoutCount"
	KeyTimeSpent    = "timeSpent"
	KeyLastExercise = "lastExercise"
)

// WeightsKey returns the key under which a workout's weights are cached.
func WeightsKey(workoutID string) string {
	return "weights_" + workoutID
}

// PersistenceError reports a failed read or write against a Store.
type PersistenceError struct {
	Err error
	Op  string
	Key string
}

func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}

	return &PersistenceError{Op: op, Key: key, Err: err}
}

// Open returns a Store for the named driver. The parent directory of path is
// created if necessary.
func Open(driver, path string) (Store, error) {
	if driver == DriverMemory {
		return NewMemory(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	switch driver {
	case DriverBolt, "":
		return NewClient(path)
	case DriverSQLite:
		return NewSQLiteClient(path)
	}

	return nil, fmt.Errorf("%w: %s", errUnknownDriver, driver)
}
