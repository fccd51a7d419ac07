// Package catalog fetches workouts and programs from the remote catalog
// service, or from a local YAML file when one is configured.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/xhess/bodie/internal/models"
)

var (
	// ErrMalformedPayload is returned when a response cannot be decoded or is
	// missing required fields.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNoExercises is returned for a workout with an empty exercise list.
	ErrNoExercises = errors.New("workout has no exercises")

	// ErrWorkoutNotFound is returned by catalogs that know the workout does
	// not exist.
	ErrWorkoutNotFound = errors.New("workout not found")

	// ErrSessionExpired is returned when the stored credentials were rejected
	// or have expired. The credentials are cleared before it is returned.
	ErrSessionExpired = errors.New("session expired, please login again")

	// ErrNotLoggedIn is returned by endpoints that require a stored token.
	ErrNotLoggedIn = errors.New("authentication required, please login")
)

// Catalog provides a workout's ordered exercise list.
type Catalog interface {
	Workout(ctx context.Context, id string) (*models.WorkoutDetail, error)
}

// FetchError reports that a workout could not be fetched or was unusable.
type FetchError struct {
	Err       error
	WorkoutID string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching workout %q: %v", e.WorkoutID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// validate rejects details that cannot drive a session.
func validate(d *models.WorkoutDetail) error {
	if d.Exercises == nil {
		return fmt.Errorf("%w: missing exercises", ErrMalformedPayload)
	}

	if len(d.Exercises) == 0 {
		return ErrNoExercises
	}

	for i, v := range d.Exercises {
		if v.Exercise == nil || v.Exercise.ID == "" {
			return fmt.Errorf("%w: exercise %d has no id", ErrMalformedPayload, i)
		}
	}

	return nil
}
