package catalog

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/xhess/bodie/internal/models"
)

// FileCatalog serves workouts from a YAML document of the form:
//
//	workouts:
//	  - workout:
//	      id: w1
//	      name: Legs
//	    exercises:
//	      - exercise: {id: squat, name: Squat}
type FileCatalog struct {
	workouts map[string]models.WorkoutDetail
	path     string
}

var _ Catalog = (*FileCatalog)(nil)

type catalogFile struct {
	Workouts []models.WorkoutDetail `yaml:"workouts"`
}

// NewFileCatalog parses the catalog at path.
func NewFileCatalog(path string) (*FileCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f catalogFile

	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, path, err)
	}

	c := &FileCatalog{
		path:     path,
		workouts: make(map[string]models.WorkoutDetail, len(f.Workouts)),
	}

	for _, w := range f.Workouts {
		if w.Workout.ID == "" {
			return nil, fmt.Errorf("%w: %s: workout without id", ErrMalformedPayload, path)
		}

		c.workouts[w.Workout.ID] = w
	}

	return c, nil
}

// Workout returns the named workout. The returned value is a copy.
func (c *FileCatalog) Workout(
	ctx context.Context,
	id string,
) (*models.WorkoutDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{WorkoutID: id, Err: err}
	}

	w, ok := c.workouts[id]
	if !ok {
		return nil, &FetchError{WorkoutID: id, Err: ErrWorkoutNotFound}
	}

	if err := validate(&w); err != nil {
		return nil, &FetchError{WorkoutID: id, Err: err}
	}

	d := models.WorkoutDetail{
		Workout:   w.Workout,
		Exercises: make([]models.WorkoutExercise, len(w.Exercises)),
	}

	for i, v := range w.Exercises {
		e := *v.Exercise
		d.Exercises[i] = models.WorkoutExercise{Exercise: &e}
	}

	return &d, nil
}

// IDs returns the sorted ids of every workout in the file.
func (c *FileCatalog) IDs() []string {
	ids := make([]string, 0, len(c.workouts))
	for id := range c.workouts {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
