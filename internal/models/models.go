// Package models defines the catalog and progress records shared across
// packages
package models

import "time"

// Exercise is a single movement in a workout. It is immutable once fetched.
type Exercise struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	VideoURL    string `json:"videoUrl"    yaml:"video_url"`
}

// WorkoutExercise is the catalog's wrapper around an exercise entry.
type WorkoutExercise struct {
	Exercise *Exercise `json:"exercise" yaml:"exercise"`
}

// Workout holds workout metadata.
type Workout struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// WorkoutDetail is a workout together with its ordered exercise list.
type WorkoutDetail struct {
	Workout   Workout           `json:"workout"   yaml:"workout"`
	Exercises []WorkoutExercise `json:"exercises" yaml:"exercises"`
}

// ExerciseList flattens the wrapped entries in execution order.
func (w *WorkoutDetail) ExerciseList() []Exercise {
	list := make([]Exercise, 0, len(w.Exercises))

	for _, v := range w.Exercises {
		if v.Exercise == nil {
			continue
		}

		list = append(list, *v.Exercise)
	}

	return list
}

// Program is a purchasable training program.
type Program struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	IsPublic    bool    `json:"isPublic"`
}

// User is the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LastExercise is the snapshot of the most recently completed exercise.
type LastExercise struct {
	CompletedAt time.Time `json:"completed_at"`
	WorkoutID   string    `json:"workout_id"`
	Exercise    Exercise  `json:"exercise"`
}
