// Package stats reports the progress recorded across workout sessions
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/internal/timeutil"
	"github.com/xhess/bodie/internal/ui"
	"github.com/xhess/bodie/metrics"
	"github.com/xhess/bodie/store"
)

const (
	barChartChar = "▇"
	noWeightsMsg = "No weights recorded for this workout"
)

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)`)

// Summary is the progress recorded across all sessions.
type Summary struct {
	LastExercise *models.LastExercise `json:"last_exercise,omitempty"`
	WorkoutCount int                  `json:"workout_count"`
	TimeSpent    int                  `json:"time_spent_seconds"`
}

// Compute reads the summary from the recorder.
func Compute(rec *metrics.Recorder) (*Summary, error) {
	count, err := rec.WorkoutCount()
	if err != nil {
		return nil, err
	}

	spent, err := rec.TimeSpent()
	if err != nil {
		return nil, err
	}

	last, err := rec.LastExercise()
	if err != nil {
		return nil, err
	}

	return &Summary{
		WorkoutCount: count,
		TimeSpent:    spent,
		LastExercise: last,
	}, nil
}

// ToJSON encodes the summary.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

// Show prints the summary to w.
func (s *Summary) Show(w io.Writer) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Your progress")

	var b strings.Builder

	b.WriteString(header)
	b.WriteString(fmt.Sprintf("%s\n", ui.Blue("Summary")))
	b.WriteString(fmt.Sprintf("Workouts started: %s\n", ui.Green(s.WorkoutCount)))
	b.WriteString(fmt.Sprintf("Time spent: %s\n", ui.Green(timeutil.Humanize(s.TimeSpent))))

	if s.LastExercise != nil {
		b.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Last exercise")))
		b.WriteString(fmt.Sprintf(
			"%s (workout %s) on %s\n",
			ui.Green(s.LastExercise.Exercise.Name),
			s.LastExercise.WorkoutID,
			s.LastExercise.CompletedAt.Format("Jan 02, 2006 03:04 PM"),
		))
	}

	fmt.Fprintln(w, strings.TrimSpace(b.String()))
}

// Weights returns the weights saved for a workout, or nil if there are none.
func Weights(s store.Store, workoutID string) ([]string, error) {
	key := store.WeightsKey(workoutID)

	v, found, err := s.Get(key)
	if err != nil || !found || v == "" {
		return nil, err
	}

	var weights []string
	if err := json.Unmarshal([]byte(v), &weights); err != nil {
		return nil, &store.PersistenceError{Op: "decode", Key: key, Err: err}
	}

	return weights, nil
}

// exerciseName labels row i, falling back to its position when the
// exercise list is unknown or shorter than the weights.
func exerciseName(exercises []models.Exercise, i int) string {
	if i < len(exercises) {
		return exercises[i].Name
	}

	return fmt.Sprintf("Exercise %d", i+1)
}

// ParseWeight extracts the leading number of a free-form weight entry such
// as "42.5kg". It reports false when there is none.
func ParseWeight(v string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// PrintWeights prints a table of the weights followed by a bar chart of the
// numeric entries.
func PrintWeights(w io.Writer, weights []string, exercises []models.Exercise) {
	if len(weights) == 0 {
		pterm.Info.Println(noWeightsMsg)
		return
	}

	printWeightsTable(w, weights, exercises)

	if chart := weightsChart(weights, exercises); chart != "" {
		fmt.Fprintln(w, chart)
	}
}

func printWeightsTable(w io.Writer, weights []string, exercises []models.Exercise) {
	tableBody := [][]string{{"#", "EXERCISE", "WEIGHT"}}

	for i, v := range weights {
		if v == "" {
			v = ui.Red("-")
		}

		tableBody = append(tableBody, []string{
			strconv.Itoa(i + 1),
			exerciseName(exercises, i),
			v,
		})
	}

	ui.PrintTable(tableBody, w)
}

func weightsChart(weights []string, exercises []models.Exercise) string {
	var bars pterm.Bars

	for i, v := range weights {
		f, ok := ParseWeight(v)
		if !ok {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: exerciseName(exercises, i),
			Value: timeutil.Round(f),
		})
	}

	if len(bars) == 0 {
		return ""
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return fmt.Sprintf("%s\n%s", ui.Blue("Weights"), chart)
}
