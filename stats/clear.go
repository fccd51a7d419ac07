package stats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/store"
)

// ClearWeights deletes the saved weights of a workout. The weights are
// printed first and the user must press ENTER to proceed.
func ClearWeights(
	s store.Store,
	workoutID string,
	exercises []models.Exercise,
	in io.Reader,
	out io.Writer,
) error {
	weights, err := Weights(s, workoutID)
	if err != nil {
		return err
	}

	if len(weights) == 0 {
		pterm.Info.Println(noWeightsMsg)
		return nil
	}

	printWeightsTable(out, weights, exercises)

	warning := pterm.Warning.Sprint(
		"The weights above will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(out, warning)

	reader := bufio.NewReader(in)

	_, _ = reader.ReadString('\n')

	return s.RemoveMany(store.WeightsKey(workoutID))
}
