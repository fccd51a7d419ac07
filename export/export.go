// Package export writes a workout's saved weights to a spreadsheet
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/stats"
)

// SheetName is the name of the sheet holding the weights.
const SheetName = "Weights"

// Row is a single exported exercise.
type Row struct {
	ExerciseID string
	Name       string
	Weight     string
}

// Rows pairs exercises with their weights by position. Weights beyond the
// exercise list are kept with an empty id.
func Rows(exercises []models.Exercise, weights []string) []Row {
	rows := make([]Row, 0, max(len(exercises), len(weights)))

	for i := range max(len(exercises), len(weights)) {
		var r Row

		if i < len(exercises) {
			r.ExerciseID = exercises[i].ID
			r.Name = exercises[i].Name
		} else {
			r.Name = fmt.Sprintf("Exercise %d", i+1)
		}

		if i < len(weights) {
			r.Weight = weights[i]
		}

		rows = append(rows, r)
	}

	return rows
}

// WriteWorkbook saves one row per exercise to an xlsx file at path. Weights
// that start with a number are also written as a numeric column.
func WriteWorkbook(path string, workout models.Workout, rows []Row) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headers := []struct {
		value string
		width float64
	}{
		{"#", 5},
		{"Exercise ID", 16},
		{"Exercise", 30},
		{"Weight", 14},
		{"Weight (number)", 16},
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)

		if err := f.SetCellValue(SheetName, col+"1", h.value); err != nil {
			return err
		}

		if err := f.SetColWidth(SheetName, col, col, h.width); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		row := i + 2

		values := []any{i + 1, r.ExerciseID, r.Name, r.Weight}
		if n, ok := stats.ParseWeight(r.Weight); ok {
			values = append(values, n)
		}

		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   workout.Name,
		Subject: "Workout " + workout.ID,
		Creator: "bodie",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}
