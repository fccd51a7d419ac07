package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders data as a boxed table whose first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// PrintKeyValues renders label and value pairs, one per line.
func PrintKeyValues(writer io.Writer, pairs [][2]string) {
	for _, p := range pairs {
		fmt.Fprintf(writer, "%s: %s\n", Highlight(p[0]), p[1])
	}
}
