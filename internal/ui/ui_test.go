package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	PrintTable([][]string{{"#", "EXERCISE"}, {"1", "Squat"}}, &buf)

	assert.Contains(t, buf.String(), "EXERCISE")
	assert.Contains(t, buf.String(), "Squat")
}

func TestPrintKeyValues(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer

	PrintKeyValues(&buf, [][2]string{{"Price", "9.99"}, {"Public", "yes"}})

	assert.Equal(t, "Price: 9.99\nPublic: yes\n", buf.String())
}
