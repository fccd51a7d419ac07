package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	assert.Equal(t, "00:30", Clock(30))
	assert.Equal(t, "01:05", Clock(65))
	assert.Equal(t, "00:00", Clock(0))
}

func TestHumanize(t *testing.T) {
	cases := []struct {
		want string
		in   int
	}{
		{"0s", 0},
		{"45s", 45},
		{"2m 05s", 125},
		{"1h 01m 01s", 3661},
		{"0s", -3},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Humanize(tc.in), "Humanize(%d)", tc.in)
	}
}
