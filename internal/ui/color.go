// Package ui holds console colour and table helpers
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variant of each colour.
var DarkTheme bool

// palette pairs the colour used on light terminals with the one used on dark
// terminals.
type palette struct {
	light pterm.Color
	dark  pterm.Color
}

var (
	green     = palette{light: pterm.FgGreen, dark: pterm.FgLightGreen}
	yellow    = palette{light: pterm.FgYellow, dark: pterm.FgLightYellow}
	blue      = palette{light: pterm.FgBlue, dark: pterm.FgLightBlue}
	red       = palette{light: pterm.FgRed, dark: pterm.FgLightRed}
	highlight = palette{light: pterm.FgBlack, dark: pterm.FgLightWhite}
)

func (p palette) paint(a any) string {
	if DarkTheme {
		return p.dark.Sprint(a)
	}

	return p.light.Sprint(a)
}

func Green(a any) string { return green.paint(a) }

func Yellow(a any) string { return yellow.paint(a) }

func Blue(a any) string { return blue.paint(a) }

func Red(a any) string { return red.paint(a) }

// Highlight marks labels such as the keys of PrintKeyValues.
func Highlight(a any) string { return highlight.paint(a) }
