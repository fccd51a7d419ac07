package app

import (
	"strings"

	"github.com/pterm/pterm"
)

// section renders a titled block of the help template.
func section(title, body string) string {
	return pterm.Yellow(title) + "\n" + body + "\n\n"
}

func helpText() string {
	var b strings.Builder

	b.WriteString(section("DESCRIPTION", "\t\t{{.Usage}}"))
	b.WriteString(section("USAGE", "\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}"))
	b.WriteString("{{if len .Authors}}" + section("AUTHOR", "\t\t{{range .Authors}}{{ . }}{{end}}") + "{{end}}")
	b.WriteString("{{if .Version}}" + section("VERSION", "\t\t{{.Version}}") + "{{end}}")

	b.WriteString(section(
		"COMMANDS",
		"{{range .Commands}}{{if not .HideHelp}}   "+
			pterm.Green("{{join .Names `, `}}")+
			"{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
	))

	b.WriteString(pterm.Yellow("OPTIONS") + "\n" +
		"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}" +
		pterm.Green("-{{$element}}") + ",{{end}}{{end}} " +
		pterm.Green("--{{.Name}} {{.DefaultText}}") +
		"\n\t\t\t\t{{.Usage}}\n\n{{end}}")

	b.WriteString(section("EXAMPLES", examplesHelp()))
	b.WriteString(section("ENVIRONMENTAL VARIABLES", "\t\t"+envHelp()))
	b.WriteString(pterm.Yellow("WEBSITE") + "\n\t\thttps://github.com/xhess/bodie\n")

	return b.String()
}

func examplesHelp() string {
	return `		bodie start 674100124
		bodie --seconds 45 --alert-at 5 start 674100124
		bodie --catalog-file ~/workouts.yml --ephemeral start legs
		bodie weights 674100124 --clear
		bodie export 674100124 --out legs.xlsx`
}

func envHelp() string {
	return `
BODIE_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

BODIE_ENV: set to a name to keep a separate config file, database and log for that environment.`
}
