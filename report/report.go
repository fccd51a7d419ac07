// Package report prints user-facing outcomes to the console
package report

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/osutil"
)

// Success prints a confirmation.
func Success(msg string) {
	pterm.Success.Println(msg)
}

// Error prints err. Authentication failures get a hint to login again.
func Error(err error) {
	pterm.Error.Println(err)

	if catalog.IsAuthError(err) {
		pterm.Info.Println("run 'bodie login' to sign in")
	}

	var se *catalog.StatusError
	if errors.As(err, &se) && se.Code >= 500 {
		pterm.Info.Println("the service is unavailable, try again later")
	}
}

// Fatal prints err and quits the running program.
func Fatal(err error) tea.Cmd {
	Error(err)
	return tea.Quit
}

// Quit prints err and exits the process.
func Quit(err error) {
	Error(err)
	os.Exit(int(osutil.ExitError))
}
