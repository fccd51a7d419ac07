// Package osutil holds operating system constants shared across packages
package osutil

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)

// DefaultEditor returns the editor used when neither VISUAL nor EDITOR is
// set.
func DefaultEditor(goos string) string {
	switch goos {
	case Windows:
		return "C:\\Windows\\system32\\notepad.exe"
	case Darwin:
		return "open -W -t"
	}

	return "nano"
}
