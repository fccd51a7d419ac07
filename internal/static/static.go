// Package static embeds the built-in cue sounds into the binary and copies
// them to the filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/xhess/bodie/internal/osutil"
	"github.com/xhess/bodie/internal/pathutil"
)

const (
	filesDir = "files"
)

//go:embed files/*
var Files embed.FS

// FilePath returns the path of a built-in file inside Files.
func FilePath(name string) string {
	return path.Join(filesDir, name)
}

// Names lists the built-in sounds without their extensions.
func Names() []string {
	entries, err := fs.ReadDir(Files, filesDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		names = append(names, pathutil.StripExtension(e.Name()))
	}

	return names
}

// Install copies the embedded files into dir for use as templates of custom
// cues. Existing files are left untouched.
func Install(dir string) error {
	return fs.WalkDir(
		Files,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			destPath := filepath.Join(dir, strings.TrimPrefix(p, filesDir+"/"))

			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return err
			}

			b, err := Files.ReadFile(p)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
}
