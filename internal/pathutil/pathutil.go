// Package pathutil resolves where bodie keeps its config file, database, log
// and installed sounds
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const (
	appDir  = "bodie"
	envName = "BODIE_ENV"
)

var errNotInitialized = errors.New(
	"pathutil.Initialize() must be called before accessing paths",
)

// Paths holds the resolved absolute locations.
type Paths struct {
	configFile string
	dbFile     string
	logFile    string
	soundsDir  string
}

var (
	paths   *Paths
	initErr error
	once    sync.Once
)

// Initialize resolves every path. It must be called once at program startup;
// later calls return the first result.
func Initialize() error {
	once.Do(func() {
		paths, initErr = resolve(strings.TrimSpace(os.Getenv(envName)))
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic(errNotInitialized)
	}

	return paths
}

func ConfigFilePath() string {
	return Must().configFile
}

func DBFilePath() string {
	return Must().dbFile
}

func LogFilePath() string {
	return Must().logFile
}

// SoundsDir is where the built-in sounds are installed.
func SoundsDir() string {
	return Must().soundsDir
}

// fileName returns base.ext, or base_env.ext when env is set.
func fileName(base, ext, env string) string {
	if env == "" {
		return base + ext
	}

	return fmt.Sprintf("%s_%s%s", base, env, ext)
}

func resolve(env string) (*Paths, error) {
	configFile, err := xdg.ConfigFile(
		filepath.Join(appDir, fileName("config", ".yml", env)),
	)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	dataDir, err := xdg.DataFile(appDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	return &Paths{
		configFile: configFile,
		dbFile:     filepath.Join(dataDir, fileName("bodie", ".db", env)),
		logFile:    filepath.Join(dataDir, "log", fileName("bodie", ".log", env)),
		soundsDir:  filepath.Join(dataDir, "sounds"),
	}, nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
