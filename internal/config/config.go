// Package config loads the application settings from the config file and the
// command-line flags
package config

import (
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Catalog       CatalogConfig      `mapstructure:"catalog"`
		API           APIConfig          `mapstructure:"api"`
		Timer         TimerConfig        `mapstructure:"timer"`
		Sound         SoundConfig        `mapstructure:"sound"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Session       SessionConfig      `mapstructure:"session"`
		Store         StoreConfig        `mapstructure:"store"`
		Log           LogConfig          `mapstructure:"log"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// CatalogConfig points at the workout catalog. File takes precedence
	// over URL when set.
	CatalogConfig struct {
		URL     string        `mapstructure:"url"`
		File    string        `mapstructure:"file"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// APIConfig points at the account and programs API
	APIConfig struct {
		URL string `mapstructure:"url"`
	}

	// TimerConfig holds countdown settings
	TimerConfig struct {
		Seconds int `mapstructure:"seconds"`
		AlertAt int `mapstructure:"alert_at"`
	}

	// SoundConfig holds the cue played on advance and before the countdown
	// ends
	SoundConfig struct {
		Cue string `mapstructure:"cue"`
	}

	// NotificationConfig holds desktop notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SessionConfig holds session view settings
	SessionConfig struct {
		Cmd       string `mapstructure:"cmd"`
		Lookahead int    `mapstructure:"lookahead"`
	}

	// StoreConfig selects the persistence backend
	StoreConfig struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level     string `mapstructure:"level"`
		MaxSizeMB int    `mapstructure:"max_size_mb"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
