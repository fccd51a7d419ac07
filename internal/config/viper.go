package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyCatalogURL           = "catalog.url"
	keyCatalogFile          = "catalog.file"
	keyCatalogTimeout       = "catalog.timeout"
	keyAPIURL               = "api.url"
	keyTimerSeconds         = "timer.seconds"
	keyTimerAlertAt         = "timer.alert_at"
	keySoundCue             = "sound.cue"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionLookahead     = "session.lookahead"
	keySessionCmd           = "session.cmd"
	keyStoreDriver          = "store.driver"
	keyStorePath            = "store.path"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyDarkTheme            = "display.dark_theme"
)

const (
	DefaultCatalogURL = "https://stoplight.io/mocks/gym-app-ira/bodie-by-xhess/674100124"
	DefaultAPIURL     = "https://api.bodie.app"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A file holding the defaults is written if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the defaults. Values already present in c, such as
// answers from the first-run prompt, replace the built-in defaults.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyCatalogURL, DefaultCatalogURL)
	v.SetDefault(keyCatalogFile, "")
	v.SetDefault(keyCatalogTimeout, "30s")
	v.SetDefault(keyAPIURL, DefaultAPIURL)
	v.SetDefault(keyTimerSeconds, 30)
	v.SetDefault(keyTimerAlertAt, 4)
	v.SetDefault(keySoundCue, "countdown")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySessionLookahead, 4)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyStoreDriver, "bolt")
	v.SetDefault(keyStorePath, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 5)
	v.SetDefault(keyDarkTheme, true)

	if c.Timer.Seconds != 0 {
		v.SetDefault(keyTimerSeconds, c.Timer.Seconds)
	}

	if c.Session.Lookahead != 0 {
		v.SetDefault(keySessionLookahead, c.Session.Lookahead)
	}

	if c.Sound.Cue != "" {
		v.SetDefault(keySoundCue, c.Sound.Cue)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
