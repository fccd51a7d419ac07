package config

import (
	"errors"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xhess/bodie/internal/static"
	"github.com/xhess/bodie/sound"
	"github.com/xhess/bodie/store"
)

var (
	minSeconds = 1
	maxSeconds = 3600

	minLookahead = 1
	maxLookahead = 20
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTimer(); err != nil {
		return err
	}

	if c.Session.Lookahead < minLookahead || c.Session.Lookahead > maxLookahead {
		return errInvalidLookahead.Fmt(minLookahead, maxLookahead, c.Session.Lookahead)
	}

	if err := validateSound(c.Sound.Cue); err != nil {
		return err
	}

	if err := c.validateEndpoints(); err != nil {
		return err
	}

	switch c.Store.Driver {
	case store.DriverBolt, store.DriverSQLite, store.DriverMemory:
	default:
		return errUnknownDriver.Fmt(c.Store.Driver)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateTimer() error {
	if c.Timer.Seconds < minSeconds || c.Timer.Seconds > maxSeconds {
		return errInvalidSeconds.Fmt(minSeconds, maxSeconds, c.Timer.Seconds)
	}

	if c.Timer.AlertAt < 0 || c.Timer.AlertAt >= c.Timer.Seconds {
		return errInvalidAlertAt.Fmt(c.Timer.Seconds-1, c.Timer.AlertAt)
	}

	return nil
}

func (c *Config) validateEndpoints() error {
	if c.Catalog.File == "" {
		if !isHTTPURL(c.Catalog.URL) {
			return errInvalidURL.Fmt("catalog url", c.Catalog.URL)
		}

		if c.Catalog.Timeout <= 0 {
			return errInvalidTimeout.Fmt(c.Catalog.Timeout)
		}
	}

	if !isHTTPURL(c.API.URL) {
		return errInvalidURL.Fmt("api url", c.API.URL)
	}

	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateSound accepts "off", a built-in sound name, or an existing file in
// a supported format.
func validateSound(s string) error {
	if s == "" || s == sound.Off {
		return nil
	}

	if !sound.ValidFormat(s) {
		return errInvalidSoundFormat.Fmt(s)
	}

	if filepath.Ext(s) == "" {
		if !slices.Contains(static.Names(), s) {
			return errUnknownSound.Fmt(s)
		}

		return nil
	}

	_, err := os.Stat(s)
	if errors.Is(err, os.ErrNotExist) {
		return errUnknownSound.Fmt(s)
	}

	return nil
}

// ParseLevel converts the configured log level to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return l, errInvalidLogLevel.Fmt(level)
	}

	return l, nil
}
