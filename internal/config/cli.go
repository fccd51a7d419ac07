package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Sound         string
	CatalogFile   string
	Store         string
	SessionCmd    string
	Seconds       uint
	AlertAt       int
	Lookahead     uint
	DisableNotify bool
	Ephemeral     bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Seconds:       ctx.Uint("seconds"),
			AlertAt:       -1,
			Lookahead:     ctx.Uint("lookahead"),
			Sound:         ctx.String("sound"),
			CatalogFile:   ctx.String("catalog-file"),
			Store:         ctx.String("store"),
			SessionCmd:    ctx.String("session-cmd"),
			DisableNotify: ctx.Bool("disable-notification"),
			Ephemeral:     ctx.Bool("ephemeral"),
		}

		if ctx.IsSet("alert-at") {
			opts.AlertAt = ctx.Int("alert-at")
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Zero values leave the
// file settings untouched.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Seconds > 0 {
		c.Timer.Seconds = int(opts.Seconds)
	}

	if opts.AlertAt >= 0 {
		c.Timer.AlertAt = opts.AlertAt
	}

	if opts.Lookahead > 0 {
		c.Session.Lookahead = int(opts.Lookahead)
	}

	if opts.Sound != "" {
		c.Sound.Cue = opts.Sound
	}

	if opts.CatalogFile != "" {
		c.Catalog.File = opts.CatalogFile
	}

	if opts.Store != "" {
		c.Store.Driver = opts.Store
	}

	if opts.Ephemeral {
		c.Store.Driver = "memory"
	}

	if opts.SessionCmd != "" {
		c.Session.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	return nil
}
