package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗  ██████╗ ██████╗ ██╗███████╗
██╔══██╗██╔═══██╗██╔══██╗██║██╔════╝
██████╔╝██║   ██║██║  ██║██║█████╗
██╔══██╗██║   ██║██║  ██║██║██╔══╝
██████╔╝╚██████╔╝██████╔╝██║███████╗
╚═════╝  ╚═════╝ ╚═════╝ ╚═╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Cue       string
	Seconds   int
	Lookahead int
}

// WithPromptConfig returns an Option that asks for the main settings when no
// config file exists yet. It must come before WithViperConfig so that the
// answers are written to the new file.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Bodie for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'bodie edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Exercise timer length").
				Options(
					huh.NewOption("30 seconds", 30).Selected(true),
					huh.NewOption("45 seconds", 45),
					huh.NewOption("60 seconds", 60),
					huh.NewOption("90 seconds", 90),
				).
				Value(&opts.Seconds),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Upcoming exercises to show").
				Options(
					huh.NewOption("4 exercises", 4).Selected(true),
					huh.NewOption("6 exercises", 6),
					huh.NewOption("8 exercises", 8),
				).
				Value(&opts.Lookahead),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Countdown sound").
				Options(
					huh.NewOption("Countdown beeps", "countdown").Selected(true),
					huh.NewOption("Off", "off"),
				).
				Value(&opts.Cue),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Timer.Seconds = opts.Seconds
	c.Session.Lookahead = opts.Lookahead
	c.Sound.Cue = opts.Cue

	return nil
}
