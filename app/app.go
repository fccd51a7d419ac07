// Package app defines the bodie command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/xhess/bodie/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the bodie app instance.
func Get() *cli.App {
	bodieApp := &cli.App{
		Name: "bodie",
		Authors: []*cli.Author{
			{
				Name:  "Xavier Hess",
				Email: "xavier@xhess.dev",
			},
		},
		Usage: `
		Bodie walks you through a workout one exercise at a time. It runs a 
		countdown for every exercise, remembers the weight you lifted and keeps 
		track of your training history.`,
		UsageText:            "[COMMAND] [OPTIONS] <workout-id>",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Start a workout session",
				ArgsUsage: "<workout-id>",
				Action:    withEnv(startSession),
			},
			{
				Name:   "stats",
				Usage:  "Print the workout count, time spent and last exercise",
				Flags:  []cli.Flag{jsonFlag},
				Action: withEnv(showStats),
			},
			{
				Name:      "weights",
				Usage:     "Print or clear the weights saved for a workout",
				ArgsUsage: "<workout-id>",
				Flags:     []cli.Flag{clearFlag},
				Action:    withEnv(showWeights),
			},
			{
				Name:      "export",
				Usage:     "Export the weights saved for a workout to a spreadsheet",
				ArgsUsage: "<workout-id>",
				Flags:     []cli.Flag{outFlag},
				Action:    withEnv(exportWeights),
			},
			{
				Name:   "programs",
				Usage:  "List the available training programs",
				Flags:  []cli.Flag{purchasedFlag},
				Action: withEnv(listPrograms),
			},
			{
				Name:      "program",
				Usage:     "Print the details of a training program",
				ArgsUsage: "<program-id>",
				Action:    withEnv(showProgram),
			},
			{
				Name:      "purchase",
				Usage:     "Purchase a training program",
				ArgsUsage: "<program-id>",
				Action:    withEnv(purchaseProgram),
			},
			{
				Name:   "login",
				Usage:  "Sign in to your account",
				Flags:  []cli.Flag{emailFlag},
				Action: withEnv(login),
			},
			{
				Name:   "logout",
				Usage:  "Sign out of your account",
				Action: withEnv(logout),
			},
			{
				Name:   "whoami",
				Usage:  "Print the signed in account",
				Action: withEnv(whoami),
			},
			{
				Name:   "serve",
				Usage:  "Serve the statistics over HTTP",
				Flags:  []cli.Flag{portFlag},
				Action: withEnv(serve),
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			secondsFlag,
			alertAtFlag,
			lookaheadFlag,
			soundFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			catalogFileFlag,
			storeFlag,
			ephemeralFlag,
			noColorFlag,
		},
		Action: withEnv(startSession),
		Before: beforeAction,
		After:  afterAction,
	}

	return bodieApp
}
