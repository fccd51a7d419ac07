package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a workout is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after a workout is completed",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Cue played when moving to the next exercise and before the countdown ends.\n\t\t\t\tUse a built-in name, a path to an audio file, or 'off'",
	}

	secondsFlag = &cli.UintFlag{
		Name:    "seconds",
		Aliases: []string{"s"},
		Usage:   "Countdown length of every exercise in seconds (default: 30)",
	}

	alertAtFlag = &cli.IntFlag{
		Name:    "alert-at",
		Aliases: []string{"a"},
		Usage:   "Play the cue once fewer than this many seconds remain (default: 4)",
	}

	lookaheadFlag = &cli.UintFlag{
		Name:    "lookahead",
		Aliases: []string{"n"},
		Usage:   "Number of exercises shown from the one in focus (default: 4)",
	}

	catalogFileFlag = &cli.StringFlag{
		Name:    "catalog-file",
		Aliases: []string{"f"},
		Usage:   "Read workouts from a local YAML file instead of the catalog service",
	}

	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "Storage driver: bolt, sqlite or memory",
	}

	ephemeralFlag = &cli.BoolFlag{
		Name:  "ephemeral",
		Usage: "Keep progress in memory only. Nothing is written to disk",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	clearFlag = &cli.BoolFlag{
		Name:  "clear",
		Usage: "Delete the saved weights after confirmation",
	}

	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Path of the spreadsheet (default: <workout-id>.xlsx)",
	}

	purchasedFlag = &cli.BoolFlag{
		Name:  "purchased",
		Usage: "Only list programs you have purchased",
	}

	emailFlag = &cli.StringFlag{
		Name:  "email",
		Usage: "Account email. You will be prompted for anything not provided",
	}

	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Specify the port for the statistics server",
		Value: 1111,
	}
)
