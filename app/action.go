package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/export"
	"github.com/xhess/bodie/internal/config"
	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/internal/osutil"
	"github.com/xhess/bodie/internal/pathutil"
	"github.com/xhess/bodie/internal/static"
	"github.com/xhess/bodie/internal/ui"
	"github.com/xhess/bodie/report"
	"github.com/xhess/bodie/session"
	"github.com/xhess/bodie/sound"
	"github.com/xhess/bodie/stats"
	"github.com/xhess/bodie/store"
	"github.com/xhess/bodie/timer"
	"github.com/xhess/bodie/tui"
)

const (
	envNoColor      = "NO_COLOR"
	envBodieNoColor = "BODIE_NO_COLOR"
)

var (
	errMissingWorkoutID = errors.New("a workout id is required")
	errMissingProgramID = errors.New("a program id is required")
	errEmptyCredentials = errors.New("email and password must not be empty")
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// argID returns the first positional argument, or errMissing if there is
// none.
func argID(ctx *cli.Context, errMissing error) (string, error) {
	id := strings.TrimSpace(ctx.Args().First())
	if id == "" {
		return "", errMissing
	}

	return id, nil
}

// exercisesFor fetches the exercise names used to label saved weights. The
// weights are still printed by position if the workout cannot be fetched.
func exercisesFor(ctx *cli.Context, e *env, workoutID string) ([]models.Exercise, models.Workout) {
	cat, err := e.catalog()
	if err != nil {
		e.logger.Warn("catalog unavailable", slog.Any("error", err))
		return nil, models.Workout{ID: workoutID}
	}

	detail, err := cat.Workout(ctx.Context, workoutID)
	if err != nil {
		e.logger.Warn(
			"fetching workout for labels failed",
			slog.String("workout_id", workoutID),
			slog.Any("error", err),
		)

		return nil, models.Workout{ID: workoutID}
	}

	return detail.ExerciseList(), detail.Workout
}

// startSession runs the interactive session for the workout named by the
// first argument.
func startSession(ctx *cli.Context, e *env) error {
	workoutID, err := argID(ctx, errMissingWorkoutID)
	if err != nil {
		return err
	}

	cat, err := e.catalog()
	if err != nil {
		return err
	}

	build := func(opts ...session.Option) *session.Controller {
		cue := sound.NewCue(
			sound.NewPlayer(e.cfg.Sound.Cue),
			e.cfg.Sound.Cue,
			e.logger,
		)

		base := []session.Option{
			session.WithTimer(
				timer.WithInitial(e.cfg.Timer.Seconds),
				timer.WithAlertAt(e.cfg.Timer.AlertAt),
			),
			session.WithCue(cue),
			session.WithRecorder(e.recorder()),
			session.WithLogger(e.logger),
			session.WithSessionCmd(e.cfg.Session.Cmd),
		}

		return session.New(workoutID, cat, e.store, append(base, opts...)...)
	}

	var notify tui.Notifier
	if e.cfg.Notifications.Enabled {
		notify = tui.BeeepNotifier
	}

	return tui.Run(ctx.Context, build, tui.Options{
		Notify:    notify,
		Lookahead: e.cfg.Session.Lookahead,
		DarkTheme: e.cfg.Display.DarkTheme,
	})
}

// showStats prints the progress summary.
func showStats(ctx *cli.Context, e *env) error {
	summary, err := stats.Compute(e.recorder())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := summary.ToJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	summary.Show(config.Stdout)

	return nil
}

// showWeights prints the weights saved for a workout, or deletes them when
// --clear is set.
func showWeights(ctx *cli.Context, e *env) error {
	workoutID, err := argID(ctx, errMissingWorkoutID)
	if err != nil {
		return err
	}

	exercises, _ := exercisesFor(ctx, e, workoutID)

	if ctx.Bool("clear") {
		return stats.ClearWeights(
			e.store,
			workoutID,
			exercises,
			config.Stdin,
			config.Stdout,
		)
	}

	weights, err := stats.Weights(e.store, workoutID)
	if err != nil {
		return err
	}

	stats.PrintWeights(config.Stdout, weights, exercises)

	return nil
}

// exportWeights writes the weights saved for a workout to a spreadsheet.
func exportWeights(ctx *cli.Context, e *env) error {
	workoutID, err := argID(ctx, errMissingWorkoutID)
	if err != nil {
		return err
	}

	weights, err := stats.Weights(e.store, workoutID)
	if err != nil {
		return err
	}

	exercises, workout := exercisesFor(ctx, e, workoutID)

	out := firstNonEmptyString(ctx.String("out"), workoutID+".xlsx")

	err = export.WriteWorkbook(out, workout, export.Rows(exercises, weights))
	if err != nil {
		return err
	}

	report.Success(fmt.Sprintf("weights exported to %s", out))

	return nil
}

// printPrograms renders programs as a table.
func printPrograms(w io.Writer, programs []models.Program) {
	if len(programs) == 0 {
		pterm.Info.Println("No programs found")
		return
	}

	tableBody := [][]string{{"ID", "NAME", "PRICE", "PUBLIC"}}

	for _, p := range programs {
		tableBody = append(tableBody, []string{
			p.ID,
			p.Name,
			formatPrice(p.Price),
			strconv.FormatBool(p.IsPublic),
		})
	}

	ui.PrintTable(tableBody, w)
}

func formatPrice(price float64) string {
	if price == 0 {
		return ui.Green("free")
	}

	return strconv.FormatFloat(price, 'f', 2, 64)
}

// listPrograms prints the catalog of programs, or only the purchased ones.
func listPrograms(ctx *cli.Context, e *env) error {
	client := e.client()

	var (
		programs []models.Program
		err      error
	)

	if ctx.Bool("purchased") {
		programs, err = client.PurchasedPrograms(ctx.Context)
	} else {
		programs, err = client.Programs(ctx.Context)
	}

	if err != nil {
		return err
	}

	printPrograms(config.Stdout, programs)

	return nil
}

// showProgram prints a single program.
func showProgram(ctx *cli.Context, e *env) error {
	id, err := argID(ctx, errMissingProgramID)
	if err != nil {
		return err
	}

	p, err := e.client().Program(ctx.Context, id)
	if err != nil {
		return err
	}

	ui.PrintKeyValues(config.Stdout, [][2]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Price", formatPrice(p.Price)},
		{"Public", strconv.FormatBool(p.IsPublic)},
	})

	return nil
}

// purchaseProgram buys the program named by the first argument.
func purchaseProgram(ctx *cli.Context, e *env) error {
	id, err := argID(ctx, errMissingProgramID)
	if err != nil {
		return err
	}

	if err := e.client().Purchase(ctx.Context, id); err != nil {
		return err
	}

	report.Success(fmt.Sprintf("program %s purchased", id))

	return nil
}

// promptCredentials asks for whatever part of the credentials is missing.
func promptCredentials(email string) (string, string, error) {
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", err
	}

	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", "", errEmptyCredentials
	}

	return email, password, nil
}

// login signs in and stores the session token.
func login(ctx *cli.Context, e *env) error {
	email := ctx.String("email")

	if email == "" {
		saved, _, err := e.store.Get(store.KeyUserEmail)
		if err != nil {
			e.logger.Warn("reading saved email failed", slog.Any("error", err))
		}

		email = saved
	}

	email, password, err := promptCredentials(email)
	if err != nil {
		return err
	}

	user, err := e.client().Login(ctx.Context, email, password)
	if err != nil {
		return err
	}

	report.Success(fmt.Sprintf("signed in as %s", firstNonEmptyString(user.Name, user.Email)))

	return nil
}

// logout removes the stored credentials.
func logout(_ *cli.Context, e *env) error {
	if err := e.client().Logout(); err != nil {
		return err
	}

	report.Success("signed out")

	return nil
}

// whoami prints the signed in user.
func whoami(_ *cli.Context, e *env) error {
	user, err := catalog.CurrentUser(e.store)
	if err != nil {
		return err
	}

	if user == nil {
		return catalog.ErrNotLoggedIn
	}

	ui.PrintKeyValues(config.Stdout, [][2]string{
		{"ID", user.ID},
		{"Name", user.Name},
		{"Email", user.Email},
	})

	return nil
}

// serve exposes the statistics over HTTP until the process is stopped.
func serve(ctx *cli.Context, e *env) error {
	port := ctx.Uint("port")

	pterm.Info.Printfln("serving statistics on http://127.0.0.1:%d", port)

	return stats.NewServer(e.store, e.recorder(), e.logger).ListenAndServe(port)
}

// editorCommand builds the command that opens path in the user's editor.
// The editor may carry its own arguments, such as "code --wait".
func editorCommand(editor, path string) (*exec.Cmd, error) {
	args, err := shellquote.Split(editor)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return nil, errors.New("no editor configured")
	}

	args = append(args, path)

	return exec.Command(args[0], args[1:]...), nil
}

// editConfigAction handles the edit-config command which opens the bodie config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		osutil.DefaultEditor(runtime.GOOS),
	)

	cmd, err := editorCommand(editor, pathutil.ConfigFilePath())
	if err != nil {
		return err
	}

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envBodieNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	if err := static.Install(pathutil.SoundsDir()); err != nil {
		slog.Warn("installing built-in sounds failed", slog.Any("error", err))
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting bodie")

	return nil
}
