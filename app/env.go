package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/config"
	"github.com/xhess/bodie/internal/logger"
	"github.com/xhess/bodie/internal/pathutil"
	"github.com/xhess/bodie/internal/ui"
	"github.com/xhess/bodie/metrics"
	"github.com/xhess/bodie/store"
)

// env holds what every command needs once the configuration is loaded.
type env struct {
	cfg     *config.Config
	store   store.Store
	logger  *slog.Logger
	closers []io.Closer
}

// newEnv loads the configuration, opens the log file and connects to the
// store. The caller must Close the returned env.
func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := config.New(
		config.WithPromptConfig(pathutil.ConfigFilePath()),
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	// The level was checked during validation
	level, _ := config.ParseLevel(cfg.Log.Level)

	log, logCloser := logger.New(logger.Options{
		Path:      pathutil.LogFilePath(),
		Level:     level,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})

	slog.SetDefault(log)

	ui.DarkTheme = cfg.Display.DarkTheme

	s, err := store.Open(cfg.Store.Driver, storePath(cfg))
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	log.Debug(
		"environment ready",
		slog.String("store_driver", cfg.Store.Driver),
		slog.Any("args", ctx.Args().Slice()),
	)

	return &env{
		cfg:     cfg,
		store:   s,
		logger:  log,
		closers: []io.Closer{s, logCloser},
	}, nil
}

func storePath(cfg *config.Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}

	return pathutil.DBFilePath()
}

// Close releases the store and the log file.
func (e *env) Close() error {
	var errs []error

	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (e *env) client() *catalog.HTTPClient {
	return catalog.NewHTTPClient(
		e.cfg.Catalog.URL,
		e.cfg.API.URL,
		e.store,
		catalog.WithTimeout(e.cfg.Catalog.Timeout),
		catalog.WithLogger(e.logger),
	)
}

// catalog returns the local workout file when one is configured, and the
// catalog service otherwise.
func (e *env) catalog() (catalog.Catalog, error) {
	if e.cfg.Catalog.File == "" {
		return e.client(), nil
	}

	c, err := catalog.NewFileCatalog(e.cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", e.cfg.Catalog.File, err)
	}

	return c, nil
}

func (e *env) recorder() *metrics.Recorder {
	return metrics.New(e.store, e.logger)
}

// withEnv adapts an action that needs an env to a cli.ActionFunc.
func withEnv(fn func(*cli.Context, *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := newEnv(ctx)
		if err != nil {
			return err
		}

		defer func() {
			if err := e.Close(); err != nil {
				pterm.Error.Println(err)
			}
		}()

		return fn(ctx, e)
	}
}
