// Package session drives a user through a workout's ordered exercise list.
// A Controller holds the in-focus position, the weight entered for every
// exercise and the set of completed exercises, and persists progress through
// a store as it changes.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/metrics"
	"github.com/xhess/bodie/sound"
	"github.com/xhess/bodie/store"
	"github.com/xhess/bodie/timer"
)

// State is a stage in a session's lifetime.
type State int

const (
	// Loading is the state of a controller whose exercises are being fetched.
	Loading State = iota
	// Ready means the exercises are loaded and the session can advance.
	Ready
	// Completed is entered once, when the last exercise is advanced past.
	Completed
	// Failed means the exercise list could not be fetched. Err holds the
	// cause.
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Completed:
		return "completed"
	case Failed:
		return "error"
	}

	return "unknown"
}

var (
	ErrNotReady        = errors.New("session is not ready")
	ErrIndexOutOfRange = errors.New("exercise index out of range")
	ErrAlreadyLoaded   = errors.New("session has already been loaded")
)

// WindowItem is one entry of the lookahead window.
type WindowItem struct {
	Exercise  models.Exercise
	Weight    string
	Index     int
	Completed bool
	InFocus   bool
}

// Controller is a single traversal of a workout. Its methods are safe for
// concurrent use.
type Controller struct {
	catalog     catalog.Catalog
	store       store.Store
	timer       *timer.Timer
	cue         *sound.Cue
	recorder    *metrics.Recorder
	logger      *slog.Logger
	onComplete  func(models.Exercise)
	onTick      func(timer.Snapshot)
	onTimeUp    func()
	completed   map[int]bool
	err         error
	workout     models.Workout
	id          string
	workoutID   string
	sessionCmd  string
	exercises   []models.Exercise
	weights     []string
	timerOpts   []timer.Option
	flushes     sync.WaitGroup
	closeOnce   sync.Once
	mu          sync.Mutex
	state       State
	index       int
	loadStarted bool
	closed      bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimer passes options to the controller's countdown timer, such as its
// initial value, alert threshold or tick source. Hooks are owned by the
// controller; use WithOnTick and WithOnTimeUp to observe the countdown.
func WithTimer(opts ...timer.Option) Option {
	return func(c *Controller) {
		c.timerOpts = append(c.timerOpts, opts...)
	}
}

// WithCue sets the audio cue played on advance and at the countdown alert.
func WithCue(cue *sound.Cue) Option {
	return func(c *Controller) {
		c.cue = cue
	}
}

// WithRecorder sets the metrics recorder. By default one is created over the
// controller's store.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithOnComplete registers a hook invoked once with the final exercise when
// the session completes.
func WithOnComplete(fn func(models.Exercise)) Option {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// WithOnTick registers a hook invoked after every countdown tick.
func WithOnTick(fn func(timer.Snapshot)) Option {
	return func(c *Controller) {
		c.onTick = fn
	}
}

// WithOnTimeUp registers a hook invoked when a countdown reaches zero.
func WithOnTimeUp(fn func()) Option {
	return func(c *Controller) {
		c.onTimeUp = fn
	}
}

// WithSessionCmd sets a command to run after the session completes.
func WithSessionCmd(cmd string) Option {
	return func(c *Controller) {
		c.sessionCmd = cmd
	}
}

// New creates a controller for workoutID in the Loading state. Call Load to
// fetch the exercises and Close when the session is discarded.
func New(
	workoutID string,
	cat catalog.Catalog,
	s store.Store,
	opts ...Option,
) *Controller {
	c := &Controller{
		id:        uuid.NewString(),
		workoutID: workoutID,
		catalog:   cat,
		store:     s,
		logger:    slog.Default(),
		completed: make(map[int]bool),
		state:     Loading,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(
		slog.String("session_id", c.id),
		slog.String("workout_id", workoutID),
	)

	if c.recorder == nil {
		c.recorder = metrics.New(s, c.logger)
	}

	hooks := []timer.Option{
		timer.OnTick(c.handleTick),
		timer.OnAlert(c.cue.Play),
		timer.OnDone(c.handleTimeUp),
	}

	c.timer = timer.New(append(c.timerOpts, hooks...)...)

	return c
}

func (c *Controller) handleTick(snap timer.Snapshot) {
	_, _ = c.recorder.RecordTick()

	if c.onTick != nil {
		c.onTick(snap)
	}
}

func (c *Controller) handleTimeUp() {
	if c.onTimeUp != nil {
		c.onTimeUp()
	}
}
