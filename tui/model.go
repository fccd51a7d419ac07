// Package tui renders a workout session in the terminal and maps key presses
// to session operations
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/xhess/bodie/session"
	"github.com/xhess/bodie/timer"
)

type (
	loadedMsg struct {
		err error
	}

	// TickMsg carries the countdown state after a tick.
	TickMsg timer.Snapshot

	// TimeUpMsg is sent when a countdown reaches zero.
	TimeUpMsg struct{}

	notifiedMsg struct {
		err error
	}
)

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

// BeeepNotifier shows notifications through the operating system.
func BeeepNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Options configures the session view.
type Options struct {
	Notify    Notifier
	Lookahead int
	DarkTheme bool
}

// Model is the bubbletea model of a running session.
type Model struct {
	ctx      context.Context
	ctrl     *session.Controller
	notify   Notifier
	err      error
	help     help.Model
	progress progress.Model
	input    textinput.Model
	style    Style
	timer    timer.Snapshot
	keys     keymap

	lookahead int
	cursor    int
	editing   bool
	quitting  bool
}

// New returns a model driving ctrl. The controller is loaded when the
// program starts.
func New(ctx context.Context, ctrl *session.Controller, opts Options) *Model {
	lookahead := opts.Lookahead
	if lookahead < 1 {
		lookahead = 4
	}

	input := textinput.New()
	input.Placeholder = "e.g. 40kg"
	input.CharLimit = 32
	input.Width = 20

	return &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		notify:    opts.Notify,
		help:      help.New(),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:     input,
		style:     NewStyle(opts.DarkTheme),
		keys:      defaultKeymap,
		lookahead: lookahead,
		timer:     ctrl.Timer(),
	}
}

// Init loads the workout.
func (m *Model) Init() tea.Cmd {
	return m.load
}

func (m *Model) load() tea.Msg {
	return loadedMsg{err: m.ctrl.Load(m.ctx)}
}

func (m *Model) notifyCmd(title, message string) tea.Cmd {
	if m.notify == nil {
		return nil
	}

	notify := m.notify

	return func() tea.Msg {
		return notifiedMsg{err: notify(title, message)}
	}
}

// Err returns the error that ended the session view, if any.
func (m *Model) Err() error {
	return m.err
}
