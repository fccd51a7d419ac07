package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xhess/bodie/session"
	"github.com/xhess/bodie/timer"
)

// Update handles session events and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.cursor = m.ctrl.Index()
		m.timer = m.ctrl.Timer()

		return m, nil

	case TickMsg:
		m.timer = timer.Snapshot(msg)

		return m, nil

	case TimeUpMsg:
		m.timer = m.ctrl.Timer()

		cur, _ := m.ctrl.Current()

		return m, m.notifyCmd("Time's up", cur.Name)

	case notifiedMsg:
		if msg.err != nil {
			slog.Warn("unable to display notification", slog.Any("error", msg.err))
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.ctrl.State() != session.Ready {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.toggle):
		snap, err := m.ctrl.ToggleTimer()
		if err == nil {
			m.timer = snap
		}

	case key.Matches(msg, m.keys.next):
		return m, m.advance()

	case key.Matches(msg, m.keys.up):
		if m.cursor > m.ctrl.Index() {
			m.cursor--
		}

	case key.Matches(msg, m.keys.down):
		last := min(m.ctrl.Index()+m.lookahead, m.ctrl.Len()) - 1
		if m.cursor < last {
			m.cursor++
		}

	case key.Matches(msg, m.keys.edit):
		m.editing = true
		m.input.SetValue(m.ctrl.Weights()[m.cursor])
		m.input.CursorEnd()

		return m, m.input.Focus()
	}

	return m, nil
}

func (m *Model) advance() tea.Cmd {
	err := m.ctrl.Advance()
	if err != nil {
		if !errors.Is(err, session.ErrNotReady) {
			slog.Error("advance failed", slog.Any("error", err))
		}

		return nil
	}

	m.cursor = m.ctrl.Index()
	m.timer = m.ctrl.Timer()

	if m.ctrl.State() == session.Completed {
		return m.notifyCmd("Workout complete", m.ctrl.Workout().Name)
	}

	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.esc):
		m.editing = false
		m.input.Blur()

		return m, nil

	case key.Matches(msg, m.keys.save):
		m.editing = false
		m.input.Blur()

		if err := m.ctrl.MarkWeight(m.cursor, m.input.Value()); err != nil {
			slog.Error("saving weight failed", slog.Any("error", err))
		}

		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}
