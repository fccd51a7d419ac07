package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/xhess/bodie/internal/timeutil"
	"github.com/xhess/bodie/session"
)

func (m *Model) helpView(bindings ...key.Binding) string {
	return "\n\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) loadingView() string {
	return m.style.Secondary.Render("Loading workout...")
}

func (m *Model) errorView() string {
	var s strings.Builder

	s.WriteString(m.style.Error.Render("Unable to load workout"))
	s.WriteString("\n\n" + m.style.Secondary.Render(m.ctrl.Err().Error()))
	s.WriteString(m.helpView(m.keys.quit))

	return s.String()
}

func (m *Model) completedView() string {
	var s strings.Builder

	s.WriteString(m.style.Main.Render("Workout complete"))
	s.WriteString("\n\n" + m.style.Secondary.Render(
		fmt.Sprintf("You finished all %d exercises of %s.", m.ctrl.Len(), m.ctrl.Workout().Name),
	))
	s.WriteString(m.helpView(m.keys.quit))

	return s.String()
}

func (m *Model) timerView() string {
	var s strings.Builder

	s.WriteString(m.style.Main.Render(timeutil.Clock(m.timer.Remaining)))

	if !m.timer.Active {
		s.WriteString(" " + m.style.Secondary.Render("[Paused]"))
	}

	percent := 0.0
	if m.timer.Initial > 0 {
		percent = float64(m.timer.Remaining) / float64(m.timer.Initial)
	}

	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(1 - percent))

	return s.String()
}

func (m *Model) windowView() string {
	var s strings.Builder

	for i, item := range m.ctrl.CurrentWindow(m.lookahead) {
		marker := "  "
		if i == m.cursor {
			marker = "› "
		}

		name := item.Exercise.Name

		switch {
		case item.InFocus:
			name = m.style.Focus.Render(name)
		case item.Completed:
			name = m.style.Done.Render(name)
		}

		weight := item.Weight
		if m.editing && i == m.cursor {
			weight = m.input.View()
		} else if weight == "" {
			weight = m.style.Hint.Render("no weight")
		}

		fmt.Fprintf(&s, "%s%s  %s\n", marker, name, weight)
	}

	return strings.TrimRight(s.String(), "\n")
}

func (m *Model) readyView() string {
	var s strings.Builder

	cur, _ := m.ctrl.Current()

	s.WriteString(m.style.Secondary.Render(
		fmt.Sprintf("%s (%d/%d)", m.ctrl.Workout().Name, m.ctrl.Index()+1, m.ctrl.Len()),
	))
	s.WriteString("\n\n" + m.style.Main.Render(cur.Name))

	if cur.Description != "" {
		s.WriteString("\n" + m.style.Secondary.Render(cur.Description))
	}

	if cur.VideoURL != "" {
		s.WriteString("\n" + m.style.Hint.Render(cur.VideoURL))
	}

	s.WriteString("\n\n" + m.timerView())
	s.WriteString("\n\n" + m.windowView())

	if m.editing {
		s.WriteString(m.helpView(m.keys.save, m.keys.esc))
		return s.String()
	}

	next := m.keys.next
	if m.ctrl.Index() == m.ctrl.Len()-1 {
		next.SetHelp("enter", "done")
	}

	s.WriteString(m.helpView(
		m.keys.toggle,
		next,
		m.keys.up,
		m.keys.down,
		m.keys.edit,
		m.keys.quit,
	))

	return s.String()
}

// View renders the session.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var view string

	switch m.ctrl.State() {
	case session.Loading:
		view = m.loadingView()
	case session.Failed:
		view = m.errorView()
	case session.Completed:
		view = m.completedView()
	case session.Ready:
		view = m.readyView()
	}

	return m.style.Base.Render(view)
}
