package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhess/bodie/catalog"
	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/session"
	"github.com/xhess/bodie/store"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeCatalog struct {
	err error
}

func (f fakeCatalog) Workout(_ context.Context, id string) (*models.WorkoutDetail, error) {
	if f.err != nil {
		return nil, &catalog.FetchError{WorkoutID: id, Err: f.err}
	}

	return &models.WorkoutDetail{
		Workout: models.Workout{ID: id, Name: "Push day"},
		Exercises: []models.WorkoutExercise{
			{Exercise: &models.Exercise{ID: "a", Name: "Bench press", Description: "Flat bench"}},
			{Exercise: &models.Exercise{ID: "b", Name: "Dips"}},
			{Exercise: &models.Exercise{ID: "c", Name: "Push-ups"}},
		},
	}, nil
}

type notifications struct {
	titles []string
	mu     sync.Mutex
}

func (n *notifications) notify(title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.titles = append(n.titles, title)

	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, cat catalog.Catalog, n *notifications) *Model {
	t.Helper()

	ctrl := session.New("W1", cat, store.NewMemory(), session.WithLogger(discard))
	t.Cleanup(ctrl.Close)

	m := New(context.Background(), ctrl, Options{Lookahead: 2, Notify: n.notify})

	m.Update(m.Init()())

	return m
}

// run executes a command and feeds its message back into the model.
func run(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func TestLoadedView(t *testing.T) {
	m := newModel(t, fakeCatalog{}, &notifications{})

	view := m.View()
	assert.Contains(t, view, "Push day (1/3)")
	assert.Contains(t, view, "Bench press")
	assert.Contains(t, view, "Flat bench")
	assert.Contains(t, view, "00:30")
	assert.Contains(t, view, "[Paused]")
	assert.NotContains(t, view, "Push-ups", "outside the lookahead window")
}

func TestErrorView(t *testing.T) {
	m := newModel(t, fakeCatalog{err: errors.New("connection refused")}, &notifications{})

	require.Error(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "Unable to load workout")
	assert.Contains(t, view, "connection refused")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, session.Failed, m.ctrl.State())
}

func TestToggleAndTick(t *testing.T) {
	m := newModel(t, fakeCatalog{}, &notifications{})

	m.Update(runes(" "))
	assert.True(t, m.timer.Active)
	assert.NotContains(t, m.View(), "[Paused]")

	m.Update(TickMsg{Remaining: 12, Initial: 30, Active: true})
	assert.Contains(t, m.View(), "00:12")
}

func TestEditWeight(t *testing.T) {
	m := newModel(t, fakeCatalog{}, &notifications{})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor stays inside the window")

	m.Update(runes("e"))
	require.True(t, m.editing)

	m.Update(runes("4"))
	m.Update(runes("0"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing)
	assert.Equal(t, []string{"", "40", ""}, m.ctrl.Weights())
	assert.Equal(t, 0, m.ctrl.Index(), "saving a weight does not advance")

	m.Update(runes("e"))
	m.Update(runes("5"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "40", m.ctrl.Weights()[1])
}

func TestAdvanceToCompletion(t *testing.T) {
	n := &notifications{}
	m := newModel(t, fakeCatalog{}, n)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(m, cmd)
	assert.Equal(t, 1, m.ctrl.Index())
	assert.Equal(t, 1, m.cursor)

	_, cmd = m.Update(runes("n"))
	run(m, cmd)
	assert.Contains(t, m.View(), "enter done")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(m, cmd)

	assert.Equal(t, session.Completed, m.ctrl.State())
	assert.Contains(t, m.View(), "Workout complete")
	assert.Equal(t, []string{"Workout complete"}, n.titles)
}

func TestTimeUpNotifies(t *testing.T) {
	n := &notifications{}
	m := newModel(t, fakeCatalog{}, n)

	_, cmd := m.Update(TimeUpMsg{})
	run(m, cmd)

	assert.Equal(t, []string{"Time's up"}, n.titles)
}

func TestQuit(t *testing.T) {
	m := newModel(t, fakeCatalog{}, &notifications{})

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
