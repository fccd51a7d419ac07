package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xhess/bodie/session"
	"github.com/xhess/bodie/timer"
)

// Builder creates the session controller with the extra options that feed
// countdown events into the view.
type Builder func(opts ...session.Option) *session.Controller

// Run shows the session until the user quits and returns the load error of
// a session that could not start. The controller is closed before Run
// returns.
func Run(ctx context.Context, build Builder, opts Options) error {
	var p *tea.Program

	ctrl := build(
		session.WithOnTick(func(s timer.Snapshot) {
			p.Send(TickMsg(s))
		}),
		session.WithOnTimeUp(func() {
			p.Send(TimeUpMsg{})
		}),
	)
	defer ctrl.Close()

	m := New(ctx, ctrl, opts)
	p = tea.NewProgram(m, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return err
	}

	return m.Err()
}
