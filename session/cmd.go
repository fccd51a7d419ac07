package session

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// sessionCommand parses the post-session command. It returns nil when no
// command is configured.
func sessionCommand(sessionCmd string) (*exec.Cmd, error) {
	if sessionCmd == "" {
		return nil, nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return nil, fmt.Errorf("unable to parse session.cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	return exec.Command(cmdSlice[0], cmdSlice[1:]...), nil
}

// runSessionCmd starts the post-session command in the background. Close
// waits for it to exit.
func (c *Controller) runSessionCmd() {
	cmd, err := sessionCommand(c.sessionCmd)
	if err != nil {
		c.logger.Warn("skipping session command", slog.Any("error", err))
		return
	}

	if cmd == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.flushes.Add(1)

	go func() {
		defer c.flushes.Done()

		out, err := cmd.CombinedOutput()
		if err != nil {
			c.logger.Error(
				"session command failed",
				slog.String("cmd", c.sessionCmd),
				slog.String("output", string(out)),
				slog.Any("error", err),
			)
		}
	}()
}
