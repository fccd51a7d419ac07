package sound

import (
	"log/slog"
	"sync"
)

// Cue is a single loaded sound that can be replayed. Playback failures are
// logged and suppressed so that the session carries on without the cue.
// A Cue may be played and closed from different goroutines.
type Cue struct {
	player   Player
	logger   *slog.Logger
	resource string
	handle   Handle
	mu       sync.Mutex
	loaded   bool
}

// NewCue loads resource through player. A failed load yields a cue that stays
// silent.
func NewCue(player Player, resource string, logger *slog.Logger) *Cue {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cue{
		player:   player,
		resource: resource,
		logger:   logger,
	}

	h, err := player.Load(resource)
	if err != nil {
		logger.Warn("unable to load cue", slog.String("resource", resource), slog.Any("error", err))

		return c
	}

	c.handle = h
	c.loaded = true

	return c
}

// Play replays the cue from the start.
func (c *Cue) Play() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	if err := c.player.Play(c.handle); err != nil {
		c.logger.Warn("unable to play cue", slog.String("resource", c.resource), slog.Any("error", err))
	}
}

// Close releases the underlying sound. Later calls to Play are no-ops.
func (c *Cue) Close() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	c.loaded = false

	if err := c.player.Release(c.handle); err != nil {
		c.logger.Warn("unable to release cue", slog.String("resource", c.resource), slog.Any("error", err))
	}
}
