package player

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/callvault/callvault/internal/recording"
)

// PlaybackState is the coordinator's view of the current track. It is
// created on first selection and reset, not destroyed, when a new track
// is selected.
type PlaybackState struct {
	// CurrentTrack is the selected recording, or nil before the first
	// selection.
	CurrentTrack *recording.FileRecord
	// IsPlaying reports whether playback is running.
	IsPlaying bool
	// CurrentTime is the playback position in seconds.
	CurrentTime float64
	// Duration is the track's total duration in seconds.
	Duration float64
}

// Coordinator tracks the current track and its play state, bridging user
// actions to the Player port. It owns the player resource exclusively:
// only one decoded track is live at a time, and switching tracks releases
// the prior player on every path, including a failed load.
type Coordinator struct {
	factory Factory
	logger  *slog.Logger

	mu     sync.Mutex
	player Player
	state  PlaybackState
}

// NewCoordinator creates a Coordinator producing players via factory.
func NewCoordinator(factory Factory, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		factory: factory,
		logger:  logger,
	}
}

// SelectTrack loads the given recording and starts playback. Any
// previously loaded player is released before the new load begins.
func (c *Coordinator) SelectTrack(track recording.FileRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player != nil {
		c.player.Release()
		c.player = nil
	}

	p := c.factory(track)
	duration, err := p.Load(track.Locator())
	if err != nil {
		p.Release()
		c.state = PlaybackState{}
		return fmt.Errorf("load track %s: %w", track.Name, err)
	}

	c.player = p
	c.state = PlaybackState{
		CurrentTrack: &track,
		IsPlaying:    true,
		CurrentTime:  0,
		Duration:     duration,
	}
	p.Play(c.onProgress)

	c.logger.Info("track selected",
		slog.String("name", track.Name),
		slog.Float64("duration_sec", duration),
	)
	return nil
}

// TogglePlayPause flips the play state and issues the matching player
// call.
func (c *Coordinator) TogglePlayPause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player == nil {
		return ErrNoTrack
	}

	if c.state.IsPlaying {
		c.player.Pause()
	} else {
		c.player.Play(c.onProgress)
	}
	c.state.IsPlaying = !c.state.IsPlaying
	return nil
}

// Seek moves playback to the given second. The coordinator's own position
// updates synchronously; it does not wait for the next progress tick.
func (c *Coordinator) Seek(seconds float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player == nil {
		return ErrNoTrack
	}

	c.player.Seek(seconds)
	c.state.CurrentTime = seconds
	return nil
}

// State returns a copy of the current playback state.
func (c *Coordinator) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	if c.state.CurrentTrack != nil {
		track := *c.state.CurrentTrack
		state.CurrentTrack = &track
	}
	return state
}

// Release frees the current player, if any. The playback state is
// cleared.
func (c *Coordinator) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player != nil {
		c.player.Release()
		c.player = nil
	}
	c.state = PlaybackState{}
}

// onProgress normalizes the player's periodic position reports into the
// coordinator state.
func (c *Coordinator) onProgress(currentSec, totalSec float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.CurrentTime = currentSec
	if totalSec > 0 {
		c.state.Duration = totalSec
	}
	// Track finished: the player stops reporting once current reaches
	// total.
	if totalSec > 0 && currentSec >= totalSec {
		c.state.IsPlaying = false
	}
}
