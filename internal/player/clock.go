package player

import (
	"sync"
	"time"

	"github.com/callvault/callvault/internal/recording"
)

// progressInterval is how often a playing ClockPlayer reports position.
const progressInterval = 100 * time.Millisecond

// ClockPlayer is a Player that advances position by wall clock instead of
// decoding audio. Duration comes from the size-based estimate, so the
// reported position tracks what a real decoder would report only as
// closely as that estimate does.
type ClockPlayer struct {
	mu       sync.Mutex
	duration float64
	position float64
	playing  bool
	released bool
	lastTick time.Time
	stop     chan struct{}
}

// Compile-time check that ClockPlayer implements Player.
var _ Player = (*ClockPlayer)(nil)

// ClockFactory is a Factory producing ClockPlayers with the track's
// estimated duration.
func ClockFactory(track recording.FileRecord) Player {
	return NewClockPlayer(float64(recording.EstimateDurationSec(track.Size)))
}

// NewClockPlayer creates a ClockPlayer for a track of the given duration.
func NewClockPlayer(durationSec float64) *ClockPlayer {
	return &ClockPlayer{duration: durationSec}
}

// Load reports the track duration. The locator is not opened; there is
// nothing to decode.
func (p *ClockPlayer) Load(_ string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return 0, ErrReleased
	}
	return p.duration, nil
}

// Play starts advancing the position, reporting progress every
// progressInterval from a dedicated goroutine.
func (p *ClockPlayer) Play(onProgress ProgressFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released || p.playing {
		return
	}

	p.playing = true
	p.lastTick = time.Now()
	p.stop = make(chan struct{})
	go p.loop(p.stop, onProgress)
}

func (p *ClockPlayer) loop(stop chan struct{}, onProgress ProgressFunc) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			p.mu.Lock()
			if !p.playing {
				p.mu.Unlock()
				return
			}
			p.position += now.Sub(p.lastTick).Seconds()
			p.lastTick = now
			if p.duration > 0 && p.position >= p.duration {
				p.position = p.duration
				p.playing = false
			}
			pos, dur, playing := p.position, p.duration, p.playing
			p.mu.Unlock()

			if onProgress != nil {
				onProgress(pos, dur)
			}
			if !playing {
				return
			}
		}
	}
}

// Pause suspends the clock, keeping the current position.
func (p *ClockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Seek moves the position, clamped to [0, duration].
func (p *ClockPlayer) Seek(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if p.duration > 0 && seconds > p.duration {
		seconds = p.duration
	}
	p.position = seconds
	p.lastTick = time.Now()
}

// Release stops playback and marks the player unusable.
func (p *ClockPlayer) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.released = true
}

// pos returns the current position in seconds.
func (p *ClockPlayer) pos() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// stopLocked halts the progress loop. Callers must hold p.mu.
func (p *ClockPlayer) stopLocked() {
	if !p.playing {
		return
	}
	p.playing = false
	close(p.stop)
	p.stop = nil
}
