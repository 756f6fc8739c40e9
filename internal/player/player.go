// Package player models playback state for recordings. The Player
// interface is the port to an actual audio backend; the Coordinator owns
// at most one live player and bridges user actions to it. ClockPlayer is
// the shipped backend: it advances position by wall clock, leaving real
// decoding to the device that fetches the audio.
package player

import (
	"errors"

	"github.com/callvault/callvault/internal/recording"
)

// Static errors for playback operations.
var (
	// ErrNoTrack is returned when a playback action arrives before any
	// track has been selected.
	ErrNoTrack = errors.New("player: no track selected")
	// ErrReleased is returned when a released player is used.
	ErrReleased = errors.New("player: player already released")
)

// ProgressFunc receives periodic position updates while a track plays.
// Implementations of Player must invoke it from outside the caller's
// goroutine, never synchronously from Play.
type ProgressFunc func(currentSec, totalSec float64)

// Player is the port to one decoded track. A Player is single-use: it is
// created for a track, loaded once, and released when the track is
// switched or playback shuts down.
type Player interface {
	// Load prepares the track behind locator and returns its total
	// duration in seconds.
	Load(locator string) (durationSec float64, err error)

	// Play starts or resumes playback. onProgress is invoked at a fixed
	// small interval with (current, total) seconds until the track is
	// paused, released, or finishes.
	Play(onProgress ProgressFunc)

	// Pause suspends playback, keeping the current position.
	Pause()

	// Seek moves the position to the given second.
	Seek(seconds float64)

	// Release frees the underlying decoder resource. Releasing twice is
	// a no-op.
	Release()
}

// Factory creates a fresh Player for a track. The Coordinator calls it on
// every selection so each track owns its own decoder resource.
type Factory func(track recording.FileRecord) Player
