package player

import (
	"errors"
	"sync"
	"testing"

	"github.com/callvault/callvault/internal/recording"
)

// fakePlayer records calls into a shared event log so tests can assert
// call ordering across player instances.
type fakePlayer struct {
	name     string
	duration float64
	loadErr  error

	mu       sync.Mutex
	log      *[]string
	released bool
	progress ProgressFunc
}

func (f *fakePlayer) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.log = append(*f.log, f.name+":"+event)
}

func (f *fakePlayer) Load(string) (float64, error) {
	f.record("load")
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	return f.duration, nil
}

func (f *fakePlayer) Play(onProgress ProgressFunc) {
	f.record("play")
	f.mu.Lock()
	f.progress = onProgress
	f.mu.Unlock()
}

func (f *fakePlayer) Pause() { f.record("pause") }

func (f *fakePlayer) Seek(float64) { f.record("seek") }

func (f *fakePlayer) Release() {
	f.mu.Lock()
	already := f.released
	f.released = true
	f.mu.Unlock()
	if !already {
		f.record("release")
	}
}

// emit delivers a progress update as the player's goroutine would.
func (f *fakePlayer) emit(cur, total float64) {
	f.mu.Lock()
	progress := f.progress
	f.mu.Unlock()
	if progress != nil {
		progress(cur, total)
	}
}

func track(name string, size int64) recording.FileRecord {
	return recording.FileRecord{Name: name, Path: "/recordings/" + name, Size: size, Source: recording.SourceLocal}
}

func newFakeCoordinator(t *testing.T) (*Coordinator, map[string]*fakePlayer, *[]string) {
	t.Helper()
	log := &[]string{}
	players := make(map[string]*fakePlayer)
	factory := func(tr recording.FileRecord) Player {
		p := &fakePlayer{name: tr.Name, duration: 60, log: log}
		players[tr.Name] = p
		return p
	}
	return NewCoordinator(factory, nil), players, log
}

func TestCoordinator_SelectTrack(t *testing.T) {
	c, _, log := newFakeCoordinator(t)

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatalf("SelectTrack() error = %v", err)
	}

	state := c.State()
	if state.CurrentTrack == nil || state.CurrentTrack.Name != "a.mp3" {
		t.Fatalf("CurrentTrack = %+v", state.CurrentTrack)
	}
	if !state.IsPlaying || state.CurrentTime != 0 || state.Duration != 60 {
		t.Errorf("state = %+v", state)
	}

	want := []string{"a.mp3:load", "a.mp3:play"}
	assertLog(t, *log, want)
}

// Selecting track B while A is live must release A's player exactly once
// before B's load begins.
func TestCoordinator_SwitchReleasesPreviousBeforeLoad(t *testing.T) {
	c, players, log := newFakeCoordinator(t)

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectTrack(track("b.mp3", 240000)); err != nil {
		t.Fatal(err)
	}

	want := []string{"a.mp3:load", "a.mp3:play", "a.mp3:release", "b.mp3:load", "b.mp3:play"}
	assertLog(t, *log, want)

	if !players["a.mp3"].released {
		t.Error("previous player was not released")
	}
}

func TestCoordinator_LoadErrorReleasesNewPlayer(t *testing.T) {
	log := &[]string{}
	loadErr := errors.New("decode failed")
	factory := func(tr recording.FileRecord) Player {
		return &fakePlayer{name: tr.Name, loadErr: loadErr, log: log}
	}
	c := NewCoordinator(factory, nil)

	err := c.SelectTrack(track("bad.mp3", 1))
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	// The failed player must be released so no decoder handle leaks.
	assertLog(t, *log, []string{"bad.mp3:load", "bad.mp3:release"})

	if state := c.State(); state.CurrentTrack != nil {
		t.Errorf("state should be reset after failed load, got %+v", state)
	}
}

func TestCoordinator_TogglePlayPause(t *testing.T) {
	c, _, log := newFakeCoordinator(t)

	if err := c.TogglePlayPause(); !errors.Is(err, ErrNoTrack) {
		t.Fatalf("expected ErrNoTrack, got %v", err)
	}

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatal(err)
	}

	if err := c.TogglePlayPause(); err != nil {
		t.Fatal(err)
	}
	if c.State().IsPlaying {
		t.Error("expected paused state")
	}

	if err := c.TogglePlayPause(); err != nil {
		t.Fatal(err)
	}
	if !c.State().IsPlaying {
		t.Error("expected playing state")
	}

	want := []string{"a.mp3:load", "a.mp3:play", "a.mp3:pause", "a.mp3:play"}
	assertLog(t, *log, want)
}

func TestCoordinator_SeekUpdatesTimeSynchronously(t *testing.T) {
	c, _, _ := newFakeCoordinator(t)

	if err := c.Seek(10); !errors.Is(err, ErrNoTrack) {
		t.Fatalf("expected ErrNoTrack, got %v", err)
	}

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatal(err)
	}
	if err := c.Seek(42.5); err != nil {
		t.Fatal(err)
	}

	// No progress tick has fired; the position must already be updated.
	if got := c.State().CurrentTime; got != 42.5 {
		t.Errorf("CurrentTime = %v, want 42.5", got)
	}
}

func TestCoordinator_ProgressUpdatesState(t *testing.T) {
	c, players, _ := newFakeCoordinator(t)

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatal(err)
	}

	players["a.mp3"].emit(12.3, 60)
	state := c.State()
	if state.CurrentTime != 12.3 || state.Duration != 60 {
		t.Errorf("state after progress = %+v", state)
	}
	if !state.IsPlaying {
		t.Error("mid-track progress should keep playing state")
	}

	// Reaching the end flips the playing flag.
	players["a.mp3"].emit(60, 60)
	if c.State().IsPlaying {
		t.Error("end of track should stop the playing state")
	}
}

func TestCoordinator_Release(t *testing.T) {
	c, players, _ := newFakeCoordinator(t)

	// Releasing with no player is a no-op.
	c.Release()

	if err := c.SelectTrack(track("a.mp3", 480000)); err != nil {
		t.Fatal(err)
	}
	c.Release()

	if !players["a.mp3"].released {
		t.Error("Release() must release the live player")
	}
	if state := c.State(); state.CurrentTrack != nil || state.IsPlaying {
		t.Errorf("state after release = %+v", state)
	}
}

func assertLog(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event log = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event log = %v, want %v", got, want)
		}
	}
}
