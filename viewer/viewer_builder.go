package viewer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-face/engine/audio"
	"github.com/Carmen-Shannon/oxy-face/engine/scene"
	"github.com/Carmen-Shannon/oxy-face/engine/watcher"
)

// ViewerBuilderOption is a functional option for configuring a viewer.
type ViewerBuilderOption func(*viewer)

// WithScene makes the viewer drive an existing scene instead of opening a window.
// Run returns ErrNoEngine for such a viewer.
//
// Parameters:
//   - s: the scene to show assets in
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithScene(s scene.Scene) ViewerBuilderOption {
	return func(v *viewer) {
		v.scn = s
	}
}

// WithPlayer sets the audio player instead of opening the default audio device.
//
// Parameters:
//   - p: the player
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPlayer(p audio.Player) ViewerBuilderOption {
	return func(v *viewer) {
		v.player = p
	}
}

// WithWatcher sets the file watcher used for hot reload, enabling it regardless of the config.
//
// Parameters:
//   - w: the watcher, closed by Viewer.Close
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWatcher(w watcher.Watcher) ViewerBuilderOption {
	return func(v *viewer) {
		v.watch = w
	}
}

// WithPost sets how load results and input actions reach the goroutine owning the scene.
// Without an engine the default runs them inline.
//
// Parameters:
//   - post: the function queueing an action
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPost(post func(action func())) ViewerBuilderOption {
	return func(v *viewer) {
		v.post = post
	}
}

// WithClock sets the time source used when playback is toggled from the keyboard.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithClock(now func() time.Time) ViewerBuilderOption {
	return func(v *viewer) {
		v.now = now
	}
}
