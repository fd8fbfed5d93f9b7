package playback

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-face/engine/track"
)

// State is the playback state of a Driver.
type State int

const (
	// StateStopped means no frames are applied and audio is paused.
	StateStopped State = iota

	// StateRunning means frames are applied on schedule and audio is playing.
	StateRunning
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "stopped"
	}
}

// Target is a mesh whose morph-target influences can be driven by a track.
type Target interface {
	// Name returns the mesh name, used in log output.
	Name() string

	// MorphIndex looks up a morph target by name.
	//
	// Parameters:
	//   - name: the blendshape name
	//
	// Returns:
	//   - int: the influence index
	//   - bool: false if the mesh has no such morph target
	MorphIndex(name string) (int, bool)

	// SetInfluence sets the weight of the morph target at index.
	//
	// Parameters:
	//   - index: the influence index returned by MorphIndex
	//   - weight: the new influence weight
	SetInfluence(index int, weight float32)
}

// Audio is the audio track played in lock-step with the animation.
type Audio interface {
	// Play starts or resumes playback.
	Play()

	// Pause pauses playback, keeping the current position.
	Pause()

	// Rewind moves the playback position back to the start.
	//
	// Returns:
	//   - error: error if the position cannot be changed
	Rewind() error

	// IsPlaying reports whether audio is currently playing.
	IsPlaying() bool
}

// driver implements the Driver interface.
type driver struct {
	mu *sync.Mutex

	state         State
	frameIndex    int
	lastFrameTime time.Time
	loop          bool

	assetLoaded bool
	targets     []Target

	track *track.Track
	audio Audio

	onFrame func(index int)
}

// Driver advances a blendshape track once per rendered frame, applies each frame's values to the
// tracked meshes and keeps an audio track playing or paused to match.
//
// The driver has two states. It moves from Stopped to Running only through Toggle or Start, and
// only when both an asset and a track are loaded. It moves back to Stopped through Toggle, Stop, or
// reaching the end of the track with looping disabled.
type Driver interface {
	// State returns the current playback state.
	State() State

	// Running reports whether the driver is in StateRunning.
	Running() bool

	// Ready reports whether both an asset and a track are loaded.
	Ready() bool

	// FrameIndex returns the index of the next frame to apply. Always within [0, frameCount),
	// or 0 when no track is loaded.
	FrameIndex() int

	// FrameCount returns the number of frames of the loaded track.
	FrameCount() int

	// Loop reports whether playback wraps around at the end of the track.
	Loop() bool

	// SetLoop enables or disables wrapping at the end of the track.
	//
	// Parameters:
	//   - loop: true to keep playing after the last frame
	SetLoop(loop bool)

	// SetAsset replaces the tracked meshes and marks the asset loaded.
	// Pass nil to mark the asset unloaded; a running driver then stops.
	//
	// Parameters:
	//   - targets: the meshes to drive (may be empty when the asset has none of the tracked names)
	SetAsset(targets []Target)

	// SetTrack replaces the track and rewinds to frame 0.
	// Pass nil, or a track with no frames, to mark the track unloaded; a running driver then stops.
	//
	// Parameters:
	//   - t: the parsed track
	SetTrack(t *track.Track)

	// Track returns the loaded track, or nil.
	Track() *track.Track

	// SetAudio replaces the audio track. A nil audio runs the animation silently.
	//
	// Parameters:
	//   - a: the audio to keep in lock-step
	SetAudio(a Audio)

	// SetFrameCallback registers a function called after each applied frame with the applied index.
	// The callback runs outside the driver's lock.
	//
	// Parameters:
	//   - callback: the function to call, or nil to clear it
	SetFrameCallback(callback func(index int))

	// Toggle switches between Stopped and Running. Has no effect unless Ready.
	//
	// Parameters:
	//   - now: the current wall-clock time
	//
	// Returns:
	//   - bool: true if the state changed
	Toggle(now time.Time) bool

	// Start moves to Running if Ready and not already running.
	//
	// Parameters:
	//   - now: the current wall-clock time
	//
	// Returns:
	//   - bool: true if the state changed
	Start(now time.Time) bool

	// Stop moves to Stopped and pauses audio.
	//
	// Returns:
	//   - bool: true if the state changed
	Stop() bool

	// Tick advances playback. Call once per rendered frame.
	//
	// Parameters:
	//   - now: the current wall-clock time
	Tick(now time.Time)
}

var _ Driver = &driver{}

// NewDriver creates a stopped Driver with no asset, track or audio.
//
// Parameters:
//   - options: functional options to configure the driver
//
// Returns:
//   - Driver: the newly created driver
func NewDriver(options ...DriverBuilderOption) Driver {
	d := &driver{
		mu:    &sync.Mutex{},
		state: StateStopped,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == StateRunning
}

func (d *driver) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready()
}

func (d *driver) FrameIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameIndex
}

func (d *driver) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.track.Len()
}

func (d *driver) Loop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loop
}

func (d *driver) SetLoop(loop bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loop = loop
	log.Printf("[Playback] loop %v", loop)
}

func (d *driver) SetAsset(targets []Target) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets = targets
	d.assetLoaded = targets != nil
	if !d.ready() {
		d.stop()
	}
}

func (d *driver) SetTrack(t *track.Track) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.Len() == 0 {
		t = nil
	}
	d.track = t
	d.frameIndex = 0
	if !d.ready() {
		d.stop()
	}
}

func (d *driver) Track() *track.Track {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.track
}

func (d *driver) SetAudio(a Audio) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pauseAudio()
	d.audio = a
}

func (d *driver) SetFrameCallback(callback func(index int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFrame = callback
}

func (d *driver) Toggle(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready() {
		log.Printf("[Playback] asset and track must both be loaded before playback can start")
		return false
	}
	if d.state == StateRunning {
		return d.stop()
	}
	return d.start(now)
}

func (d *driver) Start(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready() {
		log.Printf("[Playback] asset and track must both be loaded before playback can start")
		return false
	}
	return d.start(now)
}

func (d *driver) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop()
}

func (d *driver) Tick(now time.Time) {
	d.mu.Lock()
	applied := d.tick(now)
	callback := d.onFrame
	d.mu.Unlock()

	if applied >= 0 && callback != nil {
		callback(applied)
	}
}

// tick performs one playback step and returns the applied frame index, or -1 when no frame was due.
// Callers must hold mu.
func (d *driver) tick(now time.Time) int {
	if d.state != StateRunning {
		d.pauseAudio()
		return -1
	}

	if d.audio != nil && !d.audio.IsPlaying() {
		d.audio.Play()
	}

	if now.Sub(d.lastFrameTime) < d.track.Durations[d.frameIndex] {
		return -1
	}

	applied := d.frameIndex
	d.apply(d.track.Frames[applied])
	d.frameIndex++

	if d.frameIndex >= d.track.Len() {
		d.frameIndex = 0
		d.rewindAudio()
		if !d.loop {
			d.state = StateStopped
			d.pauseAudio()
			log.Printf("[Playback] reached end of track, stopped")
		}
	}

	d.lastFrameTime = now
	return applied
}

// ready reports whether playback prerequisites are met. Callers must hold mu.
func (d *driver) ready() bool {
	return d.assetLoaded && d.track.Len() > 0
}

// start moves to Running. Callers must hold mu and have checked ready.
func (d *driver) start(now time.Time) bool {
	if d.state == StateRunning {
		return false
	}
	d.state = StateRunning
	d.lastFrameTime = now
	log.Printf("[Playback] started at frame %d/%d", d.frameIndex, d.track.Len())
	return true
}

// stop moves to Stopped and pauses audio. Callers must hold mu.
func (d *driver) stop() bool {
	d.pauseAudio()
	if d.state == StateStopped {
		return false
	}
	d.state = StateStopped
	log.Printf("[Playback] stopped at frame %d", d.frameIndex)
	return true
}

// apply writes every numeric value of frame onto each target that has a morph target of the same name.
func (d *driver) apply(frame track.Frame) {
	for _, field := range frame.Fields {
		if !field.Value.Numeric {
			continue
		}
		weight := float32(field.Value.Number)
		for _, target := range d.targets {
			if index, ok := target.MorphIndex(field.Name); ok {
				target.SetInfluence(index, weight)
			}
		}
	}
}

func (d *driver) pauseAudio() {
	if d.audio != nil && d.audio.IsPlaying() {
		d.audio.Pause()
	}
}

func (d *driver) rewindAudio() {
	if d.audio == nil {
		return
	}
	if err := d.audio.Rewind(); err != nil {
		log.Printf("[Playback] failed to rewind audio: %v", err)
	}
}
