package playback

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*driver)

// WithLoop sets whether playback wraps around at the end of the track.
//
// Parameters:
//   - loop: true to keep playing after the last frame (default false)
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithLoop(loop bool) DriverBuilderOption {
	return func(d *driver) {
		d.loop = loop
	}
}

// WithAudio sets the audio track kept in lock-step with the animation.
//
// Parameters:
//   - a: the audio to drive
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithAudio(a Audio) DriverBuilderOption {
	return func(d *driver) {
		d.audio = a
	}
}

// WithFrameCallback registers a function called after each applied frame.
//
// Parameters:
//   - callback: receives the index of the applied frame
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithFrameCallback(callback func(index int)) DriverBuilderOption {
	return func(d *driver) {
		d.onFrame = callback
	}
}
