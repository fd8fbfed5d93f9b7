package audio

// PlayerBuilderOption is a functional option for configuring a Player via NewPlayer.
type PlayerBuilderOption func(*player)

// WithSampleRate sets the device sample rate WAV files are resampled to. Values <= 0 are ignored.
//
// Parameters:
//   - rate: the sample rate in Hz (default DefaultSampleRate)
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithSampleRate(rate int) PlayerBuilderOption {
	return func(p *player) {
		if rate > 0 {
			p.sampleRate = rate
		}
	}
}

// WithVolume sets the playback volume applied to every loaded track.
//
// Parameters:
//   - volume: the volume in [0, 1]
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithVolume(volume float64) PlayerBuilderOption {
	return func(p *player) {
		p.volume = min(max(volume, 0), 1)
	}
}

// WithSilent disables the audio device. Tracks are still decoded and timed.
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithSilent() PlayerBuilderOption {
	return func(p *player) {
		p.silent = true
	}
}
