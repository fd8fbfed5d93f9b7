package audio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is the output sample rate used when none is configured.
const DefaultSampleRate = 44100

// stream is the subset of *oto.Player used by the player. Tests substitute their own.
type stream interface {
	Play()
	Pause()
	Seek(offset int64, whence int) (int64, error)
	SetVolume(volume float64)
	Close() error
}

// streamFactory turns decoded PCM into a playable stream.
type streamFactory func(pcm io.Reader) (stream, error)

var (
	contextOnce sync.Once
	otoContext  *oto.Context
	contextErr  error
)

// sharedContext returns the process-wide oto context, creating it on first use.
// oto allows a single context per process, so the sample rate of the first call wins.
func sharedContext(sampleRate int) (*oto.Context, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			contextErr = fmt.Errorf("failed to open audio device: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	return otoContext, contextErr
}

// deviceFactory returns a factory backed by the audio device, or an error when no device is available.
func deviceFactory(sampleRate int) (streamFactory, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return func(pcm io.Reader) (stream, error) {
		p := ctx.NewPlayer(pcm)
		if err := p.Err(); err != nil {
			return nil, err
		}
		return p, nil
	}, nil
}

// decodeWAV decodes a WAV file into 16-bit little-endian stereo PCM resampled to sampleRate.
//
// Parameters:
//   - data: the WAV file contents
//   - sampleRate: the output sample rate
//
// Returns:
//   - *wav.Stream: a seekable PCM stream
//   - error: ErrNoAudio when the file holds no samples, or a wrapped decode error
func decodeWAV(data []byte, sampleRate int) (*wav.Stream, error) {
	s, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if s.Length() == 0 {
		return nil, ErrNoAudio
	}
	return s, nil
}
