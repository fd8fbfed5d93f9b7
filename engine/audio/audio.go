package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoAudio is returned when a file decodes to zero samples.
var ErrNoAudio = errors.New("no audio samples")

// ErrUnsupportedFormat is returned for files other than .wav.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// player is the implementation of the Player interface.
type player struct {
	mu *sync.Mutex

	sampleRate int
	volume     float64
	silent     bool
	factory    streamFactory

	source  string
	stream  stream
	loaded  bool
	playing bool
}

// Player plays one WAV track at a time on the default audio device.
//
// When no device can be opened the player runs silently: loads, play, pause and rewind still
// succeed and IsPlaying still reports the requested state, so playback timing is unaffected.
type Player interface {
	// Load decodes a WAV file and makes it the current track, paused at the start.
	// On failure the previous track is kept.
	//
	// Parameters:
	//   - path: the .wav file path
	//
	// Returns:
	//   - error: ErrUnsupportedFormat, ErrNoAudio, or a wrapped read/decode error
	Load(path string) error

	// LoadBytes decodes in-memory WAV data and makes it the current track, paused at the start.
	//
	// Parameters:
	//   - name: a label recorded as the source
	//   - data: the WAV file contents
	//
	// Returns:
	//   - error: ErrNoAudio or a wrapped decode error
	LoadBytes(name string, data []byte) error

	// Play starts or resumes the current track. No-op when nothing is loaded.
	Play()

	// Pause pauses the current track, keeping its position.
	Pause()

	// Rewind moves the current track back to the start.
	//
	// Returns:
	//   - error: error if the stream cannot seek
	Rewind() error

	// IsPlaying reports whether playback was requested and not since paused.
	//
	// Returns:
	//   - bool: true while playing
	IsPlaying() bool

	// Loaded reports whether a track is loaded.
	//
	// Returns:
	//   - bool: true if a track is loaded
	Loaded() bool

	// Source returns the path or label of the current track.
	//
	// Returns:
	//   - string: the source, or an empty string
	Source() string

	// Silent reports whether the player runs without an audio device.
	//
	// Returns:
	//   - bool: true when no device is used
	Silent() bool

	// Close releases the current track.
	//
	// Returns:
	//   - error: error if the stream cannot be closed
	Close() error
}

var _ Player = &player{}

// NewPlayer creates a Player with the specified options applied.
// The audio device is opened here; failure to open it is logged and the player runs silently.
//
// Parameters:
//   - options: a variadic list of PlayerBuilderOption functions to configure the Player
//
// Returns:
//   - Player: the new player
func NewPlayer(options ...PlayerBuilderOption) Player {
	p := &player{
		mu:         &sync.Mutex{},
		sampleRate: DefaultSampleRate,
		volume:     1,
	}
	for _, opt := range options {
		opt(p)
	}

	if p.factory == nil && !p.silent {
		factory, err := deviceFactory(p.sampleRate)
		if err != nil {
			log.Printf("[Audio] %v, continuing without sound", err)
			p.silent = true
		} else {
			p.factory = factory
		}
	}
	return p
}

func (p *player) Load(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio %s: %w", path, err)
	}
	if err := p.LoadBytes(path, data); err != nil {
		return fmt.Errorf("failed to load audio %s: %w", path, err)
	}
	return nil
}

func (p *player) LoadBytes(name string, data []byte) error {
	pcm, err := decodeWAV(data, p.sampleRate)
	if err != nil {
		return err
	}

	var next stream
	if p.factory != nil && !p.silent {
		next, err = p.factory(pcm)
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		next.SetVolume(p.volume)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.closeStream(); err != nil {
		log.Printf("[Audio] failed to close %s: %v", p.source, err)
	}
	p.stream = next
	p.source = name
	p.loaded = true
	p.playing = false
	log.Printf("[Audio] loaded %s (%d bytes pcm)", name, pcm.Length())
	return nil
}

func (p *player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded || p.playing {
		return
	}
	p.playing = true
	if p.stream != nil {
		p.stream.Play()
	}
}

func (p *player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.playing = false
	if p.stream != nil {
		p.stream.Pause()
	}
}

func (p *player) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return nil
	}
	if _, err := p.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", p.source, err)
	}
	return nil
}

func (p *player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

func (p *player) Silent() bool {
	return p.silent
}

func (p *player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.closeStream()
	p.loaded = false
	p.playing = false
	p.source = ""
	return err
}

// closeStream releases the current stream. Callers must hold mu.
func (p *player) closeStream() error {
	if p.stream == nil {
		return nil
	}
	s := p.stream
	p.stream = nil
	s.Pause()
	return s.Close()
}
