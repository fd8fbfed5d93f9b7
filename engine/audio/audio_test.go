package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type fakeStream struct {
	plays, pauses, seeks, closes int
	volume                       float64
	seekErr                      error
}

func (s *fakeStream) Play()  { s.plays++ }
func (s *fakeStream) Pause() { s.pauses++ }

func (s *fakeStream) Seek(offset int64, whence int) (int64, error) {
	s.seeks++
	return 0, s.seekErr
}

func (s *fakeStream) SetVolume(volume float64) { s.volume = volume }

func (s *fakeStream) Close() error {
	s.closes++
	return nil
}

func withStreamFactory(factory streamFactory) PlayerBuilderOption {
	return func(p *player) {
		p.factory = factory
	}
}

// fakeDevice returns a player option capturing every stream it creates.
func fakeDevice(streams *[]*fakeStream) PlayerBuilderOption {
	return withStreamFactory(func(pcm io.Reader) (stream, error) {
		s := &fakeStream{}
		*streams = append(*streams, s)
		return s, nil
	})
}

// wavFile builds a 16-bit PCM stereo WAV file with the given number of sample frames.
func wavFile(sampleRate, frames int) []byte {
	dataSize := frames * 4
	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, "WAVEfmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate*4))
	buf = binary.LittleEndian.AppendUint16(buf, 4)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	for i := 0; i < frames; i++ {
		v := uint16(int16(i % 1000))
		buf = binary.LittleEndian.AppendUint16(buf, v)
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	return buf
}

func TestDecodeWAV(t *testing.T) {
	cases := []struct {
		name    string
		data    []byte
		wantLen int64
		wantErr error
	}{
		{"one_second", wavFile(DefaultSampleRate, DefaultSampleRate), DefaultSampleRate * 4, nil},
		{"empty_data_chunk", wavFile(DefaultSampleRate, 0), 0, ErrNoAudio},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := decodeWAV(c.data, DefaultSampleRate)
			if c.wantErr != nil {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Length() != c.wantLen {
				t.Fatalf("expected %d bytes, got %d", c.wantLen, s.Length())
			}
		})
	}

	if _, err := decodeWAV([]byte("not a wav file at all"), DefaultSampleRate); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestPlayerMirrorsRequestedState(t *testing.T) {
	var streams []*fakeStream
	p := NewPlayer(fakeDevice(&streams), WithVolume(0.5))

	p.Play()
	if p.IsPlaying() {
		t.Fatalf("Play without a track should do nothing")
	}

	if err := p.LoadBytes("voice", wavFile(DefaultSampleRate, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := streams[0]
	if s.volume != 0.5 {
		t.Fatalf("expected volume applied, got %v", s.volume)
	}

	p.Play()
	p.Play()
	if !p.IsPlaying() || s.plays != 1 {
		t.Fatalf("expected one device play, got playing=%v plays=%d", p.IsPlaying(), s.plays)
	}

	if err := p.Rewind(); err != nil || s.seeks != 1 {
		t.Fatalf("expected one seek, got %d (%v)", s.seeks, err)
	}

	p.Pause()
	p.Pause()
	if p.IsPlaying() || s.pauses != 1 {
		t.Fatalf("expected one device pause, got playing=%v pauses=%d", p.IsPlaying(), s.pauses)
	}
}

func TestPlayerReplaceTrack(t *testing.T) {
	var streams []*fakeStream
	p := NewPlayer(fakeDevice(&streams))

	if err := p.LoadBytes("a", wavFile(DefaultSampleRate, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Play()
	if err := p.LoadBytes("b", wavFile(DefaultSampleRate, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if streams[0].closes != 1 {
		t.Fatalf("expected previous stream closed")
	}
	if p.IsPlaying() || p.Source() != "b" {
		t.Fatalf("expected new track paused, got playing=%v source=%q", p.IsPlaying(), p.Source())
	}

	if err := p.LoadBytes("c", wavFile(DefaultSampleRate, 0)); err == nil {
		t.Fatalf("expected an error for a track without samples")
	}
	if p.Source() != "b" || streams[1].closes != 0 {
		t.Fatalf("a failed load must keep the previous track")
	}

	if err := p.Close(); err != nil || p.Loaded() {
		t.Fatalf("expected closed player, got loaded=%v err=%v", p.Loaded(), err)
	}
}

func TestSilentPlayer(t *testing.T) {
	p := NewPlayer(WithSilent())
	if !p.Silent() {
		t.Fatalf("expected silent player")
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := os.WriteFile(path, wavFile(DefaultSampleRate, 100), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := p.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Play()
	if !p.IsPlaying() {
		t.Fatalf("silent player should still report playing")
	}
	if err := p.Rewind(); err != nil {
		t.Fatalf("unexpected rewind error: %v", err)
	}
	p.Pause()
	if p.IsPlaying() {
		t.Fatalf("expected paused")
	}
}

func TestPlayerLoadErrors(t *testing.T) {
	p := NewPlayer(WithSilent())
	dir := t.TempDir()

	if err := p.Load(filepath.Join(dir, "voice.mp3")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := p.Load(filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if p.Loaded() {
		t.Fatalf("failed loads must leave the player unloaded")
	}
}
