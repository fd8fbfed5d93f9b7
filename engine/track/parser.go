package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// FrameCountField is the name the first column is always relabelled to.
	FrameCountField = "frameCount"

	// DefaultPrefix is stripped from header names exported by blendshape solvers.
	DefaultPrefix = "blendShapes."

	// DefaultTimeField is the column durations are derived from.
	DefaultTimeField = "timeCode"

	// DefaultFrameRate is used for timecodes expressed in frames and for single-frame tracks.
	DefaultFrameRate = 60.0
)

var (
	// ErrEmptyTrack is returned when the input has no header line.
	ErrEmptyTrack = errors.New("track has no header")

	// ErrMissingTimeField is returned when the header lacks the configured time column.
	ErrMissingTimeField = errors.New("track header has no time field")

	// ErrNoFrames is returned when no data row survived parsing.
	ErrNoFrames = errors.New("track has no valid frames")
)

// parser holds the options applied while parsing a track.
type parser struct {
	source    string
	prefix    string
	timeField string
	frameRate float64
}

// ParseFile reads and parses the track at path.
//
// Parameters:
//   - path: the CSV file to read
//   - options: parser options
//
// Returns:
//   - *Track: the parsed track with Source set to path
//   - error: error if the file cannot be opened or parsed
func ParseFile(path string, options ...ParserBuilderOption) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track %s: %w", path, err)
	}
	defer f.Close()

	options = append([]ParserBuilderOption{WithSource(path)}, options...)
	t, err := Parse(f, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track %s: %w", path, err)
	}
	return t, nil
}

// Parse reads comma-separated blendshape rows from r.
// The first line is the header. Header names are trimmed, stripped of the configured prefix and have
// a leading upper-case letter lowered; the first column is relabelled FrameCountField. Blank lines
// are ignored, rows with the wrong column count are skipped with a warning, numeric cells become
// float64 values and all other cells stay text. One duration is derived per frame from the time
// field; the last frame repeats the previous frame's duration.
//
// Parameters:
//   - r: the CSV source
//   - options: parser options
//
// Returns:
//   - *Track: the parsed track
//   - error: ErrEmptyTrack, ErrMissingTimeField or ErrNoFrames, or a read error
func Parse(r io.Reader, options ...ParserBuilderOption) (*Track, error) {
	p := &parser{
		prefix:    DefaultPrefix,
		timeField: DefaultTimeField,
		frameRate: DefaultFrameRate,
	}
	for _, opt := range options {
		opt(p)
	}
	return p.parse(r)
}

func (p *parser) parse(r io.Reader) (*Track, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var headers []string
	for headers == nil {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTrack
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		if isBlank(record) {
			continue
		}
		headers = make([]string, len(record))
		for i, h := range record {
			headers[i] = NormalizeHeader(h, p.prefix)
		}
		headers[0] = FrameCountField
	}

	timeColumn := -1
	for i, h := range headers {
		if h == p.timeField {
			timeColumn = i
			break
		}
	}
	if timeColumn < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingTimeField, p.timeField)
	}

	t := &Track{
		Source:    p.source,
		Headers:   headers,
		TimeField: p.timeField,
	}
	var (
		times    []float64
		readable []bool
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("[Track] skipping line %d: %v", parseErr.Line, parseErr.Err)
				continue
			}
			return nil, fmt.Errorf("failed to read track: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(headers) {
			log.Printf("[Track] skipping line %d: expected %d columns, got %d", line, len(headers), len(record))
			continue
		}

		frame := Frame{Fields: make([]Field, len(headers))}
		for i, cell := range record {
			frame.Fields[i] = Field{Name: headers[i], Value: parseValue(cell)}
		}

		seconds, ok := p.timeSeconds(frame.Fields[timeColumn].Value)
		if !ok {
			log.Printf("[Track] line %d: unreadable %s %q, holding the previous time", line, p.timeField, frame.Fields[timeColumn].Value.Text)
		}

		t.Frames = append(t.Frames, frame)
		times = append(times, seconds)
		readable = append(readable, ok)
	}

	if len(t.Frames) == 0 {
		return nil, ErrNoFrames
	}

	t.Durations = p.durations(p.fillTimes(times, readable))
	log.Printf("[Track] parsed %d frames (%d columns, %.2fs)", len(t.Frames), len(headers), t.TotalDuration().Seconds())
	return t, nil
}

// durations converts frame timestamps in seconds into per-frame display durations.
func (p *parser) durations(times []float64) []time.Duration {
	n := len(times)
	out := make([]time.Duration, n)
	if n == 1 {
		out[0] = time.Duration(float64(time.Second) / p.frameRate)
		return out
	}
	for i := 0; i+1 < n; i++ {
		delta := times[i+1] - times[i]
		if delta < 0 {
			log.Printf("[Track] frame %d has a timecode earlier than frame %d, clamping duration to 0", i+1, i)
			delta = 0
		}
		out[i] = time.Duration(delta * float64(time.Second))
	}
	out[n-1] = out[n-2]
	return out
}

// fillTimes gives frames with an unreadable time cell the time of the previous readable frame, so
// they last zero time. Leading unreadable frames take the first readable time. A track without any
// readable time is spaced at the fallback frame rate.
func (p *parser) fillTimes(times []float64, readable []bool) []float64 {
	first := -1
	for i, ok := range readable {
		if ok {
			first = i
			break
		}
	}
	if first < 0 {
		for i := range times {
			times[i] = float64(i) / p.frameRate
		}
		return times
	}

	last := times[first]
	for i := range times {
		if readable[i] {
			last = times[i]
			continue
		}
		times[i] = last
	}
	return times
}

// timeSeconds reads a time cell as seconds. Numeric cells are taken as seconds;
// text cells are accepted in HH:MM:SS:FF[.sub] timecode form using the configured frame rate.
func (p *parser) timeSeconds(v Value) (float64, bool) {
	if v.Numeric {
		return v.Number, true
	}
	return ParseTimecode(v.Text, p.frameRate)
}

// NormalizeHeader trims a header cell, strips prefix and lowers a leading upper-case letter.
//
// Parameters:
//   - header: the raw header cell
//   - prefix: the prefix to strip (empty to keep the name as is)
//
// Returns:
//   - string: the normalized name
func NormalizeHeader(header, prefix string) string {
	name := strings.TrimSpace(header)
	if prefix != "" {
		name = strings.TrimPrefix(name, prefix)
	}
	first, size := utf8.DecodeRuneInString(name)
	if size > 0 && first < utf8.RuneSelf && unicode.IsUpper(first) {
		name = string(unicode.ToLower(first)) + name[size:]
	}
	return name
}

// ParseTimecode converts an HH:MM:SS:FF timecode, optionally with a fractional frame part, into seconds.
//
// Parameters:
//   - text: the timecode text
//   - frameRate: frames per second used for the FF component
//
// Returns:
//   - float64: the time in seconds
//   - bool: false if the text is not a timecode
func ParseTimecode(text string, frameRate float64) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 4 || frameRate <= 0 {
		return 0, false
	}
	var units [4]float64
	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		units[i] = n
	}
	return units[0]*3600 + units[1]*60 + units[2] + units[3]/frameRate, true
}

func parseValue(cell string) Value {
	cell = strings.TrimSpace(cell)
	n, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(n) {
		return TextValue(cell)
	}
	return Value{Number: n, Text: cell, Numeric: true}
}

// isBlank reports whether a record came from a whitespace-only line.
func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
