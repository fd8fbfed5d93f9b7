package track

import (
	"strconv"
	"time"
)

// Value is a single parsed cell of a track row.
// Numeric cells carry their float64 in Number; every other cell keeps its trimmed text.
type Value struct {
	Number  float64
	Text    string
	Numeric bool
}

// NumberValue returns a numeric Value.
//
// Parameters:
//   - n: the number to wrap
//
// Returns:
//   - Value: a Value with Numeric set
func NumberValue(n float64) Value {
	return Value{Number: n, Text: strconv.FormatFloat(n, 'g', -1, 64), Numeric: true}
}

// TextValue returns a non-numeric Value.
//
// Parameters:
//   - s: the raw cell text
//
// Returns:
//   - Value: a Value holding the text
func TextValue(s string) Value {
	return Value{Text: s}
}

// String returns the cell as it should be printed.
func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// Field is a named cell of a frame.
type Field struct {
	Name  string
	Value Value
}

// Frame is a single row of a track with its fields in header order.
type Frame struct {
	Fields []Field
}

// Lookup returns the value stored under the given header name.
//
// Parameters:
//   - name: the normalized header name
//
// Returns:
//   - Value: the cell value
//   - bool: false if the frame has no such field
func (f Frame) Lookup(name string) (Value, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Number returns the numeric value stored under the given header name.
// Returns false when the field is absent or not numeric.
func (f Frame) Number(name string) (float64, bool) {
	v, ok := f.Lookup(name)
	if !ok || !v.Numeric {
		return 0, false
	}
	return v.Number, true
}

// Track is a parsed blendshape animation: an ordered sequence of frames and one
// display duration per frame. len(Frames) always equals len(Durations).
type Track struct {
	// Source is a label for where the track came from, usually the file path.
	Source string

	// Headers are the normalized column names. Headers[0] is always FrameCountField.
	Headers []string

	// TimeField is the column the durations were derived from.
	TimeField string

	Frames    []Frame
	Durations []time.Duration
}

// Len returns the number of frames in the track. A nil track has no frames.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Frames)
}

// TotalDuration returns the sum of all frame durations.
//
// Returns:
//   - time.Duration: the playback length of the track
func (t *Track) TotalDuration() time.Duration {
	if t == nil {
		return 0
	}
	var total time.Duration
	for _, d := range t.Durations {
		total += d
	}
	return total
}
