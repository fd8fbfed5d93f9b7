package track

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleTrack = "frame,timeCode,blendShapes.EyeBlinkLeft,blendShapes.JawOpen\n" +
	"0,0.0,0.1,0.2\n" +
	"1,0.5,0.3,0.4\n" +
	"2,1.0,0.5,0.6\n" +
	"3,2.0,0.7,0.8\n"

func TestParseFrameAndDurationCounts(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		frames int
	}{
		{"four_rows", sampleTrack, 4},
		{"two_rows", "f,timeCode,a\n0,0,1\n1,0.25,2\n", 2},
		{"crlf", "f,timeCode,a\r\n0,0,1\r\n1,0.25,2\r\n2,0.5,3\r\n", 3},
		{"trailing_blank_lines", sampleTrack + "\n\n   \n", 4},
		{"single_row", "f,timeCode,a\n0,0,1\n", 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := Parse(strings.NewReader(c.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Len() != c.frames {
				t.Fatalf("expected %d frames, got %d", c.frames, tr.Len())
			}
			if len(tr.Durations) != c.frames {
				t.Fatalf("expected %d durations, got %d", c.frames, len(tr.Durations))
			}
		})
	}
}

func TestParseDurations(t *testing.T) {
	tr, err := Parse(strings.NewReader(sampleTrack))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, time.Second, time.Second}
	for i, d := range want {
		if tr.Durations[i] != d {
			t.Fatalf("duration %d: expected %v, got %v", i, d, tr.Durations[i])
		}
	}

	n := len(tr.Durations)
	if tr.Durations[n-1] != tr.Durations[n-2] {
		t.Fatalf("last duration %v should repeat the previous one %v", tr.Durations[n-1], tr.Durations[n-2])
	}
	if tr.TotalDuration() != 3*time.Second {
		t.Fatalf("expected total 3s, got %v", tr.TotalDuration())
	}
}

func TestParseSingleFrameUsesFrameRate(t *testing.T) {
	tr, err := Parse(strings.NewReader("f,timeCode,a\n0,0,1\n"), WithFrameRate(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Second / 30
	if tr.Durations[0] != want {
		t.Fatalf("expected %v, got %v", want, tr.Durations[0])
	}
}

func TestParseClampsBackwardsTimecodes(t *testing.T) {
	tr, err := Parse(strings.NewReader("f,timeCode\n0,0\n1,1\n2,0.5\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Duration{time.Second, 0, 0}
	for i, d := range want {
		if tr.Durations[i] != d {
			t.Fatalf("duration %d: expected %v, got %v", i, d, tr.Durations[i])
		}
	}
}

func TestParseHeaders(t *testing.T) {
	tr, err := Parse(strings.NewReader(" Index , TimeCode , blendShapes.EyeBlinkLeft,MouthClose\n0,0,1,2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{FrameCountField, "timeCode", "eyeBlinkLeft", "mouthClose"}
	if len(tr.Headers) != len(want) {
		t.Fatalf("expected %d headers, got %v", len(want), tr.Headers)
	}
	for i, h := range want {
		if tr.Headers[i] != h {
			t.Fatalf("header %d: expected %q, got %q", i, h, tr.Headers[i])
		}
		if tr.Frames[0].Fields[i].Name != h {
			t.Fatalf("field %d: expected %q, got %q", i, h, tr.Frames[0].Fields[i].Name)
		}
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := "f,timeCode,a,b\n" +
		"0,0,1,2\n" +
		"1,0.5,3\n" + // too few columns
		"2,1.0,4,5,6\n" + // too many columns
		"3,1.5,7,8\n" +
		"4,,9,10\n" // unreadable time, kept
	tr, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 3 || len(tr.Durations) != 3 {
		t.Fatalf("expected 3 frames and durations, got %d and %d", tr.Len(), len(tr.Durations))
	}
	if v, _ := tr.Frames[1].Number("a"); v != 7 {
		t.Fatalf("expected the second frame to carry a=7, got %v", v)
	}
	if v, _ := tr.Frames[2].Number("b"); v != 10 {
		t.Fatalf("expected the row with an empty time to be kept, got b=%v", v)
	}
	if tr.Durations[0] != 1500*time.Millisecond {
		t.Fatalf("expected duration across skipped rows to be 1.5s, got %v", tr.Durations[0])
	}
}

func TestParseUnreadableTimes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []time.Duration
	}{
		{"empty cell", "f,timeCode,a\n0,0,1\n1,,2\n2,0.2,3\n", []time.Duration{0, 200 * time.Millisecond, 200 * time.Millisecond}},
		{"text cell", "f,timeCode,a\n0,0,1\n1,n/a,2\n2,0.2,3\n", []time.Duration{0, 200 * time.Millisecond, 200 * time.Millisecond}},
		{"leading cell", "f,timeCode,a\n0,,1\n1,0.1,2\n2,0.3,3\n", []time.Duration{0, 200 * time.Millisecond, 200 * time.Millisecond}},
		{"no readable time", "f,timeCode,a\n0,x,1\n1,y,2\n", []time.Duration{time.Second / 60, time.Second / 60}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := Parse(strings.NewReader(c.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Len() != len(c.want) || len(tr.Durations) != len(c.want) {
				t.Fatalf("expected %d frames, got %d frames and %d durations", len(c.want), tr.Len(), len(tr.Durations))
			}
			for i, d := range c.want {
				if tr.Durations[i] != d {
					t.Fatalf("expected durations %v, got %v", c.want, tr.Durations)
				}
			}
		})
	}
}

func TestParseQuotedCells(t *testing.T) {
	tr, err := Parse(strings.NewReader("f,timeCode,a\n0,0,\"1,5\"\n1,0.1,2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 2 {
		t.Fatalf("expected the quoted row to be kept, got %d frames", tr.Len())
	}
	if v, ok := tr.Frames[0].Lookup("a"); !ok || v.Numeric || v.Text != "1,5" {
		t.Fatalf("expected the quoted cell as text, got %+v", v)
	}
}

func TestParseValues(t *testing.T) {
	tr, err := Parse(strings.NewReader("f,timeCode,a,label\n0,0, 0.25 ,smile\n1,0.1,-1e-2,NaN\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name    string
		frame   int
		field   string
		numeric bool
		number  float64
		text    string
	}{
		{"trimmed_number", 0, "a", true, 0.25, "0.25"},
		{"text", 0, "label", false, 0, "smile"},
		{"exponent", 1, "a", true, -0.01, "-1e-2"},
		{"nan_stays_text", 1, "label", false, 0, "NaN"},
		{"frame_counter", 1, FrameCountField, true, 1, "1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, ok := tr.Frames[c.frame].Lookup(c.field)
			if !ok {
				t.Fatalf("field %q missing", c.field)
			}
			if v.Numeric != c.numeric {
				t.Fatalf("expected numeric=%v, got %v", c.numeric, v.Numeric)
			}
			if c.numeric && v.Number != c.number {
				t.Fatalf("expected %v, got %v", c.number, v.Number)
			}
			if v.Text != c.text {
				t.Fatalf("expected text %q, got %q", c.text, v.Text)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		opts  []ParserBuilderOption
		want  error
	}{
		{"empty", "", nil, ErrEmptyTrack},
		{"only_blank_lines", "\n\n", nil, ErrEmptyTrack},
		{"missing_time_field", "f,a,b\n0,1,2\n", nil, ErrMissingTimeField},
		{"custom_time_field_missing", sampleTrack, []ParserBuilderOption{WithTimeField("seconds")}, ErrMissingTimeField},
		{"header_only", "f,timeCode,a\n", nil, ErrNoFrames},
		{"all_rows_malformed", "f,timeCode,a\n0,0\n1,1\n", nil, ErrNoFrames},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input), c.opts...)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	input := "f,seconds,bs_JawOpen\n0,0,0.5\n1,0.2,0.6\n"
	tr, err := Parse(strings.NewReader(input),
		WithPrefix("bs_"),
		WithTimeField("seconds"),
		WithSource("inline"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Source != "inline" {
		t.Fatalf("expected source inline, got %q", tr.Source)
	}
	if _, ok := tr.Frames[0].Number("jawOpen"); !ok {
		t.Fatalf("expected jawOpen field after prefix strip, headers %v", tr.Headers)
	}
	if tr.Durations[0] != 200*time.Millisecond {
		t.Fatalf("expected 200ms, got %v", tr.Durations[0])
	}
}

func TestParseTextTimecodes(t *testing.T) {
	input := "f,timeCode,a\n0,00:00:01:00,1\n1,00:00:01:30,2\n2,00:00:02:00,3\n"
	tr, err := Parse(strings.NewReader(input), WithFrameRate(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Durations[0] != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", tr.Durations[0])
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in, prefix, want string
	}{
		{"blendShapes.EyeBlinkLeft", DefaultPrefix, "eyeBlinkLeft"},
		{"  JawOpen ", DefaultPrefix, "jawOpen"},
		{"timeCode", DefaultPrefix, "timeCode"},
		{"blendShapes.EyeBlinkLeft", "", "blendShapes.EyeBlinkLeft"},
		{"Éclair", DefaultPrefix, "Éclair"},
		{"", DefaultPrefix, ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := NormalizeHeader(c.in, c.prefix); got != c.want {
				t.Fatalf("NormalizeHeader(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestParseTimecode(t *testing.T) {
	cases := []struct {
		in   string
		fps  float64
		want float64
		ok   bool
	}{
		{"00:00:01:30", 60, 1.5, true},
		{"01:02:03:00", 30, 3723, true},
		{"00:00:00:15.5", 31, 0.5, true},
		{"00:00:01", 60, 0, false},
		{"aa:00:00:00", 60, 0, false},
		{"00:00:01:30", 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := ParseTimecode(c.in, c.fps)
			if ok != c.ok || got != c.want {
				t.Fatalf("ParseTimecode(%q, %v) = %v, %v; want %v, %v", c.in, c.fps, got, ok, c.want, c.ok)
			}
		})
	}
}
