package track

// ParserBuilderOption is a functional option applied to the parser used by Parse and ParseFile.
type ParserBuilderOption func(*parser)

// WithSource sets the label recorded in Track.Source.
//
// Parameters:
//   - source: the label, usually the file path
//
// Returns:
//   - ParserBuilderOption: option function to apply
func WithSource(source string) ParserBuilderOption {
	return func(p *parser) {
		p.source = source
	}
}

// WithPrefix sets the prefix stripped from every header name.
// Pass an empty string to keep header names untouched apart from trimming and lower-casing.
//
// Parameters:
//   - prefix: the header prefix (default DefaultPrefix)
//
// Returns:
//   - ParserBuilderOption: option function to apply
func WithPrefix(prefix string) ParserBuilderOption {
	return func(p *parser) {
		p.prefix = prefix
	}
}

// WithTimeField sets the normalized column name durations are derived from.
// Empty values are ignored.
//
// Parameters:
//   - field: the time column name (default DefaultTimeField)
//
// Returns:
//   - ParserBuilderOption: option function to apply
func WithTimeField(field string) ParserBuilderOption {
	return func(p *parser) {
		if field != "" {
			p.timeField = field
		}
	}
}

// WithFrameRate sets the frame rate used to read HH:MM:SS:FF timecodes and to time single-frame tracks.
// Values <= 0 are ignored.
//
// Parameters:
//   - fps: frames per second (default DefaultFrameRate)
//
// Returns:
//   - ParserBuilderOption: option function to apply
func WithFrameRate(fps float64) ParserBuilderOption {
	return func(p *parser) {
		if fps > 0 {
			p.frameRate = fps
		}
	}
}
