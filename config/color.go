package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a 24-bit 0xRRGGBB colour. In YAML it is written "#rrggbb", "0xrrggbb" or as an integer.
type Color uint32

// Valid reports whether the colour fits in 24 bits.
func (c Color) Valid() bool {
	return c <= 0xffffff
}

// Hex returns the colour as a plain integer.
func (c Color) Hex() uint32 {
	return uint32(c)
}

// RGB returns the channels in the [0,1] range.
func (c Color) RGB() [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a scalar")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%06x", uint32(c)), nil
}

// ParseColor parses "#rrggbb", "0xrrggbb" or a decimal integer.
//
// Parameters:
//   - s: the colour text
//
// Returns:
//   - Color: the parsed colour
//   - error: error if s is malformed or exceeds 24 bits
func ParseColor(s string) (Color, error) {
	text := strings.TrimSpace(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(text, "#"):
		hex := text[1:]
		if len(hex) != 6 {
			return 0, fmt.Errorf("invalid color format: %s", s)
		}
		v, err = strconv.ParseUint(hex, 16, 32)
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		v, err = strconv.ParseUint(text[2:], 16, 32)
	default:
		v, err = strconv.ParseUint(text, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid color format: %s", s)
	}
	if v > 0xffffff {
		return 0, fmt.Errorf("color out of range: %s", s)
	}
	return Color(v), nil
}
