package composite

import (
	"fmt"
	"strings"
)

// Color is a straight-alpha RGBA color with float32 components in [0, 1].
// It is the vertex color format consumed by the pipeline.
type Color struct {
	R, G, B, A float32
}

// RGBA creates a color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed input yields opaque black; use ParseHex to
// detect it.
func Hex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Color{A: 1}
	}
	return c
}

// ParseHex is like Hex but reports malformed input with ErrInvalidColor
// instead of falling back to opaque black.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	var ok bool
	switch len(s) {
	case 3:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) &&
			parseHex(s[2:3], &b) && parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) &&
			parseHex(s[4:6], &b) && parseHex(s[6:8], &a)
	}
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}, nil
}

// parseHex reports false if s holds a non-hex digit.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Colors used by the built-in scene.
var (
	White           = RGBA(1, 1, 1, 1)
	TranslucentBlue = RGBA(0, 0, 1, 0.5)
	TranslucentRed  = RGBA(1, 0, 0, 0.5)
	Transparent     = RGBA(0, 0, 0, 0)
)
