// Package palette implements the gradient color model for word-cloud
// rendering.
//
// A palette is derived from a single user-chosen anchor color: the anchor is
// darkened by a fixed factor to produce the gradient's low end, and a
// configurable number of stops are linearly interpolated between the two.
// The word-cloud renderer picks one stop per placed word, so the rendered
// cloud shades from dark to bright within a single hue family.
package palette

import (
	"image/color"
	"math"
	"strings"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

// DefaultDarkenFactor is the fixed multiplier applied per channel to derive
// the gradient's dark start color from the anchor. Not user-configurable.
const DefaultDarkenFactor = 0.57

// Stop count bounds enforced by callers (UI sliders, config validation).
const (
	MinStops = 3
	MaxStops = 10
)

// RGB is one 24-bit gradient color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a 6-hex-digit color string with an optional leading '#'.
// Parsing is case-insensitive. Malformed input (wrong length, non-hex
// characters) returns an INVALID_COLOR error; callers that accept free-form
// input must surface it rather than fall back silently.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, apperr.New(apperr.ErrCodeInvalidColor, "hex color must have 6 digits: %q", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(h[2*i])
		lo, ok2 := hexDigit(h[2*i+1])
		if !ok1 || !ok2 {
			return RGB{}, apperr.New(apperr.ErrCodeInvalidColor, "invalid hex color: %q", s)
		}
		ch[i] = hi<<4 | lo
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustParseHex is like ParseHex but panics on malformed input. Reserved for
// constants and tests where the input is known to be well-formed.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// Hex returns the color as a lowercase zero-padded "#rrggbb" string.
// ParseHex(c.Hex()) always round-trips.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := [7]byte{'#'}
	for i, ch := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[ch>>4]
		b[2+2*i] = digits[ch&0xf]
	}
	return string(b[:])
}

// NRGBA returns the color as an opaque image/color value.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Darken multiplies each channel by factor and truncates toward zero,
// flooring at 0. With factor < 1 this yields the darker gradient anchor.
func Darken(c RGB, factor float64) RGB {
	scale := func(ch uint8) uint8 {
		v := int(float64(ch) * factor)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return RGB{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

// Stops generates n gradient colors interpolating channel-wise between
// Darken(final, DefaultDarkenFactor) and final at evenly spaced parameters
// t_i = i/(n-1), rounding each channel to the nearest integer. Stop 0 is
// exactly the darkened start and stop n-1 exactly the anchor.
//
// n must be at least 2; the UI constrains it to [MinStops, MaxStops].
func Stops(final RGB, n int) ([]RGB, error) {
	if n < 2 {
		return nil, apperr.New(apperr.ErrCodeInvalidStops, "need at least 2 stops, got %d", n)
	}
	start := Darken(final, DefaultDarkenFactor)
	stops := make([]RGB, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		stops[i] = RGB{
			R: lerpChannel(start.R, final.R, t),
			G: lerpChannel(start.G, final.G, t),
			B: lerpChannel(start.B, final.B, t),
		}
	}
	return stops, nil
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Colors converts gradient stops to the []color.Color palette consumed by
// the word-cloud renderer.
func Colors(stops []RGB) []color.Color {
	out := make([]color.Color, len(stops))
	for i, s := range stops {
		out[i] = s.NRGBA()
	}
	return out
}
