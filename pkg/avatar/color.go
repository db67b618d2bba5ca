package avatar

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
	// ErrEmptyColorSet is returned when the random background is enabled
	// with no color to pick from.
	ErrEmptyColorSet = errors.New("empty random color set")
)

// Gray is the default background color.
var Gray = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}

// White is the default text color.
var White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// DefaultPalette is the list of colors used for the random background when
// no color set has been configured. It must not be modified.
var DefaultPalette = []color.NRGBA{
	hex(0xDB4437),
	hex(0xE91E63),
	hex(0x9C27B0),
	hex(0x673AB7),
	hex(0x3F51B5),
	hex(0x4285F4),
	hex(0x039BE5),
	hex(0x0097A7),
	hex(0x009688),
	hex(0x0F9D58),
	hex(0x689F38),
	hex(0xEF6C00),
	hex(0xFF5722),
	hex(0x757575),
}

func hex(rgb uint32) color.NRGBA {
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// Names understood by ParseColor before falling back to the CSS names.
var namedColors = map[string]color.NRGBA{
	"black":     hex(0x000000),
	"darkgray":  hex(0x444444),
	"gray":      hex(0x888888),
	"lightgray": hex(0xCCCCCC),
	"white":     hex(0xFFFFFF),
	"red":       hex(0xFF0000),
	"green":     hex(0x00FF00),
	"blue":      hex(0x0000FF),
	"yellow":    hex(0xFFFF00),
	"cyan":      hex(0x00FFFF),
	"magenta":   hex(0xFF00FF),
	"aqua":      hex(0x00FFFF),
	"fuchsia":   hex(0xFF00FF),
	"darkgrey":  hex(0x444444),
	"grey":      hex(0x888888),
	"lightgrey": hex(0xCCCCCC),
	"lime":      hex(0x00FF00),
	"maroon":    hex(0x800000),
	"navy":      hex(0x000080),
	"olive":     hex(0x808000),
	"purple":    hex(0x800080),
	"silver":    hex(0xC0C0C0),
	"teal":      hex(0x008080),
}

// ParseColor parses a color string. Supported formats are #RRGGBB,
// #AARRGGBB and color names like "red" or "lightgray".
func ParseColor(s string) (color.NRGBA, error) {
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 7:
			return parseHex(s, 0xff)
		case 9:
			alpha, err := strconv.ParseUint(s[1:3], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			return parseHex("#"+s[3:], uint8(alpha))
		}
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	name := strings.ToLower(s)
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
}

func parseHex(s string, alpha uint8) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// ParseColors parses a list of color strings, stopping at the first error.
func ParseColors(strs ...string) ([]color.NRGBA, error) {
	colors := make([]color.NRGBA, 0, len(strs))
	for _, s := range strs {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// DarkerShade scales down each channel of c by factor, which is clamped to
// [0, 1]. The result is opaque.
func DarkerShade(c color.Color, factor float64) color.NRGBA {
	factor = clamp01(factor)
	n := toNRGBA(c)
	return color.NRGBA{
		R: uint8(math.Floor(factor * float64(n.R))),
		G: uint8(math.Floor(factor * float64(n.G))),
		B: uint8(math.Floor(factor * float64(n.B))),
		A: 0xff,
	}
}

// FormatColor returns the #RRGGBB form of c, or #AARRGGBB if c is not
// opaque.
func FormatColor(c color.Color) string {
	n := toNRGBA(c)
	if n.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.A, n.R, n.G, n.B)
}

// GeneratePalette returns n colors with evenly spaced hues, at the given
// saturation and lightness.
func GeneratePalette(n int, saturation, lightness float64) []color.NRGBA {
	colors := make([]color.NRGBA, 0, n)
	for i := 0; i < n; i++ {
		h := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hsl(h, saturation, lightness).Clamped().RGB255()
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	return colors
}

func toNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
