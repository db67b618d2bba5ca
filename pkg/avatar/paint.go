package avatar

import "image/color"

// Opacity tells the host how the pixels of a drawable can be blended.
type Opacity int

const (
	// Unknown opacity.
	Unknown Opacity = iota
	// Translucent drawables have some pixels partially transparent.
	Translucent
	// Transparent drawables have no visible pixel.
	Transparent
	// Opaque drawables cover every pixel of their bounds.
	Opaque
)

// ColorFilter modifies the color of a paint.
type ColorFilter interface {
	Filter(c color.NRGBA) color.NRGBA
}

// ColorFilterFunc is an adapter to use a function as a ColorFilter.
type ColorFilterFunc func(c color.NRGBA) color.NRGBA

// Filter implements ColorFilter.
func (f ColorFilterFunc) Filter(c color.NRGBA) color.NRGBA {
	return f(c)
}

// Tint replaces the color channels with those of the tint, and keeps the
// alpha of the paint multiplied by the alpha of the tint.
func Tint(tint color.Color) ColorFilter {
	t := toNRGBA(tint)
	return ColorFilterFunc(func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: t.R, G: t.G, B: t.B, A: uint8(uint32(c.A) * uint32(t.A) / 0xff)}
	})
}

// Grayscale keeps the luminance of the paint color.
var Grayscale ColorFilter = ColorFilterFunc(func(c color.NRGBA) color.NRGBA {
	y := color.GrayModel.Convert(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}).(color.Gray).Y
	return color.NRGBA{R: y, G: y, B: y, A: c.A}
})

// paint holds the attributes used to draw the text.
type paint struct {
	color    color.NRGBA
	filter   ColorFilter
	typeface Typeface
}

func (p *paint) effectiveColor() color.NRGBA {
	if p.filter == nil {
		return p.color
	}
	return p.filter.Filter(p.color)
}
