package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const svgContentType = "image/svg+xml"

// EncodeSVG writes the avatar as a SVG document of the given size. The
// layout is the same as Draw, but the text is rendered by the SVG viewer
// with the font family name of the typeface.
func (a *Avatar) EncodeSVG(w io.Writer, width, height int) error {
	bounds := image.Rect(0, 0, width, height)
	canvas := svg.New(w)
	canvas.Start(width, height)

	a.svgShape(canvas, 0, 0, float64(width), float64(height), svgPaint("fill", a.background))
	if a.border > 0 {
		half := a.border / 2
		style := "fill:none;" + svgPaint("stroke", a.borderColor) + ";stroke-width:" + svgFloat(a.border)
		a.svgShape(canvas, half, half, float64(width)-a.border, float64(height)-a.border, style)
	}

	if a.text != "" {
		if size := a.TextSize(bounds); size > 0 {
			face, err := a.paint.typeface.face(size)
			if err != nil {
				return fmt.Errorf("cannot load the font face: %w", err)
			}
			m := face.Metrics()
			_ = face.Close()

			cw, ch := a.CanvasSize(bounds)
			baseline := ch/2 + (fixedToFloat(m.Ascent)-fixedToFloat(m.Descent))/2
			canvas.Text(round(cw/2), round(baseline), a.text, a.svgTextStyle(size))
		}
	}

	canvas.End()
	return nil
}

// SVG returns the avatar as a SVG document, with its content-type.
func (a *Avatar) SVG(width, height int) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := a.EncodeSVG(&buf, width, height); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), svgContentType, nil
}

func (a *Avatar) svgShape(canvas *svg.SVG, x, y, w, h float64, style string) {
	switch a.shape.Kind {
	case RoundRectShape:
		r := round(a.shape.Radius)
		canvas.Roundrect(round(x), round(y), round(w), round(h), r, r, style)
	case OvalShape:
		canvas.Ellipse(round(x+w/2), round(y+h/2), round(w/2), round(h/2), style)
	default:
		canvas.Rect(round(x), round(y), round(w), round(h), style)
	}
}

func (a *Avatar) svgTextStyle(size float64) string {
	family := "sans-serif"
	if fam := a.paint.typeface.Family; fam != nil && fam.Name != "" {
		family = fam.Name + ",sans-serif"
	}
	c := a.paint.effectiveColor()
	parts := []string{
		"text-anchor:middle",
		"font-family:" + family,
		"font-size:" + svgFloat(size) + "px",
		svgPaint("fill", c),
	}
	switch a.paint.typeface.Style {
	case Bold:
		parts = append(parts, "font-weight:bold")
	case Italic:
		parts = append(parts, "font-style:italic")
	case BoldItalic:
		parts = append(parts, "font-weight:bold", "font-style:italic")
	}
	return strings.Join(parts, ";")
}

func svgColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// svgPaint returns the fill or stroke declarations for c. SVG colors have no
// alpha channel: a translucent color also sets prop-opacity.
func svgPaint(prop string, c color.NRGBA) string {
	decl := prop + ":" + svgColor(c)
	if c.A != 0xff {
		decl += ";" + prop + "-opacity:" + svgFloat(float64(c.A)/0xff)
	}
	return decl
}

func svgFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func round(f float64) int {
	return int(math.Round(f))
}
