package avatar

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
)

// ShapeKind is the kind of the background shape.
type ShapeKind int

const (
	// RectShape fills the whole bounds.
	RectShape ShapeKind = iota
	// RoundRectShape is a rectangle with rounded corners.
	RoundRectShape
	// OvalShape is the ellipse inscribed in the bounds (a circle for square
	// bounds).
	OvalShape
)

// String implements fmt.Stringer.
func (k ShapeKind) String() string {
	switch k {
	case RectShape:
		return "rect"
	case RoundRectShape:
		return "round"
	case OvalShape:
		return "circle"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShapeKind returns the ShapeKind for its name.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(s) {
	case "rect", "rectangle", "square":
		return RectShape, nil
	case "round", "roundrect", "rounded":
		return RoundRectShape, nil
	case "circle", "oval":
		return OvalShape, nil
	}
	return RectShape, fmt.Errorf("unknown shape %q", s)
}

// Shape is the background shape of an avatar. Radius is only used by
// RoundRectShape.
type Shape struct {
	Kind   ShapeKind
	Radius float64
}

// Rect returns a rectangle shape.
func Rect() Shape { return Shape{Kind: RectShape} }

// RoundRect returns a rectangle shape with rounded corners.
func RoundRect(radius float64) Shape { return Shape{Kind: RoundRectShape, Radius: radius} }

// Oval returns an oval shape.
func Oval() Shape { return Shape{Kind: OvalShape} }

// trace adds the shape path for the given box to the current path of dc.
func (s Shape) trace(dc *gg.Context, x, y, w, h float64) {
	switch s.Kind {
	case RoundRectShape:
		dc.DrawRoundedRectangle(x, y, w, h, s.Radius)
	case OvalShape:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	default:
		dc.DrawRectangle(x, y, w, h)
	}
}
