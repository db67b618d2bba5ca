// Package avatar draws letter avatars: a shape filled with a background
// color, with an optional darker border, and the initials of a name in its
// center.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/cozy/cozy-avatar/pkg/initials"
	"github.com/cozy/cozy-avatar/pkg/logger"
	"github.com/fogleman/gg"
	"golang.org/x/image/math/fixed"
)

const contentType = "image/png"

// Avatar is a letter avatar, ready to be drawn. The options and the
// background color are fixed when the avatar is created, so drawing it
// several times with the same bounds gives the same image.
//
// An Avatar is not safe for concurrent use: SetAlpha and SetColorFilter
// modify its text paint.
type Avatar struct {
	opts Options

	width    float64
	height   float64
	textSize float64
	border   float64
	shape    Shape

	background  color.NRGBA
	borderColor color.NRGBA
	text        string

	paint paint
}

// New creates an avatar for the given options. The caller must not modify
// the options slices after the call; use Builder.Build to get a snapshot.
func New(opts Options) (*Avatar, error) {
	var dp, sp func(float64) float64
	if opts.Metrics != nil {
		dp, sp = opts.Metrics.DIPToPixels, opts.Metrics.SPToPixels
	}

	a := &Avatar{
		opts:     opts,
		width:    resolve(opts.Width, dp),
		height:   resolve(opts.Height, dp),
		textSize: resolve(opts.TextSize, sp),
		border:   resolve(opts.Border, dp),
		shape:    Shape{Kind: opts.Shape.Kind, Radius: resolve(opts.Shape.Radius, dp)},
		text:     initials.Normalize(opts.Text, opts.Pair, opts.Flags),
		paint: paint{
			color:    opts.TextColor,
			typeface: opts.Typeface,
		},
	}

	a.background = opts.Background
	if opts.RandomBackground {
		if len(opts.RandomColors) == 0 {
			return nil, ErrEmptyColorSet
		}
		r := opts.Rand
		if r == nil {
			r = defaultRand()
		}
		idx := r.Intn(len(opts.RandomColors))
		a.background = opts.RandomColors[idx]
		logger.WithNamespace("avatar").
			WithField("text", a.text).
			WithField("color", FormatColor(a.background)).
			Debugf("picked random background %d/%d", idx+1, len(opts.RandomColors))
	}
	a.borderColor = DarkerShade(a.background, opts.ShadeFactor)
	return a, nil
}

// Text returns the text displayed on the avatar.
func (a *Avatar) Text() string { return a.text }

// Background returns the background color.
func (a *Avatar) Background() color.NRGBA { return a.background }

// BorderColor returns the color of the border, a darker shade of the
// background.
func (a *Avatar) BorderColor() color.NRGBA { return a.borderColor }

// Shape returns the background shape, with its radius in pixels.
func (a *Avatar) Shape() Shape { return a.shape }

// Options returns a copy of the options used to create the avatar.
func (a *Avatar) Options() Options { return a.opts.clone() }

// IntrinsicWidth returns the width in pixels, or Auto.
func (a *Avatar) IntrinsicWidth() int { return int(a.width) }

// IntrinsicHeight returns the height in pixels, or Auto.
func (a *Avatar) IntrinsicHeight() int { return int(a.height) }

// Opacity implements the drawable contract of the host: the corners of an
// oval or a rounded rectangle are transparent.
func (a *Avatar) Opacity() Opacity { return Translucent }

// SetAlpha sets the alpha of the text. The background is not affected.
func (a *Avatar) SetAlpha(alpha uint8) {
	a.paint.color.A = alpha
}

// Alpha returns the alpha of the text.
func (a *Avatar) Alpha() uint8 { return a.paint.color.A }

// SetColorFilter sets a filter applied to the text color, or removes it when
// cf is nil. The background is not affected.
func (a *Avatar) SetColorFilter(cf ColorFilter) {
	a.paint.filter = cf
}

// CanvasSize returns the size used to lay out the text for the given
// bounds.
func (a *Avatar) CanvasSize(bounds image.Rectangle) (w, h float64) {
	w, h = a.width, a.height
	if w < 0 {
		w = float64(bounds.Dx())
	}
	if h < 0 {
		h = float64(bounds.Dy())
	}
	return w, h
}

// TextSize returns the text size in pixels for the given bounds.
func (a *Avatar) TextSize(bounds image.Rectangle) float64 {
	if a.textSize >= 0 {
		return a.textSize
	}
	w, h := a.CanvasSize(bounds)
	return math.Min(w, h) / 2
}

// Draw paints the avatar on dc, in the given bounds.
func (a *Avatar) Draw(dc *gg.Context, bounds image.Rectangle) error {
	x, y := float64(bounds.Min.X), float64(bounds.Min.Y)
	bw, bh := float64(bounds.Dx()), float64(bounds.Dy())

	dc.SetColor(a.background)
	a.shape.trace(dc, x, y, bw, bh)
	dc.Fill()

	if a.border > 0 {
		half := a.border / 2
		dc.SetColor(a.borderColor)
		dc.SetLineWidth(a.border)
		a.shape.trace(dc, x+half, y+half, bw-a.border, bh-a.border)
		dc.Stroke()
	}

	if a.text == "" {
		return nil
	}
	size := a.TextSize(bounds)
	if size <= 0 {
		return nil
	}
	face, err := a.paint.typeface.face(size)
	if err != nil {
		return fmt.Errorf("cannot load the font face: %w", err)
	}
	defer face.Close()

	w, h := a.CanvasSize(bounds)
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)

	dc.Push()
	defer dc.Pop()
	dc.Translate(x, y)
	dc.SetFontFace(face)
	dc.SetColor(a.paint.effectiveColor())
	// The ascent is above the baseline: center the box between ascent and
	// descent.
	dc.DrawStringAnchored(a.text, w/2, h/2+(ascent-descent)/2, 0.5, 0)
	return nil
}

// Image returns the avatar drawn on a new image of the given size.
func (a *Avatar) Image(width, height int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(img)
	if err := a.Draw(dc, img.Bounds()); err != nil {
		return nil, err
	}
	return img, nil
}

// Size returns the size of the images created by Image when no explicit
// size is wanted: the intrinsic size, or fallback for the Auto sides.
func (a *Avatar) Size(fallback int) (int, int) {
	w, h := a.IntrinsicWidth(), a.IntrinsicHeight()
	if w <= 0 {
		w = fallback
	}
	if h <= 0 {
		h = fallback
	}
	return w, h
}

// EncodePNG draws the avatar on a new image of the given size and writes it
// to w in the PNG format.
func (a *Avatar) EncodePNG(w io.Writer, width, height int) error {
	img, err := a.Image(width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PNG returns the avatar encoded in PNG, with its content-type.
func (a *Avatar) PNG(width, height int) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := a.EncodePNG(&buf, width, height); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), contentType, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
