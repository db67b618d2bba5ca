package avatar

import (
	"image/color"
	"math/rand"
	"slices"
	"time"

	"github.com/cozy/cozy-avatar/pkg/initials"
)

// Auto is the value of the sizes that are computed at draw time: the
// destination bounds for the width and height, and half of the smallest side
// for the text size.
const Auto = -1

// DefaultShadeFactor is the factor used to compute the border color.
const DefaultShadeFactor = 0.9

// Rand is the source of randomness used to pick a background color.
// *math/rand.Rand implements it.
type Rand interface {
	Intn(n int) int
}

// Options is the configuration of an avatar. The zero value is not usable:
// get the defaults with DefaultOptions or NewBuilder.
type Options struct {
	Text string
	// Pair is set when the text has been given as a first and last part.
	Pair *initials.Pair

	Shape    Shape
	Typeface Typeface

	TextColor        color.NRGBA
	Background       color.NRGBA
	RandomBackground bool
	RandomColors     []color.NRGBA

	Border      float64
	ShadeFactor float64

	Width    float64
	Height   float64
	TextSize float64

	// Metrics converts the sizes from dp and sp to pixels. When nil, the
	// sizes are in pixels.
	Metrics Metrics
	// Rand is used for the random background. When nil, a source seeded with
	// the current time is used.
	Rand Rand

	initials.Flags
}

// DefaultOptions returns the options of a gray rectangle with the text in
// white, sized by the drawing bounds.
func DefaultOptions() Options {
	return Options{
		Shape:        Rect(),
		Typeface:     DefaultTypeface(),
		TextColor:    White,
		Background:   Gray,
		RandomColors: slices.Clone(DefaultPalette),
		ShadeFactor:  DefaultShadeFactor,
		Width:        Auto,
		Height:       Auto,
		TextSize:     Auto,
	}
}

// clone returns a copy of the options that shares no mutable state with o.
func (o Options) clone() Options {
	c := o
	c.RandomColors = slices.Clone(o.RandomColors)
	if o.Pair != nil {
		p := *o.Pair
		c.Pair = &p
	}
	return c
}

// Builder accumulates the options of an avatar. Each call to Build creates
// an avatar with a snapshot of the options, so a builder can be reused.
type Builder struct {
	opts Options
}

// NewBuilder returns a builder with the default options.
func NewBuilder() *Builder {
	b := &Builder{}
	return b.SetDefaults()
}

// SetDefaults resets every option to its default value.
func (b *Builder) SetDefaults() *Builder {
	b.opts = DefaultOptions()
	return b
}

// Options returns a copy of the current options.
func (b *Builder) Options() Options {
	return b.opts.clone()
}

// SetText sets the text to display.
func (b *Builder) SetText(text string) *Builder {
	b.opts.Text = text
	b.opts.Pair = nil
	return b
}

// SetNameText sets the text as a first and last name separated by a space.
// With FirstCharOnly, each part gives its own initial.
func (b *Builder) SetNameText(first, last string) *Builder {
	return b.SetNameTextSep(first, last, " ")
}

// SetNameTextSep is like SetNameText with a custom separator.
func (b *Builder) SetNameTextSep(first, last, sep string) *Builder {
	pair := initials.Pair{First: first, Last: last, Separator: sep}
	b.opts.Text = pair.String()
	b.opts.Pair = &pair
	return b
}

// UseDeviceUnits makes the width, height, radius and border expressed in dp,
// and the text size in sp. The metrics are used once, when building.
func (b *Builder) UseDeviceUnits(m Metrics) *Builder {
	b.opts.Metrics = m
	return b
}

// UsePixels makes all the sizes expressed in pixels (the default).
func (b *Builder) UsePixels() *Builder {
	b.opts.Metrics = nil
	return b
}

// SetWidth sets the width, or Auto to use the bounds at draw time.
func (b *Builder) SetWidth(width float64) *Builder {
	b.opts.Width = width
	return b
}

// SetHeight sets the height, or Auto to use the bounds at draw time.
func (b *Builder) SetHeight(height float64) *Builder {
	b.opts.Height = height
	return b
}

// SetSize sets the width and the height.
func (b *Builder) SetSize(width, height float64) *Builder {
	return b.SetWidth(width).SetHeight(height)
}

// SetTextSize sets the text size, or Auto.
func (b *Builder) SetTextSize(size float64) *Builder {
	b.opts.TextSize = size
	return b
}

// SetTypeface sets the typeface of the text.
func (b *Builder) SetTypeface(t Typeface) *Builder {
	b.opts.Typeface = t
	return b
}

// Bold uses the bold style of the current typeface.
func (b *Builder) Bold() *Builder {
	b.opts.Typeface = b.opts.Typeface.WithStyle(Bold)
	return b
}

// Italic uses the italic style of the current typeface.
func (b *Builder) Italic() *Builder {
	b.opts.Typeface = b.opts.Typeface.WithStyle(Italic)
	return b
}

// BoldItalic uses the bold-italic style of the current typeface.
func (b *Builder) BoldItalic() *Builder {
	b.opts.Typeface = b.opts.Typeface.WithStyle(BoldItalic)
	return b
}

// SetTextColor sets the color of the text.
func (b *Builder) SetTextColor(c color.Color) *Builder {
	b.opts.TextColor = toNRGBA(c)
	return b
}

// SetTextColorString parses the color and sets it as the text color.
func (b *Builder) SetTextColorString(s string) (*Builder, error) {
	c, err := ParseColor(s)
	if err != nil {
		return b, err
	}
	return b.SetTextColor(c), nil
}

// SetBackgroundColor sets the fixed background color.
func (b *Builder) SetBackgroundColor(c color.Color) *Builder {
	b.opts.Background = toNRGBA(c)
	return b
}

// SetBackgroundColorString parses the color and sets it as the background.
func (b *Builder) SetBackgroundColorString(s string) (*Builder, error) {
	c, err := ParseColor(s)
	if err != nil {
		return b, err
	}
	return b.SetBackgroundColor(c), nil
}

// SetRandomBackgroundColor enables or disables the random background.
func (b *Builder) SetRandomBackgroundColor(flag bool) *Builder {
	b.opts.RandomBackground = flag
	return b
}

// RandomBackgroundColor picks the background from the random color set.
func (b *Builder) RandomBackgroundColor() *Builder {
	return b.SetRandomBackgroundColor(true)
}

// SetRandomColorSet replaces the colors used for the random background.
func (b *Builder) SetRandomColorSet(colors ...color.Color) *Builder {
	set := make([]color.NRGBA, 0, len(colors))
	for _, c := range colors {
		set = append(set, toNRGBA(c))
	}
	b.opts.RandomColors = set
	return b
}

// SetRandomColorStrings parses the colors and uses them for the random
// background. The set is unchanged on error.
func (b *Builder) SetRandomColorStrings(strs ...string) (*Builder, error) {
	set, err := ParseColors(strs...)
	if err != nil {
		return b, err
	}
	b.opts.RandomColors = set
	return b, nil
}

// SetRand sets the source of randomness for the random background.
func (b *Builder) SetRand(r Rand) *Builder {
	b.opts.Rand = r
	return b
}

// SetBorder sets the thickness of the border. 0 disables the border.
func (b *Builder) SetBorder(thickness float64) *Builder {
	b.opts.Border = thickness
	return b
}

// SetBorderShadeFactor sets the factor applied to the background channels to
// get the border color. It is clamped to [0, 1].
func (b *Builder) SetBorderShadeFactor(factor float64) *Builder {
	b.opts.ShadeFactor = clamp01(factor)
	return b
}

// SetUpperCase enables or disables the upper case transform.
func (b *Builder) SetUpperCase(flag bool) *Builder {
	b.opts.UpperCase = flag
	return b
}

// ToUpperCase displays the text in upper case.
func (b *Builder) ToUpperCase() *Builder {
	return b.SetUpperCase(true)
}

// SetFirstCharOnly enables or disables the first character mode.
func (b *Builder) SetFirstCharOnly(flag bool) *Builder {
	b.opts.FirstCharOnly = flag
	return b
}

// FirstCharOnly displays only the first valid character.
func (b *Builder) FirstCharOnly() *Builder {
	return b.SetFirstCharOnly(true)
}

// SetDigitOnly enables or disables the digit filter.
func (b *Builder) SetDigitOnly(flag bool) *Builder {
	b.opts.DigitOnly = flag
	return b
}

// DigitOnly ignores the characters that are not digits in first character
// mode.
func (b *Builder) DigitOnly() *Builder {
	return b.SetDigitOnly(true)
}

// SetAlphaNumOnly enables or disables the alphanumeric filter.
func (b *Builder) SetAlphaNumOnly(flag bool) *Builder {
	b.opts.AlphaNumOnly = flag
	return b
}

// AlphaNumOnly ignores the characters that are not letters or numbers in
// first character mode.
func (b *Builder) AlphaNumOnly() *Builder {
	return b.SetAlphaNumOnly(true)
}

// DrawAsRect draws the background as a rectangle.
func (b *Builder) DrawAsRect() *Builder {
	b.opts.Shape = Rect()
	return b
}

// DrawAsRoundRect draws the background as a rectangle with rounded corners.
func (b *Builder) DrawAsRoundRect(radius float64) *Builder {
	b.opts.Shape = RoundRect(radius)
	return b
}

// DrawAsCircle draws the background as an oval, which is a circle when the
// bounds are square.
func (b *Builder) DrawAsCircle() *Builder {
	b.opts.Shape = Oval()
	return b
}

// Build creates an avatar from a snapshot of the current options.
func (b *Builder) Build() (*Avatar, error) {
	return New(b.opts.clone())
}

func defaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
