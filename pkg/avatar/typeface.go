package avatar

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrInvalidFont is returned when a font file cannot be parsed.
var ErrInvalidFont = errors.New("invalid font")

// Style is the style of a typeface.
type Style int

const (
	// Regular is the default style.
	Regular Style = iota
	// Bold style.
	Bold
	// Italic style.
	Italic
	// BoldItalic style.
	BoldItalic
)

func (s Style) String() string {
	switch s {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Family is a set of fonts, one per style. Only the regular font is
// mandatory: the missing styles fall back to it.
type Family struct {
	Name  string
	fonts [4]*opentype.Font
}

// NewFamily parses a TrueType or OpenType font and returns a family with it
// as the regular style.
func NewFamily(name string, regular []byte) (*Family, error) {
	f, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidFont, name, err)
	}
	fam := &Family{Name: name}
	fam.fonts[Regular] = f
	return fam, nil
}

// AddStyle parses a font and returns a copy of the family with it as the
// given style. fam is left unchanged, as it may be used by built avatars.
func (fam *Family) AddStyle(style Style, data []byte) (*Family, error) {
	if style < Regular || style > BoldItalic {
		return nil, fmt.Errorf("%w: unknown style %d", ErrInvalidFont, style)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %s", ErrInvalidFont, fam.Name, style, err)
	}
	clone := *fam
	clone.fonts[style] = f
	return &clone, nil
}

// Font returns the font for the style, or the regular one if the family has
// no font for this style.
func (fam *Family) Font(style Style) *opentype.Font {
	if style >= Regular && style <= BoldItalic {
		if f := fam.fonts[style]; f != nil {
			return f
		}
	}
	return fam.fonts[Regular]
}

var (
	goFamily     *Family
	goFamilyOnce sync.Once
)

// GoFamily returns the Go fonts family, with the four styles.
func GoFamily() *Family {
	goFamilyOnce.Do(func() {
		fam := &Family{Name: "Go"}
		for style, data := range map[Style][]byte{
			Regular:    goregular.TTF,
			Bold:       gobold.TTF,
			Italic:     goitalic.TTF,
			BoldItalic: gobolditalic.TTF,
		} {
			f, err := opentype.Parse(data)
			if err != nil {
				panic(err)
			}
			fam.fonts[style] = f
		}
		goFamily = fam
	})
	return goFamily
}

// Typeface is a font family with a style.
type Typeface struct {
	Family *Family
	Style  Style
}

// DefaultTypeface is the regular Go font.
func DefaultTypeface() Typeface {
	return Typeface{Family: GoFamily(), Style: Regular}
}

// WithStyle returns the same family with another style.
func (t Typeface) WithStyle(style Style) Typeface {
	t.Style = style
	return t
}

// face returns a font face of the given size in pixels.
func (t Typeface) face(size float64) (font.Face, error) {
	fam := t.Family
	if fam == nil {
		fam = GoFamily()
	}
	return opentype.NewFace(fam.Font(t.Style), &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
