package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/utils"
	"github.com/spf13/afero"
)

// Builder returns an avatar builder with the configured default options.
func (a *Avatar) Builder() (*avatar.Builder, error) {
	b := avatar.NewBuilder().
		SetSize(a.Width, a.Height).
		SetTextSize(a.TextSize).
		SetBorder(a.Border).
		SetBorderShadeFactor(a.ShadeFactor).
		SetRandomBackgroundColor(a.Random).
		SetUpperCase(a.UpperCase).
		SetFirstCharOnly(a.FirstCharOnly).
		SetDigitOnly(a.DigitOnly).
		SetAlphaNumOnly(a.AlphaNumOnly)

	kind, err := avatar.ParseShapeKind(a.Shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, err)
	}
	switch kind {
	case avatar.OvalShape:
		b.DrawAsCircle()
	case avatar.RoundRectShape:
		b.DrawAsRoundRect(a.Radius)
	default:
		b.DrawAsRect()
	}

	if a.Background != "" {
		if _, err := b.SetBackgroundColorString(a.Background); err != nil {
			return nil, err
		}
	}
	if a.TextColor != "" {
		if _, err := b.SetTextColorString(a.TextColor); err != nil {
			return nil, err
		}
	}
	if len(a.Palette) > 0 {
		if _, err := b.SetRandomColorStrings(a.Palette...); err != nil {
			return nil, err
		}
	}

	if a.Font != "" {
		fam, err := loadFamily(a.Font)
		if err != nil {
			return nil, err
		}
		b.SetTypeface(avatar.Typeface{Family: fam})
	}
	switch {
	case a.Bold && a.Italic:
		b.BoldItalic()
	case a.Bold:
		b.Bold()
	case a.Italic:
		b.Italic()
	}

	if a.Density > 0 {
		scale := a.FontScale
		if scale <= 0 {
			scale = 1
		}
		b.UseDeviceUnits(avatar.NewDisplayMetrics(a.Density, scale))
	}
	return b, nil
}

func loadFamily(path string) (*avatar.Family, error) {
	path = utils.AbsPath(path)
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the font %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return avatar.NewFamily(name, data)
}
