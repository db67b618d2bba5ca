package cmd

import (
	"path/filepath"
	"strings"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/cozy/cozy-avatar/pkg/utils"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// avatarFlags are the command line flags that override the avatar options
// of the configuration file.
type avatarFlags struct {
	width, height, textSize float64
	shape                   string
	radius                  float64
	border, shadeFactor     float64
	background, textColor   string
	palette                 string
	random                  bool
	upper, first            bool
	digit, alnum            bool
	bold, italic            bool
	font                    string
	density, fontScale      float64
}

func (f *avatarFlags) register(flags *pflag.FlagSet) {
	flags.Float64Var(&f.width, "width", avatar.Auto, "width of the avatar, -1 to fill the image")
	flags.Float64Var(&f.height, "height", avatar.Auto, "height of the avatar, -1 to fill the image")
	flags.Float64Var(&f.textSize, "text-size", avatar.Auto, "size of the text, -1 for half of the smallest side")
	flags.StringVar(&f.shape, "shape", avatar.RectShape.String(), "shape of the background: rect, round or circle")
	flags.Float64Var(&f.radius, "radius", 0, "corner radius of the round shape")
	flags.Float64Var(&f.border, "border", 0, "thickness of the border, 0 for no border")
	flags.Float64Var(&f.shadeFactor, "shade", avatar.DefaultShadeFactor, "factor applied to the background to get the border color")
	flags.StringVar(&f.background, "bg", "", "background color (#RRGGBB, #AARRGGBB or a name)")
	flags.StringVar(&f.textColor, "fg", "", "text color (#RRGGBB, #AARRGGBB or a name)")
	flags.StringVar(&f.palette, "palette", "", "comma separated colors for the random background")
	flags.BoolVar(&f.random, "random", false, "pick the background color in the palette")
	flags.BoolVar(&f.upper, "upper", false, "draw the text in upper case")
	flags.BoolVar(&f.first, "first", false, "draw only the first character")
	flags.BoolVar(&f.digit, "digit", false, "draw only the first digit")
	flags.BoolVar(&f.alnum, "alnum", false, "draw only the first letter or digit")
	flags.BoolVar(&f.bold, "bold", false, "use the bold style")
	flags.BoolVar(&f.italic, "italic", false, "use the italic style")
	flags.StringVar(&f.font, "font", "", "path of a TrueType or OpenType font")
	flags.Float64Var(&f.density, "density", 0, "pixels per dp, the sizes are in dp and sp when set")
	flags.Float64Var(&f.fontScale, "font-scale", 1, "pixels per sp divided by the density")
}

// apply overrides the options of a with the flags given on the command line.
func (f *avatarFlags) apply(flags *pflag.FlagSet, a *config.Avatar) {
	floats := map[string]struct {
		dst *float64
		val float64
	}{
		"width":      {&a.Width, f.width},
		"height":     {&a.Height, f.height},
		"text-size":  {&a.TextSize, f.textSize},
		"radius":     {&a.Radius, f.radius},
		"border":     {&a.Border, f.border},
		"shade":      {&a.ShadeFactor, f.shadeFactor},
		"density":    {&a.Density, f.density},
		"font-scale": {&a.FontScale, f.fontScale},
	}
	for name, v := range floats {
		if flags.Changed(name) {
			*v.dst = v.val
		}
	}

	strs := map[string]struct {
		dst *string
		val string
	}{
		"shape": {&a.Shape, f.shape},
		"bg":    {&a.Background, f.background},
		"fg":    {&a.TextColor, f.textColor},
		"font":  {&a.Font, f.font},
	}
	for name, v := range strs {
		if flags.Changed(name) {
			*v.dst = v.val
		}
	}

	bools := map[string]struct {
		dst *bool
		val bool
	}{
		"random": {&a.Random, f.random},
		"upper":  {&a.UpperCase, f.upper},
		"first":  {&a.FirstCharOnly, f.first},
		"digit":  {&a.DigitOnly, f.digit},
		"alnum":  {&a.AlphaNumOnly, f.alnum},
		"bold":   {&a.Bold, f.bold},
		"italic": {&a.Italic, f.italic},
	}
	for name, v := range bools {
		if flags.Changed(name) {
			*v.dst = v.val
		}
	}

	if flags.Changed("palette") {
		a.Palette = utils.SplitTrimString(f.palette, ",")
	}
}

// encodeAvatar returns the avatar encoded in the format given by the
// extension of filename: SVG for .svg, PNG otherwise.
func encodeAvatar(av *avatar.Avatar, filename string, width, height int) ([]byte, error) {
	if strings.EqualFold(extension(filename), "svg") {
		data, _, err := av.SVG(width, height)
		return data, err
	}
	data, _, err := av.PNG(width, height)
	return data, err
}

func extension(filename string) string {
	return strings.TrimPrefix(filepath.Ext(filename), ".")
}

func writeFile(filename string, data []byte) error {
	return afero.WriteFile(OutFS, filename, data, 0644)
}
