package cmd

import (
	"fmt"
	"image/color"

	"github.com/cozy/cozy-avatar/pkg/avatar"
	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/spf13/cobra"
)

var flagPaletteGenerate int
var flagPaletteSaturation float64
var flagPaletteLightness float64

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the colors used for the random backgrounds",
	Long: `Print the colors of the palette from the configuration, or the default
palette when none is configured.

With --generate, it prints instead a new palette of colors with evenly spaced
hues, that can be copied in the configuration file.`,
	Example: `$ cozy-avatar palette --generate 8 --saturation 0.6 --lightness 0.45`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var colors []color.NRGBA
		switch {
		case flagPaletteGenerate > 0:
			colors = avatar.GeneratePalette(flagPaletteGenerate, flagPaletteSaturation, flagPaletteLightness)
		case len(config.GetConfig().Avatar.Palette) > 0:
			var err error
			colors, err = avatar.ParseColors(config.GetConfig().Avatar.Palette...)
			if err != nil {
				return err
			}
		default:
			colors = avatar.DefaultPalette
		}
		for _, c := range colors {
			fmt.Fprintln(cmd.OutOrStdout(), avatar.FormatColor(c))
		}
		return nil
	},
}

func init() {
	flags := paletteCmd.Flags()
	flags.IntVar(&flagPaletteGenerate, "generate", 0, "number of colors to generate")
	flags.Float64Var(&flagPaletteSaturation, "saturation", 0.55, "saturation of the generated colors, between 0 and 1")
	flags.Float64Var(&flagPaletteLightness, "lightness", 0.5, "lightness of the generated colors, between 0 and 1")
	RootCmd.AddCommand(paletteCmd)
}
