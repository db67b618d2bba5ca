package cmd

import (
	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/cozy/cozy-avatar/pkg/logger"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagRenderOutput string
var flagRenderSize int
var flagRenderFirstName string
var flagRenderLastName string
var flagRenderSeparator string
var renderFlags avatarFlags

var renderCmd = &cobra.Command{
	Use:   "render [text]",
	Short: "Render an avatar in a file",
	Long: `Render draws a single avatar and writes it in the file given with --output.
The text can be given as an argument, or as a first and last name with
--first-name and --last-name. The file is in SVG if its extension is .svg, and
in PNG otherwise.`,
	Example: `$ cozy-avatar render "Jane Doe" --upper --shape circle -o jd.png
$ cozy-avatar render --first-name Jane --last-name Doe --sep . --random -o jd.svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		named := flagRenderFirstName != "" || flagRenderLastName != ""
		if len(args) == 0 && !named {
			return cmd.Usage()
		}

		a := config.GetConfig().Avatar
		renderFlags.apply(cmd.Flags(), &a)
		b, err := a.Builder()
		if err != nil {
			return err
		}
		if named {
			b.SetNameTextSep(flagRenderFirstName, flagRenderLastName, flagRenderSeparator)
		} else {
			b.SetText(args[0])
		}
		av, err := b.Build()
		if err != nil {
			return err
		}

		width, height := av.Size(flagRenderSize)
		data, err := encodeAvatar(av, flagRenderOutput, width, height)
		if err != nil {
			return err
		}
		if err := writeFile(flagRenderOutput, data); err != nil {
			return err
		}
		logger.WithNamespace("cmd").
			WithField("file", flagRenderOutput).
			Infof("Avatar %q written in %s (%s)", av.Text(), flagRenderOutput, humanize.Bytes(uint64(len(data))))
		return nil
	},
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&flagRenderOutput, "output", "o", "avatar.png", "file where the avatar is written")
	flags.IntVar(&flagRenderSize, "size", 64, "size in pixels of the image when the avatar has no width or height")
	flags.StringVar(&flagRenderFirstName, "first-name", "", "first part of the text")
	flags.StringVar(&flagRenderLastName, "last-name", "", "last part of the text")
	flags.StringVar(&flagRenderSeparator, "sep", " ", "separator between the first and last parts")
	renderFlags.register(flags)
	RootCmd.AddCommand(renderCmd)
}
