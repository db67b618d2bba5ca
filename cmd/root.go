package cmd

import (
	"errors"

	"github.com/cozy/cozy-avatar/pkg/config/config"
	"github.com/cozy/cozy-avatar/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// ErrUsage is returned by the cmd.Usage() method
var ErrUsage = errors.New("Bad usage of command")

// OutFS is the filesystem where the avatars are written, and where the
// list command reads its input file.
var OutFS = afero.NewOsFs()

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cozy-avatar",
	Short: "cozy-avatar renders letter avatars",
	Long: `cozy-avatar draws the initials of a name, or any short text, centered on
a colored shape. The avatars can be written as PNG or SVG files, one at a time
or for each line of a file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Setup(cfgFile); err != nil {
			return err
		}
		cfg := config.GetConfig()
		return logger.Init(logger.Options{
			Level:  cfg.Log.Level,
			JSON:   cfg.Log.JSON,
			Output: cmd.ErrOrStderr(),
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Display the usage/help by default
		return cmd.Usage()
	},
	// Do not display usage on error
	SilenceUsage: true,
	// We have our own way to display error messages
	SilenceErrors: true,
}

func init() {
	usageFunc := RootCmd.UsageFunc()

	RootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		_ = usageFunc(cmd)
		return ErrUsage
	})

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "configuration file (default \"$HOME/.cozy/cozy-avatar.yaml\")")

	flags.String("log-level", "info", "define the log level")
	checkNoErr(viper.BindPFlag("log.level", flags.Lookup("log-level")))

	flags.Bool("log-json", false, "write the logs in JSON")
	checkNoErr(viper.BindPFlag("log.json", flags.Lookup("log-json")))

	flags.Int("cache-size", 256, "number of encoded avatars kept in memory by the list command")
	checkNoErr(viper.BindPFlag("cache_size", flags.Lookup("cache-size")))
}

func checkNoErr(err error) {
	if err != nil {
		panic(err)
	}
}
