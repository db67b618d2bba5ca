// cozy-avatar renders letter avatars: the initials of a name, or any short
// text, drawn centered on a colored rectangle, rounded rectangle or circle.
//
// The avatars are written as PNG or SVG files. Their default options come
// from a cozy-avatar.yaml configuration file and can be overridden on the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/cozy/cozy-avatar/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if err != cmd.ErrUsage {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error()) // #nosec
			os.Exit(1)
		}
	}
}
