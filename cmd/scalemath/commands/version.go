package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v2"
)

// NewVersionCommand returns a cli.Command for "scalemath version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the scalemath version",
		Action: func(c *cli.Context) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(c.App.Writer, "version not available; build with Go modules enabled")
				return nil
			}
			fmt.Fprintf(c.App.Writer, "scalemath %v\n", info.Main.Version)
			return nil
		},
	}
}
