package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/scalemath/scalemath/units"
)

// NewUnitsCommand returns a cli.Command for "scalemath units".
func NewUnitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List the known units and their magnitudes",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			for _, u := range units.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.Symbol, u.Dim, u.Mag)
			}
			return w.Flush()
		},
	}
}
