package commands

import (
	"github.com/urfave/cli/v2"
)

// NewApp creates the scalemath CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "scalemath"
	app.Usage = "Analyze scaled numeric conversions between representation types"
	app.EnableBashCompletion = true

	app.Commands = []*cli.Command{
		NewAnalyzeCommand(),
		NewUnitsCommand(),
		NewVersionCommand(),
	}

	return app
}
