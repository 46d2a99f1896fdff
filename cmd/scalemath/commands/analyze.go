package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/scalemath/scalemath/boundary"
	"github.com/scalemath/scalemath/convert"
	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/rep"
	"github.com/scalemath/scalemath/units"
)

// NewAnalyzeCommand returns a cli.Command for "scalemath analyze".
func NewAnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Synthesize a conversion plan and report its bounds and truncation risk",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "source representation type (e.g. int16)", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination representation type", Required: true},
			&cli.StringFlag{Name: "factor", Usage: "exact scale factor, N or N/D"},
			&cli.StringFlag{Name: "unit-from", Usage: "source unit name, instead of --factor"},
			&cli.StringFlag{Name: "unit-to", Usage: "destination unit name, instead of --factor"},
			&cli.StringFlag{Name: "apply", Usage: "value to run through the synthesized plan"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log synthesis details"},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	logger := zap.NewNop()
	if c.Bool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	old, err := typeFromFlag(c, "from")
	if err != nil {
		return err
	}
	newRep, err := typeFromFlag(c, "to")
	if err != nil {
		return err
	}
	factor, err := resolveFactor(c)
	if err != nil {
		return err
	}

	logger.Debug("synthesizing conversion",
		zap.Stringer("from", old),
		zap.Stringer("to", newRep),
		zap.Stringer("factor", factor),
		zap.Stringer("promoted", rep.Promoted(rep.CommonType(old, newRep))),
	)

	a := convert.Analyze(old, newRep, factor)
	fmt.Fprint(c.App.Writer, a.Render())

	if c.IsSet("apply") {
		v, err := parseValue(old, c.String("apply"))
		if err != nil {
			return err
		}
		if boundary.WouldOverflow(a.Plan, v) {
			fmt.Fprintf(c.App.Writer, "apply: %s overflows this plan\n", v)
			return nil
		}
		fmt.Fprintf(c.App.Writer, "apply: %s -> %s\n", v, a.Plan.Apply(v))
	}
	return nil
}

func typeFromFlag(c *cli.Context, name string) (rep.Type, error) {
	t := rep.TypeFromName(c.String(name))
	if t == rep.TypeInvalid {
		return t, errors.Newf("unknown representation type %q", c.String(name))
	}
	return t, nil
}

func resolveFactor(c *cli.Context) (magnitude.Mag, error) {
	hasUnits := c.IsSet("unit-from") || c.IsSet("unit-to")
	if c.IsSet("factor") == hasUnits {
		return magnitude.Mag{}, errors.New("provide either --factor or both --unit-from and --unit-to")
	}
	if c.IsSet("factor") {
		return parseFactor(c.String("factor"))
	}
	from, ok := units.ByName(c.String("unit-from"))
	if !ok {
		return magnitude.Mag{}, errors.Newf("unknown unit %q", c.String("unit-from"))
	}
	to, ok := units.ByName(c.String("unit-to"))
	if !ok {
		return magnitude.Mag{}, errors.Newf("unknown unit %q", c.String("unit-to"))
	}
	return units.Ratio(from, to)
}

func parseFactor(s string) (magnitude.Mag, error) {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return magnitude.Mag{}, errors.Wrapf(err, "invalid factor %q", s)
	}
	if n == 0 {
		return magnitude.Mag{}, errors.Newf("factor must be nonzero in %q", s)
	}
	if !found {
		return magnitude.FromInt(n), nil
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil || d == 0 {
		return magnitude.Mag{}, errors.Newf("invalid factor denominator in %q", s)
	}
	return magnitude.FromRatio(n, d), nil
}

func parseValue(t rep.Type, s string) (rep.Value, error) {
	switch t.Kind() {
	case rep.KindSigned:
		x, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return rep.Value{}, errors.Wrapf(err, "invalid %s value %q", t, s)
		}
		return rep.IntOf(t, x), nil
	case rep.KindUnsigned:
		x, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return rep.Value{}, errors.Wrapf(err, "invalid %s value %q", t, s)
		}
		return rep.UintOf(t, x), nil
	case rep.KindFloat:
		x, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return rep.Value{}, errors.Wrapf(err, "invalid %s value %q", t, s)
		}
		return rep.FloatOf(t, x), nil
	}
	return rep.Value{}, errors.AssertionFailedf("invalid representation type")
}
