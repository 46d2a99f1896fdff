package convert

import (
	"fmt"
	"strings"

	"github.com/scalemath/scalemath/boundary"
	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
	"github.com/scalemath/scalemath/trunc"
)

// Analysis is the full diagnostic report for a synthesized conversion:
// the plan, the safe input range, whether overflow is possible in either
// direction, and the truncation risk.
type Analysis struct {
	Old    rep.Type
	New    rep.Type
	Factor magnitude.Mag

	Plan ops.Op

	Lower boundary.Bound
	Upper boundary.Bound

	Risk trunc.Risk
}

// Analyze synthesizes the conversion from old to new by factor and reports
// everything the engines can say about it.
func Analyze(old, new rep.Type, factor magnitude.Mag) Analysis {
	plan := For(old, new, factor)
	return Analysis{
		Old:    old,
		New:    new,
		Factor: factor,
		Plan:   plan,
		Lower:  boundary.LowerBound(plan),
		Upper:  boundary.UpperBound(plan),
		Risk:   trunc.RiskFor(plan),
	}
}

// Render formats the analysis as a stable multi-line report.
func (a Analysis) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "conversion: %s -> %s by %s\n", a.Old, a.New, a.Factor)
	fmt.Fprintf(&b, "plan: %s\n", a.Plan)
	fmt.Fprintf(&b, "inputs: [%s, %s]\n", a.Old.Min(), a.Old.Max())
	fmt.Fprintf(&b, "overflow below: %s\n", renderBound(a.Lower, "min good"))
	fmt.Fprintf(&b, "overflow above: %s\n", renderBound(a.Upper, "max good"))
	fmt.Fprintf(&b, "truncation: %s\n", a.Risk)
	return b.String()
}

func renderBound(bd boundary.Bound, label string) string {
	if bd.Unbounded {
		return "impossible"
	}
	return fmt.Sprintf("possible, %s %s", label, bd.Value)
}
