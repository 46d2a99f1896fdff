// Package convert synthesizes the operation sequence that carries a value
// from one representation type to another while applying an exact scale
// factor. The synthesizer only composes; the boundary and trunc packages
// answer questions about what it composed.
package convert

import (
	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
)

// For returns the operation taking a value of type old and producing the
// application of factor in type new. Arithmetic happens in the promoted
// common type of the two: depending on which side already matches it, the
// chain is the bare scale operation, a scale with one cast, or a cast-up,
// scale, cast-down sandwich.
func For(old, new rep.Type, factor magnitude.Mag) ops.Op {
	promoted := rep.Promoted(rep.CommonType(old, new))
	strategy := ApplicationStrategyFor(promoted, factor)
	switch {
	case old == promoted && new == promoted:
		return strategy
	case old == promoted:
		return compose(strategy, ops.NewStaticCast(promoted, new))
	case new == promoted:
		return compose(ops.NewStaticCast(old, promoted), strategy)
	}
	return compose(
		ops.NewStaticCast(old, promoted),
		strategy,
		ops.NewStaticCast(promoted, new),
	)
}

// ApplicationStrategyFor returns the operation applying factor to values
// of type t. A nontrivially rational factor on an integral type splits
// into multiply-by-numerator then divide-by-denominator, which bounds the
// intermediate growth and pins the rounding direction of the integral
// division. Everything else is a single multiply.
func ApplicationStrategyFor(t rep.Type, factor magnitude.Mag) ops.Op {
	if t.IsInteger() && nontrivialRational(factor) {
		return ops.MustSequence(
			ops.NewMultiplyBy(t, factor.Numerator()),
			ops.NewDivideBy(t, factor.Denominator()),
		)
	}
	return ops.NewMultiplyBy(t, factor)
}

// nontrivialRational reports whether m is rational but neither an integer
// nor the inverse of one.
func nontrivialRational(m magnitude.Mag) bool {
	return m.IsRational() && !m.IsInteger() && !m.Inverse().IsInteger()
}

// compose flattens any sequences among the parts into one sequence.
func compose(parts ...ops.Op) ops.Op {
	var flat []ops.Op
	for _, p := range parts {
		if s, ok := p.(ops.Sequence); ok {
			flat = append(flat, s.Ops()...)
			continue
		}
		flat = append(flat, p)
	}
	return ops.MustSequence(flat...)
}
