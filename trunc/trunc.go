// Package trunc classifies which inputs of a conversion operation lose
// information. The classification is symbolic: a risk names the shape of
// the unsafe set (nothing, every nonzero value, non-integer values, values
// outside a divisibility lattice) rather than answering for one value, so
// callers can turn it into precise diagnostics.
package trunc

import (
	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
)

// Risk describes which values of a representation type truncate under some
// operation. The variants form a closed union.
type Risk interface {
	// Type is the representation type whose values the risk describes.
	Type() rep.Type

	String() string

	risk()
}

// None means no input loses information.
type None struct {
	T rep.Type
}

// AllNonzero means every input except zero loses information.
type AllNonzero struct {
	T rep.Type
}

// NonInteger means inputs with a fractional part lose information.
type NonInteger struct {
	T rep.Type
}

// NotDivisibleBy means inputs outside the lattice of multiples of Divisor
// lose information.
type NotDivisibleBy struct {
	T       rep.Type
	Divisor magnitude.Mag
}

// CannotAssess means the risk cannot be determined statically. It carries
// the operation chain that defeated the analysis.
type CannotAssess struct {
	T  rep.Type
	Op ops.Op
}

func (r None) Type() rep.Type           { return r.T }
func (r AllNonzero) Type() rep.Type     { return r.T }
func (r NonInteger) Type() rep.Type     { return r.T }
func (r NotDivisibleBy) Type() rep.Type { return r.T }
func (r CannotAssess) Type() rep.Type   { return r.T }

func (None) risk()           {}
func (AllNonzero) risk()     {}
func (NonInteger) risk()     {}
func (NotDivisibleBy) risk() {}
func (CannotAssess) risk()   {}

func (r None) String() string       { return "no risk for " + r.T.String() }
func (r AllNonzero) String() string { return "all nonzero " + r.T.String() + " values" }
func (r NonInteger) String() string { return "non-integer " + r.T.String() + " values" }

func (r NotDivisibleBy) String() string {
	return r.T.String() + " values not divisible by " + r.Divisor.String()
}

func (r CannotAssess) String() string {
	return "cannot assess risk of " + r.Op.String()
}

// RiskFor classifies the inputs of op that lose information.
func RiskFor(op ops.Op) Risk {
	switch o := op.(type) {
	case ops.StaticCast:
		if o.From.IsFloat() && o.To.IsInteger() {
			return NonInteger{T: o.From}
		}
		// Every other cast pairing is assumed lossless: float ranges
		// dominate integer ranges, and overflow is the boundary engine's
		// concern, not this one's.
		return None{T: o.From}
	case ops.MultiplyBy:
		return riskForMultiply(o.Type, o.Mag)
	case ops.Sequence:
		steps := o.Ops()
		risk := RiskFor(steps[len(steps)-1])
		for i := len(steps) - 2; i >= 0; i-- {
			risk = Merge(RiskFor(steps[i]), Update(steps[i], risk))
		}
		return risk
	}
	panic(errors.AssertionFailedf("no truncation risk rule for operation %T", op))
}

func riskForMultiply(t rep.Type, m magnitude.Mag) Risk {
	if !t.IsInteger() {
		// Floating-point approximation error is out of scope here.
		return None{T: t}
	}
	if !m.IsRational() {
		return AllNonzero{T: t}
	}
	if m.IsInteger() {
		return None{T: t}
	}
	return normalize(NotDivisibleBy{T: t, Divisor: m.Denominator()})
}

// Update rewrites a downstream risk, expressed in op's output type, as a
// risk on op's input type: the set of inputs whose images under op land in
// the downstream unsafe set.
func Update(op ops.Op, downstream Risk) Risk {
	if downstream.Type() != op.Output() {
		panic(errors.AssertionFailedf(
			"updating %s risk across %s, which outputs %s", downstream.Type(), op, op.Output()))
	}

	if c, ok := downstream.(CannotAssess); ok {
		return CannotAssess{T: op.Input(), Op: ops.Prepend(op, c.Op)}
	}

	switch o := op.(type) {
	case ops.StaticCast:
		// A cast moves values without scaling them, so the unsafe set
		// keeps its shape and only changes type.
		switch r := downstream.(type) {
		case None:
			return None{T: o.From}
		case AllNonzero:
			return AllNonzero{T: o.From}
		case NonInteger:
			return normalize(NonInteger{T: o.From})
		case NotDivisibleBy:
			return normalize(NotDivisibleBy{T: o.From, Divisor: r.Divisor})
		}
	case ops.MultiplyBy:
		switch r := downstream.(type) {
		case None:
			return None{T: o.Type}
		case AllNonzero:
			// The factor is never zero, so x*m is nonzero exactly when x
			// is.
			return AllNonzero{T: o.Type}
		case NonInteger:
			// x*m is integral when x is a multiple of 1/m.
			return normalize(NotDivisibleBy{T: o.Type, Divisor: o.Mag.Inverse().Abs()})
		case NotDivisibleBy:
			// x*m is a multiple of d when x is a multiple of d/m.
			return normalize(NotDivisibleBy{T: o.Type, Divisor: r.Divisor.Div(o.Mag).Abs()})
		}
	}
	panic(errors.AssertionFailedf("no risk update rule for operation %T", op))
}

// Merge intersects the safe sets of two risks on the same type, returning
// the risk describing the combined unsafe set.
func Merge(a, b Risk) Risk {
	if a.Type() != b.Type() {
		panic(errors.AssertionFailedf("merging risks on %s and %s", a.Type(), b.Type()))
	}
	if _, ok := a.(CannotAssess); ok {
		return a
	}
	if _, ok := b.(CannotAssess); ok {
		return b
	}
	if _, ok := a.(None); ok {
		return b
	}
	if _, ok := b.(None); ok {
		return a
	}
	if _, ok := a.(AllNonzero); ok {
		return a
	}
	if _, ok := b.(AllNonzero); ok {
		return b
	}
	// Both risks are divisibility lattices: non-integer values are the
	// complement of multiples of one. Intersecting lattices takes the
	// least common multiple of their divisors.
	return normalize(NotDivisibleBy{
		T:       a.Type(),
		Divisor: magnitude.Lcm(latticeDivisor(a), latticeDivisor(b)),
	})
}

func latticeDivisor(r Risk) magnitude.Mag {
	switch r := r.(type) {
	case NonInteger:
		return magnitude.One()
	case NotDivisibleBy:
		return r.Divisor
	}
	panic(errors.AssertionFailedf("risk %T has no divisibility lattice", r))
}

// normalize canonicalizes a lattice-shaped risk for its type: integral
// types absorb fractional divisor parts and drop trivial lattices, float
// types fold the unit lattice back into the non-integer variant, and an
// irrational divisor leaves only zero safe.
func normalize(r Risk) Risk {
	nd, ok := r.(NotDivisibleBy)
	if !ok {
		if ni, ok := r.(NonInteger); ok && ni.T.IsInteger() {
			return None{T: ni.T}
		}
		return r
	}
	d := nd.Divisor.Abs()
	if !d.IsRational() {
		return AllNonzero{T: nd.T}
	}
	if nd.T.IsInteger() {
		// Integer inputs hit the lattice of p/q exactly on multiples of
		// p, so only the numerator matters.
		d = d.Numerator()
		if d.IsOne() {
			return None{T: nd.T}
		}
		return NotDivisibleBy{T: nd.T, Divisor: d}
	}
	if d.IsOne() {
		return NonInteger{T: nd.T}
	}
	return NotDivisibleBy{T: nd.T, Divisor: d}
}
