package boundary

import (
	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/rep"
)

// Limits restricts the range of outputs an operation is allowed to produce.
// The zero value imposes no restriction, leaving the output type's natural
// range. Both endpoints are expressed in the operation's output type.
type Limits struct {
	lower rep.Value
	upper rep.Value
	valid bool
}

// NoLimits is the unrestricted range.
func NoLimits() Limits {
	return Limits{}
}

// NewLimits returns the inclusive range [lower, upper]. Both endpoints must
// share a type and be ordered.
func NewLimits(lower, upper rep.Value) Limits {
	if lower.Type() != upper.Type() {
		panic(errors.AssertionFailedf("limit endpoints of mixed types %s and %s", lower.Type(), upper.Type()))
	}
	if lower.Cmp(upper) > 0 {
		panic(errors.AssertionFailedf("limits out of order: %s > %s", lower, upper))
	}
	return Limits{lower: lower, upper: upper, valid: true}
}

// lowerIn returns the effective lower limit in type t, defaulting to the
// type's minimum when unrestricted.
func (l Limits) lowerIn(t rep.Type) rep.Value {
	if !l.valid {
		return t.Min()
	}
	l.check(t)
	return l.lower
}

// upperIn returns the effective upper limit in type t, defaulting to the
// type's maximum when unrestricted.
func (l Limits) upperIn(t rep.Type) rep.Value {
	if !l.valid {
		return t.Max()
	}
	l.check(t)
	return l.upper
}

func (l Limits) check(t rep.Type) {
	if l.lower.Type() != t {
		panic(errors.AssertionFailedf("limits of type %s applied to %s operation", l.lower.Type(), t))
	}
}
