package boundary

import (
	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/rep"
)

// minGoodMultiply bounds the inputs of a multiply from below. Unsigned
// types cannot undershoot at all. Otherwise the factor's shape decides:
// factors of magnitude at least one shrink the limits by division, factors
// below one grow them by multiplying with the inverse, clamping where the
// product would leave the type.
func minGoodMultiply(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	if t.IsUnsigned() {
		return rep.ZeroOf(t)
	}
	if m.IsInteger() {
		return lowestOfLimitsDividedBy(t, m, limits)
	}
	if m.Inverse().IsInteger() {
		return clampLowestTimesInverse(t, m, limits)
	}
	if !compatibleApartFromOverflow(t, m) {
		// Only zero maps into the type at all.
		return rep.ZeroOf(t)
	}
	if absProbablyExceedsOne(t, m) {
		return lowestOfLimitsDividedBy(t, m, limits)
	}
	return clampLowestTimesInverse(t, m, limits)
}

// maxGoodMultiply bounds the inputs of a multiply from above.
func maxGoodMultiply(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	if t.IsUnsigned() && !m.IsPositive() {
		return rep.ZeroOf(t)
	}
	if m.IsInteger() {
		return highestOfLimitsDividedBy(t, m, limits)
	}
	if m.Inverse().IsInteger() {
		return clampHighestTimesInverse(t, m, limits)
	}
	if !compatibleApartFromOverflow(t, m) {
		return rep.ZeroOf(t)
	}
	if absProbablyExceedsOne(t, m) {
		return highestOfLimitsDividedBy(t, m, limits)
	}
	return clampHighestTimesInverse(t, m, limits)
}

// compatibleApartFromOverflow reports whether the factor has a meaningful
// value in t, even one too large to store. An integral type facing an
// irrational or fractional factor does not.
func compatibleApartFromOverflow(t rep.Type, m magnitude.Mag) bool {
	_, outcome := m.AsValue(t)
	return outcome == magnitude.OutcomeOK || outcome == magnitude.OutcomeCannotFit
}

// absProbablyExceedsOne reports whether |m| is at least one when expressed
// in t. Too big to fit counts as exceeding one.
func absProbablyExceedsOne(t rep.Type, m magnitude.Mag) bool {
	v, outcome := m.Abs().AsValue(t)
	if outcome == magnitude.OutcomeCannotFit {
		return true
	}
	return outcome == magnitude.OutcomeOK && v.Cmp(rep.OneOf(t)) >= 0
}

// lowestOfLimitsDividedBy divides whichever limit the factor's sign makes
// relevant. |m| is at least one here, so division shrinks and cannot
// overflow.
func lowestOfLimitsDividedBy(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	relevant := limits.upperIn(t)
	if m.IsPositive() {
		relevant = limits.lowerIn(t)
	}
	return divideByMag(relevant, m)
}

// highestOfLimitsDividedBy divides whichever limit the factor's sign makes
// relevant, with two carve-outs around the asymmetry of signed ranges.
func highestOfLimitsDividedBy(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	// A factor equal to the type's lowest value still maps 1 inside the
	// range, but the truncating division would say 0.
	if mv, outcome := m.AsValue(t); outcome == magnitude.OutcomeOK && mv.Equal(t.Min()) {
		return rep.OneOf(t)
	}
	// Negating a signed minimum overflows, yet every value up to the
	// maximum is fine when multiplied by -1. Unsigned types were handled
	// on an earlier branch.
	if m.Equal(magnitude.FromInt(-1)) && limits.lowerIn(t).Equal(t.Min()) {
		return t.Max()
	}
	relevant := limits.lowerIn(t)
	if m.IsPositive() {
		relevant = limits.upperIn(t)
	}
	return divideByMag(relevant, m)
}

// divideByMag divides v by the factor's value in v's type. A factor too
// large to represent divides everything to zero.
func divideByMag(v rep.Value, m magnitude.Mag) rep.Value {
	d, outcome := m.AsValue(v.Type())
	if outcome != magnitude.OutcomeOK {
		return rep.ZeroOf(v.Type())
	}
	return v.Div(d)
}

// clampLowestTimesInverse scales the relevant limit up by the inverse of
// |m|, clamping to the type's minimum when the product would leave the
// type. An inverse too large to represent means the whole range is safe.
func clampLowestTimesInverse(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	absDivisor, outcome := m.Abs().Inverse().AsValue(t)
	if outcome == magnitude.OutcomeCannotFit {
		return t.Min()
	}
	if outcome != magnitude.OutcomeOK {
		panic(errors.AssertionFailedf("inverse of %s has no value in %s", m, t))
	}
	relevant := limits.lowerIn(t)
	bound := t.Min().Div(absDivisor)
	if !m.IsPositive() {
		relevant = limits.upperIn(t).Neg()
		bound = t.Max().Div(absDivisor).Neg()
	}
	if bound.Cmp(relevant) >= 0 {
		return t.Min()
	}
	return relevant.Mul(absDivisor)
}

// clampHighestTimesInverse scales the relevant limit up by the inverse of
// |m|, clamping to the type's maximum when the product would leave the
// type.
func clampHighestTimesInverse(t rep.Type, m magnitude.Mag, limits Limits) rep.Value {
	absDivisor, outcome := m.Abs().Inverse().AsValue(t)
	if outcome == magnitude.OutcomeCannotFit {
		return t.Max()
	}
	if outcome != magnitude.OutcomeOK {
		panic(errors.AssertionFailedf("inverse of %s has no value in %s", m, t))
	}
	relevant := limits.upperIn(t)
	bound := t.Max().Div(absDivisor)
	if !m.IsPositive() {
		relevant = negLowerLimit(t, limits)
		bound = t.Min().Div(absDivisor).Neg()
	}
	if bound.Cmp(relevant) <= 0 {
		return t.Max()
	}
	return relevant.Mul(absDivisor)
}

// negLowerLimit negates the lower limit, pinning a signed minimum to the
// maximum since its true negation does not fit.
func negLowerLimit(t rep.Type, limits Limits) rep.Value {
	lower := limits.lowerIn(t)
	if t.IsSigned() && lower.Equal(t.Min()) {
		return t.Max()
	}
	return lower.Neg()
}
