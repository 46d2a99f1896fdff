package boundary

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"

	"github.com/scalemath/scalemath/rep"
)

// minGoodCast picks the lower safe bound for a cast by the kinds involved.
// Unsigned sources can never undershoot; signed sources undershoot only
// when the destination cannot hold their minimum.
func minGoodCast(from, to rep.Type, limits Limits) rep.Value {
	switch from.Kind() {
	case rep.KindUnsigned:
		return srcLowestUnlessDestLimitHigher(from, to, limits)
	case rep.KindSigned:
		switch to.Kind() {
		case rep.KindFloat:
			// Floating-point destinations are assumed to cover every
			// integral range.
			return srcLowestUnlessDestLimitHigher(from, to, limits)
		case rep.KindUnsigned:
			return rep.ZeroOf(from)
		case rep.KindSigned:
			if from.Bits() <= to.Bits() {
				return srcLowestUnlessDestLimitHigher(from, to, limits)
			}
			return lowestInDestination(from, to, limits)
		}
	case rep.KindFloat:
		if to.IsFloat() && from.Bits() <= to.Bits() {
			return srcLowestUnlessDestLimitHigher(from, to, limits)
		}
		// Integral minima are negated powers of two or zero, both exactly
		// representable in any float.
		return lowestInDestination(from, to, limits)
	}
	panic(errors.AssertionFailedf("cast boundary on invalid types %s -> %s", from, to))
}

// maxGoodCast picks the upper safe bound for a cast. The delicate case is
// float to integer: integral maxima are all-ones values that round up when
// cast into the float, so the naive bound overshoots by one representable
// step.
func maxGoodCast(from, to rep.Type, limits Limits) rep.Value {
	switch from.Kind() {
	case rep.KindSigned, rep.KindUnsigned:
		if to.IsInteger() {
			if valueBits(from) <= valueBits(to) {
				return srcHighestUnlessDestLimitLower(from, to, limits)
			}
			return highestInDestination(from, to, limits)
		}
		return srcHighestUnlessDestLimitLower(from, to, limits)
	case rep.KindFloat:
		if to.IsFloat() {
			if from.Bits() <= to.Bits() {
				return srcHighestUnlessDestLimitLower(from, to, limits)
			}
			return highestInDestination(from, to, limits)
		}
		return maxFloatWithinIntMax(from, to, limits)
	}
	panic(errors.AssertionFailedf("cast boundary on invalid types %s -> %s", from, to))
}

// valueBits counts the bits contributing to a type's maximum.
func valueBits(t rep.Type) int {
	if t.IsSigned() {
		return t.Bits() - 1
	}
	return t.Bits()
}

// srcLowestUnlessDestLimitHigher returns the higher of from's minimum and
// the lower limit expressed in from. Assumes to is expansive enough that
// from's minimum survives the cast, so the comparison happens in to.
func srcLowestUnlessDestLimitHigher(from, to rep.Type, limits Limits) rep.Value {
	lowestInTo := from.Min().Cast(to)
	limit := limits.lowerIn(to)
	if lowestInTo.Cmp(limit) <= 0 {
		return limit.Cast(from)
	}
	return from.Min()
}

// srcHighestUnlessDestLimitLower returns the lower of from's maximum and
// the upper limit expressed in from.
func srcHighestUnlessDestLimitLower(from, to rep.Type, limits Limits) rep.Value {
	highestInTo := from.Max().Cast(to)
	limit := limits.upperIn(to)
	if highestInTo.Cmp(limit) >= 0 {
		return limit.Cast(from)
	}
	return from.Max()
}

// lowestInDestination re-expresses the destination's lower limit in the
// source type. The round trip must be lossless.
func lowestInDestination(from, to rep.Type, limits Limits) rep.Value {
	limit := limits.lowerIn(to)
	v := limit.Cast(from)
	if !v.Cast(to).Equal(limit) {
		panic(errors.AssertionFailedf("lossy bound round trip: %s through %s", limit, from))
	}
	return v
}

// highestInDestination re-expresses the destination's upper limit in the
// source type. The round trip must be lossless.
func highestInDestination(from, to rep.Type, limits Limits) rep.Value {
	limit := limits.upperIn(to)
	v := limit.Cast(from)
	if !v.Cast(to).Equal(limit) {
		panic(errors.AssertionFailedf("lossy bound round trip: %s through %s", limit, from))
	}
	return v
}

// maxFloatWithinIntMax finds the largest value of the float type from that
// casts into the integer type to without overflow, capped by any explicit
// upper limit.
func maxFloatWithinIntMax(from, to rep.Type, limits Limits) rep.Value {
	intMax := to.Max().Cast(from)
	var capped float64
	switch from {
	case rep.TypeFloat32:
		capped = float64(maxFloatNotExceeding(float32(intMax.Float64())))
	case rep.TypeFloat64:
		capped = maxFloatNotExceeding(intMax.Float64())
	default:
		panic(errors.AssertionFailedf("float cast boundary from %s", from))
	}
	bound := rep.FloatOf(from, capped)
	explicit := limits.upperIn(to).Cast(from)
	if bound.Cmp(explicit) <= 0 {
		return bound
	}
	return explicit
}

// maxFloatNotExceeding returns the largest value of F at most limit, where
// limit is an integral maximum cast into F. Such maxima sit just below a
// power of two, so the cast rounds up to a value that no longer fits the
// integer type; doubling the all-ones-mantissa value until the next step
// would reach limit lands on the largest representable value below it.
func maxFloatNotExceeding[F constraints.Float](limit F) F {
	mantissa := maxMantissa[F]()
	if limit <= mantissa {
		return limit
	}
	x := mantissa
	for x+x < limit {
		x += x
	}
	return x
}

// maxMantissa computes the value of F with every mantissa bit set and a
// zero exponent, the last value before whole numbers become inexact.
func maxMantissa[F constraints.Float]() F {
	one := F(1)
	x, last := one, one
	for x+one > x {
		last = x
		x += x + one
	}
	return last
}
