// Package boundary computes, for any conversion operation, the exact range
// of input values that survive the operation without overflow. MinGood and
// MaxGood bound the safe domain; both are conservative only where the
// arithmetic forces it, and exact everywhere else.
package boundary

import (
	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
)

// MinGood returns the smallest input value op can consume such that every
// output it produces stays inside limits, which are expressed in op's
// output type. With no limits the output type's natural range applies.
func MinGood(op ops.Op, limits Limits) rep.Value {
	switch o := op.(type) {
	case ops.StaticCast:
		return minGoodCast(o.From, o.To, limits)
	case ops.MultiplyBy:
		return minGoodMultiply(o.Type, o.Mag, limits)
	case ops.Sequence:
		l := threadLimits(o, limits)
		return MinGood(o.Ops()[0], l)
	}
	panic(errors.AssertionFailedf("no overflow boundary for operation %T", op))
}

// MaxGood returns the largest input value op can consume such that every
// output it produces stays inside limits, which are expressed in op's
// output type.
func MaxGood(op ops.Op, limits Limits) rep.Value {
	switch o := op.(type) {
	case ops.StaticCast:
		return maxGoodCast(o.From, o.To, limits)
	case ops.MultiplyBy:
		return maxGoodMultiply(o.Type, o.Mag, limits)
	case ops.Sequence:
		l := threadLimits(o, limits)
		return MaxGood(o.Ops()[0], l)
	}
	panic(errors.AssertionFailedf("no overflow boundary for operation %T", op))
}

// threadLimits folds the limits on a sequence's final output back through
// every step but the first: the safe range of the tail, expressed in the
// first step's output type, becomes the limits on the first step.
func threadLimits(s ops.Sequence, limits Limits) Limits {
	steps := s.Ops()
	if len(steps) == 1 {
		return limits
	}
	rest := ops.MustSequence(steps[1:]...)
	return NewLimits(MinGood(rest, limits), MaxGood(rest, limits))
}

// MinPossible is the smallest value of op's input type.
func MinPossible(op ops.Op) rep.Value {
	return op.Input().Min()
}

// MaxPossible is the largest value of op's input type.
func MaxPossible(op ops.Op) rep.Value {
	return op.Input().Max()
}

// CanOverflowBelow reports whether any input of op's type at all falls
// below the safe domain.
func CanOverflowBelow(op ops.Op) bool {
	return MinPossible(op).Cmp(MinGood(op, NoLimits())) < 0
}

// CanOverflowAbove reports whether any input of op's type at all rises
// above the safe domain.
func CanOverflowAbove(op ops.Op) bool {
	return MaxPossible(op).Cmp(MaxGood(op, NoLimits())) > 0
}

// WouldOverflow reports whether applying op to v would overflow. v must be
// of op's input type.
func WouldOverflow(op ops.Op, v rep.Value) bool {
	if v.Type() != op.Input() {
		panic(errors.AssertionFailedf("%s overflow check on %s value", op, v.Type()))
	}
	if CanOverflowBelow(op) && v.Cmp(MinGood(op, NoLimits())) < 0 {
		return true
	}
	if CanOverflowAbove(op) && v.Cmp(MaxGood(op, NoLimits())) > 0 {
		return true
	}
	return false
}

// Bound is one end of an operation's safe domain. Unbounded means no input
// of the operation's type can overflow in that direction.
type Bound struct {
	Value     rep.Value
	Unbounded bool
}

// LowerBound describes the low end of op's safe domain.
func LowerBound(op ops.Op) Bound {
	if !CanOverflowBelow(op) {
		return Bound{Unbounded: true}
	}
	return Bound{Value: MinGood(op, NoLimits())}
}

// UpperBound describes the high end of op's safe domain.
func UpperBound(op ops.Op) Bound {
	if !CanOverflowAbove(op) {
		return Bound{Unbounded: true}
	}
	return Bound{Value: MaxGood(op, NoLimits())}
}
