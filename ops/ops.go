// Package ops defines the conversion operation vocabulary: casts between
// representation types, multiplication by an exact magnitude, and ordered
// sequences of both. Operations are immutable descriptors; applying one is a
// pure function from a value of its input type to a value of its output type.
package ops

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/rep"
)

// Op is a composable conversion operation.
type Op interface {
	// Input is the representation type the operation consumes.
	Input() rep.Type

	// Output is the representation type the operation produces.
	Output() rep.Type

	// Apply performs the operation on v, which must be of the Input type.
	Apply(v rep.Value) rep.Value

	String() string
}

// StaticCast converts a value from one representation type to another with
// raw machine conversion semantics.
type StaticCast struct {
	From rep.Type
	To   rep.Type
}

// NewStaticCast returns the cast operation from one representation to
// another.
func NewStaticCast(from, to rep.Type) StaticCast {
	return StaticCast{From: from, To: to}
}

func (c StaticCast) Input() rep.Type  { return c.From }
func (c StaticCast) Output() rep.Type { return c.To }

func (c StaticCast) Apply(v rep.Value) rep.Value {
	checkInput(c, v)
	return v.Cast(c.To)
}

func (c StaticCast) String() string {
	return "cast(" + c.From.String() + " -> " + c.To.String() + ")"
}

// MultiplyBy multiplies a value of a representation type by a fixed
// magnitude. Input and output representations are the same; any promotion is
// the conversion synthesizer's responsibility.
type MultiplyBy struct {
	Type rep.Type
	Mag  magnitude.Mag
}

// NewMultiplyBy returns the operation multiplying values of t by m.
func NewMultiplyBy(t rep.Type, m magnitude.Mag) MultiplyBy {
	return MultiplyBy{Type: t, Mag: m}
}

// NewDivideBy returns the operation dividing values of t by m, which is
// multiplication by the inverse.
func NewDivideBy(t rep.Type, m magnitude.Mag) MultiplyBy {
	return NewMultiplyBy(t, m.Inverse())
}

func (m MultiplyBy) Input() rep.Type  { return m.Type }
func (m MultiplyBy) Output() rep.Type { return m.Type }

// Apply multiplies v by the magnitude. The factor is classified once, by
// shape:
//
//   - An integer factor multiplies directly.
//   - A factor whose inverse is an integer divides by that integer instead,
//     which avoids the precision loss of multiplying by a tiny fraction. A
//     divisor too large to represent in the type makes every quotient zero.
//   - Anything else multiplies by the factor's floating-point approximation,
//     truncating back to the integer type when there is one.
func (m MultiplyBy) Apply(v rep.Value) rep.Value {
	checkInput(m, v)

	if m.Mag.IsInteger() {
		factor, outcome := m.Mag.AsValue(m.Type)
		if outcome != magnitude.OutcomeOK {
			// A factor outside the type's range leaves zero as the only
			// input in the safe domain, and zero times anything is zero.
			return rep.ZeroOf(m.Type)
		}
		return v.Mul(factor)
	}

	if inv := m.Mag.Inverse(); inv.IsInteger() {
		divisor, outcome := inv.AsValue(m.Type)
		if outcome != magnitude.OutcomeOK {
			// Dividing by something too large to represent floors to zero.
			return rep.ZeroOf(m.Type)
		}
		return v.Div(divisor)
	}

	approx, outcome := m.Mag.AsValue(rep.TypeFloat64)
	if outcome != magnitude.OutcomeOK {
		return rep.ZeroOf(m.Type)
	}
	return mulApprox(v, approx.Float64())
}

func (m MultiplyBy) String() string {
	return "mul(" + m.Type.String() + ", " + m.Mag.String() + ")"
}

// Sequence chains operations so that each one's output feeds the next one's
// input.
type Sequence struct {
	ops []Op
}

// NewSequence composes the given operations. It fails if the sequence is
// empty or if any adjacent pair disagrees on their shared representation
// type; a mismatched chain is a structural bug in the caller, never
// something to paper over at apply time.
func NewSequence(ops ...Op) (Sequence, error) {
	if len(ops) == 0 {
		return Sequence{}, errors.New("empty operation sequence")
	}
	for i := 0; i < len(ops)-1; i++ {
		if ops[i].Output() != ops[i+1].Input() {
			return Sequence{}, errors.Newf(
				"operation sequence mismatch at step %d: %s outputs %s but %s consumes %s",
				i, ops[i], ops[i].Output(), ops[i+1], ops[i+1].Input(),
			)
		}
	}
	return Sequence{ops: ops}, nil
}

// MustSequence is NewSequence for statically known chains.
func MustSequence(ops ...Op) Sequence {
	s, err := NewSequence(ops...)
	if err != nil {
		panic(err)
	}
	return s
}

// Prepend returns the sequence with op in front. If rest is itself a
// Sequence its steps are spliced in rather than nested.
func Prepend(op Op, rest Op) Sequence {
	if s, ok := rest.(Sequence); ok {
		return MustSequence(append([]Op{op}, s.ops...)...)
	}
	return MustSequence(op, rest)
}

// Ops returns the steps of the sequence.
func (s Sequence) Ops() []Op {
	return s.ops
}

func (s Sequence) Input() rep.Type  { return s.ops[0].Input() }
func (s Sequence) Output() rep.Type { return s.ops[len(s.ops)-1].Output() }

func (s Sequence) Apply(v rep.Value) rep.Value {
	checkInput(s, v)
	for _, op := range s.ops {
		v = op.Apply(v)
	}
	return v
}

func (s Sequence) String() string {
	parts := make([]string, len(s.ops))
	for i, op := range s.ops {
		parts[i] = op.String()
	}
	return "seq(" + strings.Join(parts, ", ") + ")"
}

func checkInput(op Op, v rep.Value) {
	if v.Type() != op.Input() {
		panic(errors.AssertionFailedf("%s applied to %s value", op, v.Type()))
	}
}

// mulApprox multiplies v by a floating-point approximation of the factor,
// truncating the product back into integer types.
func mulApprox(v rep.Value, approx float64) rep.Value {
	t := v.Type()
	switch t.Kind() {
	case rep.KindSigned:
		return rep.FloatOf(rep.TypeFloat64, float64(v.Int64())*approx).Cast(t)
	case rep.KindUnsigned:
		return rep.FloatOf(rep.TypeFloat64, float64(v.Uint64())*approx).Cast(t)
	case rep.KindFloat:
		factor := rep.FloatOf(t, approx)
		return rep.FloatOf(t, v.Float64()*factor.Float64())
	}
	panic(errors.AssertionFailedf("multiply on invalid type %s", t))
}
