package magnitude

import (
	"math"
	"math/bits"

	"github.com/scalemath/scalemath/rep"
)

// Outcome reports whether a magnitude could be evaluated in a representation
// type. It is an explicit result, never an error value: asking for an
// unrepresentable magnitude is a legitimate query whose answer drives the
// overflow and truncation case tables.
type Outcome uint8

const (
	// OutcomeOK means the magnitude is exactly or approximately representable
	// and a value was produced.
	OutcomeOK Outcome = iota

	// OutcomeCannotFit means the magnitude's size exceeds the type's range.
	OutcomeCannotFit

	// OutcomeNotRepresentable means the type cannot hold numbers of this
	// shape at all: a non-integer or negative magnitude in an integer type
	// that has no such values.
	OutcomeNotRepresentable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeCannotFit:
		return "cannot fit"
	case OutcomeNotRepresentable:
		return "not representable"
	}
	return "unknown"
}

// AsValue evaluates m in the representation type t.
//
// Integer types require an integer magnitude of suitable sign; floating-point
// types receive the closest approximation. The returned value is meaningful
// only when the outcome is OutcomeOK.
func (m Mag) AsValue(t rep.Type) (rep.Value, Outcome) {
	switch {
	case t.IsInteger():
		return m.asIntegerValue(t)
	case t.IsFloat():
		return m.asFloatValue(t)
	}
	return rep.Value{}, OutcomeNotRepresentable
}

func (m Mag) asIntegerValue(t rep.Type) (rep.Value, Outcome) {
	if !m.IsInteger() {
		return rep.Value{}, OutcomeNotRepresentable
	}
	if m.neg && t.IsUnsigned() {
		return rep.Value{}, OutcomeNotRepresentable
	}

	abs, _, ok := m.ratioUint64()
	if !ok {
		return rep.Value{}, OutcomeCannotFit
	}

	if t.IsUnsigned() {
		if abs > t.Max().Uint64() {
			return rep.Value{}, OutcomeCannotFit
		}
		return rep.UintOf(t, abs), OutcomeOK
	}

	limit := uint64(t.Max().Int64())
	if m.neg {
		// The magnitude of the signed minimum is one more than the maximum.
		limit++
	}
	if abs > limit {
		return rep.Value{}, OutcomeCannotFit
	}
	if m.neg {
		return rep.IntOf(t, -int64(abs)), OutcomeOK
	}
	return rep.IntOf(t, int64(abs)), OutcomeOK
}

func (m Mag) asFloatValue(t rep.Type) (rep.Value, Outcome) {
	abs := m.absFloat64()
	if math.IsInf(abs, 0) || abs > t.Max().Float64() {
		return rep.Value{}, OutcomeCannotFit
	}
	if m.neg {
		abs = -abs
	}
	return rep.FloatOf(t, abs), OutcomeOK
}

// absFloat64 returns |m| as a float64, preferring the exact numerator /
// denominator quotient when both fit in uint64.
func (m Mag) absFloat64() float64 {
	if m.IsRational() {
		if num, den, ok := m.ratioUint64(); ok {
			return float64(num) / float64(den)
		}
	}

	x := 1.0
	for _, f := range m.factors {
		base := float64(f.base)
		if f.base == piBase {
			base = math.Pi
		}
		x *= math.Pow(base, float64(f.num)/float64(f.den))
	}
	return x
}

// ratioUint64 returns |m| as a numerator/denominator pair. It reports false
// when either product overflows uint64. m must be rational.
func (m Mag) ratioUint64() (num, den uint64, ok bool) {
	num, den = 1, 1
	for _, f := range m.factors {
		exp := f.num
		target := &num
		if exp < 0 {
			exp = -exp
			target = &den
		}
		p, ok := powUint64(f.base, uint64(exp))
		if !ok {
			return 0, 0, false
		}
		hi, lo := bits.Mul64(*target, p)
		if hi != 0 {
			return 0, 0, false
		}
		*target = lo
	}
	return num, den, true
}

func powUint64(base, exp uint64) (uint64, bool) {
	x := uint64(1)
	for ; exp > 0; exp-- {
		hi, lo := bits.Mul64(x, base)
		if hi != 0 {
			return 0, false
		}
		x = lo
	}
	return x, true
}
