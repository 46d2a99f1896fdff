package rep

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Value is a numeric value tagged with its representation type.
//
// Values are immutable. Exactly one of the payload fields is meaningful,
// selected by the type's kind. Signed payloads live in i, unsigned in u,
// floating point in f; a Float32 value is stored pre-rounded so that the
// float64 payload is always exactly representable in float32.
type Value struct {
	typ Type
	i   int64
	u   uint64
	f   float64
}

// IntOf returns x as a value of the signed type t. x must be in range for t.
func IntOf(t Type, x int64) Value {
	if t.Kind() != KindSigned {
		panic(errors.AssertionFailedf("IntOf called with %s", t))
	}
	if wrapInt(t, x) != x {
		panic(errors.AssertionFailedf("value %d out of range for %s", x, t))
	}
	return Value{typ: t, i: x}
}

// UintOf returns x as a value of the unsigned type t. x must be in range for t.
func UintOf(t Type, x uint64) Value {
	if t.Kind() != KindUnsigned {
		panic(errors.AssertionFailedf("UintOf called with %s", t))
	}
	if wrapUint(t, x) != x {
		panic(errors.AssertionFailedf("value %d out of range for %s", x, t))
	}
	return Value{typ: t, u: x}
}

// FloatOf returns x as a value of the floating-point type t. Float32 values
// are rounded to float32 precision on construction.
func FloatOf(t Type, x float64) Value {
	switch t {
	case TypeFloat32:
		return Value{typ: t, f: float64(float32(x))}
	case TypeFloat64:
		return Value{typ: t, f: x}
	}
	panic(errors.AssertionFailedf("FloatOf called with %s", t))
}

// ZeroOf returns the zero value of t.
func ZeroOf(t Type) Value {
	if t.Kind() == KindInvalid {
		panic(errors.AssertionFailedf("zero of invalid type"))
	}
	return Value{typ: t}
}

// OneOf returns the value one of t.
func OneOf(t Type) Value {
	switch t.Kind() {
	case KindSigned:
		return IntOf(t, 1)
	case KindUnsigned:
		return UintOf(t, 1)
	case KindFloat:
		return FloatOf(t, 1)
	}
	panic(errors.AssertionFailedf("one of invalid type"))
}

func (v Value) Type() Type {
	return v.typ
}

// Int64 returns the payload of a signed value.
func (v Value) Int64() int64 {
	if v.typ.Kind() != KindSigned {
		panic(errors.AssertionFailedf("Int64 called on %s value", v.typ))
	}
	return v.i
}

// Uint64 returns the payload of an unsigned value.
func (v Value) Uint64() uint64 {
	if v.typ.Kind() != KindUnsigned {
		panic(errors.AssertionFailedf("Uint64 called on %s value", v.typ))
	}
	return v.u
}

// Float64 returns the payload of a floating-point value.
func (v Value) Float64() float64 {
	if v.typ.Kind() != KindFloat {
		panic(errors.AssertionFailedf("Float64 called on %s value", v.typ))
	}
	return v.f
}

func (v Value) IsZero() bool {
	switch v.typ.Kind() {
	case KindSigned:
		return v.i == 0
	case KindUnsigned:
		return v.u == 0
	case KindFloat:
		return v.f == 0
	}
	return false
}

// Cmp compares v with other, which must have the same type. It returns -1, 0
// or +1.
func (v Value) Cmp(other Value) int {
	if v.typ != other.typ {
		panic(errors.AssertionFailedf("cannot compare %s with %s", v.typ, other.typ))
	}

	switch v.typ.Kind() {
	case KindSigned:
		return cmpOrdered(v.i, other.i)
	case KindUnsigned:
		return cmpOrdered(v.u, other.u)
	case KindFloat:
		return cmpOrdered(v.f, other.f)
	}

	panic(errors.AssertionFailedf("cannot compare invalid values"))
}

// Equal reports whether v and other have the same type and the same payload.
func (v Value) Equal(other Value) bool {
	return v.typ == other.typ && v.Cmp(other) == 0
}

// Cast converts v to the representation type to, with the conversion
// semantics of the underlying machine types: integer conversions wrap,
// float-to-integer conversions truncate toward zero. Casting a float that
// lies outside the integer type's range is not meaningful; callers guard
// with the boundary engine first.
func (v Value) Cast(to Type) Value {
	switch v.typ.Kind() {
	case KindSigned:
		return castFromInt64(to, v.i)
	case KindUnsigned:
		return castFromUint64(to, v.u)
	case KindFloat:
		switch to.Kind() {
		case KindFloat:
			return FloatOf(to, v.f)
		case KindSigned:
			return castFromInt64(to, int64(v.f))
		case KindUnsigned:
			// Negative floats in (-1, 0] truncate to zero; anything more
			// negative is outside the callers' guarded domain anyway.
			if v.f <= -1 {
				return castFromInt64(to, int64(v.f))
			}
			return castFromUint64(to, uint64(v.f))
		}
	}
	panic(errors.AssertionFailedf("cannot cast %s to %s", v.typ, to))
}

func (v Value) String() string {
	switch v.typ.Kind() {
	case KindSigned:
		return strconv.FormatInt(v.i, 10)
	case KindUnsigned:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		if v.typ == TypeFloat32 {
			return strconv.FormatFloat(v.f, 'g', -1, 32)
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return "invalid"
}

func castFromInt64(to Type, x int64) Value {
	switch to.Kind() {
	case KindSigned:
		return Value{typ: to, i: wrapInt(to, x)}
	case KindUnsigned:
		return Value{typ: to, u: wrapUint(to, uint64(x))}
	case KindFloat:
		return FloatOf(to, float64(x))
	}
	panic(errors.AssertionFailedf("cannot cast to %s", to))
}

func castFromUint64(to Type, x uint64) Value {
	switch to.Kind() {
	case KindSigned:
		return Value{typ: to, i: wrapInt(to, int64(x))}
	case KindUnsigned:
		return Value{typ: to, u: wrapUint(to, x)}
	case KindFloat:
		return FloatOf(to, float64(x))
	}
	panic(errors.AssertionFailedf("cannot cast to %s", to))
}

func wrapInt(t Type, x int64) int64 {
	switch t {
	case TypeInt8:
		return int64(int8(x))
	case TypeInt16:
		return int64(int16(x))
	case TypeInt32:
		return int64(int32(x))
	case TypeInt64:
		return x
	}
	panic(errors.AssertionFailedf("wrapInt called with %s", t))
}

func wrapUint(t Type, x uint64) uint64 {
	switch t {
	case TypeUint8:
		return uint64(uint8(x))
	case TypeUint16:
		return uint64(uint16(x))
	case TypeUint32:
		return uint64(uint32(x))
	case TypeUint64:
		return x
	}
	panic(errors.AssertionFailedf("wrapUint called with %s", t))
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
