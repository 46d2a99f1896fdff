package rep

import (
	"github.com/cockroachdb/errors"
)

// Mul returns v * other with the type's native semantics: integer products
// wrap, floating-point products round. Both operands must share one type.
// A float64 product of two float32 operands is exact, so rounding the wide
// product back down matches a native float32 multiply.
func (v Value) Mul(other Value) Value {
	t := sameType(v, other)
	switch t.Kind() {
	case KindSigned:
		return Value{typ: t, i: wrapInt(t, v.i*other.i)}
	case KindUnsigned:
		return Value{typ: t, u: wrapUint(t, v.u*other.u)}
	case KindFloat:
		return FloatOf(t, v.f*other.f)
	}
	panic(errors.AssertionFailedf("multiply on invalid type"))
}

// Div returns v / other, truncating toward zero for the integer kinds.
// other must be nonzero.
func (v Value) Div(other Value) Value {
	t := sameType(v, other)
	switch t.Kind() {
	case KindSigned:
		return Value{typ: t, i: wrapInt(t, v.i/other.i)}
	case KindUnsigned:
		return Value{typ: t, u: v.u / other.u}
	case KindFloat:
		return FloatOf(t, v.f/other.f)
	}
	panic(errors.AssertionFailedf("divide on invalid type"))
}

// Neg returns -v. Negating the minimum of a signed type wraps, as the
// machine operation does; callers that care guard against it.
func (v Value) Neg() Value {
	switch v.typ.Kind() {
	case KindSigned:
		return Value{typ: v.typ, i: wrapInt(v.typ, -v.i)}
	case KindFloat:
		return Value{typ: v.typ, f: -v.f}
	}
	panic(errors.AssertionFailedf("negate on %s value", v.typ))
}

func sameType(a, b Value) Type {
	if a.typ != b.typ {
		panic(errors.AssertionFailedf("mixed-type arithmetic: %s and %s", a.typ, b.typ))
	}
	return a.typ
}
