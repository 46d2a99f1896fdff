package rep

import (
	"math"
)

// Kind partitions the representation types into the three numeric families.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSigned
	KindUnsigned
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	}

	return "invalid"
}

// Type identifies a numeric representation type. The set is closed: every
// engine decision is a switch over these values.
type Type uint8

const (
	// TypeInvalid denotes the absence of a type.
	TypeInvalid Type = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
)

func (t Type) Kind() Kind {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return KindSigned
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return KindUnsigned
	case TypeFloat32, TypeFloat64:
		return KindFloat
	}

	return KindInvalid
}

// Bits returns the width of the type in bits.
func (t Type) Bits() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32, TypeFloat32:
		return 32
	case TypeInt64, TypeUint64, TypeFloat64:
		return 64
	}

	return 0
}

func (t Type) IsInteger() bool {
	k := t.Kind()
	return k == KindSigned || k == KindUnsigned
}

func (t Type) IsSigned() bool {
	return t.Kind() == KindSigned
}

func (t Type) IsUnsigned() bool {
	return t.Kind() == KindUnsigned
}

func (t Type) IsFloat() bool {
	return t.Kind() == KindFloat
}

// Min returns the lowest representable value of t.
func (t Type) Min() Value {
	switch t {
	case TypeInt8:
		return IntOf(t, math.MinInt8)
	case TypeInt16:
		return IntOf(t, math.MinInt16)
	case TypeInt32:
		return IntOf(t, math.MinInt32)
	case TypeInt64:
		return IntOf(t, math.MinInt64)
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return UintOf(t, 0)
	case TypeFloat32:
		return FloatOf(t, -math.MaxFloat32)
	case TypeFloat64:
		return FloatOf(t, -math.MaxFloat64)
	}

	panic("min of invalid type")
}

// Max returns the highest representable value of t.
func (t Type) Max() Value {
	switch t {
	case TypeInt8:
		return IntOf(t, math.MaxInt8)
	case TypeInt16:
		return IntOf(t, math.MaxInt16)
	case TypeInt32:
		return IntOf(t, math.MaxInt32)
	case TypeInt64:
		return IntOf(t, math.MaxInt64)
	case TypeUint8:
		return UintOf(t, math.MaxUint8)
	case TypeUint16:
		return UintOf(t, math.MaxUint16)
	case TypeUint32:
		return UintOf(t, math.MaxUint32)
	case TypeUint64:
		return UintOf(t, math.MaxUint64)
	case TypeFloat32:
		return FloatOf(t, math.MaxFloat32)
	case TypeFloat64:
		return FloatOf(t, math.MaxFloat64)
	}

	panic("max of invalid type")
}

func (t Type) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	}

	return "invalid"
}

// TypeFromName maps a type name back to its Type. It returns TypeInvalid for
// unknown names.
func TypeFromName(name string) Type {
	for t := TypeInt8; t <= TypeFloat64; t++ {
		if t.String() == name {
			return t
		}
	}

	return TypeInvalid
}
