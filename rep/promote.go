package rep

// Promoted returns the arithmetic promotion of t: integer types narrower than
// 32 bits promote to Int32 (all of their values fit), everything else is
// already its own promoted type. This mirrors the usual integer promotion
// rules of C-family targets, which is where the conversion chains these
// descriptors model ultimately execute.
func Promoted(t Type) Type {
	switch t {
	case TypeInt8, TypeInt16, TypeUint8, TypeUint16:
		return TypeInt32
	}
	return t
}

// CommonType returns the type in which values of both a and b can be combined
// arithmetically, following the usual conversion rules: floating point
// dominates integers, the wider type dominates the narrower, and at equal
// width unsigned dominates signed.
func CommonType(a, b Type) Type {
	if a == b {
		return a
	}

	if a.IsFloat() || b.IsFloat() {
		switch {
		case !a.IsFloat():
			return b
		case !b.IsFloat():
			return a
		case a.Bits() >= b.Bits():
			return a
		}
		return b
	}

	if a.Bits() != b.Bits() {
		if a.Bits() < b.Bits() {
			a, b = b, a
		}
		// a is strictly wider. A wider signed type represents every value of
		// a narrower unsigned one, so width wins regardless of signedness.
		return a
	}

	if a.IsUnsigned() {
		return a
	}
	return b
}
