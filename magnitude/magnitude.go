// Package magnitude implements exact compile-time-style scale factors.
//
// A magnitude is a nonzero real number stored symbolically as a sign and a
// product of base^(rational exponent) factors, where each base is either a
// prime number or π. The symbolic form keeps products, inverses and roots
// exact, and makes integer/rational classification a structural query rather
// than a numeric one.
package magnitude

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

// piBase is the sentinel base identifying π. It sorts after every prime.
const piBase = ^uint64(0)

type factor struct {
	base uint64
	// Exponent num/den in lowest terms, den > 0, num != 0.
	num, den int64
}

// Mag is an exact nonzero scale factor. The zero value of the struct is the
// magnitude one.
type Mag struct {
	neg     bool
	factors []factor
}

// One returns the magnitude 1.
func One() Mag {
	return Mag{}
}

// Pi returns the magnitude π.
func Pi() Mag {
	return Mag{factors: []factor{{base: piBase, num: 1, den: 1}}}
}

// FromInt returns the magnitude n. n must not be zero.
func FromInt(n int64) Mag {
	if n == 0 {
		panic(errors.AssertionFailedf("magnitude cannot be zero"))
	}

	m := Mag{neg: n < 0}
	x := uint64(n)
	if n < 0 {
		x = uint64(-n)
	}
	for base, exp := range factorize(x) {
		m.factors = append(m.factors, factor{base: base, num: exp, den: 1})
	}
	sortFactors(m.factors)
	return m
}

// FromRatio returns the magnitude p/q. Neither p nor q may be zero.
func FromRatio(p, q int64) Mag {
	return FromInt(p).Div(FromInt(q))
}

// Mul returns the product of m and other.
func (m Mag) Mul(other Mag) Mag {
	out := Mag{neg: m.neg != other.neg}

	i, j := 0, 0
	for i < len(m.factors) && j < len(other.factors) {
		a, b := m.factors[i], other.factors[j]
		switch {
		case a.base < b.base:
			out.factors = append(out.factors, a)
			i++
		case a.base > b.base:
			out.factors = append(out.factors, b)
			j++
		default:
			num, den := addRatio(a.num, a.den, b.num, b.den)
			if num != 0 {
				out.factors = append(out.factors, factor{base: a.base, num: num, den: den})
			}
			i++
			j++
		}
	}
	out.factors = append(out.factors, m.factors[i:]...)
	out.factors = append(out.factors, other.factors[j:]...)
	return out
}

// Div returns m divided by other.
func (m Mag) Div(other Mag) Mag {
	return m.Mul(other.Inverse())
}

// Inverse returns 1/m.
func (m Mag) Inverse() Mag {
	out := Mag{neg: m.neg, factors: make([]factor, len(m.factors))}
	for i, f := range m.factors {
		out.factors[i] = factor{base: f.base, num: -f.num, den: f.den}
	}
	return out
}

// Neg returns -m.
func (m Mag) Neg() Mag {
	out := m
	out.neg = !m.neg
	return out
}

// Abs returns the magnitude with the sign dropped.
func (m Mag) Abs() Mag {
	out := m
	out.neg = false
	return out
}

// Pow returns m raised to the integer power n.
func (m Mag) Pow(n int64) Mag {
	if n == 0 {
		return One()
	}
	neg := m.neg && n%2 != 0
	out := Mag{neg: neg, factors: make([]factor, 0, len(m.factors))}
	for _, f := range m.factors {
		num, den := mulRatio(f.num, f.den, n, 1)
		out.factors = append(out.factors, factor{base: f.base, num: num, den: den})
	}
	return out
}

// Sqrt returns the square root of m. m must be positive.
func (m Mag) Sqrt() Mag {
	if m.neg {
		panic(errors.AssertionFailedf("square root of negative magnitude"))
	}
	out := Mag{factors: make([]factor, 0, len(m.factors))}
	for _, f := range m.factors {
		num, den := mulRatio(f.num, f.den, 1, 2)
		out.factors = append(out.factors, factor{base: f.base, num: num, den: den})
	}
	return out
}

// IsPositive reports whether m is greater than zero.
func (m Mag) IsPositive() bool {
	return !m.neg
}

// IsOne reports whether m is exactly 1.
func (m Mag) IsOne() bool {
	return !m.neg && len(m.factors) == 0
}

// IsRational reports whether m is a ratio of integers: no π factor, and
// every exponent an integer.
func (m Mag) IsRational() bool {
	for _, f := range m.factors {
		if f.base == piBase || f.den != 1 {
			return false
		}
	}
	return true
}

// IsInteger reports whether m is an integer (of either sign).
func (m Mag) IsInteger() bool {
	for _, f := range m.factors {
		if f.base == piBase || f.den != 1 || f.num < 0 {
			return false
		}
	}
	return true
}

// Numerator returns the integer part of a rational m with the sign attached:
// the product of all bases raised to their positive exponents.
func (m Mag) Numerator() Mag {
	if !m.IsRational() {
		panic(errors.AssertionFailedf("numerator of irrational magnitude %s", m))
	}
	out := Mag{neg: m.neg}
	for _, f := range m.factors {
		if f.num > 0 {
			out.factors = append(out.factors, f)
		}
	}
	return out
}

// Denominator returns the positive integer denominator of a rational m.
func (m Mag) Denominator() Mag {
	if !m.IsRational() {
		panic(errors.AssertionFailedf("denominator of irrational magnitude %s", m))
	}
	out := Mag{}
	for _, f := range m.factors {
		if f.num < 0 {
			out.factors = append(out.factors, factor{base: f.base, num: -f.num, den: f.den})
		}
	}
	return out
}

// Equal reports whether m and other denote the same number.
func (m Mag) Equal(other Mag) bool {
	if m.neg != other.neg || len(m.factors) != len(other.factors) {
		return false
	}
	for i := range m.factors {
		if m.factors[i] != other.factors[i] {
			return false
		}
	}
	return true
}

// Lcm returns the least common multiple of two rational magnitudes, taking
// the exponent-wise maximum per base. For p1/q1 and p2/q2 this is
// lcm(p1, p2) / gcd(q1, q2), the smallest magnitude both divide.
func Lcm(a, b Mag) Mag {
	if !a.IsRational() || !b.IsRational() {
		panic(errors.AssertionFailedf("lcm of irrational magnitudes %s, %s", a, b))
	}

	out := Mag{}
	appendPositive := func(f factor) {
		// A base missing from the other operand has exponent zero there, so
		// negative exponents lose the max and drop out.
		if f.num > 0 {
			out.factors = append(out.factors, f)
		}
	}

	i, j := 0, 0
	for i < len(a.factors) && j < len(b.factors) {
		fa, fb := a.factors[i], b.factors[j]
		switch {
		case fa.base < fb.base:
			appendPositive(fa)
			i++
		case fa.base > fb.base:
			appendPositive(fb)
			j++
		default:
			f := fa
			if fb.num > fa.num {
				f = fb
			}
			out.factors = append(out.factors, f)
			i++
			j++
		}
	}
	for ; i < len(a.factors); i++ {
		appendPositive(a.factors[i])
	}
	for ; j < len(b.factors); j++ {
		appendPositive(b.factors[j])
	}
	return out
}

func (m Mag) String() string {
	if len(m.factors) == 0 {
		if m.neg {
			return "-1"
		}
		return "1"
	}

	if m.IsRational() {
		if num, den, ok := m.ratioUint64(); ok {
			var sb strings.Builder
			if m.neg {
				sb.WriteByte('-')
			}
			sb.WriteString(strconv.FormatUint(num, 10))
			if den != 1 {
				sb.WriteByte('/')
				sb.WriteString(strconv.FormatUint(den, 10))
			}
			return sb.String()
		}
	}

	var parts []string
	for _, f := range m.factors {
		parts = append(parts, f.render())
	}
	s := strings.Join(parts, "*")
	if m.neg {
		s = "-" + s
	}
	return s
}

func (f factor) render() string {
	base := strconv.FormatUint(f.base, 10)
	if f.base == piBase {
		base = "pi"
	}
	switch {
	case f.num == 1 && f.den == 1:
		return base
	case f.num == 1 && f.den == 2:
		return "sqrt(" + base + ")"
	case f.den == 1:
		return base + "^" + strconv.FormatInt(f.num, 10)
	}
	return base + "^(" + strconv.FormatInt(f.num, 10) + "/" + strconv.FormatInt(f.den, 10) + ")"
}

func sortFactors(fs []factor) {
	slices.SortFunc(fs, func(a, b factor) int {
		switch {
		case a.base < b.base:
			return -1
		case a.base > b.base:
			return 1
		}
		return 0
	})
}

// factorize returns the prime factorization of x as base -> exponent.
// Trial division stops at 1<<20; a larger remainder is kept as a single
// base, which canonicalizes correctly for every factor a unit system
// plausibly defines.
func factorize(x uint64) map[uint64]int64 {
	out := make(map[uint64]int64)
	for x%2 == 0 {
		out[2]++
		x /= 2
	}
	for p := uint64(3); p*p <= x && p < 1<<20; p += 2 {
		for x%p == 0 {
			out[p]++
			x /= p
		}
	}
	if x > 1 {
		out[x]++
	}
	return out
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// addRatio returns n1/d1 + n2/d2 in lowest terms, summing over the least
// common denominator so the intermediate products stay as small as the
// result allows.
func addRatio(n1, d1, n2, d2 int64) (int64, int64) {
	g := absGcd(d1, d2)
	num := n1*(d2/g) + n2*(d1/g)
	den := d1 / g * d2
	return reduceRatio(num, den)
}

// mulRatio returns (n1/d1) * (n2/d2) in lowest terms, cross-reducing each
// numerator against the opposite denominator before multiplying.
func mulRatio(n1, d1, n2, d2 int64) (int64, int64) {
	g1 := absGcd(n1, d2)
	g2 := absGcd(n2, d1)
	return reduceRatio((n1 / g1) * (n2 / g2), (d1 / g2) * (d2 / g1))
}

func absGcd(a, b int64) int64 {
	g := gcd(a, b)
	if g < 0 {
		g = -g
	}
	return g
}

func reduceRatio(num, den int64) (int64, int64) {
	if num == 0 {
		return 0, 1
	}
	g := gcd(num, den)
	if g < 0 {
		g = -g
	}
	num, den = num/g, den/g
	if den < 0 {
		num, den = -num, -den
	}
	return num, den
}
