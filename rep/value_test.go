package rep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scalemath/scalemath/rep"
)

func TestCast(t *testing.T) {
	tests := []struct {
		name string
		v    rep.Value
		to   rep.Type
		want rep.Value
	}{
		{"widening signed", rep.IntOf(rep.TypeInt8, -5), rep.TypeInt64, rep.IntOf(rep.TypeInt64, -5)},
		{"narrowing signed wraps", rep.IntOf(rep.TypeInt32, 300), rep.TypeInt8, rep.IntOf(rep.TypeInt8, 44)},
		{"signed to unsigned wraps", rep.IntOf(rep.TypeInt8, -1), rep.TypeUint8, rep.UintOf(rep.TypeUint8, 255)},
		{"unsigned to signed", rep.UintOf(rep.TypeUint16, 65535), rep.TypeInt16, rep.IntOf(rep.TypeInt16, -1)},
		{"int to float", rep.IntOf(rep.TypeInt16, 123), rep.TypeFloat32, rep.FloatOf(rep.TypeFloat32, 123)},
		{"float to int truncates", rep.FloatOf(rep.TypeFloat32, 2.9), rep.TypeInt32, rep.IntOf(rep.TypeInt32, 2)},
		{"negative float to int truncates", rep.FloatOf(rep.TypeFloat64, -5.5), rep.TypeInt32, rep.IntOf(rep.TypeInt32, -5)},
		{"small negative float to unsigned", rep.FloatOf(rep.TypeFloat64, -0.5), rep.TypeUint8, rep.UintOf(rep.TypeUint8, 0)},
		{"float to unsigned", rep.FloatOf(rep.TypeFloat64, 250.7), rep.TypeUint8, rep.UintOf(rep.TypeUint8, 250)},
		{"float64 to float32 rounds", rep.FloatOf(rep.TypeFloat64, 0.1), rep.TypeFloat32, rep.FloatOf(rep.TypeFloat32, 0.1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, test.v.Cast(test.to))
		})
	}
}

func TestCmp(t *testing.T) {
	require.Equal(t, -1, rep.IntOf(rep.TypeInt32, -3).Cmp(rep.IntOf(rep.TypeInt32, 4)))
	require.Equal(t, 1, rep.UintOf(rep.TypeUint64, math.MaxUint64).Cmp(rep.UintOf(rep.TypeUint64, 1)))
	require.Equal(t, 0, rep.FloatOf(rep.TypeFloat32, 1.5).Cmp(rep.FloatOf(rep.TypeFloat32, 1.5)))

	require.Panics(t, func() {
		rep.IntOf(rep.TypeInt32, 1).Cmp(rep.IntOf(rep.TypeInt64, 1))
	})
}

func TestArithmetic(t *testing.T) {
	t.Run("mul wraps", func(t *testing.T) {
		got := rep.IntOf(rep.TypeInt8, 100).Mul(rep.IntOf(rep.TypeInt8, 2))
		require.Equal(t, rep.IntOf(rep.TypeInt8, -56), got)
	})

	t.Run("div truncates toward zero", func(t *testing.T) {
		got := rep.IntOf(rep.TypeInt32, -7).Div(rep.IntOf(rep.TypeInt32, 2))
		require.Equal(t, rep.IntOf(rep.TypeInt32, -3), got)
	})

	t.Run("unsigned div", func(t *testing.T) {
		got := rep.UintOf(rep.TypeUint16, 6).Div(rep.UintOf(rep.TypeUint16, 3))
		require.Equal(t, rep.UintOf(rep.TypeUint16, 2), got)
	})

	t.Run("float32 product rounds once", func(t *testing.T) {
		a := rep.FloatOf(rep.TypeFloat32, 1.1)
		b := rep.FloatOf(rep.TypeFloat32, 3)
		want := float64(float32(1.1) * 3)
		require.Equal(t, want, a.Mul(b).Float64())
	})

	t.Run("neg wraps at signed minimum", func(t *testing.T) {
		got := rep.IntOf(rep.TypeInt8, math.MinInt8).Neg()
		require.Equal(t, rep.IntOf(rep.TypeInt8, math.MinInt8), got)
	})
}

func TestConstructorsCheckRange(t *testing.T) {
	require.Panics(t, func() { rep.IntOf(rep.TypeInt8, 128) })
	require.Panics(t, func() { rep.UintOf(rep.TypeUint8, 256) })
	require.Panics(t, func() { rep.IntOf(rep.TypeUint8, 1) })
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		typ      rep.Type
		min, max rep.Value
	}{
		{rep.TypeInt8, rep.IntOf(rep.TypeInt8, -128), rep.IntOf(rep.TypeInt8, 127)},
		{rep.TypeUint32, rep.UintOf(rep.TypeUint32, 0), rep.UintOf(rep.TypeUint32, math.MaxUint32)},
		{rep.TypeInt64, rep.IntOf(rep.TypeInt64, math.MinInt64), rep.IntOf(rep.TypeInt64, math.MaxInt64)},
		{rep.TypeFloat32, rep.FloatOf(rep.TypeFloat32, -math.MaxFloat32), rep.FloatOf(rep.TypeFloat32, math.MaxFloat32)},
	}

	for _, test := range tests {
		t.Run(test.typ.String(), func(t *testing.T) {
			require.Equal(t, test.min, test.typ.Min())
			require.Equal(t, test.max, test.typ.Max())
		})
	}
}

func TestTypeFromName(t *testing.T) {
	for typ := rep.TypeInt8; typ <= rep.TypeFloat64; typ++ {
		require.Equal(t, typ, rep.TypeFromName(typ.String()))
	}
	require.Equal(t, rep.TypeInvalid, rep.TypeFromName("complex128"))
}
