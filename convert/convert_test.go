package convert_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/scalemath/scalemath/boundary"
	"github.com/scalemath/scalemath/convert"
	"github.com/scalemath/scalemath/magnitude"
	"github.com/scalemath/scalemath/ops"
	"github.com/scalemath/scalemath/rep"
	"github.com/scalemath/scalemath/trunc"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestForShapes(t *testing.T) {
	tests := []struct {
		name     string
		old, new rep.Type
		factor   magnitude.Mag
		want     string
	}{
		{
			"small integers promote to a working type",
			rep.TypeUint16, rep.TypeUint16, magnitude.FromRatio(1, 3),
			"seq(cast(uint16 -> int32), mul(int32, 1/3), cast(int32 -> uint16))",
		},
		{
			"floats scale in place",
			rep.TypeFloat32, rep.TypeFloat32, magnitude.FromInt(3),
			"mul(float32, 3)",
		},
		{
			"cast up then scale",
			rep.TypeInt32, rep.TypeFloat64, magnitude.One(),
			"seq(cast(int32 -> float64), mul(float64, 1))",
		},
		{
			"scale then cast down",
			rep.TypeFloat64, rep.TypeInt32, magnitude.One(),
			"seq(mul(float64, 1), cast(float64 -> int32))",
		},
		{
			"rational factor splits on integral types",
			rep.TypeInt64, rep.TypeInt64, magnitude.FromRatio(3, 4),
			"seq(mul(int64, 3), mul(int64, 1/4))",
		},
		{
			"rational factor stays whole on float types",
			rep.TypeFloat64, rep.TypeFloat64, magnitude.FromRatio(3, 4),
			"mul(float64, 3/4)",
		},
		{
			"mixed width integers meet in the wider type",
			rep.TypeInt16, rep.TypeInt64, magnitude.FromInt(1000),
			"seq(cast(int16 -> int64), mul(int64, 1000))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			plan := convert.For(test.old, test.new, test.factor)
			require.Equal(t, test.want, plan.String())
			require.Equal(t, test.old, plan.Input())
			require.Equal(t, test.new, plan.Output())
		})
	}
}

func TestForApplies(t *testing.T) {
	plan := convert.For(rep.TypeUint16, rep.TypeUint16, magnitude.FromRatio(1, 3))
	require.Equal(t, rep.UintOf(rep.TypeUint16, 2), plan.Apply(rep.UintOf(rep.TypeUint16, 6)))
	require.Equal(t, rep.UintOf(rep.TypeUint16, 2), plan.Apply(rep.UintOf(rep.TypeUint16, 7)))

	split := convert.For(rep.TypeInt64, rep.TypeInt64, magnitude.FromRatio(3, 4))
	require.Equal(t, rep.IntOf(rep.TypeInt64, 4), split.Apply(rep.IntOf(rep.TypeInt64, 6)))
}

func TestApplicationStrategyFor(t *testing.T) {
	split, ok := convert.ApplicationStrategyFor(rep.TypeInt32, magnitude.FromRatio(5, 2)).(ops.Sequence)
	require.True(t, ok)
	require.Len(t, split.Ops(), 2)

	_, ok = convert.ApplicationStrategyFor(rep.TypeInt32, magnitude.FromInt(5)).(ops.MultiplyBy)
	require.True(t, ok)
	_, ok = convert.ApplicationStrategyFor(rep.TypeInt32, magnitude.FromRatio(1, 5)).(ops.MultiplyBy)
	require.True(t, ok)
	_, ok = convert.ApplicationStrategyFor(rep.TypeFloat64, magnitude.FromRatio(5, 2)).(ops.MultiplyBy)
	require.True(t, ok)
	_, ok = convert.ApplicationStrategyFor(rep.TypeInt32, magnitude.Pi()).(ops.MultiplyBy)
	require.True(t, ok)
}

func TestAnalyze(t *testing.T) {
	a := convert.Analyze(rep.TypeFloat32, rep.TypeInt32, magnitude.One())

	require.Equal(t, rep.TypeFloat32, a.Old)
	require.Equal(t, rep.TypeInt32, a.New)
	require.False(t, a.Lower.Unbounded)
	require.False(t, a.Upper.Unbounded)
	require.Equal(t, "-2.1474836e+09", a.Lower.Value.String())
	require.Equal(t, "2.1474835e+09", a.Upper.Value.String())
	require.Equal(t, trunc.NonInteger{T: rep.TypeFloat32}, a.Risk)

	require.False(t, boundary.WouldOverflow(a.Plan, a.Lower.Value))
	require.False(t, boundary.WouldOverflow(a.Plan, a.Upper.Value))
}

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		name     string
		old, new rep.Type
		factor   magnitude.Mag
	}{
		{"divide_uint16_by_three", rep.TypeUint16, rep.TypeUint16, magnitude.FromRatio(1, 3)},
		{"triple_int16_into_float32", rep.TypeInt16, rep.TypeFloat32, magnitude.FromInt(3)},
		{"float32_to_int32", rep.TypeFloat32, rep.TypeInt32, magnitude.One()},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := convert.Analyze(test.old, test.new, test.factor)
			g.Assert(t, test.name, []byte(a.Render()))
		})
	}
}

// Analyses share no state, so concurrent callers must agree with a serial
// run.
func TestAnalyzeConcurrent(t *testing.T) {
	type input struct {
		old, new rep.Type
		factor   magnitude.Mag
	}
	inputs := []input{
		{rep.TypeUint16, rep.TypeUint16, magnitude.FromRatio(1, 3)},
		{rep.TypeInt8, rep.TypeInt64, magnitude.FromInt(-128)},
		{rep.TypeFloat32, rep.TypeInt32, magnitude.One()},
		{rep.TypeInt64, rep.TypeInt64, magnitude.FromRatio(3, 4)},
		{rep.TypeFloat64, rep.TypeFloat32, magnitude.Pi()},
	}

	serial := make([]string, len(inputs))
	for i, in := range inputs {
		serial[i] = convert.Analyze(in.old, in.new, in.factor).Render()
	}

	var g errgroup.Group
	for it := 0; it < 16; it++ {
		g.Go(func() error {
			for i, in := range inputs {
				got := convert.Analyze(in.old, in.new, in.factor).Render()
				if got != serial[i] {
					return errors.Newf("concurrent analysis diverged for %s -> %s", in.old, in.new)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
