package symcore_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/njchilds90/symcore"
)

// ============================================================
// Derivatives
// ============================================================

func TestDiff_PowerRule(t *testing.T) {
	d, err := sc.Diff(sc.PowOf(x, sc.N(3)), x)
	require.NoError(t, err)
	assertExpr(t, sc.MulOf(sc.N(3), sc.PowOf(x, sc.N(2))), d)
}

func TestDiff_ConstantsAndOtherSymbols(t *testing.T) {
	d, err := sc.Diff(sc.AddOf(sc.Pi, y, sc.N(7)), x)
	require.NoError(t, err)
	assertExpr(t, sc.N(0), d)
}

func TestDiff_Inequality(t *testing.T) {
	_, err := sc.Diff(sc.LtOf(x, sc.N(1)), x)
	assert.ErrorIs(t, err, sc.ErrNotImplemented)
	var ni *sc.NotImplementedError
	assert.ErrorAs(t, err, &ni)
}

func TestDiff_Equation(t *testing.T) {
	d, err := sc.Diff(sc.EqOf(sc.PowOf(x, sc.N(2)), y), x)
	require.NoError(t, err)
	assertExpr(t, sc.EqOf(sc.MulOf(sc.N(2), x), sc.N(0)), d)
}

func TestDiff_UndefinedFunction(t *testing.T) {
	f := sc.UndefinedOf("f", x, y)
	d, err := sc.Diff(sc.PowOf(f, sc.N(2)), x)
	require.NoError(t, err)
	fx := f.Derivative(x)
	assertExpr(t, sc.MulOf(sc.N(2), f, fx), d)
	assert.Equal(t, []int{1, 0}, fx.(*sc.Undefined).Orders())
}

func TestDiff_DependentSymbol(t *testing.T) {
	u := sc.S("u", sc.DependsOn(x))
	d, err := sc.Diff(u, x)
	require.NoError(t, err)
	assert.IsType(t, &sc.Undefined{}, d)
	d, err = sc.Diff(u, y)
	require.NoError(t, err)
	assertExpr(t, sc.N(0), d)
}

func TestDiffN(t *testing.T) {
	e := sc.PowOf(x, sc.N(3))
	d, err := sc.DiffN(e, x, 3)
	require.NoError(t, err)
	assertExpr(t, sc.N(6), d)
	d, err = sc.DiffN(e, x, 4)
	require.NoError(t, err)
	assertExpr(t, sc.N(0), d)
	d, err = sc.DiffN(e, x, 0)
	require.NoError(t, err)
	assertExpr(t, e, d)
	_, err = sc.DiffN(e, x, -1)
	assert.Error(t, err)
}

// The derivative of every sample agrees with a central difference at random
// points of (0.3, 1.2).
func TestDiff_MatchesFiniteDifferences(t *testing.T) {
	samples := []sc.Expr{
		sc.AddOf(sc.PowOf(x, sc.N(3)), sc.MulOf(sc.N(2), x)),
		sc.MulOf(sc.SinOf(x), sc.CosOf(x)),
		sc.ExpOf(sc.PowOf(x, sc.N(2))),
		sc.DivOf(sc.LnOf(x), x),
		sc.LogOf(x, sc.N(2)),
		sc.AtanOf(x),
		sc.TanOf(x),
		sc.PowOf(x, x),
		sc.AsinOf(sc.DivOf(x, sc.N(2))),
		sc.AcosOf(sc.DivOf(x, sc.N(2))),
		sc.SqrtOf(sc.AddOf(x, sc.N(1))),
		sc.MulOf(x, sc.CoshOf(x)),
		sc.SinhOf(sc.MulOf(sc.N(2), x)),
		sc.TanhOf(x),
		sc.CotOf(x),
		sc.SecOf(x),
		sc.CscOf(x),
		sc.AcotOf(x),
		sc.AbsOf(sc.SubOf(x, sc.N(2))),
	}
	rng := rand.New(rand.NewSource(11))
	const h = 1e-6
	for _, f := range samples {
		df, err := sc.Diff(f, x)
		require.NoError(t, err, "%s", f)
		for i := 0; i < 5; i++ {
			x0 := 0.3 + 0.9*rng.Float64()
			at := func(e sc.Expr, v float64) float64 { return e.Substitute(x, sc.NFloat(v)).N() }
			want := (at(f, x0+h) - at(f, x0-h)) / (2 * h)
			got := at(df, x0)
			require.False(t, math.IsNaN(got), "d/dx %s = %s at %g", f, df, x0)
			assert.InDelta(t, want, got, 1e-5*math.Max(1, math.Abs(want)), "d/dx %s = %s at %g", f, df, x0)
		}
	}
}

func TestGradientJacobianHessian(t *testing.T) {
	e := sc.MulOf(sc.PowOf(x, sc.N(2)), y)
	g, err := sc.Gradient(e, []*sc.Sym{x, y})
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	assertExpr(t, sc.MulOf(sc.N(2), x, y), g.Get(0, 0))
	assertExpr(t, sc.PowOf(x, sc.N(2)), g.Get(1, 0))

	h, err := sc.Hessian(e, []*sc.Sym{x, y})
	require.NoError(t, err)
	assertExpr(t, sc.NewMatrix(2, 2,
		sc.MulOf(sc.N(2), y), sc.MulOf(sc.N(2), x),
		sc.MulOf(sc.N(2), x), sc.N(0),
	), h)

	j, err := sc.Jacobian([]sc.Expr{sc.MulOf(x, y), sc.AddOf(x, y)}, []*sc.Sym{x, y})
	require.NoError(t, err)
	assertExpr(t, sc.NewMatrix(2, 2, y, x, sc.N(1), sc.N(1)), j)
}

// ============================================================
// Series and limits
// ============================================================

func TestTaylor_Exp(t *testing.T) {
	s, err := sc.Taylor(sc.ExpOf(x), x, sc.N(0), 3)
	require.NoError(t, err)
	want := sc.AddOf(sc.N(1), x,
		sc.MulOf(sc.F(1, 2), sc.PowOf(x, sc.N(2))),
		sc.MulOf(sc.F(1, 6), sc.PowOf(x, sc.N(3))),
	)
	assertExpr(t, want, s)
}

func TestTaylor_SinAroundZero(t *testing.T) {
	s, err := sc.Taylor(sc.SinOf(x), x, sc.N(0), 5)
	require.NoError(t, err)
	want := sc.AddOf(x,
		sc.MulOf(sc.F(-1, 6), sc.PowOf(x, sc.N(3))),
		sc.MulOf(sc.F(1, 120), sc.PowOf(x, sc.N(5))),
	)
	assertExpr(t, want, s)
}

func TestTaylor_ShiftedPoint(t *testing.T) {
	s, err := sc.Taylor(sc.PowOf(x, sc.N(2)), x, sc.N(1), 2)
	require.NoError(t, err)
	assertExpr(t, sc.PowOf(x, sc.N(2)), sc.Expand(s))
}

func TestTaylor_Singular(t *testing.T) {
	_, err := sc.Taylor(sc.DivOf(sc.N(1), x), x, sc.N(0), 2)
	assert.ErrorIs(t, err, sc.ErrUndefined)
}

func TestLimit(t *testing.T) {
	cases := []struct {
		name string
		e    sc.Expr
		at   sc.Expr
		want sc.Expr
	}{
		{"substitution", sc.AddOf(x, sc.N(1)), sc.N(2), sc.N(3)},
		{"sinc", sc.DivOf(sc.SinOf(x), x), sc.N(0), sc.N(1)},
		{"removable", sc.DivOf(sc.SubOf(sc.PowOf(x, sc.N(2)), sc.N(1)), sc.SubOf(x, sc.N(1))), sc.N(1), sc.N(2)},
		{"twice", sc.DivOf(sc.SubOf(sc.N(1), sc.CosOf(x)), sc.PowOf(x, sc.N(2))), sc.N(0), sc.F(1, 2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := sc.Limit(c.e, x, c.at)
			require.NoError(t, err)
			assertExpr(t, c.want, got)
		})
	}
}

func TestLimit_Diverges(t *testing.T) {
	_, err := sc.Limit(sc.DivOf(sc.N(1), x), x, sc.N(0))
	assert.ErrorIs(t, err, sc.ErrNoLimit)
}
