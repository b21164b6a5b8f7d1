package symcore_test

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/njchilds90/symcore"
)

// ============================================================
// Evaluate
// ============================================================

func TestEvaluate_ExactWhenBound(t *testing.T) {
	xv := x.Bind(sc.Int(3))
	n, err := sc.Evaluate(sc.AddOf(sc.PowOf(xv, sc.N(2)), sc.F(1, 2)))
	require.NoError(t, err)
	assert.True(t, n.IsFraction())
	assert.Equal(t, "19/2", n.String())
}

func TestEvaluate_Float(t *testing.T) {
	n, err := sc.Evaluate(sc.SinOf(sc.N(1)))
	require.NoError(t, err)
	assert.True(t, n.IsFloat())
	assert.InDelta(t, math.Sin(1), n.Float64(), 1e-15)

	n, err = sc.Evaluate(sc.MulOf(sc.N(2), sc.Pi))
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, n.Float64(), 1e-15)
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := sc.Evaluate(sc.AddOf(x, sc.N(1)))
	assert.ErrorIs(t, err, sc.ErrUnbound)
	_, err = sc.Evaluate(sc.PowOf(sc.N(0), sc.N(-1)))
	assert.ErrorIs(t, err, sc.ErrUndefined)
	_, err = sc.Evaluate(sc.I)
	assert.ErrorIs(t, err, sc.ErrUndefined)
}

func TestN_NaNForUnbound(t *testing.T) {
	assert.True(t, math.IsNaN(sc.AddOf(x, sc.N(1)).N()))
	assert.InDelta(t, 4.0, sc.AddOf(x.Bind(sc.Int(3)), sc.N(1)).N(), 1e-15)
}

func TestEvaluateComplex(t *testing.T) {
	z := sc.EvaluateComplex(sc.AddOf(sc.N(1), sc.MulOf(sc.N(2), sc.I)))
	assert.InDelta(t, 1.0, real(z), 1e-15)
	assert.InDelta(t, 2.0, imag(z), 1e-15)
}

// ============================================================
// NPrec
// ============================================================

func nprec(t *testing.T, e sc.Expr, digits uint32) string {
	t.Helper()
	ctx, err := sc.PrecisionContext(digits, "")
	require.NoError(t, err)
	d, err := sc.NPrec(e, ctx)
	require.NoError(t, err, "%s", e)
	return d.String()
}

func TestNPrec_Constants(t *testing.T) {
	assert.Equal(t, "3.1415926535897932385", nprec(t, sc.Pi, 20))
	assert.Equal(t, "2.7182818284590452354", nprec(t, sc.E, 20))
	assert.Equal(t, "1.4142135623730950488", nprec(t, sc.SqrtOf(sc.N(2)), 20))
	assert.Equal(t, "0.3333333333", nprec(t, sc.F(1, 3), 10))
	assert.Equal(t, "0.6931471806", nprec(t, sc.LnOf(sc.N(2)), 10))
}

func TestNPrec_AgreesWithFloat(t *testing.T) {
	for _, e := range []sc.Expr{
		sc.SinOf(sc.N(1)),
		sc.CosOf(sc.N(10)),
		sc.AtanOf(sc.N(3)),
		sc.AsinOf(sc.F(1, 3)),
		sc.AcosOf(sc.F(-1, 4)),
		sc.TanhOf(sc.N(2)),
		sc.PowOf(sc.N(2), sc.F(1, 3)),
		sc.LogOf(sc.N(10), sc.N(3)),
	} {
		ctx, err := sc.PrecisionContext(30, "")
		require.NoError(t, err)
		d, err := sc.NPrec(e, ctx)
		require.NoError(t, err, "%s", e)
		f, err := d.Float64()
		require.NoError(t, err)
		assert.InDelta(t, e.N(), f, 1e-13, "%s", e)
	}
}

func TestNPrec_Errors(t *testing.T) {
	ctx, err := sc.PrecisionContext(10, "half_up")
	require.NoError(t, err)
	_, err = sc.NPrec(x, ctx)
	assert.ErrorIs(t, err, sc.ErrUnbound)
	_, err = sc.NPrec(sc.I, ctx)
	assert.ErrorIs(t, err, sc.ErrNotImplemented)
	_, err = sc.NPrec(sc.AsinOf(sc.N(2)), ctx)
	assert.ErrorIs(t, err, sc.ErrUndefined)
	_, err = sc.NPrec(sc.N(1), nil)
	assert.Error(t, err)

	_, err = sc.PrecisionContext(0, "")
	assert.Error(t, err)
	_, err = sc.PrecisionContext(10, "sideways")
	assert.Error(t, err)
}

func TestNPrec_BoundSymbol(t *testing.T) {
	ctx, err := sc.PrecisionContext(10, "")
	require.NoError(t, err)
	d, err := sc.NPrec(sc.PowOf(x.Bind(sc.Frac(3, 2)), sc.N(2)), ctx)
	require.NoError(t, err)
	f, err := d.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 2.25, f, 1e-12)
}

// ============================================================
// Simplify
// ============================================================

func TestSimplify_Pythagorean(t *testing.T) {
	e := sc.AddOf(sq(sc.SinOf(x)), sq(sc.CosOf(x)))
	assertExpr(t, sc.N(1), sc.Simplify(e))
	e = sc.AddOf(sc.MulOf(y, sq(sc.SinOf(x))), sc.MulOf(y, sq(sc.CosOf(x))), sc.N(2))
	assertExpr(t, sc.AddOf(y, sc.N(2)), sc.Simplify(e))
}

func TestSimplify_CancelsAndExpands(t *testing.T) {
	e := sc.DivOf(sc.SubOf(sq(x), sc.N(1)), sc.SubOf(x, sc.N(1)))
	assertExpr(t, sc.AddOf(x, sc.N(1)), sc.Simplify(e))
	e = sc.SubOf(sc.MulOf(x, sc.AddOf(x, sc.N(1))), sq(x))
	assertExpr(t, x, sc.Simplify(e))
}

func TestSimplify_NeverGrows(t *testing.T) {
	for _, e := range []sc.Expr{
		sc.SinOf(x),
		sc.PowOf(sc.AddOf(x, sc.N(1)), sc.N(10)),
		sc.DivOf(sc.AddOf(x, sc.N(1)), sc.AddOf(x, sc.N(2))),
	} {
		assert.LessOrEqual(t, sc.Size(sc.Simplify(e)), sc.Size(e), "%s", e)
	}
}

func TestSimplifyWith_DepthGuard(t *testing.T) {
	e := sc.SinOf(sc.SinOf(sc.SinOf(x)))
	_, err := sc.SimplifyWith(e, sc.SimplifyOptions{MaxDepth: 2})
	assert.ErrorIs(t, err, sc.ErrTooDeep)
	assertExpr(t, e, sc.Simplify(e))
}

func TestSimplifyWith_Logs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e := sc.AddOf(sq(sc.SinOf(x)), sq(sc.CosOf(x)))
	out, err := sc.SimplifyWith(e, sc.SimplifyOptions{Logger: logrus.NewEntry(logger)})
	require.NoError(t, err)
	assertExpr(t, sc.N(1), out)
	var accepted []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "accepted" {
			accepted = append(accepted, entry)
		}
	}
	require.Len(t, accepted, 1)
	assert.Equal(t, "trig", accepted[0].Data["pass"])
	assert.Greater(t, len(hook.AllEntries()), 1)
}

func TestExpand(t *testing.T) {
	want := sc.AddOf(sq(x), sc.MulOf(sc.N(2), x), sc.N(1))
	assertExpr(t, want, sc.Expand(sq(sc.AddOf(x, sc.N(1)))))
	assertExpr(t, sc.AddOf(sc.MulOf(x, y), sc.MulOf(x, z)), sc.Expand(sc.MulOf(x, sc.AddOf(y, z))))
	inv := sc.Expand(sc.PowOf(sc.AddOf(x, sc.N(1)), sc.N(-2)))
	assertExpr(t, sc.PowOf(want, sc.N(-1)), inv)
}

func TestCombineFractions(t *testing.T) {
	e := sc.AddOf(sc.PowOf(x, sc.N(-1)), sc.PowOf(y, sc.N(-1)))
	num, den := sc.NumerDenom(sc.CombineFractions(e))
	assertExpr(t, sc.AddOf(x, y), num)
	assertExpr(t, sc.MulOf(x, y), den)
}

// ============================================================
// Matrix
// ============================================================

func TestMatrix_DetInverse(t *testing.T) {
	m := sc.NewMatrix(2, 2, sc.N(1), sc.N(2), sc.N(3), sc.N(4))
	assertExpr(t, sc.N(-2), m.Det())
	inv, err := m.Inverse()
	require.NoError(t, err)
	assertExpr(t, sc.NewMatrix(2, 2, sc.N(-2), sc.N(1), sc.F(3, 2), sc.F(-1, 2)), inv)
	assertExpr(t, sc.Identity(2), m.MatMul(inv))
	assertExpr(t, sc.N(5), m.Trace())
}

func TestMatrix_Symbolic(t *testing.T) {
	c, d := sc.S("c"), sc.S("d")
	m := sc.NewMatrix(2, 2, a, b, c, d)
	assertExpr(t, sc.SubOf(sc.MulOf(a, d), sc.MulOf(b, c)), m.Det())
	m3 := sc.NewMatrix(3, 3, a, sc.N(0), sc.N(0), sc.N(0), b, sc.N(0), sc.N(0), sc.N(0), c)
	assertExpr(t, sc.MulOf(a, b, c), m3.Det())
	assertExpr(t, sc.NewMatrix(2, 2, a, c, b, d), m.Transpose())
}

func TestMatrix_Singular(t *testing.T) {
	m := sc.NewMatrix(2, 2, x, sc.MulOf(sc.N(2), x), sc.N(1), sc.N(2))
	_, err := m.Inverse()
	assert.ErrorIs(t, err, sc.ErrSingular)
	assert.Panics(t, func() { m.Get(2, 0) })
	assert.Panics(t, func() { m.MatMul(sc.NewMatrix(3, 1)) })
}

func TestMatrix_ProductsKeepOrder(t *testing.T) {
	m := sc.NewMatrix(2, 2, sc.N(1), sc.N(2), sc.N(3), sc.N(4))
	swap := sc.NewMatrix(2, 2, sc.N(0), sc.N(1), sc.N(1), sc.N(0))
	mSwap, swapM := sc.MulOf(m, swap), sc.MulOf(swap, m)
	assert.False(t, sc.Equal(mSwap, swapM))
	require.IsType(t, &sc.Mul{}, mSwap)
	require.Len(t, mSwap.Args(), 2)
	assertExpr(t, m, mSwap.Args()[0])
	assertExpr(t, swap, mSwap.Args()[1])

	scaled := sc.MulOf(swap, x, sc.N(2), m)
	require.Len(t, scaled.Args(), 4)
	assertExpr(t, sc.N(2), scaled.Args()[0])
	assertExpr(t, x, scaled.Args()[1])
	assertExpr(t, swap, scaled.Args()[2])
	assertExpr(t, m, scaled.Args()[3])
	assertExpr(t, scaled, sc.MulOf(sc.MulOf(swap, x), sc.MulOf(sc.N(2), m)))

	assert.Len(t, sc.MulOf(m, m).Args(), 2)
}

func TestMatrix_Derivative(t *testing.T) {
	v := sc.Vector(sq(x), sc.SinOf(x))
	assertExpr(t, sc.Vector(sc.MulOf(sc.N(2), x), sc.CosOf(x)), v.Derivative(x))
}
