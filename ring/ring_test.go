package ring_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcore/ring"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

// ============================================================
// Integers
// ============================================================

func TestExtendedGcd_Textbook(t *testing.T) {
	g, s, u := ring.ExtendedGcd[*big.Int](ring.Integers{}, bi(240), bi(46))
	assert.Equal(t, "2", g.String())
	assert.Equal(t, "-9", s.String())
	assert.Equal(t, "47", u.String())
	// 2 == -9*240 + 47*46
	check := new(big.Int).Add(new(big.Int).Mul(s, bi(240)), new(big.Int).Mul(u, bi(46)))
	assert.Equal(t, 0, check.Cmp(g))
}

func TestExtendedGcd_Machine(t *testing.T) {
	g, s, u := ring.ExtendedGcd[int64](ring.Machine[int64]{}, 240, 46)
	assert.Equal(t, int64(2), g)
	assert.Equal(t, int64(-9), s)
	assert.Equal(t, int64(47), u)
}

func TestGcd_RandomIntegers(t *testing.T) {
	z := ring.Integers{}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := bi(rng.Int63n(20001) - 10000)
		b := bi(rng.Int63n(20001) - 10000)
		switch i % 25 {
		case 0:
			a = bi(0)
		case 1:
			b = bi(0)
		case 2:
			a, b = bi(0), bi(0)
		}
		g := ring.Gcd[*big.Int](z, a, b)
		require.GreaterOrEqual(t, g.Sign(), 0, "gcd(%s, %s) = %s", a, b, g)
		if g.Sign() != 0 {
			assert.Zero(t, z.Rem(a, g).Sign(), "gcd(%s, %s) = %s does not divide a", a, b, g)
			assert.Zero(t, z.Rem(b, g).Sign(), "gcd(%s, %s) = %s does not divide b", a, b, g)
		} else {
			assert.True(t, a.Sign() == 0 && b.Sign() == 0)
		}
		eg, s, u := ring.ExtendedGcd[*big.Int](z, a, b)
		assert.Equal(t, 0, eg.Cmp(g))
		combo := z.Add(z.Mul(s, a), z.Mul(u, b))
		assert.Equal(t, 0, combo.Cmp(g), "%s*%s + %s*%s != %s", s, a, u, b, g)
	}
}

func TestLcm(t *testing.T) {
	z := ring.Integers{}
	assert.Equal(t, "12", ring.Lcm[*big.Int](z, bi(-4), bi(6)).String())
	assert.Equal(t, "0", ring.Lcm[*big.Int](z, bi(0), bi(6)).String())
}

func TestPow(t *testing.T) {
	assert.Equal(t, "243", ring.Pow[*big.Int](ring.Integers{}, bi(3), 5).String())
	assert.Equal(t, "1", ring.Pow[*big.Int](ring.Integers{}, bi(3), 0).String())
	assert.Equal(t, int64(1), ring.Pow[int64](ring.NewModular(7), 3, 6))
}

func TestIntegers_DivTruncates(t *testing.T) {
	z := ring.Integers{}
	q, r := z.DivRem(bi(-7), bi(2))
	assert.Equal(t, "-3", q.String())
	assert.Equal(t, "-1", r.String())
	assert.Panics(t, func() { z.Div(bi(1), bi(0)) })
}

// ============================================================
// Fields
// ============================================================

func TestModular_Inverse(t *testing.T) {
	m := ring.NewModular(101)
	for a := int64(1); a < 101; a++ {
		assert.Equal(t, int64(1), m.Mul(a, m.Inv(a)), "inverse of %d", a)
	}
	assert.Equal(t, int64(100), m.Elem(-1))
}

func TestModular_LargeModulusMul(t *testing.T) {
	const p = int64(4611686018427387847) // 2^62 - 57
	m := ring.NewModular(p)
	a := p - 1
	assert.Equal(t, int64(1), m.Mul(a, a))
}

func TestModular_CompositePanics(t *testing.T) {
	m := ring.NewModular(12)
	assert.Panics(t, func() { m.Inv(4) })
	assert.Panics(t, func() { ring.NewModular(1) })
}

func TestFr_Arithmetic(t *testing.T) {
	f := ring.Fr{}
	a := ring.FrElem(3)
	b := f.Inv(a)
	assert.True(t, f.Equal(f.Mul(a, b), f.One()))
	assert.True(t, f.IsZero(f.Add(ring.FrElem(-5), ring.FrElem(5))))
	assert.Equal(t, 1, ring.FrModulus().Sign())
}

// ============================================================
// Polynomials
// ============================================================

func TestPoly_Format(t *testing.T) {
	zx := ring.Polynomials[*big.Int](ring.Integers{}, "x")
	p := zx.New(bi(-1), bi(0), bi(3), bi(0))
	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, "3*x^2 + -1", zx.Format(p))
	assert.Equal(t, "0", zx.Format(zx.Zero()))
	assert.Equal(t, "x", zx.Format(zx.X()))
}

func TestPoly_DivRemRationals(t *testing.T) {
	qx := ring.Polynomials[*big.Rat](ring.Rationals{}, "x")
	// (x^3 - 1) / (2x - 2) = x^2/2 + x/2 + 1/2, remainder 0
	a := qx.New(big.NewRat(-1, 1), new(big.Rat), new(big.Rat), big.NewRat(1, 1))
	b := qx.New(big.NewRat(-2, 1), big.NewRat(2, 1))
	q, r := qx.DivRem(a, b)
	assert.True(t, qx.IsZero(r))
	assert.Equal(t, "1/2*x^2 + 1/2*x + 1/2", qx.Format(q))
}

func TestPoly_GcdRationalsMonic(t *testing.T) {
	qx := ring.Polynomials[*big.Rat](ring.Rationals{}, "x")
	r := func(v int64) *big.Rat { return big.NewRat(v, 1) }
	// 3(x-1)(x+2) and (x-1)(x-3)
	a := qx.Mul(qx.New(r(-3), r(3)), qx.New(r(2), r(1)))
	b := qx.Mul(qx.New(r(-1), r(1)), qx.New(r(-3), r(1)))
	g := ring.Gcd[ring.Poly[*big.Rat]](qx, a, b)
	assert.Equal(t, "x + -1", qx.Format(g))

	eg, s, u := ring.ExtendedGcd[ring.Poly[*big.Rat]](qx, a, b)
	assert.True(t, qx.Equal(eg, g))
	assert.True(t, qx.Equal(qx.Add(qx.Mul(s, a), qx.Mul(u, b)), g))
}

func TestPoly_GcdIntegersPrimitive(t *testing.T) {
	zx := ring.Polynomials[*big.Int](ring.Integers{}, "x")
	// 2(x+1)(x-2) and 4(x+1)(x+3), gcd 2(x+1)
	a := zx.Scale(zx.Mul(zx.New(bi(1), bi(1)), zx.New(bi(-2), bi(1))), bi(2))
	b := zx.Scale(zx.Mul(zx.New(bi(1), bi(1)), zx.New(bi(3), bi(1))), bi(4))
	g := ring.Gcd[ring.Poly[*big.Int]](zx, a, b)
	assert.Equal(t, "2*x + 2", zx.Format(g))
	assert.Equal(t, "2", zx.Content(a).String())
}

func TestPoly_GcdBivariate(t *testing.T) {
	zx := ring.Polynomials[*big.Int](ring.Integers{}, "x")
	zxy := ring.Polynomials[ring.Poly[*big.Int]](zx, "y")
	x := zx.X()
	one := zx.One()
	c := func(v int64) ring.Poly[*big.Int] { return zx.Constant(bi(v)) }

	xPlusY := zxy.New(x, one)
	xMinusY := zxy.New(x, zx.Neg(one))
	yPlus2 := zxy.New(c(2), one)

	a := zxy.Mul(xPlusY, xMinusY)
	b := zxy.Mul(xPlusY, yPlus2)
	g := ring.Gcd[ring.Poly[ring.Poly[*big.Int]]](zxy, a, b)
	assert.True(t, zxy.Equal(g, xPlusY), "got %s", zxy.Format(g))
	assert.Equal(t, "y + x", zxy.Format(g))
}

func TestPoly_GcdFr(t *testing.T) {
	f := ring.Fr{}
	fx := ring.Polynomials[ring.FrElement](f, "x")
	e := ring.FrElem
	a := fx.Mul(fx.New(e(1), e(1)), fx.New(e(2), e(1)))
	b := fx.Mul(fx.New(e(1), e(1)), fx.New(e(5), e(1)))
	g := ring.Gcd[ring.Poly[ring.FrElement]](fx, a, b)
	assert.True(t, fx.Equal(g, fx.New(e(1), e(1))))
	assert.True(t, f.Equal(fx.Eval(a, e(-1)), f.Zero()))
}

func TestPoly_TruncatedDivisionPanicsInExtendedGcd(t *testing.T) {
	zx := ring.Polynomials[*big.Int](ring.Integers{}, "x")
	a := zx.New(bi(0), bi(3))
	b := zx.New(bi(0), bi(2))
	q, r := zx.DivRem(a, b)
	assert.Equal(t, "1", zx.Format(q))
	assert.Equal(t, "x", zx.Format(r))
	assert.Panics(t, func() { ring.ExtendedGcd[ring.Poly[*big.Int]](zx, a, b) })
}

func TestPoly_PseudoRem(t *testing.T) {
	zx := ring.Polynomials[*big.Int](ring.Integers{}, "x")
	// prem(x^2 + 1, 2x + 1): 4x^2 + 4 = (2x - 1)(2x + 1) + 5
	r := zx.PseudoRem(zx.New(bi(1), bi(0), bi(1)), zx.New(bi(1), bi(2)))
	assert.Equal(t, "5", zx.Format(r))
}
