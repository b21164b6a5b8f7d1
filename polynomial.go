package symcore

import (
	"math/big"

	"github.com/njchilds90/symcore/ring"
	"github.com/pkg/errors"
)

// ============================================================
// Polynomials in one or two variables
// ============================================================

// maxPolyDegree bounds the degrees Coefficients accepts.
const maxPolyDegree = 1 << 12

// Coefficients returns the coefficients of e as a polynomial in v, lowest
// degree first, after expansion. The coefficients are free of v. It returns
// ErrNotPolynomial when v occurs other than in natural powers.
func Coefficients(e Expr, v *Sym) ([]Expr, error) {
	ex := Expand(e)
	terms := []Expr{ex}
	if a, ok := ex.(*Add); ok {
		terms = a.terms
	}
	byDegree := map[int][]Expr{}
	top := -1
	for _, t := range terms {
		k, c, ok := monomialIn(t, v)
		if !ok {
			return nil, errors.Wrapf(ErrNotPolynomial, "%s in %s", e, v)
		}
		byDegree[k] = append(byDegree[k], c)
		top = max(top, k)
	}
	out := make([]Expr, top+1)
	for k := range out {
		out[k] = AddOf(byDegree[k]...)
	}
	for len(out) > 0 && IsZero(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

// monomialIn writes t = c * v^k with c free of v.
func monomialIn(t Expr, v *Sym) (int, Expr, bool) {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	k := 0
	var rest []Expr
	for _, f := range factors {
		if Free(f, v) {
			rest = append(rest, f)
			continue
		}
		base, exp := splitExponent(f)
		s, ok := base.(*Sym)
		if !ok || compareSyms(s, v) != 0 {
			return 0, nil, false
		}
		n, ok := asNum(exp)
		if !ok || !n.IsInteger() || n.IsNegative() {
			return 0, nil, false
		}
		d, fits := n.Int64()
		if !fits || d > maxPolyDegree {
			return 0, nil, false
		}
		k += int(d)
	}
	return k, MulOf(rest...), true
}

// Degree returns the degree of e in v; the zero polynomial has degree -1.
func Degree(e Expr, v *Sym) (int, error) {
	cs, err := Coefficients(e, v)
	if err != nil {
		return 0, err
	}
	return len(cs) - 1, nil
}

// Collect groups the terms of e by powers of v. Expressions that are not
// polynomial in v are returned unchanged.
func Collect(e Expr, v *Sym) Expr {
	cs, err := Coefficients(e, v)
	if err != nil {
		return e
	}
	terms := make([]Expr, 0, len(cs))
	for k, c := range cs {
		terms = append(terms, MulOf(Simplify(c), PowOf(v, N(int64(k)))))
	}
	return AddOf(terms...)
}

var (
	rationals = ring.Rationals{}
	integers  = ring.Integers{}
)

// ToPolynomial converts e into Q[v]. Every coefficient must be rational.
func ToPolynomial(e Expr, v *Sym) (ring.Poly[*big.Rat], error) {
	qx := ring.Polynomials[*big.Rat](rationals, v.String())
	cs, err := Coefficients(e, v)
	if err != nil {
		return ring.Poly[*big.Rat]{}, err
	}
	coeffs := make([]*big.Rat, len(cs))
	for i, c := range cs {
		n, ok := asNum(c)
		if !ok || !n.IsFraction() {
			return ring.Poly[*big.Rat]{}, errors.Wrapf(ErrNotPolynomial, "coefficient %s of %s is not rational", c, e)
		}
		coeffs[i] = n.Rat()
	}
	return qx.New(coeffs...), nil
}

// FromPolynomial converts p back into an expression in v.
func FromPolynomial(p ring.Poly[*big.Rat], v *Sym) Expr {
	cs := p.Coefficients()
	terms := make([]Expr, len(cs))
	for k, c := range cs {
		terms[k] = MulOf(NRat(c), PowOf(v, N(int64(k))))
	}
	return AddOf(terms...)
}

// ToBivariate converts e into Q[x][y].
func ToBivariate(e Expr, x, y *Sym) (ring.Poly[ring.Poly[*big.Rat]], error) {
	qxy := bivariateRing(x, y)
	cs, err := Coefficients(e, y)
	if err != nil {
		return ring.Poly[ring.Poly[*big.Rat]]{}, err
	}
	coeffs := make([]ring.Poly[*big.Rat], len(cs))
	for i, c := range cs {
		if coeffs[i], err = ToPolynomial(c, x); err != nil {
			return ring.Poly[ring.Poly[*big.Rat]]{}, err
		}
	}
	return qxy.New(coeffs...), nil
}

// FromBivariate converts p in Q[x][y] back into an expression.
func FromBivariate(p ring.Poly[ring.Poly[*big.Rat]], x, y *Sym) Expr {
	cs := p.Coefficients()
	terms := make([]Expr, len(cs))
	for k, c := range cs {
		terms[k] = MulOf(FromPolynomial(c, x), PowOf(y, N(int64(k))))
	}
	return AddOf(terms...)
}

func bivariateRing(x, y *Sym) *ring.PolynomialRing[ring.Poly[*big.Rat]] {
	qx := ring.Polynomials[*big.Rat](rationals, x.String())
	return ring.Polynomials[ring.Poly[*big.Rat]](qx, y.String())
}

// PolynomialGcd returns the gcd of two polynomials with rational
// coefficients in at most two variables, normalized to a monic leading
// coefficient in the last variable. Without vars, the free variables of a
// and b are used. Integers have their integer gcd.
func PolynomialGcd(a, b Expr, vars ...*Sym) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	if len(vars) == 0 {
		vars = FreeVariables(Vector(a, b))
	}
	switch len(vars) {
	case 0:
		an, aok := asNum(a)
		bn, bok := asNum(b)
		if !aok || !bok || !an.IsFraction() || !bn.IsFraction() {
			return nil, errors.Wrapf(ErrNotPolynomial, "gcd(%s, %s)", a, b)
		}
		if an.IsInteger() && bn.IsInteger() {
			return NumOf(BigInt(ring.Gcd[*big.Int](integers, an.r().Num(), bn.r().Num()))), nil
		}
		return NRat(ring.Gcd[*big.Rat](rationals, an.r(), bn.r())), nil
	case 1:
		x := vars[0]
		pa, err := ToPolynomial(a, x)
		if err != nil {
			return nil, err
		}
		pb, err := ToPolynomial(b, x)
		if err != nil {
			return nil, err
		}
		qx := ring.Polynomials[*big.Rat](rationals, x.String())
		return FromPolynomial(ring.Gcd[ring.Poly[*big.Rat]](qx, pa, pb), x), nil
	case 2:
		x, y := vars[0], vars[1]
		pa, err := ToBivariate(a, x, y)
		if err != nil {
			return nil, err
		}
		pb, err := ToBivariate(b, x, y)
		if err != nil {
			return nil, err
		}
		qxy := bivariateRing(x, y)
		return FromBivariate(ring.Gcd[ring.Poly[ring.Poly[*big.Rat]]](qxy, pa, pb), x, y), nil
	}
	notImplemented("polynomial gcd in more than two variables", Vector(a, b))
	return nil, nil
}

// Cancel divides the numerator and denominator of e by their polynomial gcd.
// Expressions that are not quotients of polynomials in at most two variables
// are returned unchanged.
func Cancel(e Expr) Expr {
	num, den := NumerDenom(CombineFractions(e))
	if IsOne(den) {
		return e
	}
	vars := FreeVariables(Vector(num, den))
	switch len(vars) {
	case 1:
		x := vars[0]
		pn, err1 := ToPolynomial(num, x)
		pd, err2 := ToPolynomial(den, x)
		if err1 != nil || err2 != nil {
			return e
		}
		qx := ring.Polynomials[*big.Rat](rationals, x.String())
		g := ring.Gcd[ring.Poly[*big.Rat]](qx, pn, pd)
		if g.Degree() < 1 {
			return e
		}
		return DivOf(FromPolynomial(qx.Div(pn, g), x), FromPolynomial(qx.Div(pd, g), x))
	case 2:
		x, y := vars[0], vars[1]
		pn, err1 := ToBivariate(num, x, y)
		pd, err2 := ToBivariate(den, x, y)
		if err1 != nil || err2 != nil {
			return e
		}
		qxy := bivariateRing(x, y)
		g := ring.Gcd[ring.Poly[ring.Poly[*big.Rat]]](qxy, pn, pd)
		if g.Degree() < 1 && (g.Degree() < 0 || qxy.Lead(g).Degree() < 1) {
			return e
		}
		return DivOf(FromBivariate(qxy.Div(pn, g), x, y), FromBivariate(qxy.Div(pd, g), x, y))
	}
	return e
}

// cancelAll applies Cancel to every quotient in e, innermost first.
func cancelAll(e Expr) Expr {
	e = mapArgs(e, cancelAll)
	if _, den := NumerDenom(e); IsOne(den) {
		return e
	}
	return Cancel(e)
}
