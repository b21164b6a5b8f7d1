package symcore

import (
	"math"
	"math/big"
)

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

// maxExactBits bounds the size of exact integer powers and roots; larger
// results are computed in floating point.
const maxExactBits = 1 << 14

// PowOf returns the canonical power base^exp:
//
//   - x^0 = 1 (including 0^0), 1^x = 1, x^1 = x;
//   - 0^x = 0 for positive or symbolic x and NaN for negative numeric x;
//   - numeric powers are exact where possible (4^(1/2) = 2, 8^(1/2) = 2*2^(1/2));
//   - (a^b)^c = a^(b*c);
//   - integer powers distribute over products;
//   - i^n cycles and b^log_b(x) = x.
func PowOf(base, exp Expr) Expr {
	if IsNaN(base) || IsNaN(exp) {
		return NaN()
	}
	if IsZero(exp) {
		return N(1)
	}
	if IsOne(exp) {
		return base
	}
	if IsOne(base) {
		return N(1)
	}
	bn, bok := asNum(base)
	en, eok := asNum(exp)
	if bok && eok {
		return powNumbers(bn, en)
	}
	if bok && bn.IsZero() {
		if IsNegative(exp) {
			return NaN()
		}
		return N(0)
	}
	switch b := base.(type) {
	case *Pow:
		return PowOf(b.base, MulOf(b.exp, exp))
	case *Mul:
		if eok && en.IsInteger() {
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, exp)
			}
			return MulOf(fs...)
		}
	case *Constant:
		if b.id == constI && eok && en.IsInteger() {
			return powI(en)
		}
	}
	if l, ok := exp.(*Log); ok && Equal(l.base, base) {
		return l.value
	}
	return &Pow{base: base, exp: exp}
}

// SqrtOf returns x^(1/2).
func SqrtOf(x Expr) Expr { return PowOf(x, F(1, 2)) }

// ExpOf returns e^x.
func ExpOf(x Expr) Expr { return PowOf(E, x) }

func powI(n Number) Expr {
	k := new(big.Int).Mod(n.r().Num(), big.NewInt(4)).Int64()
	switch k {
	case 0:
		return N(1)
	case 1:
		return I
	case 2:
		return N(-1)
	}
	return MulOf(N(-1), I)
}

// powNumbers folds a numeric power. Exact operands stay exact when the
// result is representable, otherwise the power is taken in floating point.
func powNumbers(b, e Number) Expr {
	if e.IsZero() {
		return N(1)
	}
	if b.IsZero() {
		if e.IsNegative() {
			return NaN()
		}
		return N(0)
	}
	if b.IsOne() {
		return N(1)
	}
	if b.IsFraction() && e.IsFraction() {
		if r, ok := powRational(b.r(), e.r()); ok {
			return r
		}
	}
	return NumOf(FloatNumber(math.Pow(b.Float64(), e.Float64())))
}

// powRational computes b^e exactly. Every positive radicand is split into
// prime powers (and one cofactor free of small primes), so that each
// surviving radical has a prime or cofactor base and an exponent in (0, 1):
// 12^(5/6) = 2^(5/3)*3^(5/6) = 2*2^(2/3)*3^(5/6). Products of radicals then
// merge by base whatever their grouping. Negative bases under a square root
// give a factor of i; other negative bases with fractional exponents stay
// unevaluated. Results larger than maxExactBits are reported as not exact.
func powRational(b, e *big.Rat) (Expr, bool) {
	if !exactPowFits(b, e) {
		return nil, false
	}
	if e.IsInt() {
		return NRat(ratPow(b, e.Num().Int64())), true
	}
	if b.Sign() < 0 {
		if e.Denom().Cmp(big.NewInt(2)) != 0 {
			return &Pow{base: NRat(b), exp: NRat(e)}, true
		}
		pos := new(big.Rat).Neg(b)
		return MulOf(PowOf(I, NumOf(BigInt(e.Num()))), PowOf(NRat(pos), NRat(e))), true
	}
	coeff := big.NewRat(1, 1)
	var factors []Expr
	split := func(r radical, sign int64) {
		// r.base^(sign*r.mult*e) = r.base^k * r.base^frac with 0 <= frac < 1.
		t := new(big.Rat).Mul(e, big.NewRat(sign*r.mult, 1))
		k := new(big.Int).Div(t.Num(), t.Denom())
		frac := new(big.Rat).Sub(t, new(big.Rat).SetInt(k))
		base := new(big.Rat).SetInt(r.base)
		coeff.Mul(coeff, ratPow(base, k.Int64()))
		if frac.Sign() != 0 {
			factors = append(factors, &Pow{base: NRat(base), exp: NRat(frac)})
		}
	}
	for _, r := range radicalFactors(b.Num()) {
		split(r, 1)
	}
	for _, r := range radicalFactors(b.Denom()) {
		split(r, -1)
	}
	if coeff.Cmp(ratOne) != 0 {
		factors = append(factors, NRat(coeff))
	}
	switch len(factors) {
	case 0:
		return N(1), true
	case 1:
		return factors[0], true
	}
	return MulOf(factors...), true
}

// exactPowFits reports whether b^e, taken exactly, stays within
// maxExactBits: bits(b)*|num(e)| <= maxExactBits*den(e).
func exactPowFits(b, e *big.Rat) bool {
	lhs := new(big.Int).Abs(e.Num())
	lhs.Mul(lhs, big.NewInt(bitsOf(b)))
	rhs := new(big.Int).Mul(big.NewInt(maxExactBits), e.Denom())
	return lhs.Cmp(rhs) <= 0
}

func ratPow(b *big.Rat, n int64) *big.Rat {
	neg := n < 0
	e := big.NewInt(n)
	if neg {
		e.Neg(e)
	}
	num := new(big.Int).Exp(b.Num(), e, nil)
	den := new(big.Int).Exp(b.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// radical is one factor base^mult of an integer.
type radical struct {
	base *big.Int
	mult int64
}

// maxPowerTestBits bounds the cofactors tested for being perfect powers.
const maxPowerTestBits = 1024

// radicalFactors splits n >= 1 into its prime factors below 1000, in
// ascending order, followed by the remaining cofactor written as c^k with k
// maximal.
func radicalFactors(n *big.Int) []radical {
	var out []radical
	one := big.NewInt(1)
	rest := new(big.Int).Set(n)
	quo, rem := new(big.Int), new(big.Int)
	for _, p := range smallPrimes {
		if rest.Cmp(one) == 0 {
			break
		}
		pb := big.NewInt(p)
		var m int64
		for {
			quo.QuoRem(rest, pb, rem)
			if rem.Sign() != 0 {
				break
			}
			rest.Set(quo)
			m++
		}
		if m > 0 {
			out = append(out, radical{base: pb, mult: m})
		}
	}
	if rest.Cmp(one) != 0 {
		base, k := perfectPower(rest)
		out = append(out, radical{base: base, mult: k})
	}
	return out
}

// perfectPower writes n as c^k with k maximal. n has no prime factor below
// 1000, so c has at least 10 bits and k <= bits(n)/10.
func perfectPower(n *big.Int) (*big.Int, int64) {
	mult := int64(1)
	for found := true; found && n.BitLen() <= maxPowerTestBits; {
		found = false
		for _, k := range smallPrimes {
			if int(k)*10 > n.BitLen() {
				break
			}
			if r, ok := exactRoot(n, k); ok {
				n, mult, found = r, mult*k, true
				break
			}
		}
	}
	return n, mult
}

// exactRoot returns the integer q-th root of n when n is a perfect power.
func exactRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() <= 0 {
		return nil, false
	}
	if q == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	// Newton iteration on integers, starting above the root.
	bits := n.BitLen()
	x := new(big.Int).Lsh(big.NewInt(1), uint(bits/int(q)+1))
	qb := big.NewInt(q)
	q1 := big.NewInt(q - 1)
	for {
		// y = ((q-1)x + n/x^(q-1)) / q
		xq1 := new(big.Int).Exp(x, q1, nil)
		y := new(big.Int).Mul(q1, x)
		y.Add(y, new(big.Int).Quo(n, xq1))
		y.Quo(y, qb)
		if y.Cmp(x) >= 0 {
			break
		}
		x = y
	}
	return x, new(big.Int).Exp(x, qb, nil).Cmp(n) == 0
}

var smallPrimes = func() []int64 {
	const limit = 1000
	sieve := make([]bool, limit)
	var ps []int64
	for i := 2; i < limit; i++ {
		if sieve[i] {
			continue
		}
		ps = append(ps, int64(i))
		for j := i * i; j < limit; j += i {
			sieve[j] = true
		}
	}
	return ps
}()

func bitsOf(r *big.Rat) int64 {
	return int64(max(r.Num().BitLen(), r.Denom().BitLen()))
}

func (p *Pow) Base() Expr   { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }
func (p *Pow) Kind() Kind    { return KindPow }
func (p *Pow) Args() []Expr  { return []Expr{p.base, p.exp} }
func (p *Pow) N() float64    { return realPart(evalComplex(p)) }

func (p *Pow) String() string {
	b, e := p.base.String(), p.exp.String()
	if needsParenAsBase(p.base) {
		b = "(" + b + ")"
	}
	if !isAtomic(p.exp) {
		e = "(" + e + ")"
	}
	return b + "^" + e
}

func (p *Pow) LaTeX() string {
	if n, ok := asNum(p.exp); ok && n.Equal(Frac(1, 2)) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	b := p.base.LaTeX()
	if needsParenAsBase(p.base) {
		b = "\\left(" + b + "\\right)"
	}
	return b + "^{" + p.exp.LaTeX() + "}"
}

func needsParenAsBase(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return v.v.IsNegative() || !v.v.IsInteger()
	}
	return false
}

func isAtomic(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsInteger() && !v.v.IsNegative()
	case *Sym, *Constant:
		return true
	}
	return false
}

func (p *Pow) Substitute(v *Sym, with Expr) Expr { return substituteArgs(p, v, with) }

// Derivative uses the power rule when the exponent is constant, the
// exponential rule when the base is, and d(b^x) = b^x*(x'*ln(b) + x*b'/b)
// otherwise.
func (p *Pow) Derivative(v *Sym) Expr {
	db := p.base.Derivative(v)
	de := p.exp.Derivative(v)
	switch {
	case IsZero(db) && IsZero(de):
		return N(0)
	case IsZero(de):
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), db)
	case IsZero(db):
		return MulOf(p, LnOf(p.base), de)
	}
	return MulOf(p, AddOf(
		MulOf(de, LnOf(p.base)),
		MulOf(p.exp, db, PowOf(p.base, N(-1))),
	))
}

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
