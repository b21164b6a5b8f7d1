package symcore

import (
	"math"
	"math/big"
)

// ============================================================
// Log — logarithm to an arbitrary base
// ============================================================

type Log struct{ value, base Expr }

// LnOf returns the natural logarithm of x.
func LnOf(x Expr) Expr { return LogOf(x, E) }

// LogOf returns log_base(value), folding log_b(1) = 0, log_b(b) = 1,
// log_b(b^y) = y and exact integer logarithms of rationals. Floats fold
// numerically; a zero argument is NaN.
func LogOf(value, base Expr) Expr {
	if IsNaN(value) || IsNaN(base) {
		return NaN()
	}
	if IsZero(value) || IsZero(base) || IsOne(base) {
		return NaN()
	}
	if IsOne(value) {
		return N(0)
	}
	if Equal(value, base) {
		return N(1)
	}
	if p, ok := value.(*Pow); ok && Equal(p.base, base) {
		return p.exp
	}
	vn, vok := asNum(value)
	bn, bok := asNum(base)
	if vok && (vn.IsFloat() || (bok && bn.IsFloat())) {
		b := math.E
		if bok {
			b = bn.Float64()
		} else if base != E {
			return &Log{value: value, base: base}
		}
		return NumOf(FloatNumber(math.Log(vn.Float64()) / math.Log(b)))
	}
	if vok && bok && vn.IsPositive() && bn.IsPositive() {
		if k, ok := exactLog(vn.r(), bn.r()); ok {
			return N(k)
		}
	}
	return &Log{value: value, base: base}
}

// exactLog finds k with b^k = v.
func exactLog(v, b *big.Rat) (int64, bool) {
	fv, _ := v.Float64()
	fb, _ := b.Float64()
	if fv <= 0 || fb <= 0 || math.IsInf(fv, 0) || math.IsInf(fb, 0) {
		return 0, false
	}
	est := math.Log(fv) / math.Log(fb)
	if math.IsNaN(est) || math.IsInf(est, 0) || math.Abs(est) > maxExactBits {
		return 0, false
	}
	k := int64(math.Round(est))
	if k == 0 || !exactPowFits(b, big.NewRat(k, 1)) {
		return 0, false
	}
	if ratPow(b, k).Cmp(v) == 0 {
		return k, true
	}
	return 0, false
}

func (l *Log) Value() Expr  { return l.value }
func (l *Log) Base() Expr   { return l.base }
func (l *Log) Kind() Kind   { return KindLog }
func (l *Log) Args() []Expr { return []Expr{l.value, l.base} }
func (l *Log) N() float64   { return realPart(evalComplex(l)) }

func (l *Log) String() string {
	if l.base == E {
		return "ln(" + l.value.String() + ")"
	}
	return "log(" + l.value.String() + ", " + l.base.String() + ")"
}

func (l *Log) LaTeX() string {
	if l.base == E {
		return "\\ln\\left(" + l.value.LaTeX() + "\\right)"
	}
	return "\\log_{" + l.base.LaTeX() + "}\\left(" + l.value.LaTeX() + "\\right)"
}

func (l *Log) Substitute(v *Sym, with Expr) Expr { return substituteArgs(l, v, with) }

// Derivative differentiates ln(u)/ln(b).
func (l *Log) Derivative(v *Sym) Expr {
	du := l.value.Derivative(v)
	db := l.base.Derivative(v)
	if IsZero(db) {
		return MulOf(du, PowOf(MulOf(l.value, LnOf(l.base)), N(-1)))
	}
	lnb := LnOf(l.base)
	num := SubOf(
		MulOf(du, PowOf(l.value, N(-1)), lnb),
		MulOf(LnOf(l.value), db, PowOf(l.base, N(-1))),
	)
	return MulOf(num, PowOf(lnb, N(-2)))
}

func (l *Log) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "log", "value": l.value.toJSON(), "base": l.base.toJSON()}
}
