package symcore

import (
	"slices"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// ============================================================
// Mul — product of factors
// ============================================================

// Mul holds at least two factors, none of them a Mul or a one, with at most
// one numeric factor (first) and no two factors sharing a base. Scalar
// factors are sorted; matrix factors follow them in their original order and
// are never merged.
type Mul struct{ factors []Expr }

// MulOf returns the canonical product of factors. Nested products are
// flattened, numeric factors folded into one coefficient, and the remaining
// factors grouped by base with their exponents summed. Matrices do not
// commute, so they keep their relative order. A zero factor makes
// the product zero, an empty product is 1, and a product with one surviving
// factor is that factor.
func MulOf(factors ...Expr) Expr {
	for {
		out, again := mulOnce(factors)
		if !again {
			return out
		}
		factors = out.(*Mul).factors
	}
}

// mulOnce runs one canonicalization round. It reports whether merging
// produced factors that need another round (numbers or products).
func mulOnce(factors []Expr) (Expr, bool) {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}
	coeff := Int(1)
	groups := treemap.NewWith(treeComparator)
	var matrices []Expr
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = coeff.Mul(n.v)
			continue
		}
		if isMatrixFactor(f) {
			matrices = append(matrices, f)
			continue
		}
		base, exp := splitExponent(f)
		if prev, found := groups.Get(base); found {
			groups.Put(base, append(prev.([]Expr), exp))
		} else {
			groups.Put(base, []Expr{exp})
		}
	}
	if coeff.IsNaN() {
		return NaN(), false
	}
	if coeff.IsZero() {
		return N(0), false
	}
	result := make([]Expr, 0, groups.Size()+len(matrices)+1)
	again := false
	it := groups.Iterator()
	for it.Next() {
		base := it.Key().(Expr)
		exps := it.Value().([]Expr)
		var f Expr
		if len(exps) == 1 {
			f = powOrBase(base, exps[0])
		} else {
			f = PowOf(base, AddOf(exps...))
		}
		switch v := f.(type) {
		case *Num:
			if v.v.IsNaN() || v.v.IsZero() {
				return f, false
			}
			if !v.v.IsOne() {
				again = true
				result = append(result, f)
			}
			continue
		case *Mul:
			again = true
		}
		result = append(result, f)
	}
	if again {
		if !coeff.IsOne() {
			result = append(result, NumOf(coeff))
		}
		return &Mul{factors: append(result, matrices...)}, true
	}
	if !coeff.IsOne() {
		result = append(result, NumOf(coeff))
	}
	slices.SortFunc(result, Compare)
	result = append(result, matrices...)
	switch len(result) {
	case 0:
		return N(1), false
	case 1:
		return result[0], false
	}
	return &Mul{factors: result}, false
}

// isMatrixFactor reports whether f is a matrix or a power of one.
func isMatrixFactor(f Expr) bool {
	base, _ := splitExponent(f)
	_, ok := base.(*Matrix)
	return ok
}

// powOrBase rebuilds a factor that was not merged with any other.
func powOrBase(base, exp Expr) Expr {
	if IsOne(exp) {
		return base
	}
	return PowOf(base, exp)
}

// splitExponent decomposes a factor into base and exponent.
func splitExponent(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Factors() []Expr { return m.factors }
func (m *Mul) Kind() Kind      { return KindMul }
func (m *Mul) Args() []Expr    { return m.factors }
func (m *Mul) N() float64      { return realPart(evalComplex(m)) }

func (m *Mul) String() string {
	return m.render(Expr.String, "*", func(s string) string { return "(" + s + ")" })
}

func (m *Mul) LaTeX() string {
	return m.render(Expr.LaTeX, " ", func(s string) string { return "\\left(" + s + "\\right)" })
}

func (m *Mul) render(f func(Expr) string, sep string, paren func(string) string) string {
	factors := m.factors
	prefix := ""
	if c, ok := factors[0].(*Num); ok {
		switch {
		case c.v.IsNegOne():
			prefix = "-"
			factors = factors[1:]
		case c.v.IsNegative():
			prefix = "-"
			factors = append([]Expr{NumOf(c.v.Neg())}, factors[1:]...)
		}
	}
	parts := make([]string, len(factors))
	for i, fi := range factors {
		s := f(fi)
		if _, isAdd := fi.(*Add); isAdd {
			s = paren(s)
		}
		parts[i] = s
	}
	return prefix + strings.Join(parts, sep)
}

func (m *Mul) Substitute(v *Sym, with Expr) Expr { return substituteArgs(m, v, with) }

// Derivative applies the product rule.
func (m *Mul) Derivative(v *Sym) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Derivative(v)
		if IsZero(dfi) {
			continue
		}
		others := make([]Expr, 0, len(m.factors))
		others = append(others, dfi)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms = append(terms, MulOf(others...))
	}
	return AddOf(terms...)
}

func (m *Mul) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "mul", "factors": argsJSON(m.factors)}
}
