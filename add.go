package symcore

import (
	"slices"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// ============================================================
// Add — sum of terms
// ============================================================

// Add holds at least two terms, sorted, none of them an Add, a zero, or a
// repeat of another term's symbolic part.
type Add struct{ terms []Expr }

// AddOf returns the canonical sum of terms. Nested sums are flattened, the
// numeric terms folded into one constant and the remaining terms grouped by
// their symbolic part with their coefficients summed. An empty sum is 0 and
// a sum with one surviving term is that term.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}
	constant := Int(0)
	groups := treemap.NewWith(treeComparator)
	for _, t := range flat {
		coeff, base := splitCoefficient(t)
		if base == nil {
			constant = constant.Add(coeff)
			continue
		}
		if prev, found := groups.Get(base); found {
			coeff = prev.(Number).Add(coeff)
		}
		groups.Put(base, coeff)
	}
	if constant.IsNaN() {
		return NaN()
	}
	result := make([]Expr, 0, groups.Size()+1)
	if !constant.IsZero() {
		result = append(result, NumOf(constant))
	}
	it := groups.Iterator()
	for it.Next() {
		coeff := it.Value().(Number)
		base := it.Key().(Expr)
		switch {
		case coeff.IsNaN():
			return NaN()
		case coeff.IsZero():
		case coeff.IsOne():
			result = append(result, base)
		default:
			result = append(result, MulOf(NumOf(coeff), base))
		}
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	slices.SortFunc(result, Compare)
	return &Add{terms: result}
}

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// splitCoefficient decomposes a term into its numeric coefficient and its
// symbolic part. Numbers have no symbolic part.
func splitCoefficient(e Expr) (Number, Expr) {
	switch v := e.(type) {
	case *Num:
		return v.v, nil
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return c.v, rest[0]
			}
			return c.v, &Mul{factors: rest}
		}
	}
	return Int(1), e
}

func (a *Add) Terms() []Expr { return a.terms }
func (a *Add) Kind() Kind    { return KindAdd }
func (a *Add) Args() []Expr  { return a.terms }
func (a *Add) N() float64    { return realPart(evalComplex(a)) }

// String prints the symbolic terms in canonical order followed by the
// constant, writing negative terms with a minus sign.
func (a *Add) String() string { return a.render(Expr.String) }

func (a *Add) LaTeX() string { return a.render(Expr.LaTeX) }

func (a *Add) render(f func(Expr) string) string {
	ordered := make([]Expr, 0, len(a.terms))
	ordered = append(ordered, a.terms[1:]...)
	if _, ok := a.terms[0].(*Num); ok {
		ordered = append(ordered, a.terms[0])
	} else {
		ordered = append([]Expr{a.terms[0]}, ordered...)
	}
	var sb strings.Builder
	for i, t := range ordered {
		neg := false
		if c, _ := splitCoefficient(t); c.IsNegative() {
			neg = true
			t = Neg(t)
		}
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(f(t))
	}
	return sb.String()
}

func (a *Add) Substitute(v *Sym, with Expr) Expr { return substituteArgs(a, v, with) }

func (a *Add) Derivative(v *Sym) Expr {
	d := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d[i] = t.Derivative(v)
	}
	return AddOf(d...)
}

func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "terms": argsJSON(a.terms)}
}
