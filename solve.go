package symcore

import (
	"slices"

	"github.com/pkg/errors"
)

// ============================================================
// Equation solving
// ============================================================

// ErrIdentity reports an equation that holds for every value of the variable.
var ErrIdentity = errors.New("symcore: equation holds identically")

// Solve returns the distinct roots of eq in v, in structural order. eq is an
// equation lhs = rhs or an expression meant to equal zero. The numerator must
// be a polynomial in v of degree at most two after removing a power of v;
// roots at which the denominator vanishes are dropped.
func Solve(eq Expr, v *Sym) (roots []Expr, err error) {
	defer recoverNotImplemented(&err)
	e := eq
	switch r := eq.(type) {
	case *Relation:
		if r.op != RelEq {
			notImplemented("solve", eq)
		}
		e = SubOf(r.lhs, r.rhs)
	case *Bool:
		if r.v {
			return nil, errors.Wrapf(ErrIdentity, "%s", eq)
		}
		return nil, nil
	}
	num, den := NumerDenom(CombineFractions(e))
	cs, err := Coefficients(num, v)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, errors.Wrapf(ErrIdentity, "%s in %s", eq, v)
	}

	// Factor out v^k: v = 0 is a root of multiplicity k.
	var found []Expr
	k := 0
	for k < len(cs)-1 && IsZero(Simplify(cs[k])) {
		k++
	}
	if k > 0 {
		found = append(found, N(0))
		cs = cs[k:]
	}

	switch len(cs) - 1 {
	case 0:
	case 1:
		found = append(found, Simplify(Neg(DivOf(cs[0], cs[1]))))
	case 2:
		a, b, c := cs[2], cs[1], cs[0]
		disc := Simplify(SubOf(PowOf(b, N(2)), MulOf(N(4), a, c)))
		root := SqrtOf(disc)
		twoA := MulOf(N(2), a)
		found = append(found,
			Simplify(DivOf(SubOf(Neg(b), root), twoA)),
			Simplify(DivOf(AddOf(Neg(b), root), twoA)),
		)
	default:
		notImplemented("solve of degree > 2", num)
	}

	for _, r := range found {
		if d := Simplify(den.Substitute(v, r)); IsZero(d) || IsNaN(d) {
			continue
		}
		roots = append(roots, r)
	}
	slices.SortFunc(roots, Compare)
	return slices.CompactFunc(roots, Equal), nil
}
