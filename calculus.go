package symcore

import (
	"math/big"

	"github.com/pkg/errors"
)

// ============================================================
// Calculus
// ============================================================

// maxLHopital bounds the applications of l'Hopital's rule in Limit.
const maxLHopital = 8

// ErrNoLimit reports a limit that diverges or could not be determined.
var ErrNoLimit = errors.New("symcore: limit does not exist or could not be determined")

// Diff returns de/dv. Shapes without a derivative rule (inequalities,
// booleans) give a NotImplementedError.
func Diff(e Expr, v *Sym) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	return e.Derivative(v), nil
}

// DiffN returns the n-th derivative of e with respect to v.
func DiffN(e Expr, v *Sym, n int) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	if n < 0 {
		return nil, errors.Errorf("symcore: negative derivative order %d", n)
	}
	out = e
	for i := 0; i < n && !IsZero(out); i++ {
		out = out.Derivative(v)
	}
	return out, nil
}

// Gradient returns the partial derivatives of e as a column vector.
func Gradient(e Expr, vars []*Sym) (*Matrix, error) {
	parts := make([]Expr, len(vars))
	for i, v := range vars {
		d, err := Diff(e, v)
		if err != nil {
			return nil, err
		}
		parts[i] = d
	}
	return Vector(parts...), nil
}

// Jacobian returns the matrix J[i][j] = d fs[i] / d vars[j].
func Jacobian(fs []Expr, vars []*Sym) (*Matrix, error) {
	entries := make([]Expr, 0, len(fs)*len(vars))
	for _, f := range fs {
		for _, v := range vars {
			d, err := Diff(f, v)
			if err != nil {
				return nil, err
			}
			entries = append(entries, d)
		}
	}
	return NewMatrix(len(fs), len(vars), entries...), nil
}

// Hessian returns the matrix of second partial derivatives of e.
func Hessian(e Expr, vars []*Sym) (*Matrix, error) {
	grad, err := Gradient(e, vars)
	if err != nil {
		return nil, err
	}
	return Jacobian(grad.entries, vars)
}

// Taylor returns the Taylor polynomial of e in v around at, up to and
// including (v - at)^order.
func Taylor(e Expr, v *Sym, at Expr, order int) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	if order < 0 {
		return nil, errors.Errorf("symcore: negative series order %d", order)
	}
	shift := SubOf(v, at)
	fact := big.NewInt(1)
	d := e
	terms := make([]Expr, 0, order+1)
	for k := 0; k <= order; k++ {
		if k > 0 {
			fact.Mul(fact, big.NewInt(int64(k)))
			d = d.Derivative(v)
		}
		c := Simplify(d.Substitute(v, at))
		if IsNaN(c) {
			return nil, errors.Wrapf(ErrUndefined, "derivative %d of %s at %s", k, e, at)
		}
		coeff := MulOf(c, NRat(new(big.Rat).SetFrac(big.NewInt(1), fact)))
		terms = append(terms, MulOf(coeff, PowOf(shift, N(int64(k)))))
	}
	return AddOf(terms...), nil
}

// Limit returns the limit of e as v approaches the finite point at. It tries
// direct substitution, then simplification, then l'Hopital's rule on 0/0
// quotients.
func Limit(e Expr, v *Sym, at Expr) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	return limit(e, v, at, maxLHopital)
}

func limit(e Expr, v *Sym, at Expr, budget int) (Expr, error) {
	if r := e.Substitute(v, at); !IsNaN(r) {
		return r, nil
	}
	s := Simplify(e)
	if r := s.Substitute(v, at); !IsNaN(r) {
		return r, nil
	}
	num, den := NumerDenom(CombineFractions(s))
	if IsOne(den) {
		return nil, errors.Wrapf(ErrNoLimit, "%s as %s -> %s", e, v, at)
	}
	n0 := Simplify(num.Substitute(v, at))
	d0 := Simplify(den.Substitute(v, at))
	switch {
	case IsNaN(n0) || IsNaN(d0):
	case !IsZero(d0):
		return DivOf(n0, d0), nil
	case !IsZero(n0):
		return nil, errors.Wrapf(ErrNoLimit, "%s diverges as %s -> %s", e, v, at)
	case budget > 0:
		return limit(DivOf(num.Derivative(v), den.Derivative(v)), v, at, budget-1)
	}
	return nil, errors.Wrapf(ErrNoLimit, "%s as %s -> %s", e, v, at)
}
