package ring

import (
	"strconv"
	"strings"
)

// Poly is a dense univariate polynomial whose coefficients are stored in
// ascending degree order. The zero polynomial has no coefficients and the
// leading coefficient of any other polynomial is nonzero. Values are
// immutable once built by a PolynomialRing.
type Poly[T any] struct {
	coeffs []T
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly[T]) Degree() int { return len(p.coeffs) - 1 }

// Coefficients returns a copy of the coefficients in ascending degree order.
func (p Poly[T]) Coefficients() []T {
	out := make([]T, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// PolynomialRing is R[x] for a base ring R. Its elements can be used as the
// base of another PolynomialRing, which gives R[x][y] and so on.
type PolynomialRing[T any] struct {
	base Ring[T]
	name string
}

// Polynomials returns the ring of polynomials in the named indeterminate.
func Polynomials[T any](base Ring[T], name string) *PolynomialRing[T] {
	return &PolynomialRing[T]{base: base, name: name}
}

// Base returns the coefficient ring.
func (r *PolynomialRing[T]) Base() Ring[T] { return r.base }

// New builds a polynomial from coefficients in ascending degree order.
func (r *PolynomialRing[T]) New(coeffs ...T) Poly[T] {
	n := len(coeffs)
	for n > 0 && r.base.IsZero(coeffs[n-1]) {
		n--
	}
	out := make([]T, n)
	copy(out, coeffs[:n])
	return Poly[T]{coeffs: out}
}

// Constant returns the degree-zero polynomial c.
func (r *PolynomialRing[T]) Constant(c T) Poly[T] { return r.New(c) }

// Monomial returns c*x^deg.
func (r *PolynomialRing[T]) Monomial(c T, deg int) Poly[T] {
	if r.base.IsZero(c) {
		return Poly[T]{}
	}
	coeffs := make([]T, deg+1)
	for i := 0; i < deg; i++ {
		coeffs[i] = r.base.Zero()
	}
	coeffs[deg] = c
	return Poly[T]{coeffs: coeffs}
}

// X returns the indeterminate.
func (r *PolynomialRing[T]) X() Poly[T] { return r.Monomial(r.base.One(), 1) }

// Coeff returns the coefficient of x^i.
func (r *PolynomialRing[T]) Coeff(p Poly[T], i int) T {
	if i < 0 || i >= len(p.coeffs) {
		return r.base.Zero()
	}
	return p.coeffs[i]
}

// Lead returns the leading coefficient (zero for the zero polynomial).
func (r *PolynomialRing[T]) Lead(p Poly[T]) T { return r.Coeff(p, p.Degree()) }

func (r *PolynomialRing[T]) Zero() Poly[T] { return Poly[T]{} }
func (r *PolynomialRing[T]) One() Poly[T]  { return r.Constant(r.base.One()) }

func (r *PolynomialRing[T]) IsZero(p Poly[T]) bool { return len(p.coeffs) == 0 }

func (r *PolynomialRing[T]) NormLess(a, b Poly[T]) bool { return a.Degree() < b.Degree() }

func (r *PolynomialRing[T]) Equal(a, b Poly[T]) bool {
	if len(a.coeffs) != len(b.coeffs) {
		return false
	}
	for i := range a.coeffs {
		if !r.base.Equal(a.coeffs[i], b.coeffs[i]) {
			return false
		}
	}
	return true
}

func (r *PolynomialRing[T]) Add(a, b Poly[T]) Poly[T] {
	n := max(len(a.coeffs), len(b.coeffs))
	out := make([]T, n)
	for i := range out {
		out[i] = r.base.Add(r.Coeff(a, i), r.Coeff(b, i))
	}
	return r.New(out...)
}

func (r *PolynomialRing[T]) Sub(a, b Poly[T]) Poly[T] {
	n := max(len(a.coeffs), len(b.coeffs))
	out := make([]T, n)
	for i := range out {
		out[i] = r.base.Sub(r.Coeff(a, i), r.Coeff(b, i))
	}
	return r.New(out...)
}

func (r *PolynomialRing[T]) Neg(a Poly[T]) Poly[T] {
	out := make([]T, len(a.coeffs))
	for i, c := range a.coeffs {
		out[i] = r.base.Neg(c)
	}
	return r.New(out...)
}

func (r *PolynomialRing[T]) Mul(a, b Poly[T]) Poly[T] {
	if r.IsZero(a) || r.IsZero(b) {
		return Poly[T]{}
	}
	out := make([]T, len(a.coeffs)+len(b.coeffs)-1)
	for i := range out {
		out[i] = r.base.Zero()
	}
	for i, ai := range a.coeffs {
		for j, bj := range b.coeffs {
			out[i+j] = r.base.Add(out[i+j], r.base.Mul(ai, bj))
		}
	}
	return r.New(out...)
}

// Scale multiplies every coefficient by c.
func (r *PolynomialRing[T]) Scale(p Poly[T], c T) Poly[T] {
	out := make([]T, len(p.coeffs))
	for i, pi := range p.coeffs {
		out[i] = r.base.Mul(pi, c)
	}
	return r.New(out...)
}

// DivRem performs long division. Each step divides leading coefficients in
// the base ring; when that quotient is zero (a truncating, inexact base
// division) the division stops and the remainder keeps its degree.
func (r *PolynomialRing[T]) DivRem(a, b Poly[T]) (Poly[T], Poly[T]) {
	if r.IsZero(b) {
		divisionByZero()
	}
	q, rem := Poly[T]{}, a
	lb, db := r.Lead(b), b.Degree()
	for !r.IsZero(rem) && rem.Degree() >= db {
		c := r.base.Div(r.Lead(rem), lb)
		if r.base.IsZero(c) {
			break
		}
		t := r.Monomial(c, rem.Degree()-db)
		q = r.Add(q, t)
		rem = r.Sub(rem, r.Mul(t, b))
	}
	return q, rem
}

func (r *PolynomialRing[T]) Div(a, b Poly[T]) Poly[T] {
	q, _ := r.DivRem(a, b)
	return q
}

func (r *PolynomialRing[T]) Rem(a, b Poly[T]) Poly[T] {
	_, rem := r.DivRem(a, b)
	return rem
}

// Unit is the constant polynomial holding the unit of the leading
// coefficient, so over a field gcds come out monic.
func (r *PolynomialRing[T]) Unit(p Poly[T]) Poly[T] {
	if r.IsZero(p) {
		return r.One()
	}
	if n, ok := r.base.(Normalizer[T]); ok {
		return r.Constant(n.Unit(r.Lead(p)))
	}
	return r.One()
}

// Gcd takes the Euclidean route over a field and the primitive
// pseudo-remainder sequence otherwise.
func (r *PolynomialRing[T]) Gcd(a, b Poly[T]) Poly[T] {
	if _, ok := r.base.(Field[T]); ok {
		return Euclid[Poly[T]](r, a, b)
	}
	return r.primitiveGcd(a, b)
}

func (r *PolynomialRing[T]) primitiveGcd(a, b Poly[T]) Poly[T] {
	if r.IsZero(a) {
		return normalize[Poly[T]](r, b)
	}
	if r.IsZero(b) {
		return normalize[Poly[T]](r, a)
	}
	c := Gcd(r.base, r.Content(a), r.Content(b))
	a, b = r.Primitive(a), r.Primitive(b)
	if a.Degree() < b.Degree() {
		a, b = b, a
	}
	for !r.IsZero(b) {
		a, b = b, r.Primitive(r.PseudoRem(a, b))
	}
	return normalize[Poly[T]](r, r.Scale(a, c))
}

// Content returns the gcd of the coefficients of p.
func (r *PolynomialRing[T]) Content(p Poly[T]) T {
	c := r.base.Zero()
	for _, pi := range p.coeffs {
		c = Gcd(r.base, c, pi)
	}
	return c
}

// Primitive divides p by its content.
func (r *PolynomialRing[T]) Primitive(p Poly[T]) Poly[T] {
	c := r.Content(p)
	if r.base.IsZero(c) || r.base.Equal(c, r.base.One()) {
		return p
	}
	out := make([]T, len(p.coeffs))
	for i, pi := range p.coeffs {
		out[i] = r.base.Div(pi, c)
	}
	return r.New(out...)
}

// PseudoRem returns a remainder of lc(b)^k * a by b computed without any
// base division, so it is exact over every integral domain.
func (r *PolynomialRing[T]) PseudoRem(a, b Poly[T]) Poly[T] {
	if r.IsZero(b) {
		divisionByZero()
	}
	lb, db := r.Lead(b), b.Degree()
	rem := a
	for !r.IsZero(rem) && rem.Degree() >= db {
		t := r.Monomial(r.Lead(rem), rem.Degree()-db)
		rem = r.Sub(r.Scale(rem, lb), r.Mul(t, b))
	}
	return rem
}

// Eval evaluates p at x by Horner's rule.
func (r *PolynomialRing[T]) Eval(p Poly[T], x T) T {
	acc := r.base.Zero()
	for i := p.Degree(); i >= 0; i-- {
		acc = r.base.Add(r.base.Mul(acc, x), p.coeffs[i])
	}
	return acc
}

// Format renders p in descending degree order, e.g. "3*x^2 + -1".
func (r *PolynomialRing[T]) Format(p Poly[T]) string {
	if r.IsZero(p) {
		return "0"
	}
	var parts []string
	for i := p.Degree(); i >= 0; i-- {
		c := p.coeffs[i]
		if r.base.IsZero(c) {
			continue
		}
		cs := r.base.Format(c)
		if strings.ContainsAny(cs, " +") {
			cs = "(" + cs + ")"
		}
		switch {
		case i == 0:
			parts = append(parts, cs)
		case r.base.Equal(c, r.base.One()):
			parts = append(parts, r.power(i))
		default:
			parts = append(parts, cs+"*"+r.power(i))
		}
	}
	return strings.Join(parts, " + ")
}

func (r *PolynomialRing[T]) power(i int) string {
	if i == 1 {
		return r.name
	}
	return r.name + "^" + strconv.Itoa(i)
}
