// Package ring provides commutative-ring arithmetic over an opaque element
// type, together with the Euclidean GCD algorithms that limit, series and
// integration routines run over polynomial rings.
//
// A Ring is a capability record: the element type T carries no behaviour of
// its own, every operation goes through the ring value. This lets the same
// algorithm run over big integers, residues, field elements or polynomials
// whose coefficients are themselves polynomials.
package ring

import "fmt"

// Ring supplies the arithmetic of a commutative ring with division with
// remainder.
type Ring[T any] interface {
	Zero() T
	One() T
	Add(a, b T) T
	Sub(a, b T) T
	Neg(a T) T
	Mul(a, b T) T
	// Div returns the quotient of a by b. Over rings which are not fields the
	// quotient is truncated, so Mul(Div(a, b), b) need not equal a.
	Div(a, b T) T
	Rem(a, b T) T
	DivRem(a, b T) (T, T)
	Equal(a, b T) bool
	IsZero(a T) bool
	Format(a T) string
}

// Field is a ring in which every nonzero element has an inverse.
type Field[T any] interface {
	Ring[T]
	Inv(a T) T
}

// Euclidean exposes the norm which Rem must strictly decrease.
type Euclidean[T any] interface {
	// NormLess reports whether the norm of a is strictly smaller than the
	// norm of b.
	NormLess(a, b T) bool
}

// Normalizer picks a canonical associate for each element.
type Normalizer[T any] interface {
	// Unit returns the unit u such that a/u is the canonical associate of a.
	// Unit(0) is One.
	Unit(a T) T
}

// gcdRing is implemented by rings which provide their own GCD (for example
// polynomials over a ring that is not a field).
type gcdRing[T any] interface {
	Gcd(a, b T) T
}

// Gcd returns the normalized greatest common divisor of a and b.
func Gcd[T any](r Ring[T], a, b T) T {
	if g, ok := r.(gcdRing[T]); ok {
		return g.Gcd(a, b)
	}
	return Euclid(r, a, b)
}

// Euclid runs the plain Euclidean algorithm: (a, b) is replaced by
// (b, a mod b) until b vanishes.
func Euclid[T any](r Ring[T], a, b T) T {
	for !r.IsZero(b) {
		rem := r.Rem(a, b)
		checkDecrease(r, rem, b)
		a, b = b, rem
	}
	return normalize(r, a)
}

// ExtendedGcd returns g = gcd(a, b) together with Bézout coefficients s, t
// such that g = s*a + t*b.
func ExtendedGcd[T any](r Ring[T], a, b T) (g, s, t T) {
	s0, s1 := r.One(), r.Zero()
	t0, t1 := r.Zero(), r.One()
	for !r.IsZero(b) {
		q, rem := r.DivRem(a, b)
		checkDecrease(r, rem, b)
		a, b = b, rem
		s0, s1 = s1, r.Sub(s0, r.Mul(q, s1))
		t0, t1 = t1, r.Sub(t0, r.Mul(q, t1))
	}
	if n, ok := r.(Normalizer[T]); ok {
		if u := n.Unit(a); !r.Equal(u, r.One()) {
			a, s0, t0 = r.Div(a, u), r.Div(s0, u), r.Div(t0, u)
		}
	}
	return a, s0, t0
}

// Lcm returns the normalized least common multiple of a and b.
func Lcm[T any](r Ring[T], a, b T) T {
	if r.IsZero(a) || r.IsZero(b) {
		return r.Zero()
	}
	return normalize(r, r.Mul(r.Div(a, Gcd(r, a, b)), b))
}

// Pow raises a to the n-th power by square-and-multiply.
func Pow[T any](r Ring[T], a T, n uint) T {
	result := r.One()
	//
	for n > 0 {
		if n&1 == 1 {
			result = r.Mul(result, a)
		}
		//
		n >>= 1
		a = r.Mul(a, a)
	}
	//
	return result
}

func normalize[T any](r Ring[T], a T) T {
	if n, ok := r.(Normalizer[T]); ok {
		if u := n.Unit(a); !r.Equal(u, r.One()) {
			return r.Div(a, u)
		}
	}
	return a
}

// checkDecrease panics when a remainder fails to shrink, which would
// otherwise loop forever (for example truncating division over Z[x]).
func checkDecrease[T any](r Ring[T], rem, b T) {
	e, ok := r.(Euclidean[T])
	if !ok || r.IsZero(rem) || e.NormLess(rem, b) {
		return
	}
	panic(fmt.Sprintf("ring: remainder %s does not decrease against %s", r.Format(rem), r.Format(b)))
}

func divisionByZero() {
	panic("ring: division by zero")
}
