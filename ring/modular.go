package ring

import (
	"fmt"
	"math/bits"
)

// ============================================================
// Modular — residues modulo a prime
// ============================================================

// Modular is Z/pZ for a prime p < 2^62. Elements are int64 values in [0, p).
// Inverses come from the extended Euclidean algorithm over Machine[int64],
// so a composite modulus panics as soon as a non-invertible element is
// divided by.
type Modular struct {
	p int64
}

// NewModular returns Z/pZ.
func NewModular(p int64) Modular {
	if p < 2 || p >= 1<<62 {
		panic(fmt.Sprintf("ring: modulus %d out of range", p))
	}
	return Modular{p: p}
}

// Modulus returns p.
func (m Modular) Modulus() int64 { return m.p }

// Elem reduces v into [0, p).
func (m Modular) Elem(v int64) int64 {
	v %= m.p
	if v < 0 {
		v += m.p
	}
	return v
}

func (m Modular) Zero() int64            { return 0 }
func (m Modular) One() int64             { return 1 }
func (m Modular) Add(a, b int64) int64   { return m.Elem(a + b) }
func (m Modular) Sub(a, b int64) int64   { return m.Elem(a - b) }
func (m Modular) Neg(a int64) int64      { return m.Elem(-a) }
func (m Modular) Equal(a, b int64) bool  { return m.Elem(a) == m.Elem(b) }
func (m Modular) IsZero(a int64) bool    { return m.Elem(a) == 0 }
func (m Modular) Format(a int64) string  { return fmt.Sprintf("%d", m.Elem(a)) }
func (m Modular) NormLess(a, b int64) bool { return m.IsZero(a) && !m.IsZero(b) }

func (m Modular) Mul(a, b int64) int64 {
	hi, lo := bits.Mul64(uint64(m.Elem(a)), uint64(m.Elem(b)))
	_, rem := bits.Div64(hi, lo, uint64(m.p))
	return int64(rem)
}

// Inv returns the multiplicative inverse of a.
func (m Modular) Inv(a int64) int64 {
	a = m.Elem(a)
	if a == 0 {
		divisionByZero()
	}
	g, s, _ := ExtendedGcd[int64](Machine[int64]{}, a, m.p)
	if g != 1 {
		panic(fmt.Sprintf("ring: %d has no inverse modulo %d", a, m.p))
	}
	return m.Elem(s)
}

func (m Modular) Div(a, b int64) int64 { return m.Mul(a, m.Inv(b)) }

func (m Modular) Rem(a, b int64) int64 {
	if m.IsZero(b) {
		divisionByZero()
	}
	return 0
}

func (m Modular) DivRem(a, b int64) (int64, int64) { return m.Div(a, b), 0 }

// Unit makes every nonzero gcd equal to one.
func (m Modular) Unit(a int64) int64 {
	if m.IsZero(a) {
		return 1
	}
	return m.Elem(a)
}
