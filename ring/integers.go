package ring

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

// ============================================================
// Integers — arbitrary precision
// ============================================================

// Integers is the ring Z over *big.Int. Operands are never mutated.
type Integers struct{}

func (Integers) Zero() *big.Int              { return new(big.Int) }
func (Integers) One() *big.Int               { return big.NewInt(1) }
func (Integers) Add(a, b *big.Int) *big.Int  { return new(big.Int).Add(a, b) }
func (Integers) Sub(a, b *big.Int) *big.Int  { return new(big.Int).Sub(a, b) }
func (Integers) Neg(a *big.Int) *big.Int     { return new(big.Int).Neg(a) }
func (Integers) Mul(a, b *big.Int) *big.Int  { return new(big.Int).Mul(a, b) }
func (Integers) Equal(a, b *big.Int) bool    { return a.Cmp(b) == 0 }
func (Integers) IsZero(a *big.Int) bool      { return a.Sign() == 0 }
func (Integers) Format(a *big.Int) string    { return a.String() }
func (Integers) NormLess(a, b *big.Int) bool { return a.CmpAbs(b) < 0 }

// Div truncates toward zero.
func (Integers) Div(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		divisionByZero()
	}
	return new(big.Int).Quo(a, b)
}

// Rem has the sign of a.
func (Integers) Rem(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		divisionByZero()
	}
	return new(big.Int).Rem(a, b)
}

func (Integers) DivRem(a, b *big.Int) (*big.Int, *big.Int) {
	if b.Sign() == 0 {
		divisionByZero()
	}
	return new(big.Int).QuoRem(a, b, new(big.Int))
}

// Unit makes gcds non-negative.
func (Integers) Unit(a *big.Int) *big.Int {
	if a.Sign() < 0 {
		return big.NewInt(-1)
	}
	return big.NewInt(1)
}

// ============================================================
// Machine — fixed width signed integers
// ============================================================

// Machine is the ring of machine integers of type T. Arithmetic wraps on
// overflow exactly as Go's operators do.
type Machine[T constraints.Signed] struct{}

func (Machine[T]) Zero() T             { return 0 }
func (Machine[T]) One() T              { return 1 }
func (Machine[T]) Add(a, b T) T        { return a + b }
func (Machine[T]) Sub(a, b T) T        { return a - b }
func (Machine[T]) Neg(a T) T           { return -a }
func (Machine[T]) Mul(a, b T) T        { return a * b }
func (Machine[T]) Equal(a, b T) bool   { return a == b }
func (Machine[T]) IsZero(a T) bool     { return a == 0 }
func (Machine[T]) Format(a T) string   { return big.NewInt(int64(a)).String() }
func (Machine[T]) NormLess(a, b T) bool { return abs(a) < abs(b) }

func (Machine[T]) Div(a, b T) T {
	if b == 0 {
		divisionByZero()
	}
	return a / b
}

func (Machine[T]) Rem(a, b T) T {
	if b == 0 {
		divisionByZero()
	}
	return a % b
}

func (m Machine[T]) DivRem(a, b T) (T, T) {
	return m.Div(a, b), m.Rem(a, b)
}

func (Machine[T]) Unit(a T) T {
	if a < 0 {
		return -1
	}
	return 1
}

func abs[T constraints.Signed](a T) uint64 {
	if a < 0 {
		return uint64(-int64(a))
	}
	return uint64(a)
}
