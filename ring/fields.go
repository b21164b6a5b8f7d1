package ring

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// ============================================================
// Rationals
// ============================================================

// Rationals is the field Q over *big.Rat.
type Rationals struct{}

func (Rationals) Zero() *big.Rat             { return new(big.Rat) }
func (Rationals) One() *big.Rat              { return big.NewRat(1, 1) }
func (Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rationals) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (Rationals) Equal(a, b *big.Rat) bool   { return a.Cmp(b) == 0 }
func (Rationals) IsZero(a *big.Rat) bool     { return a.Sign() == 0 }
func (Rationals) Format(a *big.Rat) string   { return a.RatString() }
func (Rationals) NormLess(a, b *big.Rat) bool {
	return a.Sign() == 0 && b.Sign() != 0
}

func (Rationals) Inv(a *big.Rat) *big.Rat {
	if a.Sign() == 0 {
		divisionByZero()
	}
	return new(big.Rat).Inv(a)
}

func (q Rationals) Div(a, b *big.Rat) *big.Rat { return q.Mul(a, q.Inv(b)) }

func (Rationals) Rem(a, b *big.Rat) *big.Rat {
	if b.Sign() == 0 {
		divisionByZero()
	}
	return new(big.Rat)
}

func (q Rationals) DivRem(a, b *big.Rat) (*big.Rat, *big.Rat) { return q.Div(a, b), q.Rem(a, b) }

func (Rationals) Unit(a *big.Rat) *big.Rat {
	if a.Sign() == 0 {
		return big.NewRat(1, 1)
	}
	return new(big.Rat).Set(a)
}

// ============================================================
// Fr — BLS12-377 scalar field
// ============================================================

// Fr is the scalar field of BLS12-377 backed by gnark-crypto.
type Fr struct{}

// FrElement is an element of Fr.
type FrElement = fr.Element

// FrElem converts an integer into the field.
func FrElem(v int64) fr.Element {
	var z fr.Element
	z.SetInt64(v)
	return z
}

// FrModulus returns the field characteristic.
func FrModulus() *big.Int { return fr.Modulus() }

func (Fr) Zero() fr.Element { return fr.Element{} }

func (Fr) One() fr.Element {
	var z fr.Element
	z.SetOne()
	return z
}

func (Fr) Add(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Add(&a, &b)
	return z
}

func (Fr) Sub(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Sub(&a, &b)
	return z
}

func (Fr) Neg(a fr.Element) fr.Element {
	var z fr.Element
	z.Neg(&a)
	return z
}

func (Fr) Mul(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Mul(&a, &b)
	return z
}

func (Fr) Inv(a fr.Element) fr.Element {
	if a.IsZero() {
		divisionByZero()
	}
	var z fr.Element
	z.Inverse(&a)
	return z
}

func (f Fr) Div(a, b fr.Element) fr.Element { return f.Mul(a, f.Inv(b)) }

func (Fr) Rem(a, b fr.Element) fr.Element {
	if b.IsZero() {
		divisionByZero()
	}
	return fr.Element{}
}

func (f Fr) DivRem(a, b fr.Element) (fr.Element, fr.Element) { return f.Div(a, b), f.Rem(a, b) }

func (Fr) Equal(a, b fr.Element) bool    { return a.Equal(&b) }
func (Fr) IsZero(a fr.Element) bool      { return a.IsZero() }
func (Fr) Format(a fr.Element) string    { return a.String() }
func (Fr) NormLess(a, b fr.Element) bool { return a.IsZero() && !b.IsZero() }

func (f Fr) Unit(a fr.Element) fr.Element {
	if a.IsZero() {
		return f.One()
	}
	return a
}
