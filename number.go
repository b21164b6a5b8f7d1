package symcore

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Number — fraction, float or NaN
// ============================================================

// NumberKind discriminates the three shapes of a Number.
type NumberKind uint8

const (
	Fraction NumberKind = iota
	Float
	NotANumber
)

// Number is an exact fraction (always reduced, positive denominator), a
// finite float, or NaN. Arithmetic never fails: division by zero and any NaN
// operand give NaN, and mixing a fraction with a float gives a float. The
// zero value is the fraction 0.
type Number struct {
	kind NumberKind
	rat  *big.Rat
	f    float64
}

var ratOne = big.NewRat(1, 1)

// Int returns the integer v.
func Int(v int64) Number { return Number{rat: new(big.Rat).SetInt64(v)} }

// Frac returns p/q; q == 0 gives NaN.
func Frac(p, q int64) Number {
	if q == 0 {
		return NaNNumber()
	}
	return Number{rat: new(big.Rat).SetFrac64(p, q)}
}

// RatNumber copies r.
func RatNumber(r *big.Rat) Number { return Number{rat: new(big.Rat).Set(r)} }

// BigInt copies v as an integer fraction.
func BigInt(v *big.Int) Number { return Number{rat: new(big.Rat).SetInt(v)} }

// FloatNumber returns f, or NaN if f is not finite.
func FloatNumber(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NaNNumber()
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return Number{kind: Float, f: f}
}

func NaNNumber() Number { return Number{kind: NotANumber} }

// ParseNumber reads "3", "-2/7", "0.25" (as a float) or "nan".
func ParseNumber(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return NaNNumber(), true
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, false
		}
		return FloatNumber(f), true
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, false
	}
	return Number{rat: r}, true
}

func (n Number) Kind() NumberKind { return n.kind }
func (n Number) IsNaN() bool      { return n.kind == NotANumber }
func (n Number) IsFraction() bool { return n.kind == Fraction }
func (n Number) IsFloat() bool    { return n.kind == Float }

func (n Number) r() *big.Rat {
	if n.rat == nil {
		return new(big.Rat)
	}
	return n.rat
}

// Rat returns a copy of the fraction, or nil for floats and NaN.
func (n Number) Rat() *big.Rat {
	if n.kind != Fraction {
		return nil
	}
	return new(big.Rat).Set(n.r())
}

// Float64 converts to the nearest float; NaN for NaN.
func (n Number) Float64() float64 {
	switch n.kind {
	case Fraction:
		f, _ := n.r().Float64()
		return f
	case Float:
		return n.f
	}
	return math.NaN()
}

func (n Number) sign() int {
	switch n.kind {
	case Fraction:
		return n.r().Sign()
	case Float:
		switch {
		case n.f > 0:
			return 1
		case n.f < 0:
			return -1
		}
	}
	return 0
}

func (n Number) IsZero() bool { return n.kind != NotANumber && n.sign() == 0 }

func (n Number) IsOne() bool {
	switch n.kind {
	case Fraction:
		return n.r().Cmp(ratOne) == 0
	case Float:
		return n.f == 1
	}
	return false
}

func (n Number) IsNegOne() bool {
	switch n.kind {
	case Fraction:
		return n.r().IsInt() && n.r().Num().IsInt64() && n.r().Num().Int64() == -1
	case Float:
		return n.f == -1
	}
	return false
}

// IsPositive and IsNegative are false for NaN.
func (n Number) IsPositive() bool { return n.sign() > 0 }
func (n Number) IsNegative() bool { return n.sign() < 0 }

// IsInteger holds for integer fractions only; floats are never exact.
func (n Number) IsInteger() bool { return n.kind == Fraction && n.r().IsInt() }

// Int64 returns the value of an integer fraction that fits in an int64.
func (n Number) Int64() (int64, bool) {
	if !n.IsInteger() || !n.r().Num().IsInt64() {
		return 0, false
	}
	return n.r().Num().Int64(), true
}

func (n Number) Neg() Number {
	switch n.kind {
	case Fraction:
		return Number{rat: new(big.Rat).Neg(n.r())}
	case Float:
		return FloatNumber(-n.f)
	}
	return n
}

func (n Number) Abs() Number {
	if n.IsNegative() {
		return n.Neg()
	}
	return n
}

// Inv returns 1/n, NaN for zero.
func (n Number) Inv() Number { return Int(1).Div(n) }

func (n Number) Add(o Number) Number {
	return n.arith(o, (*big.Rat).Add, func(a, b float64) float64 { return a + b })
}

func (n Number) Sub(o Number) Number {
	return n.arith(o, (*big.Rat).Sub, func(a, b float64) float64 { return a - b })
}

func (n Number) Mul(o Number) Number {
	return n.arith(o, (*big.Rat).Mul, func(a, b float64) float64 { return a * b })
}

func (n Number) Div(o Number) Number {
	if o.IsZero() {
		return NaNNumber()
	}
	return n.arith(o, (*big.Rat).Quo, func(a, b float64) float64 { return a / b })
}

func (n Number) arith(o Number, exact func(z, x, y *big.Rat) *big.Rat, approx func(a, b float64) float64) Number {
	if n.IsNaN() || o.IsNaN() {
		return NaNNumber()
	}
	if n.kind == Fraction && o.kind == Fraction {
		return Number{rat: exact(new(big.Rat), n.r(), o.r())}
	}
	return FloatNumber(approx(n.Float64(), o.Float64()))
}

// Cmp is a total order: numeric value first, a fraction sorts before a float
// of equal value, and NaN sorts after everything.
func (n Number) Cmp(o Number) int {
	switch {
	case n.IsNaN() && o.IsNaN():
		return 0
	case n.IsNaN():
		return 1
	case o.IsNaN():
		return -1
	}
	var c int
	switch {
	case n.kind == Fraction && o.kind == Fraction:
		return n.r().Cmp(o.r())
	case n.kind == Float && o.kind == Float:
		switch {
		case n.f < o.f:
			return -1
		case n.f > o.f:
			return 1
		}
		return 0
	case n.kind == Fraction:
		c = n.r().Cmp(new(big.Rat).SetFloat64(o.f))
		if c == 0 {
			c = -1
		}
	default:
		c = new(big.Rat).SetFloat64(n.f).Cmp(o.r())
		if c == 0 {
			c = 1
		}
	}
	return c
}

// Equal is structural: 1 and 1.0 differ.
func (n Number) Equal(o Number) bool { return n.Cmp(o) == 0 }

func (n Number) String() string {
	switch n.kind {
	case Fraction:
		return n.r().RatString()
	case Float:
		s := strconv.FormatFloat(n.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	}
	return "nan"
}

func (n Number) LaTeX() string {
	switch n.kind {
	case Fraction:
		r := n.r()
		if r.IsInt() {
			return r.Num().String()
		}
		sign := ""
		v := new(big.Rat).Set(r)
		if v.Sign() < 0 {
			sign = "-"
			v.Neg(v)
		}
		return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
	case Float:
		return n.String()
	}
	return "\\mathrm{NaN}"
}
