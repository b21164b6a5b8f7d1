package symcore

import "math"

// ============================================================
// Complex — re, im, conj, abs, arg
// ============================================================

type ComplexPart uint8

const (
	partRe ComplexPart = iota
	partIm
	partConj
	partAbs
	partArg
)

var partNames = [...]string{"re", "im", "conj", "abs", "arg"}

func (p ComplexPart) String() string { return partNames[p] }

func partNamed(name string) (ComplexPart, bool) {
	for i, n := range partNames {
		if n == name {
			return ComplexPart(i), true
		}
	}
	return 0, false
}

type Complex struct {
	part ComplexPart
	arg  Expr
}

func ReOf(x Expr) Expr   { return complexOf(partRe, x) }
func ImOf(x Expr) Expr   { return complexOf(partIm, x) }
func ConjOf(x Expr) Expr { return complexOf(partConj, x) }
func AbsOf(x Expr) Expr  { return complexOf(partAbs, x) }
func ArgOf(x Expr) Expr  { return complexOf(partArg, x) }

// complexOf folds parts of real arguments, of numbers and of i, and distributes
// re, im and conj over sums.
func complexOf(part ComplexPart, x Expr) Expr {
	if IsNaN(x) {
		return NaN()
	}
	if n, ok := asNum(x); ok {
		switch part {
		case partRe, partConj:
			return x
		case partIm:
			return N(0)
		case partAbs:
			return NumOf(n.Abs())
		case partArg:
			switch {
			case n.IsZero():
				return NaN()
			case n.IsNegative():
				return Pi
			}
			return N(0)
		}
	}
	if x == I {
		switch part {
		case partRe:
			return N(0)
		case partIm, partAbs:
			return N(1)
		case partConj:
			return Neg(I)
		case partArg:
			return MulOf(F(1, 2), Pi)
		}
	}
	if IsReal(x) {
		switch part {
		case partRe, partConj:
			return x
		case partIm:
			return N(0)
		case partAbs:
			if IsPositive(x) {
				return x
			}
			if IsNegative(x) {
				return Neg(x)
			}
		case partArg:
			if IsPositive(x) {
				return N(0)
			}
			if IsNegative(x) {
				return Pi
			}
		}
	}
	switch part {
	case partRe, partIm, partConj:
		if a, ok := x.(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = complexOf(part, t)
			}
			return AddOf(terms...)
		}
		if c, rest := splitCoefficient(x); rest != nil && !c.IsOne() {
			return MulOf(NumOf(c), complexOf(part, rest))
		}
	case partAbs:
		if c, rest := splitCoefficient(x); rest != nil && !c.IsOne() {
			return MulOf(NumOf(c.Abs()), complexOf(part, rest))
		}
	}
	if inner, ok := x.(*Complex); ok && part == partConj && inner.part == partConj {
		return inner.arg
	}
	return &Complex{part: part, arg: x}
}

func (c *Complex) Part() string { return c.part.String() }
func (c *Complex) Arg() Expr    { return c.arg }
func (c *Complex) Kind() Kind   { return KindComplex }
func (c *Complex) Args() []Expr { return []Expr{c.arg} }
func (c *Complex) N() float64   { return realPart(evalComplex(c)) }

func (c *Complex) String() string { return c.part.String() + "(" + c.arg.String() + ")" }

func (c *Complex) LaTeX() string {
	a := c.arg.LaTeX()
	switch c.part {
	case partRe:
		return "\\operatorname{Re}\\left(" + a + "\\right)"
	case partIm:
		return "\\operatorname{Im}\\left(" + a + "\\right)"
	case partConj:
		return "\\overline{" + a + "}"
	case partAbs:
		return "\\left|" + a + "\\right|"
	}
	return "\\arg\\left(" + a + "\\right)"
}

func (c *Complex) Substitute(v *Sym, with Expr) Expr { return substituteArgs(c, v, with) }

// Derivative treats v as real: re, im and conj commute with d/dv,
// d|u| = re(conj(u)*u')/|u| and d arg(u) = im(conj(u)*u')/|u|^2.
func (c *Complex) Derivative(v *Sym) Expr {
	du := c.arg.Derivative(v)
	if IsZero(du) {
		return N(0)
	}
	switch c.part {
	case partRe, partIm, partConj:
		return complexOf(c.part, du)
	}
	w := MulOf(ConjOf(c.arg), du)
	abs := AbsOf(c.arg)
	if c.part == partAbs {
		return DivOf(ReOf(w), abs)
	}
	return DivOf(ImOf(w), PowOf(abs, N(2)))
}

func (c *Complex) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "complex", "part": c.part.String(), "arg": c.arg.toJSON()}
}

// absArg is the float fold used by numeric evaluation.
func absArg(part ComplexPart, z complex128) float64 {
	switch part {
	case partRe:
		return real(z)
	case partIm:
		return imag(z)
	case partAbs:
		return math.Hypot(real(z), imag(z))
	}
	return math.Atan2(imag(z), real(z))
}
