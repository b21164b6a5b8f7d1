package symcore

import (
	"math"
	"math/big"
)

// ============================================================
// Func — trigonometric and hyperbolic functions
// ============================================================

// FuncName identifies an elementary function.
type FuncName uint8

const (
	funcSin FuncName = iota
	funcCos
	funcTan
	funcCot
	funcSec
	funcCsc
	funcAsin
	funcAcos
	funcAtan
	funcAcot
	funcSinh
	funcCosh
	funcTanh
)

var funcNames = [...]string{
	funcSin: "sin", funcCos: "cos", funcTan: "tan", funcCot: "cot",
	funcSec: "sec", funcCsc: "csc", funcAsin: "asin", funcAcos: "acos",
	funcAtan: "atan", funcAcot: "acot", funcSinh: "sinh", funcCosh: "cosh",
	funcTanh: "tanh",
}

func (f FuncName) String() string { return funcNames[f] }

func funcNamed(name string) (FuncName, bool) {
	for i, n := range funcNames {
		if n == name {
			return FuncName(i), true
		}
	}
	return 0, false
}

type Func struct {
	name FuncName
	arg  Expr
}

func SinOf(x Expr) Expr  { return funcOf(funcSin, x) }
func CosOf(x Expr) Expr  { return funcOf(funcCos, x) }
func TanOf(x Expr) Expr  { return funcOf(funcTan, x) }
func CotOf(x Expr) Expr  { return funcOf(funcCot, x) }
func SecOf(x Expr) Expr  { return funcOf(funcSec, x) }
func CscOf(x Expr) Expr  { return funcOf(funcCsc, x) }
func AsinOf(x Expr) Expr { return funcOf(funcAsin, x) }
func AcosOf(x Expr) Expr { return funcOf(funcAcos, x) }
func AtanOf(x Expr) Expr { return funcOf(funcAtan, x) }
func AcotOf(x Expr) Expr { return funcOf(funcAcot, x) }
func SinhOf(x Expr) Expr { return funcOf(funcSinh, x) }
func CoshOf(x Expr) Expr { return funcOf(funcCosh, x) }
func TanhOf(x Expr) Expr { return funcOf(funcTanh, x) }

// FuncOf applies the function with the given name ("sin", "acot", ...).
func FuncOf(name string, x Expr) (Expr, bool) {
	f, ok := funcNamed(name)
	if !ok {
		return nil, false
	}
	return funcOf(f, x), true
}

var oddFuncs = map[FuncName]bool{
	funcSin: true, funcTan: true, funcCot: true, funcCsc: true,
	funcAsin: true, funcAtan: true, funcAcot: true, funcSinh: true, funcTanh: true,
}

var evenFuncs = map[FuncName]bool{funcCos: true, funcSec: true, funcCosh: true}

func funcOf(name FuncName, arg Expr) Expr {
	if IsNaN(arg) {
		return NaN()
	}
	if n, ok := asNum(arg); ok && n.IsFloat() {
		return NumOf(FloatNumber(evalFunc(name, n.Float64())))
	}
	if v, ok := specialValue(name, arg); ok {
		return v
	}
	if c, _ := splitCoefficient(arg); c.IsNegative() {
		switch {
		case oddFuncs[name]:
			return Neg(funcOf(name, Neg(arg)))
		case evenFuncs[name]:
			return funcOf(name, Neg(arg))
		}
	}
	return &Func{name: name, arg: arg}
}

func evalFunc(name FuncName, x float64) float64 {
	switch name {
	case funcSin:
		return math.Sin(x)
	case funcCos:
		return math.Cos(x)
	case funcTan:
		return math.Tan(x)
	case funcCot:
		return 1 / math.Tan(x)
	case funcSec:
		return 1 / math.Cos(x)
	case funcCsc:
		return 1 / math.Sin(x)
	case funcAsin:
		return math.Asin(x)
	case funcAcos:
		return math.Acos(x)
	case funcAtan:
		return math.Atan(x)
	case funcAcot:
		if x == 0 {
			return math.Pi / 2
		}
		return math.Atan(1 / x)
	case funcSinh:
		return math.Sinh(x)
	case funcCosh:
		return math.Cosh(x)
	case funcTanh:
		return math.Tanh(x)
	}
	panic("symcore: unknown function " + name.String())
}

// specialValue knows the exact values at rational multiples of pi with
// denominator 1, 2, 3, 4 or 6, and the values of the inverse and hyperbolic
// functions at 0 and +-1.
func specialValue(name FuncName, arg Expr) (Expr, bool) {
	if IsZero(arg) {
		switch name {
		case funcSin, funcTan, funcAsin, funcAtan, funcSinh, funcTanh:
			return N(0), true
		case funcCos, funcSec, funcCosh:
			return N(1), true
		case funcAcos, funcAcot:
			return MulOf(F(1, 2), Pi), true
		case funcCot, funcCsc:
			return NaN(), true
		}
	}
	if IsOne(arg) {
		switch name {
		case funcAsin:
			return MulOf(F(1, 2), Pi), true
		case funcAcos:
			return N(0), true
		case funcAtan, funcAcot:
			return MulOf(F(1, 4), Pi), true
		}
	}
	switch name {
	case funcSin, funcCos, funcTan, funcCot, funcSec, funcCsc:
	default:
		return nil, false
	}
	k, ok := twelfthsOfPi(arg)
	if !ok {
		return nil, false
	}
	s, c := sinTwelfths(k), sinTwelfths(k+6)
	switch name {
	case funcSin:
		return s, true
	case funcCos:
		return c, true
	case funcTan:
		return DivOf(s, c), true
	case funcCot:
		return DivOf(c, s), true
	case funcSec:
		return PowOf(c, N(-1)), true
	}
	return PowOf(s, N(-1)), true
}

// twelfthsOfPi writes arg = k*pi/12 for an integer k in [0, 24), accepting
// only multiples of pi/6 and pi/4.
func twelfthsOfPi(arg Expr) (int64, bool) {
	var c Number
	switch v := arg.(type) {
	case *Constant:
		if v != Pi {
			return 0, false
		}
		c = Int(1)
	case *Mul:
		if len(v.factors) != 2 || v.factors[1] != Pi {
			return 0, false
		}
		n, ok := v.factors[0].(*Num)
		if !ok || !n.v.IsFraction() {
			return 0, false
		}
		c = n.v
	default:
		return 0, false
	}
	t := new(big.Rat).Mul(c.r(), big.NewRat(12, 1))
	if !t.IsInt() {
		return 0, false
	}
	k := new(big.Int).Mod(t.Num(), big.NewInt(24)).Int64()
	if k%2 != 0 && k%3 != 0 {
		return 0, false
	}
	return k, true
}

// sinTwelfths returns sin(k*pi/12) for the multiples handled above.
func sinTwelfths(k int64) Expr {
	k %= 24
	if k >= 12 {
		return Neg(sinTwelfths(k - 12))
	}
	if k > 6 {
		k = 12 - k
	}
	switch k {
	case 0:
		return N(0)
	case 2:
		return F(1, 2)
	case 3:
		return MulOf(F(1, 2), SqrtOf(N(2)))
	case 4:
		return MulOf(F(1, 2), SqrtOf(N(3)))
	case 6:
		return N(1)
	}
	panic("symcore: sin(k*pi/12) table has no entry for odd k")
}

func (f *Func) Name() string { return f.name.String() }
func (f *Func) Arg() Expr    { return f.arg }
func (f *Func) Kind() Kind   { return KindFunc }
func (f *Func) Args() []Expr { return []Expr{f.arg} }
func (f *Func) N() float64   { return realPart(evalComplex(f)) }

func (f *Func) String() string { return f.name.String() + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	arg := "\\left(" + f.arg.LaTeX() + "\\right)"
	switch f.name {
	case funcAsin, funcAcos, funcAtan:
		return "\\arc" + f.name.String()[1:] + arg
	case funcAcot:
		return "\\operatorname{arccot}" + arg
	}
	return "\\" + f.name.String() + arg
}

func (f *Func) Substitute(v *Sym, with Expr) Expr { return substituteArgs(f, v, with) }

// Derivative applies the chain rule.
func (f *Func) Derivative(v *Sym) Expr {
	du := f.arg.Derivative(v)
	if IsZero(du) {
		return N(0)
	}
	u := f.arg
	oneMinusSq := SubOf(N(1), PowOf(u, N(2)))
	onePlusSq := AddOf(N(1), PowOf(u, N(2)))
	var outer Expr
	switch f.name {
	case funcSin:
		outer = CosOf(u)
	case funcCos:
		outer = Neg(SinOf(u))
	case funcTan:
		outer = AddOf(N(1), PowOf(TanOf(u), N(2)))
	case funcCot:
		outer = Neg(AddOf(N(1), PowOf(CotOf(u), N(2))))
	case funcSec:
		outer = MulOf(SecOf(u), TanOf(u))
	case funcCsc:
		outer = Neg(MulOf(CscOf(u), CotOf(u)))
	case funcAsin:
		outer = PowOf(oneMinusSq, F(-1, 2))
	case funcAcos:
		outer = Neg(PowOf(oneMinusSq, F(-1, 2)))
	case funcAtan:
		outer = PowOf(onePlusSq, N(-1))
	case funcAcot:
		outer = Neg(PowOf(onePlusSq, N(-1)))
	case funcSinh:
		outer = CoshOf(u)
	case funcCosh:
		outer = SinhOf(u)
	case funcTanh:
		outer = SubOf(N(1), PowOf(TanhOf(u), N(2)))
	default:
		panic("symcore: unknown function " + f.name.String())
	}
	return MulOf(outer, du)
}

func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name.String(), "arg": f.arg.toJSON()}
}
