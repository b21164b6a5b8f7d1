package symcore

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// ============================================================
// Numeric evaluation
// ============================================================

// realTolerance is the relative size of an imaginary part that evaluation
// treats as rounding noise.
const realTolerance = 1e-12

// Evaluate computes the value of e. Symbols with bound values are replaced
// first, so exact inputs give an exact result when the canonical form folds
// to a number; otherwise the value is computed in floating point.
func Evaluate(e Expr) (Number, error) {
	for _, s := range FreeVariables(e) {
		v, ok := s.Value()
		if !ok {
			return Number{}, errors.Wrapf(ErrUnbound, "%s", s)
		}
		e = e.Substitute(s, NumOf(v))
	}
	if n, ok := e.(*Num); ok {
		if n.v.IsNaN() {
			return Number{}, ErrUndefined
		}
		return n.v, nil
	}
	f := realPart(evalComplex(e))
	if math.IsNaN(f) {
		return Number{}, errors.Wrapf(ErrUndefined, "%s", e)
	}
	return FloatNumber(f), nil
}

// EvaluateComplex computes e in complex floating point. Unbound symbols give
// NaN.
func EvaluateComplex(e Expr) complex128 { return evalComplex(e) }

// realPart returns the real value of z, or NaN when z is not finite or has a
// significant imaginary part.
func realPart(z complex128) float64 {
	if cmplx.IsNaN(z) || cmplx.IsInf(z) {
		return math.NaN()
	}
	re, im := real(z), imag(z)
	if math.Abs(im) > realTolerance*math.Max(1, math.Abs(re)) {
		return math.NaN()
	}
	return re
}

func finite(z complex128) complex128 {
	if cmplx.IsInf(z) || cmplx.IsNaN(z) {
		return cmplx.NaN()
	}
	return z
}

func isRealValue(z complex128) bool { return imag(z) == 0 }

func evalComplex(e Expr) complex128 {
	switch v := e.(type) {
	case *Num:
		if v.v.IsNaN() {
			return cmplx.NaN()
		}
		return complex(v.v.Float64(), 0)
	case *Constant:
		switch v.id {
		case constPi:
			return complex(math.Pi, 0)
		case constE:
			return complex(math.E, 0)
		}
		return 1i
	case *Sym:
		if val, ok := v.Value(); ok && !val.IsNaN() {
			return complex(val.Float64(), 0)
		}
		return cmplx.NaN()
	case *Add:
		var z complex128
		for _, t := range v.terms {
			z += evalComplex(t)
		}
		return finite(z)
	case *Mul:
		z := complex(1, 0)
		for _, f := range v.factors {
			z *= evalComplex(f)
		}
		return finite(z)
	case *Pow:
		return evalPow(evalComplex(v.base), evalComplex(v.exp))
	case *Log:
		x, b := evalComplex(v.value), evalComplex(v.base)
		if x == 0 || b == 0 || b == 1 {
			return cmplx.NaN()
		}
		if isRealValue(x) && isRealValue(b) && real(x) > 0 && real(b) > 0 {
			return complex(math.Log(real(x))/math.Log(real(b)), 0)
		}
		return finite(cmplx.Log(x) / cmplx.Log(b))
	case *Func:
		return evalFuncComplex(v.name, evalComplex(v.arg))
	case *Complex:
		z := evalComplex(v.arg)
		if cmplx.IsNaN(z) {
			return z
		}
		if v.part == partConj {
			return cmplx.Conj(z)
		}
		if v.part == partArg && z == 0 {
			return cmplx.NaN()
		}
		return complex(absArg(v.part, z), 0)
	case *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return cmplx.NaN()
	}
	unknownExpr(e)
	return 0
}

func evalPow(b, x complex128) complex128 {
	if cmplx.IsNaN(b) || cmplx.IsNaN(x) {
		return cmplx.NaN()
	}
	if x == 0 {
		return 1
	}
	if b == 0 {
		if real(x) > 0 {
			return 0
		}
		return cmplx.NaN()
	}
	if isRealValue(b) && isRealValue(x) {
		rb, rx := real(b), real(x)
		if rb > 0 || rx == math.Trunc(rx) {
			return finite(complex(math.Pow(rb, rx), 0))
		}
	}
	return finite(cmplx.Pow(b, x))
}

func evalFuncComplex(name FuncName, z complex128) complex128 {
	if cmplx.IsNaN(z) {
		return z
	}
	if isRealValue(z) {
		x := real(z)
		ok := true
		switch name {
		case funcAsin, funcAcos:
			ok = x >= -1 && x <= 1
		}
		if ok {
			return finite(complex(evalFunc(name, x), 0))
		}
	}
	var w complex128
	switch name {
	case funcSin:
		w = cmplx.Sin(z)
	case funcCos:
		w = cmplx.Cos(z)
	case funcTan:
		w = cmplx.Tan(z)
	case funcCot:
		w = cmplx.Cot(z)
	case funcSec:
		w = 1 / cmplx.Cos(z)
	case funcCsc:
		w = 1 / cmplx.Sin(z)
	case funcAsin:
		w = cmplx.Asin(z)
	case funcAcos:
		w = cmplx.Acos(z)
	case funcAtan:
		w = cmplx.Atan(z)
	case funcAcot:
		w = cmplx.Atan(1 / z)
	case funcSinh:
		w = cmplx.Sinh(z)
	case funcCosh:
		w = cmplx.Cosh(z)
	case funcTanh:
		w = cmplx.Tanh(z)
	default:
		panic("symcore: unknown function " + name.String())
	}
	return finite(w)
}
