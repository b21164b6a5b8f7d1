package symcore

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// ============================================================
// Multiprecision evaluation
// ============================================================

// guardDigits is the extra working precision used inside NPrec.
const guardDigits = 10

var roundings = []string{
	apd.RoundDown, apd.RoundHalfUp, apd.RoundHalfEven, apd.RoundCeiling,
	apd.RoundFloor, apd.RoundHalfDown, apd.RoundUp, apd.Round05Up,
}

// PrecisionContext returns a context computing digits significant digits
// with the named rounding mode ("half_even" when empty).
func PrecisionContext(digits uint32, rounding string) (*apd.Context, error) {
	if digits == 0 {
		return nil, errors.New("symcore: precision must be positive")
	}
	if rounding == "" {
		rounding = apd.RoundHalfEven
	}
	known := false
	for _, r := range roundings {
		known = known || r == rounding
	}
	if !known {
		return nil, errors.Errorf("symcore: unknown rounding mode %q", rounding)
	}
	ctx := apd.BaseContext.WithPrecision(digits)
	ctx.Rounding = rounding
	return ctx, nil
}

// NPrec evaluates e to the precision of ctx. It fails with ErrUnbound for a
// free variable without a bound value, ErrUndefined for undefined or
// non-real values, and a NotImplementedError for shapes without a real
// multiprecision rule (unknown functions, matrices, i).
func NPrec(e Expr, ctx *apd.Context) (d *apd.Decimal, err error) {
	defer recoverNotImplemented(&err)
	if ctx == nil || ctx.Precision == 0 {
		return nil, errors.New("symcore: NPrec needs a context with positive precision")
	}
	w := &precEval{
		c: ctx.WithPrecision(ctx.Precision + guardDigits),
	}
	w.eps = apd.New(1, -int32(w.c.Precision))
	v := w.eval(e)
	if w.err != nil {
		return nil, w.err
	}
	res := new(apd.Decimal)
	if _, err := ctx.Round(res, v); err != nil {
		return nil, errors.Wrap(ErrUndefined, err.Error())
	}
	return res, nil
}

// precEval keeps the first error; later operations are no-ops.
type precEval struct {
	c   *apd.Context
	eps *apd.Decimal
	pi  *apd.Decimal
	err error
}

func (w *precEval) fail(err error) *apd.Decimal {
	if w.err == nil {
		w.err = err
	}
	return apd.New(0, 0)
}

func (w *precEval) op(f func(d *apd.Decimal) (apd.Condition, error)) *apd.Decimal {
	if w.err != nil {
		return apd.New(0, 0)
	}
	d := new(apd.Decimal)
	if _, err := f(d); err != nil {
		return w.fail(errors.Wrap(ErrUndefined, err.Error()))
	}
	if d.Form != apd.Finite {
		return w.fail(ErrUndefined)
	}
	return d
}

func (w *precEval) add(x, y *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Add(d, x, y) })
}

func (w *precEval) sub(x, y *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Sub(d, x, y) })
}

func (w *precEval) mul(x, y *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Mul(d, x, y) })
}

func (w *precEval) quo(x, y *apd.Decimal) *apd.Decimal {
	if y.IsZero() {
		return w.fail(ErrUndefined)
	}
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Quo(d, x, y) })
}

func (w *precEval) neg(x *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Neg(d, x) })
}

func (w *precEval) abs(x *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Abs(d, x) })
}

func (w *precEval) sqrt(x *apd.Decimal) *apd.Decimal {
	if x.Sign() < 0 {
		return w.fail(ErrUndefined)
	}
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Sqrt(d, x) })
}

func (w *precEval) ln(x *apd.Decimal) *apd.Decimal {
	if x.Sign() <= 0 {
		return w.fail(ErrUndefined)
	}
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Ln(d, x) })
}

func (w *precEval) exp(x *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Exp(d, x) })
}

func (w *precEval) floor(x *apd.Decimal) *apd.Decimal {
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Floor(d, x) })
}

func (w *precEval) pow(x, y *apd.Decimal) *apd.Decimal {
	if x.IsZero() {
		if y.Sign() > 0 {
			return apd.New(0, 0)
		}
		return w.fail(ErrUndefined)
	}
	return w.op(func(d *apd.Decimal) (apd.Condition, error) { return w.c.Pow(d, x, y) })
}

// small reports |x| below the working epsilon.
func (w *precEval) small(x *apd.Decimal) bool {
	return w.abs(x).Cmp(w.eps) < 0
}

func (w *precEval) number(n Number) *apd.Decimal {
	switch {
	case n.IsNaN():
		return w.fail(ErrUndefined)
	case n.IsFloat():
		d, err := new(apd.Decimal).SetFloat64(n.Float64())
		if err != nil {
			return w.fail(errors.Wrap(ErrUndefined, err.Error()))
		}
		return d
	}
	r := n.r()
	return w.quo(apd.NewWithBigInt(r.Num(), 0), apd.NewWithBigInt(r.Denom(), 0))
}

func (w *precEval) eval(e Expr) *apd.Decimal {
	if w.err != nil {
		return apd.New(0, 0)
	}
	switch v := e.(type) {
	case *Num:
		return w.number(v.v)
	case *Constant:
		switch v.id {
		case constPi:
			return w.piValue()
		case constE:
			return w.exp(apd.New(1, 0))
		}
		notImplemented("nprec", v)
	case *Sym:
		val, ok := v.Value()
		if !ok {
			return w.fail(errors.Wrapf(ErrUnbound, "%s", v))
		}
		return w.number(val)
	case *Add:
		sum := apd.New(0, 0)
		for _, t := range v.terms {
			sum = w.add(sum, w.eval(t))
		}
		return sum
	case *Mul:
		prod := apd.New(1, 0)
		for _, f := range v.factors {
			prod = w.mul(prod, w.eval(f))
		}
		return prod
	case *Pow:
		if v.base == E {
			return w.exp(w.eval(v.exp))
		}
		if n, ok := asNum(v.exp); ok && n.Equal(Frac(1, 2)) {
			return w.sqrt(w.eval(v.base))
		}
		return w.pow(w.eval(v.base), w.eval(v.exp))
	case *Log:
		x := w.ln(w.eval(v.value))
		if v.base == E {
			return x
		}
		return w.quo(x, w.ln(w.eval(v.base)))
	case *Func:
		return w.function(v.name, w.eval(v.arg))
	case *Complex:
		x := w.eval(v.arg)
		switch v.part {
		case partRe, partConj:
			return x
		case partIm:
			return apd.New(0, 0)
		case partAbs:
			return w.abs(x)
		}
		switch x.Sign() {
		case 0:
			return w.fail(ErrUndefined)
		case -1:
			return w.piValue()
		}
		return apd.New(0, 0)
	case *Undefined, *Matrix, *Bool, *Relation, *Logic:
		notImplemented("nprec", v)
	}
	unknownExpr(e)
	return nil
}

func (w *precEval) piValue() *apd.Decimal {
	if w.pi == nil {
		// Machin: pi = 16*atan(1/5) - 4*atan(1/239).
		a := w.atanSeries(w.quo(apd.New(1, 0), apd.New(5, 0)))
		b := w.atanSeries(w.quo(apd.New(1, 0), apd.New(239, 0)))
		w.pi = w.sub(w.mul(apd.New(16, 0), a), w.mul(apd.New(4, 0), b))
	}
	return w.pi
}

// atanSeries sums x - x^3/3 + x^5/5 - ... for |x| < 1.
func (w *precEval) atanSeries(x *apd.Decimal) *apd.Decimal {
	x2 := w.mul(x, x)
	pow := x
	sum := x
	for k := int64(1); w.err == nil; k++ {
		pow = w.neg(w.mul(pow, x2))
		term := w.quo(pow, apd.New(2*k+1, 0))
		if w.small(term) {
			break
		}
		sum = w.add(sum, term)
	}
	return sum
}

func (w *precEval) atan(x *apd.Decimal) *apd.Decimal {
	if x.Sign() < 0 {
		return w.neg(w.atan(w.neg(x)))
	}
	one := apd.New(1, 0)
	if x.Cmp(one) > 0 {
		half := w.quo(w.piValue(), apd.New(2, 0))
		return w.sub(half, w.atan(w.quo(one, x)))
	}
	// atan(x) = 2*atan(x/(1+sqrt(1+x^2))), applied three times.
	for i := 0; i < 3; i++ {
		x = w.quo(x, w.add(one, w.sqrt(w.add(one, w.mul(x, x)))))
	}
	return w.mul(apd.New(8, 0), w.atanSeries(x))
}

// sin reduces x modulo 2*pi and sums the Taylor series.
func (w *precEval) sin(x *apd.Decimal) *apd.Decimal {
	twoPi := w.mul(apd.New(2, 0), w.piValue())
	k := w.floor(w.add(w.quo(x, twoPi), apd.New(5, -1)))
	x = w.sub(x, w.mul(k, twoPi))
	x2 := w.mul(x, x)
	term := x
	sum := x
	for n := int64(1); w.err == nil; n++ {
		term = w.neg(w.quo(w.mul(term, x2), apd.New((2*n)*(2*n+1), 0)))
		if w.small(term) {
			break
		}
		sum = w.add(sum, term)
	}
	return sum
}

func (w *precEval) cos(x *apd.Decimal) *apd.Decimal {
	return w.sin(w.add(x, w.quo(w.piValue(), apd.New(2, 0))))
}

func (w *precEval) function(name FuncName, x *apd.Decimal) *apd.Decimal {
	if w.err != nil {
		return apd.New(0, 0)
	}
	one := apd.New(1, 0)
	half := func() *apd.Decimal { return w.quo(w.piValue(), apd.New(2, 0)) }
	switch name {
	case funcSin:
		return w.sin(x)
	case funcCos:
		return w.cos(x)
	case funcTan:
		return w.quo(w.sin(x), w.cos(x))
	case funcCot:
		return w.quo(w.cos(x), w.sin(x))
	case funcSec:
		return w.quo(one, w.cos(x))
	case funcCsc:
		return w.quo(one, w.sin(x))
	case funcAsin, funcAcos:
		if w.abs(x).Cmp(one) > 0 {
			return w.fail(ErrUndefined)
		}
		var asin *apd.Decimal
		if w.abs(x).Cmp(one) == 0 {
			asin = half()
			if x.Sign() < 0 {
				asin = w.neg(asin)
			}
		} else {
			asin = w.atan(w.quo(x, w.sqrt(w.sub(one, w.mul(x, x)))))
		}
		if name == funcAcos {
			return w.sub(half(), asin)
		}
		return asin
	case funcAtan:
		return w.atan(x)
	case funcAcot:
		if x.IsZero() {
			return half()
		}
		return w.atan(w.quo(one, x))
	case funcSinh, funcCosh, funcTanh:
		ep, em := w.exp(x), w.exp(w.neg(x))
		sinh := w.quo(w.sub(ep, em), apd.New(2, 0))
		cosh := w.quo(w.add(ep, em), apd.New(2, 0))
		switch name {
		case funcSinh:
			return sinh
		case funcCosh:
			return cosh
		}
		return w.quo(sinh, cosh)
	}
	panic("symcore: unknown function " + name.String())
}
