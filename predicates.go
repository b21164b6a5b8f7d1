package symcore

// ============================================================
// Structural predicates
// ============================================================
//
// The predicates are conservative: false means "not known", never "known to
// be false". They are computed from the node shape and the flags of the
// children, without numeric evaluation.

func IsZero(e Expr) bool {
	n, ok := asNum(e)
	return ok && n.IsZero()
}

func IsOne(e Expr) bool {
	n, ok := asNum(e)
	return ok && n.IsOne()
}

func IsNaN(e Expr) bool {
	n, ok := asNum(e)
	return ok && n.IsNaN()
}

func IsPositive(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsPositive()
	case *Constant:
		return v.id != constI
	case *Sym:
		return v.domain == DomainPositive
	case *Add:
		return all(v.terms, IsPositive)
	case *Mul:
		neg, ok := signCount(v.factors)
		return ok && neg%2 == 0
	case *Pow:
		if IsPositive(v.base) && IsReal(v.exp) {
			return true
		}
		n, ok := v.exp.(*Num)
		return ok && n.v.IsInteger() && isEven(n.v) && IsReal(v.base) && isNonZero(v.base)
	case *Func:
		return v.name == funcCosh && IsReal(v.arg)
	case *Complex:
		return v.part == partAbs && isNonZero(v.arg)
	case *Log, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func IsNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsNegative()
	case *Add:
		return all(v.terms, IsNegative)
	case *Mul:
		neg, ok := signCount(v.factors)
		return ok && neg%2 == 1
	case *Pow:
		n, ok := v.exp.(*Num)
		return ok && n.v.IsInteger() && !isEven(n.v) && IsNegative(v.base)
	case *Constant, *Sym, *Log, *Func, *Complex, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func IsInteger(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsInteger()
	case *Sym:
		return v.domain == DomainInteger || v.domain == DomainNatural
	case *Add:
		return all(v.terms, IsInteger)
	case *Mul:
		return all(v.factors, IsInteger)
	case *Pow:
		return IsInteger(v.base) && IsNatural(v.exp)
	case *Constant, *Log, *Func, *Complex, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func IsNatural(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsInteger() && !v.v.IsNegative()
	case *Sym:
		return v.domain == DomainNatural
	case *Add:
		return all(v.terms, IsNatural)
	case *Mul:
		return all(v.factors, IsNatural)
	case *Pow:
		return IsNatural(v.base) && IsNatural(v.exp)
	case *Constant, *Log, *Func, *Complex, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func IsRational(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.v.IsFraction()
	case *Sym:
		return v.domain == DomainInteger || v.domain == DomainNatural
	case *Add:
		return all(v.terms, IsRational)
	case *Mul:
		return all(v.factors, IsRational)
	case *Pow:
		return IsRational(v.base) && IsInteger(v.exp) && (isNonZero(v.base) || IsNatural(v.exp))
	case *Constant, *Log, *Func, *Complex, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func IsReal(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return !v.v.IsNaN()
	case *Constant:
		return v.id != constI
	case *Sym:
		return v.domain != DomainComplex
	case *Add:
		return all(v.terms, IsReal)
	case *Mul:
		return all(v.factors, IsReal)
	case *Pow:
		if IsPositive(v.base) && IsReal(v.exp) {
			return true
		}
		return IsReal(v.base) && IsInteger(v.exp) && (isNonZero(v.base) || IsNatural(v.exp))
	case *Log:
		return IsPositive(v.value) && IsPositive(v.base)
	case *Func:
		switch v.name {
		case funcAsin, funcAcos:
			return false
		}
		return IsReal(v.arg)
	case *Complex:
		return v.part != partConj || IsReal(v.arg)
	case *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

// IsComplex holds for every scalar expression known to have a finite complex
// value; the reals are included.
func IsComplex(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return !v.v.IsNaN()
	case *Constant:
		return true
	case *Sym:
		return true
	case *Add:
		return all(v.terms, IsComplex)
	case *Mul:
		return all(v.factors, IsComplex)
	case *Pow:
		return IsComplex(v.base) && IsComplex(v.exp) && (isNonZero(v.base) || IsNatural(v.exp))
	case *Func:
		switch v.name {
		case funcSin, funcCos, funcSinh, funcCosh, funcAtan:
			return IsComplex(v.arg)
		}
		return false
	case *Complex:
		return IsComplex(v.arg)
	case *Log, *Undefined, *Matrix, *Bool, *Relation, *Logic:
		return false
	}
	unknownExpr(e)
	return false
}

func isNonZero(e Expr) bool {
	if n, ok := asNum(e); ok {
		return !n.IsZero() && !n.IsNaN()
	}
	return IsPositive(e) || IsNegative(e)
}

func isEven(n Number) bool {
	r := n.Rat()
	return r != nil && r.IsInt() && r.Num().Bit(0) == 0
}

// signCount returns the number of negative factors, or false if the sign of
// some factor is unknown.
func signCount(factors []Expr) (int, bool) {
	neg := 0
	for _, f := range factors {
		switch {
		case IsNegative(f):
			neg++
		case IsPositive(f):
		default:
			return 0, false
		}
	}
	return neg, true
}

func all(es []Expr, p func(Expr) bool) bool {
	for _, e := range es {
		if !p(e) {
			return false
		}
	}
	return true
}
