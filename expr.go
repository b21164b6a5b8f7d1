// Package symcore is a symbolic algebra kernel: canonical expression trees,
// a structural total order, derivatives and substitution, exact and
// multiprecision evaluation, simplification passes and polynomial algorithms
// built on the generic rings of package ring.
//
// Expressions are immutable. They are only ever built through the smart
// constructors (N, S, AddOf, MulOf, PowOf, LogOf, SinOf, ...), which return
// the canonical form of their input, so two expressions that differ only in
// the order or grouping of commutative operands are structurally equal.
package symcore

import (
	"fmt"

	"github.com/pkg/errors"
)

// ============================================================
// Core Interface
// ============================================================

// Kind tags each expression variant. The numeric order of the kinds is the
// first key of the structural order.
type Kind uint8

const (
	KindNumber Kind = iota
	KindConstant
	KindSymbol
	KindPow
	KindMul
	KindAdd
	KindLog
	KindFunc
	KindComplex
	KindUndefined
	KindMatrix
	KindBool
	KindRelation
	KindLogic
)

var kindNames = [...]string{
	KindNumber:    "num",
	KindConstant:  "const",
	KindSymbol:    "sym",
	KindPow:       "pow",
	KindMul:       "mul",
	KindAdd:       "add",
	KindLog:       "log",
	KindFunc:      "func",
	KindComplex:   "complex",
	KindUndefined: "undef",
	KindMatrix:    "matrix",
	KindBool:      "bool",
	KindRelation:  "rel",
	KindLogic:     "logic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Expr is a node of an expression tree. The set of implementations is closed;
// every type switch over Expr in this package handles all of them and panics
// on anything else.
type Expr interface {
	Kind() Kind
	// Args returns the children in canonical order. The slice must not be
	// modified.
	Args() []Expr
	String() string
	LaTeX() string
	// N evaluates numerically. The result is NaN when the value is undefined,
	// not real, or depends on an unbound variable.
	N() float64
	Derivative(v *Sym) Expr
	Substitute(v *Sym, with Expr) Expr
	toJSON() map[string]interface{}
}

// ============================================================
// Errors
// ============================================================

var (
	// ErrUndefined reports a NaN result.
	ErrUndefined = errors.New("symcore: undefined value")
	// ErrUnbound reports a free variable without a bound value.
	ErrUnbound = errors.New("symcore: unbound variable")
	// ErrNotImplemented is matched by every *NotImplementedError.
	ErrNotImplemented = errors.New("symcore: not implemented")
	// ErrNotPolynomial reports an expression that is not a polynomial in the
	// requested variables.
	ErrNotPolynomial = errors.New("symcore: not a polynomial")
)

// NotImplementedError signals an expression shape an algorithm does not
// support yet, as opposed to a mathematically undefined value.
type NotImplementedError struct {
	Op   string
	Expr Expr
}

func (e *NotImplementedError) Error() string {
	if e.Expr == nil {
		return "symcore: " + e.Op + " not implemented"
	}
	return "symcore: " + e.Op + " not implemented for " + e.Expr.String()
}

func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }

func notImplemented(op string, e Expr) {
	panic(&NotImplementedError{Op: op, Expr: e})
}

// recoverNotImplemented turns a NotImplementedError panic into *err. Any
// other panic is re-raised.
func recoverNotImplemented(err *error) {
	if r := recover(); r != nil {
		if ni, ok := r.(*NotImplementedError); ok {
			*err = ni
			return
		}
		panic(r)
	}
}

func unknownExpr(e Expr) {
	panic(fmt.Sprintf("symcore: unknown expression %T", e))
}

// ============================================================
// Generic traversal
// ============================================================

// rebuild returns e with its children replaced by args, passing the result
// back through the canonical constructor of e's kind.
func rebuild(e Expr, args []Expr) Expr {
	switch v := e.(type) {
	case *Num, *Constant, *Sym, *Bool:
		return e
	case *Add:
		return AddOf(args...)
	case *Mul:
		return MulOf(args...)
	case *Pow:
		return PowOf(args[0], args[1])
	case *Log:
		return LogOf(args[0], args[1])
	case *Func:
		return funcOf(v.name, args[0])
	case *Complex:
		return complexOf(v.part, args[0])
	case *Undefined:
		return &Undefined{name: v.name, args: args, orders: v.orders}
	case *Matrix:
		return NewMatrix(v.rows, v.cols, args...)
	case *Relation:
		return RelOf(v.op, args[0], args[1])
	case *Logic:
		return logicOf(v.op, args...)
	}
	unknownExpr(e)
	return nil
}

// mapArgs applies f to every child of e and rebuilds it.
func mapArgs(e Expr, f func(Expr) Expr) Expr {
	args := e.Args()
	if len(args) == 0 {
		return e
	}
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = f(a)
	}
	return rebuild(e, out)
}

func substituteArgs(e Expr, v *Sym, with Expr) Expr {
	return mapArgs(e, func(a Expr) Expr { return a.Substitute(v, with) })
}

// Walk calls visit on e and every descendant, parents first. Returning false
// skips the children of a node.
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	for _, a := range e.Args() {
		Walk(a, visit)
	}
}

// Size counts the nodes of e.
func Size(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool { n++; return true })
	return n
}

// Depth is the length of the longest root to leaf path of e.
func Depth(e Expr) int {
	d := 0
	for _, a := range e.Args() {
		d = max(d, Depth(a))
	}
	return d + 1
}
