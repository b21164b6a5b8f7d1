package symcore

import (
	"fmt"
	"strings"
)

// ============================================================
// Undefined — unknown function f(x, y, ...) and its partial derivatives
// ============================================================

// Undefined is an unknown function applied to args. orders[i] counts the
// partial derivatives taken with respect to the i-th argument.
type Undefined struct {
	name   string
	args   []Expr
	orders []int
}

// UndefinedOf applies the unknown function name to args.
func UndefinedOf(name string, args ...Expr) Expr {
	if name == "" {
		panic("symcore: empty function name")
	}
	return &Undefined{name: name, args: append([]Expr(nil), args...), orders: make([]int, len(args))}
}

func (u *Undefined) Name() string  { return u.name }
func (u *Undefined) Orders() []int { return append([]int(nil), u.orders...) }
func (u *Undefined) Kind() Kind    { return KindUndefined }
func (u *Undefined) Args() []Expr  { return u.args }
func (u *Undefined) N() float64    { return realPart(evalComplex(u)) }

func (u *Undefined) String() string {
	args := joinArgs(u.args, ", ", Expr.String)
	total := 0
	for _, o := range u.orders {
		total += o
	}
	if total == 0 {
		return u.name + "(" + args + ")"
	}
	var sb strings.Builder
	sb.WriteString("D[")
	first := true
	for i, o := range u.orders {
		if o == 0 {
			continue
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		if o == 1 {
			fmt.Fprintf(&sb, "%d", i)
		} else {
			fmt.Fprintf(&sb, "%d^%d", i, o)
		}
	}
	sb.WriteString("]")
	return sb.String() + u.name + "(" + args + ")"
}

func (u *Undefined) LaTeX() string {
	args := joinArgs(u.args, ", ", Expr.LaTeX)
	total := 0
	for _, o := range u.orders {
		total += o
	}
	if total == 0 {
		return u.name + "\\left(" + args + "\\right)"
	}
	var den strings.Builder
	for i, o := range u.orders {
		if o == 0 {
			continue
		}
		den.WriteString("\\partial_{" + fmt.Sprint(i) + "}")
		if o > 1 {
			fmt.Fprintf(&den, "^{%d}", o)
		}
	}
	return den.String() + u.name + "\\left(" + args + "\\right)"
}

func (u *Undefined) Substitute(v *Sym, with Expr) Expr { return substituteArgs(u, v, with) }

// Derivative applies the multivariate chain rule:
// d/dv f(a1, ..., an) = sum_i (D_i f)(a1, ..., an) * d(ai)/dv.
func (u *Undefined) Derivative(v *Sym) Expr {
	terms := make([]Expr, 0, len(u.args))
	for i, a := range u.args {
		da := a.Derivative(v)
		if IsZero(da) {
			continue
		}
		orders := append([]int(nil), u.orders...)
		orders[i]++
		terms = append(terms, MulOf(&Undefined{name: u.name, args: u.args, orders: orders}, da))
	}
	return AddOf(terms...)
}

func (u *Undefined) toJSON() map[string]interface{} {
	orders := make([]interface{}, len(u.orders))
	for i, o := range u.orders {
		orders[i] = o
	}
	return map[string]interface{}{"type": "undef", "name": u.name, "args": argsJSON(u.args), "orders": orders}
}
