package symcore

import (
	"math"
	"slices"
)

// ============================================================
// Relation — lhs op rhs
// ============================================================

type RelOp uint8

const (
	RelEq RelOp = iota
	RelNe
	RelLt
	RelLe
	RelGt
	RelGe
)

var relSymbols = [...]string{"=", "!=", "<", "<=", ">", ">="}
var relLaTeX = [...]string{"=", "\\neq", "<", "\\leq", ">", "\\geq"}

func (op RelOp) String() string { return relSymbols[op] }

func relNamed(s string) (RelOp, bool) {
	for i, n := range relSymbols {
		if n == s {
			return RelOp(i), true
		}
	}
	return 0, false
}

type Relation struct {
	op       RelOp
	lhs, rhs Expr
}

func EqOf(l, r Expr) Expr { return RelOf(RelEq, l, r) }
func NeOf(l, r Expr) Expr { return RelOf(RelNe, l, r) }
func LtOf(l, r Expr) Expr { return RelOf(RelLt, l, r) }
func LeOf(l, r Expr) Expr { return RelOf(RelLe, l, r) }
func GtOf(l, r Expr) Expr { return RelOf(RelGt, l, r) }
func GeOf(l, r Expr) Expr { return RelOf(RelGe, l, r) }

// RelOf folds to a Bool when both sides are numbers, or when equality is
// decided structurally. A NaN side makes every relation false except !=.
func RelOf(op RelOp, lhs, rhs Expr) Expr {
	ln, lok := asNum(lhs)
	rn, rok := asNum(rhs)
	if lok && rok {
		if ln.IsNaN() || rn.IsNaN() {
			return BoolOf(op == RelNe)
		}
		c := ln.Sub(rn).sign()
		switch op {
		case RelEq:
			return BoolOf(c == 0)
		case RelNe:
			return BoolOf(c != 0)
		case RelLt:
			return BoolOf(c < 0)
		case RelLe:
			return BoolOf(c <= 0)
		case RelGt:
			return BoolOf(c > 0)
		}
		return BoolOf(c >= 0)
	}
	if Equal(lhs, rhs) {
		switch op {
		case RelEq, RelLe, RelGe:
			return True
		}
		return False
	}
	return &Relation{op: op, lhs: lhs, rhs: rhs}
}

func (r *Relation) Op() RelOp    { return r.op }
func (r *Relation) LHS() Expr    { return r.lhs }
func (r *Relation) RHS() Expr    { return r.rhs }
func (r *Relation) Kind() Kind   { return KindRelation }
func (r *Relation) Args() []Expr { return []Expr{r.lhs, r.rhs} }
func (r *Relation) N() float64   { return math.NaN() }

func (r *Relation) String() string {
	return r.lhs.String() + " " + r.op.String() + " " + r.rhs.String()
}

func (r *Relation) LaTeX() string {
	return r.lhs.LaTeX() + " " + relLaTeX[r.op] + " " + r.rhs.LaTeX()
}

func (r *Relation) Substitute(v *Sym, with Expr) Expr { return substituteArgs(r, v, with) }

// Derivative differentiates both sides of an equation; inequalities have no
// derivative.
func (r *Relation) Derivative(v *Sym) Expr {
	if r.op != RelEq {
		notImplemented("derivative", r)
	}
	return RelOf(RelEq, r.lhs.Derivative(v), r.rhs.Derivative(v))
}

func (r *Relation) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "rel", "op": r.op.String(), "lhs": r.lhs.toJSON(), "rhs": r.rhs.toJSON()}
}

// ============================================================
// Logic — and, or, not
// ============================================================

type LogicOp uint8

const (
	LogicAnd LogicOp = iota
	LogicOr
	LogicNot
)

var logicNames = [...]string{"and", "or", "not"}

func (op LogicOp) String() string { return logicNames[op] }

func logicNamed(s string) (LogicOp, bool) {
	for i, n := range logicNames {
		if n == s {
			return LogicOp(i), true
		}
	}
	return 0, false
}

type Logic struct {
	op   LogicOp
	args []Expr
}

func AndOf(args ...Expr) Expr { return logicOf(LogicAnd, args...) }
func OrOf(args ...Expr) Expr  { return logicOf(LogicOr, args...) }
func NotOf(x Expr) Expr       { return logicOf(LogicNot, x) }

// logicOf flattens and sorts conjunctions and disjunctions, drops identity
// operands, short-circuits on absorbing ones and removes duplicates.
func logicOf(op LogicOp, args ...Expr) Expr {
	if op == LogicNot {
		if len(args) != 1 {
			panic("symcore: not takes one argument")
		}
		switch v := args[0].(type) {
		case *Bool:
			return BoolOf(!v.v)
		case *Logic:
			if v.op == LogicNot {
				return v.args[0]
			}
		case *Relation:
			return &Relation{op: negatedRel[v.op], lhs: v.lhs, rhs: v.rhs}
		}
		return &Logic{op: LogicNot, args: []Expr{args[0]}}
	}
	identity, absorbing := True, False
	if op == LogicOr {
		identity, absorbing = False, True
	}
	flat := make([]Expr, 0, len(args))
	for _, a := range args {
		if inner, ok := a.(*Logic); ok && inner.op == op {
			flat = append(flat, inner.args...)
		} else {
			flat = append(flat, a)
		}
	}
	out := make([]Expr, 0, len(flat))
	for _, a := range flat {
		switch a {
		case identity:
			continue
		case absorbing:
			return absorbing
		}
		out = append(out, a)
	}
	slices.SortFunc(out, Compare)
	out = slices.CompactFunc(out, Equal)
	switch len(out) {
	case 0:
		return identity
	case 1:
		return out[0]
	}
	return &Logic{op: op, args: out}
}

// negatedRel maps a relation to its complement.
var negatedRel = [...]RelOp{
	RelEq: RelNe, RelNe: RelEq,
	RelLt: RelGe, RelLe: RelGt,
	RelGt: RelLe, RelGe: RelLt,
}

func (l *Logic) Op() LogicOp  { return l.op }
func (l *Logic) Kind() Kind   { return KindLogic }
func (l *Logic) Args() []Expr { return l.args }
func (l *Logic) N() float64   { return math.NaN() }

func (l *Logic) String() string {
	if l.op == LogicNot {
		return "not(" + l.args[0].String() + ")"
	}
	return l.op.String() + "(" + joinArgs(l.args, ", ", Expr.String) + ")"
}

func (l *Logic) LaTeX() string {
	switch l.op {
	case LogicNot:
		return "\\neg\\left(" + l.args[0].LaTeX() + "\\right)"
	case LogicAnd:
		return joinArgs(l.args, " \\land ", Expr.LaTeX)
	}
	return joinArgs(l.args, " \\lor ", Expr.LaTeX)
}

func (l *Logic) Substitute(v *Sym, with Expr) Expr { return substituteArgs(l, v, with) }

func (l *Logic) Derivative(*Sym) Expr {
	notImplemented("derivative", l)
	return nil
}

func (l *Logic) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "logic", "op": l.op.String(), "args": argsJSON(l.args)}
}
