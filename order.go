package symcore

import (
	"cmp"
	"strings"
)

// ============================================================
// Structural order
// ============================================================

// Compare is the structural total order on expressions. Kinds are ordered by
// their Kind value; within a kind, numbers compare by value, constants by
// identity, named symbols by name (dummies after all named symbols, by
// creation sequence), and composite nodes by their discriminator, then
// argument count, then their children lexicographically.
func Compare(a, b Expr) int {
	if a == b {
		return 0
	}
	if c := cmp.Compare(int(a.Kind()), int(b.Kind())); c != 0 {
		return c
	}
	switch x := a.(type) {
	case *Num:
		return x.v.Cmp(b.(*Num).v)
	case *Constant:
		return cmp.Compare(int(x.id), int(b.(*Constant).id))
	case *Sym:
		return compareSyms(x, b.(*Sym))
	case *Bool:
		return cmpBool(x.v, b.(*Bool).v)
	case *Add, *Mul, *Pow, *Log:
		return compareArgs(a.Args(), b.Args())
	case *Func:
		y := b.(*Func)
		if c := cmp.Compare(int(x.name), int(y.name)); c != 0 {
			return c
		}
		return Compare(x.arg, y.arg)
	case *Complex:
		y := b.(*Complex)
		if c := cmp.Compare(int(x.part), int(y.part)); c != 0 {
			return c
		}
		return Compare(x.arg, y.arg)
	case *Undefined:
		y := b.(*Undefined)
		if c := strings.Compare(x.name, y.name); c != 0 {
			return c
		}
		if c := compareOrders(x.orders, y.orders); c != 0 {
			return c
		}
		return compareArgs(x.args, y.args)
	case *Matrix:
		y := b.(*Matrix)
		if c := cmp.Compare(x.rows, y.rows); c != 0 {
			return c
		}
		if c := cmp.Compare(x.cols, y.cols); c != 0 {
			return c
		}
		return compareArgs(x.entries, y.entries)
	case *Relation:
		y := b.(*Relation)
		if c := cmp.Compare(int(x.op), int(y.op)); c != 0 {
			return c
		}
		return compareArgs(x.Args(), y.Args())
	case *Logic:
		y := b.(*Logic)
		if c := cmp.Compare(int(x.op), int(y.op)); c != 0 {
			return c
		}
		return compareArgs(x.args, y.args)
	}
	unknownExpr(a)
	return 0
}

// Equal reports structural equality.
func Equal(a, b Expr) bool { return Compare(a, b) == 0 }

// Less orders a strictly before b.
func Less(a, b Expr) bool { return Compare(a, b) < 0 }

func compareSyms(a, b *Sym) int {
	switch {
	case a.dummy && b.dummy:
		return cmp.Compare(a.seq, b.seq)
	case a.dummy:
		return 1
	case b.dummy:
		return -1
	}
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	return cmp.Compare(int(a.domain), int(b.domain))
}

func compareArgs(a, b []Expr) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareOrders(a, b []int) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// treeComparator adapts Compare to the untyped comparator of gods containers.
func treeComparator(a, b interface{}) int { return Compare(a.(Expr), b.(Expr)) }
