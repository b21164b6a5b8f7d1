package symcore

import (
	"github.com/hashicorp/go-set/v3"
)

// FreeVariables returns the symbols of e in structural order.
func FreeVariables(e Expr) []*Sym {
	vars := set.NewTreeSet[*Sym](compareSyms)
	collectSyms(e, vars)
	return vars.Slice()
}

// Has reports whether v occurs in e.
func Has(e Expr, v *Sym) bool {
	found := false
	Walk(e, func(x Expr) bool {
		if s, ok := x.(*Sym); ok && compareSyms(s, v) == 0 {
			found = true
		}
		return !found
	})
	return found
}

// Free reports whether e does not depend on v, including through the
// declared dependencies of its symbols.
func Free(e Expr, v *Sym) bool {
	for _, s := range FreeVariables(e) {
		if compareSyms(s, v) == 0 {
			return false
		}
		for _, d := range s.deps {
			if compareSyms(d, v) == 0 {
				return false
			}
		}
	}
	return true
}

func collectSyms(e Expr, vars *set.TreeSet[*Sym]) {
	Walk(e, func(x Expr) bool {
		if s, ok := x.(*Sym); ok {
			vars.Insert(s)
		}
		return true
	})
}

// freeNames returns the distinct names of the named symbols of e.
func freeNames(e Expr) *set.Set[string] {
	names := set.New[string](0)
	for _, s := range FreeVariables(e) {
		if !s.dummy {
			names.Insert(s.name)
		}
	}
	return names
}

// LookupVariable returns the named symbol of e called name, keeping its
// domain and dependencies, or a fresh S(name) when e has none.
func LookupVariable(e Expr, name string) *Sym {
	if freeNames(e).Contains(name) {
		for _, s := range FreeVariables(e) {
			if !s.dummy && s.name == name {
				return s
			}
		}
	}
	return S(name)
}
