package symcore

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ============================================================
// Simplification passes
// ============================================================

const (
	defaultMaxPasses = 10
	defaultMaxDepth  = 512
	// maxExpandPower bounds the integer powers of sums Expand multiplies out.
	maxExpandPower = 32
)

// ErrTooDeep reports an expression deeper than SimplifyOptions.MaxDepth.
var ErrTooDeep = errors.New("symcore: expression too deep")

// SimplifyOptions configures SimplifyWith. The zero value is usable.
type SimplifyOptions struct {
	// MaxPasses bounds the rewrite rounds; 0 means 10.
	MaxPasses int
	// MaxDepth rejects deeper inputs with ErrTooDeep; 0 means 512.
	MaxDepth int
	// Logger receives one Debug entry per candidate when set.
	Logger *logrus.Entry
}

type pass struct {
	name string
	fn   func(Expr) Expr
}

var passes = []pass{
	{"expand", Expand},
	{"combine", CombineFractions},
	{"cancel", cancelAll},
	{"trig", TrigSimplify},
	{"expand+cancel", func(e Expr) Expr { return cancelAll(CombineFractions(Expand(e))) }},
}

// Simplify returns the smallest form of e found by SimplifyWith with default
// options, or e itself if simplification fails.
func Simplify(e Expr) Expr {
	out, err := SimplifyWith(e, SimplifyOptions{})
	if err != nil {
		return e
	}
	return out
}

// SimplifyWith repeatedly applies every pass to the current form and keeps
// the candidate with the fewest nodes, until no pass improves it or the pass
// budget is spent.
func SimplifyWith(e Expr, opts SimplifyOptions) (out Expr, err error) {
	defer recoverNotImplemented(&err)
	maxPasses, maxDepth := opts.MaxPasses, opts.MaxDepth
	if maxPasses <= 0 {
		maxPasses = defaultMaxPasses
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	if d := Depth(e); d > maxDepth {
		return nil, errors.Wrapf(ErrTooDeep, "depth %d exceeds %d", d, maxDepth)
	}
	cur, cost := e, Size(e)
	for round := 0; round < maxPasses; round++ {
		best, bestCost, bestPass := cur, cost, ""
		for _, p := range passes {
			cand := p.fn(cur)
			c := Size(cand)
			if opts.Logger != nil {
				opts.Logger.WithFields(logrus.Fields{
					"round": round,
					"pass":  p.name,
					"cost":  c,
				}).Debug(cand.String())
			}
			if c < bestCost {
				best, bestCost, bestPass = cand, c, p.name
			}
		}
		if bestPass == "" {
			break
		}
		if opts.Logger != nil {
			opts.Logger.WithFields(logrus.Fields{"round": round, "pass": bestPass, "cost": bestCost}).Debug("accepted")
		}
		cur, cost = best, bestCost
	}
	return cur, nil
}

// ============================================================
// Expand
// ============================================================

// Expand distributes products over sums and multiplies out natural powers of
// sums up to a fixed exponent, recursively.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		terms := []Expr{N(1)}
		for _, f := range v.factors {
			f = Expand(f)
			terms = distribute(terms, f)
		}
		return AddOf(terms...)
	case *Pow:
		base, exp := Expand(v.base), Expand(v.exp)
		n, ok := asNum(exp)
		if _, isAdd := base.(*Add); isAdd && ok && n.IsInteger() {
			k, fits := n.Int64()
			if fits && -maxExpandPower <= k && k <= maxExpandPower {
				terms := []Expr{N(1)}
				for i := int64(0); i < max(k, -k); i++ {
					terms = distribute(terms, base)
				}
				out := AddOf(terms...)
				if k < 0 {
					return PowOf(out, N(-1))
				}
				return out
			}
		}
		return PowOf(base, exp)
	}
	return mapArgs(e, Expand)
}

// distribute multiplies every term of the sum terms by f.
func distribute(terms []Expr, f Expr) []Expr {
	fs := []Expr{f}
	if a, ok := f.(*Add); ok {
		fs = a.terms
	}
	out := make([]Expr, 0, len(terms)*len(fs))
	for _, t := range terms {
		for _, g := range fs {
			out = append(out, MulOf(t, g))
		}
	}
	return out
}

// ============================================================
// Fractions
// ============================================================

// NumerDenom splits e into numerator and denominator: factors with a
// negative numeric exponent form the denominator.
func NumerDenom(e Expr) (Expr, Expr) {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	var num, den []Expr
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if n, ok := asNum(p.exp); ok && n.IsNegative() {
				den = append(den, PowOf(p.base, NumOf(n.Neg())))
				continue
			}
		}
		num = append(num, f)
	}
	return MulOf(num...), MulOf(den...)
}

// CombineFractions rewrites every sum as a single fraction over the product
// of the distinct denominators of its terms.
func CombineFractions(e Expr) Expr {
	e = mapArgs(e, CombineFractions)
	a, ok := e.(*Add)
	if !ok {
		return e
	}
	nums := make([]Expr, len(a.terms))
	dens := make([]Expr, len(a.terms))
	var common []Expr
	for i, t := range a.terms {
		nums[i], dens[i] = NumerDenom(t)
		if IsOne(dens[i]) {
			continue
		}
		seen := false
		for _, c := range common {
			seen = seen || Equal(c, dens[i])
		}
		if !seen {
			common = append(common, dens[i])
		}
	}
	if len(common) == 0 {
		return e
	}
	den := MulOf(common...)
	terms := make([]Expr, len(a.terms))
	for i := range a.terms {
		terms[i] = MulOf(nums[i], DivOf(den, dens[i]))
	}
	return DivOf(Expand(AddOf(terms...)), den)
}

// ============================================================
// Trigonometric identities
// ============================================================

// TrigSimplify replaces c*sin(u)^2 + c*cos(u)^2 by c, for any common
// cofactor c, recursively.
func TrigSimplify(e Expr) Expr {
	e = mapArgs(e, TrigSimplify)
	a, ok := e.(*Add)
	if !ok {
		return e
	}
	terms := append([]Expr(nil), a.terms...)
	for changed := true; changed; {
		changed = false
		found := make([]*trigTerm, len(terms))
		for i, t := range terms {
			found[i] = trigSquare(t)
		}
	search:
		for i, si := range found {
			if si == nil {
				continue
			}
			for j := i + 1; j < len(found); j++ {
				sj := found[j]
				if sj == nil || sj.name == si.name || !Equal(si.arg, sj.arg) || !Equal(si.other, sj.other) {
					continue
				}
				rest := make([]Expr, 0, len(terms)-1)
				for k, t := range terms {
					if k != i && k != j {
						rest = append(rest, t)
					}
				}
				terms = append(rest, si.other)
				changed = true
				break search
			}
		}
	}
	return AddOf(terms...)
}

// trigTerm is a term other * name(arg)^2.
type trigTerm struct {
	name  FuncName
	arg   Expr
	other Expr
}

// trigSquare matches t = other * sin(u)^2 or other * cos(u)^2.
func trigSquare(t Expr) *trigTerm {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		p, ok := f.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		fn, ok := p.base.(*Func)
		if !ok || (fn.name != funcSin && fn.name != funcCos) {
			continue
		}
		return &trigTerm{name: fn.name, arg: fn.arg, other: DivOf(t, f)}
	}
	return nil
}
