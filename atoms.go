package symcore

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync/atomic"
)

// ============================================================
// Num — numeric literal
// ============================================================

type Num struct{ v Number }

// N returns the integer n.
func N(n int64) *Num { return &Num{v: Int(n)} }

// F returns the fraction p/q, or NaN when q is zero.
func F(p, q int64) *Num { return &Num{v: Frac(p, q)} }

// NFloat returns a floating point literal; non-finite values become NaN.
func NFloat(f float64) *Num { return &Num{v: FloatNumber(f)} }

// NRat returns the exact value r.
func NRat(r *big.Rat) *Num { return &Num{v: RatNumber(r)} }

// NaN is the undefined value.
func NaN() *Num { return &Num{v: NaNNumber()} }

func NumOf(v Number) *Num { return &Num{v: v} }

func (n *Num) Value() Number                 { return n.v }
func (n *Num) Kind() Kind                    { return KindNumber }
func (n *Num) Args() []Expr                  { return nil }
func (n *Num) String() string                { return n.v.String() }
func (n *Num) LaTeX() string                 { return n.v.LaTeX() }
func (n *Num) N() float64                    { return n.v.Float64() }
func (n *Num) Derivative(*Sym) Expr          { return N(0) }
func (n *Num) Substitute(*Sym, Expr) Expr    { return n }
func (n *Num) toJSON() map[string]interface{} { return numJSON(n.v) }

func asNum(e Expr) (Number, bool) {
	if n, ok := e.(*Num); ok {
		return n.v, true
	}
	return Number{}, false
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := asNum(e)
	return ok && n.Equal(Int(v))
}

// ============================================================
// Constant — pi, e, i
// ============================================================

type constID uint8

const (
	constPi constID = iota
	constE
	constI
)

type Constant struct{ id constID }

var (
	Pi = &Constant{id: constPi}
	E  = &Constant{id: constE}
	I  = &Constant{id: constI}
)

func (c *Constant) Kind() Kind                 { return KindConstant }
func (c *Constant) Args() []Expr               { return nil }
func (c *Constant) Derivative(*Sym) Expr       { return N(0) }
func (c *Constant) Substitute(*Sym, Expr) Expr { return c }

func (c *Constant) String() string {
	switch c.id {
	case constPi:
		return "pi"
	case constE:
		return "e"
	}
	return "i"
}

func (c *Constant) LaTeX() string {
	if c.id == constPi {
		return "\\pi"
	}
	return c.String()
}

func (c *Constant) N() float64 {
	switch c.id {
	case constPi:
		return math.Pi
	case constE:
		return math.E
	}
	return math.NaN()
}

func (c *Constant) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.String()}
}

func constantNamed(name string) (*Constant, bool) {
	switch name {
	case "pi":
		return Pi, true
	case "e":
		return E, true
	case "i":
		return I, true
	}
	return nil, false
}

// ============================================================
// Sym — variable
// ============================================================

// Domain restricts the values a symbol ranges over.
type Domain uint8

const (
	DomainComplex Domain = iota
	DomainReal
	DomainPositive
	DomainInteger
	DomainNatural
)

var domainNames = [...]string{"complex", "real", "positive", "integer", "natural"}

func (d Domain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return fmt.Sprintf("domain(%d)", uint8(d))
}

func parseDomain(s string) (Domain, bool) {
	for i, n := range domainNames {
		if n == s {
			return Domain(i), true
		}
	}
	return 0, false
}

// Sym is a variable. Named symbols are equal when their names and domains
// are; dummy symbols are equal only to themselves, identified by a creation
// sequence number.
type Sym struct {
	name   string
	domain Domain
	value  *Number
	deps   []*Sym
	dummy  bool
	seq    uint64
}

var dummySeq atomic.Uint64

// SymOption configures a symbol.
type SymOption func(*Sym)

// WithDomain restricts the symbol.
func WithDomain(d Domain) SymOption { return func(s *Sym) { s.domain = d } }

// WithValue binds a value used by numeric evaluation.
func WithValue(v Number) SymOption { return func(s *Sym) { s.value = &v } }

// DependsOn declares the symbol an unknown function of vars, so that its
// derivative with respect to any of them is kept symbolic.
func DependsOn(vars ...*Sym) SymOption {
	return func(s *Sym) { s.deps = append([]*Sym(nil), vars...) }
}

// S returns the named symbol.
func S(name string, opts ...SymOption) *Sym {
	if name == "" {
		panic("symcore: empty symbol name")
	}
	s := &Sym{name: name}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dummy returns a fresh symbol distinct from every other symbol.
func Dummy(name string, opts ...SymOption) *Sym {
	s := S(name, opts...)
	s.dummy = true
	s.seq = dummySeq.Add(1)
	return s
}

// dummyWithSeq recreates a serialized dummy and keeps later dummies fresh.
func dummyWithSeq(name string, seq uint64, opts ...SymOption) *Sym {
	s := S(name, opts...)
	s.dummy = true
	s.seq = seq
	for {
		cur := dummySeq.Load()
		if cur >= seq || dummySeq.CompareAndSwap(cur, seq) {
			break
		}
	}
	return s
}

func (s *Sym) Name() string     { return s.name }
func (s *Sym) Domain() Domain   { return s.domain }
func (s *Sym) IsDummy() bool    { return s.dummy }
func (s *Sym) Seq() uint64      { return s.seq }
func (s *Sym) Deps() []*Sym     { return append([]*Sym(nil), s.deps...) }
func (s *Sym) Kind() Kind       { return KindSymbol }
func (s *Sym) Args() []Expr     { return nil }
func (s *Sym) LaTeX() string    { return s.String() }

// Value returns the bound value, if any.
func (s *Sym) Value() (Number, bool) {
	if s.value == nil {
		return Number{}, false
	}
	return *s.value, true
}

// Bind returns a copy of s bound to v. The copy is equal to s.
func (s *Sym) Bind(v Number) *Sym {
	c := *s
	c.value = &v
	return &c
}

func (s *Sym) String() string {
	if s.dummy {
		return fmt.Sprintf("_%s%d", s.name, s.seq)
	}
	return s.name
}

func (s *Sym) N() float64 {
	if s.value == nil {
		return math.NaN()
	}
	return s.value.Float64()
}

func (s *Sym) Substitute(v *Sym, with Expr) Expr {
	if compareSyms(s, v) == 0 {
		return with
	}
	return s
}

func (s *Sym) Derivative(v *Sym) Expr {
	if compareSyms(s, v) == 0 {
		return N(1)
	}
	for i, d := range s.deps {
		if compareSyms(d, v) == 0 {
			args := make([]Expr, len(s.deps))
			orders := make([]int, len(s.deps))
			for j, dj := range s.deps {
				args[j] = dj
			}
			orders[i] = 1
			return &Undefined{name: s.name, args: args, orders: orders}
		}
	}
	return N(0)
}

func (s *Sym) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name}
	if s.domain != DomainComplex {
		m["domain"] = s.domain.String()
	}
	if s.dummy {
		m["dummy"] = s.seq
	}
	if s.value != nil {
		m["value"] = numJSON(*s.value)
	}
	if len(s.deps) > 0 {
		deps := make([]map[string]interface{}, len(s.deps))
		for i, d := range s.deps {
			deps[i] = d.toJSON()
		}
		m["deps"] = deps
	}
	return m
}

// ============================================================
// Bool
// ============================================================

type Bool struct{ v bool }

var (
	True  = &Bool{v: true}
	False = &Bool{v: false}
)

func BoolOf(v bool) *Bool {
	if v {
		return True
	}
	return False
}

func (b *Bool) Value() bool                { return b.v }
func (b *Bool) Kind() Kind                 { return KindBool }
func (b *Bool) Args() []Expr               { return nil }
func (b *Bool) LaTeX() string              { return "\\mathrm{" + b.String() + "}" }
func (b *Bool) N() float64                 { return math.NaN() }
func (b *Bool) Substitute(*Sym, Expr) Expr { return b }

func (b *Bool) String() string {
	if b.v {
		return "true"
	}
	return "false"
}

func (b *Bool) Derivative(*Sym) Expr {
	notImplemented("derivative", b)
	return nil
}

func (b *Bool) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "bool", "value": b.v}
}

func joinArgs(args []Expr, sep string, f func(Expr) string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = f(a)
	}
	return strings.Join(parts, sep)
}
