package symcore_test

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/njchilds90/symcore"
)

var (
	x = sc.S("x")
	y = sc.S("y")
	z = sc.S("z")
	a = sc.S("a")
	b = sc.S("b")
)

func assertExpr(t *testing.T, want, got sc.Expr, msgAndArgs ...interface{}) {
	t.Helper()
	if !sc.Equal(want, got) {
		assert.Fail(t, "expressions differ: want "+want.String()+", got "+got.String(), msgAndArgs...)
	}
}

// ============================================================
// Canonical construction
// ============================================================

func TestAdd_FoldsNumbers(t *testing.T) {
	assert.Equal(t, "5", sc.AddOf(sc.N(2), sc.N(3)).String())
	assert.Equal(t, "0", sc.AddOf().String())
}

func TestAdd_GroupsLikeTerms(t *testing.T) {
	assertExpr(t, sc.MulOf(sc.N(2), x), sc.AddOf(x, x))
	assertExpr(t, sc.N(0), sc.SubOf(x, x))
	assertExpr(t, sc.AddOf(x, y), sc.AddOf(y, x))
	e := sc.AddOf(sc.AddOf(x, sc.N(1)), y)
	require.IsType(t, &sc.Add{}, e)
	assert.Len(t, e.Args(), 3)
	assert.Equal(t, "x + y + 1", e.String())
}

func TestAdd_NegativeTermsPrintWithMinus(t *testing.T) {
	assert.Equal(t, "x - y", sc.SubOf(x, y).String())
	assert.Equal(t, "x - 1", sc.SubOf(x, sc.N(1)).String())
}

func TestMul_GroupsPowers(t *testing.T) {
	e := sc.MulOf(x, x, sc.N(2))
	assert.Equal(t, "2*x^2", e.String())
	assertExpr(t, sc.N(1), sc.MulOf(x, sc.PowOf(x, sc.N(-1))))
	assertExpr(t, sc.MulOf(x, y), sc.MulOf(y, x))
	assertExpr(t, sc.N(0), sc.MulOf(x, sc.N(0), y))
	assertExpr(t, x, sc.Neg(sc.Neg(x)))
}

func TestMul_ImaginaryUnitSquares(t *testing.T) {
	assertExpr(t, sc.N(-1), sc.MulOf(sc.I, sc.I))
	assertExpr(t, sc.Neg(sc.I), sc.PowOf(sc.I, sc.N(3)))
}

func TestPow_ZeroExponent(t *testing.T) {
	assertExpr(t, sc.N(1), sc.PowOf(x, sc.N(0)))
	assertExpr(t, sc.N(1), sc.PowOf(sc.N(0), sc.N(0)))
	assert.True(t, sc.IsNaN(sc.PowOf(sc.N(0), sc.N(-1))))
	assertExpr(t, sc.N(0), sc.PowOf(sc.N(0), x))
}

func TestPow_ExactRoots(t *testing.T) {
	assertExpr(t, sc.N(2), sc.PowOf(sc.N(4), sc.F(1, 2)))
	assert.Equal(t, "2*2^(1/2)", sc.PowOf(sc.N(8), sc.F(1, 2)).String())
	assertExpr(t, sc.N(3), sc.PowOf(sc.N(27), sc.F(1, 3)))
	assertExpr(t, sc.F(1, 2), sc.PowOf(sc.N(4), sc.F(-1, 2)))
	assertExpr(t, sc.I, sc.SqrtOf(sc.N(-1)))
}

func TestPow_RadicalsSplitIntoPrimeBases(t *testing.T) {
	// 12^(5/6) = 2^(5/3)*3^(5/6) = 2*2^(2/3)*3^(5/6)
	want := sc.MulOf(sc.N(2), sc.PowOf(sc.N(2), sc.F(2, 3)), sc.PowOf(sc.N(3), sc.F(5, 6)))
	assertExpr(t, want, sc.PowOf(sc.N(12), sc.F(5, 6)))
	assertExpr(t, sc.MulOf(sc.F(1, 2), sc.SqrtOf(sc.N(2))), sc.SqrtOf(sc.F(1, 2)))

	p := sc.PowOf(sc.N(2), sc.F(5, 6))
	require.IsType(t, &sc.Pow{}, p)
	assertExpr(t, sc.N(2), p.(*sc.Pow).Base())
	assertExpr(t, sc.F(5, 6), p.(*sc.Pow).ExpExpr())
}

func TestPow_HugeExponentsReturn(t *testing.T) {
	cases := map[string]func() sc.Expr{
		"integer exponent": func() sc.Expr { return sc.PowOf(sc.N(2), sc.N(1<<62)) },
		"min int64":        func() sc.Expr { return sc.PowOf(sc.N(3), sc.N(-1<<63)) },
		"tiny root":        func() sc.Expr { return sc.PowOf(sc.N(5), sc.F(1, 1<<40)) },
		"root of product":  func() sc.Expr { return sc.PowOf(sc.N(6), sc.F(7, 1<<40)) },
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			done := make(chan sc.Expr, 1)
			go func() { done <- build() }()
			select {
			case got := <-done:
				assert.NotNil(t, got)
			case <-time.After(5 * time.Second):
				t.Fatal("power did not return")
			}
		})
	}

	tiny := sc.PowOf(sc.N(5), sc.F(1, 1<<40))
	require.IsType(t, &sc.Pow{}, tiny)
	assertExpr(t, sc.N(5), tiny.(*sc.Pow).Base())
}

func TestPow_Nested(t *testing.T) {
	assertExpr(t, sc.PowOf(x, sc.N(6)), sc.PowOf(sc.PowOf(x, sc.N(2)), sc.N(3)))
	assertExpr(t, sc.MulOf(sc.PowOf(x, sc.N(2)), sc.PowOf(y, sc.N(2))), sc.PowOf(sc.MulOf(x, y), sc.N(2)))
	assertExpr(t, x, sc.PowOf(sc.E, sc.LnOf(x)))
}

func TestLog_Folding(t *testing.T) {
	assertExpr(t, sc.N(3), sc.LogOf(sc.N(8), sc.N(2)))
	assertExpr(t, sc.N(0), sc.LnOf(sc.N(1)))
	assertExpr(t, sc.N(1), sc.LnOf(sc.E))
	assertExpr(t, x, sc.LogOf(sc.PowOf(sc.N(2), x), sc.N(2)))
	assert.IsType(t, &sc.Log{}, sc.LnOf(sc.N(2)))
}

func TestFunc_SpecialValues(t *testing.T) {
	assertExpr(t, sc.N(0), sc.SinOf(sc.N(0)))
	assertExpr(t, sc.N(1), sc.CosOf(sc.N(0)))
	assertExpr(t, sc.F(1, 2), sc.SinOf(sc.MulOf(sc.F(1, 6), sc.Pi)))
	assertExpr(t, sc.N(-1), sc.CosOf(sc.Pi))
	assertExpr(t, sc.N(1), sc.TanOf(sc.MulOf(sc.F(1, 4), sc.Pi)))
	assertExpr(t, sc.MulOf(sc.F(1, 4), sc.Pi), sc.AtanOf(sc.N(1)))
}

func TestFunc_Symmetry(t *testing.T) {
	assertExpr(t, sc.Neg(sc.SinOf(x)), sc.SinOf(sc.Neg(x)))
	assertExpr(t, sc.CosOf(x), sc.CosOf(sc.Neg(x)))
	f, ok := sc.FuncOf("tanh", x)
	require.True(t, ok)
	assertExpr(t, sc.TanhOf(x), f)
	_, ok = sc.FuncOf("erf", x)
	assert.False(t, ok)
}

func TestComplex_Parts(t *testing.T) {
	r := sc.S("r", sc.WithDomain(sc.DomainReal))
	assertExpr(t, r, sc.ReOf(r))
	assertExpr(t, sc.N(0), sc.ImOf(r))
	assertExpr(t, sc.N(1), sc.ImOf(sc.I))
	assertExpr(t, x, sc.ConjOf(sc.ConjOf(x)))
	assertExpr(t, sc.MulOf(sc.N(3), sc.AbsOf(x)), sc.AbsOf(sc.MulOf(sc.N(-3), x)))
}

func TestRelation_Folds(t *testing.T) {
	assert.Equal(t, sc.True, sc.LtOf(sc.N(1), sc.N(2)))
	assert.Equal(t, sc.False, sc.EqOf(sc.NaN(), sc.NaN()))
	assert.Equal(t, sc.True, sc.NeOf(sc.NaN(), sc.NaN()))
	assert.Equal(t, sc.True, sc.LeOf(x, x))
	assert.IsType(t, &sc.Relation{}, sc.GtOf(x, sc.N(0)))
}

func TestLogic_Canonical(t *testing.T) {
	p, q := sc.GtOf(x, sc.N(0)), sc.LtOf(y, sc.N(1))
	assertExpr(t, sc.AndOf(p, q), sc.AndOf(q, p, sc.True, p))
	assertExpr(t, sc.False, sc.AndOf(p, sc.False))
	assertExpr(t, sc.True, sc.OrOf(p, sc.True))
	assertExpr(t, sc.LeOf(x, sc.N(0)), sc.NotOf(p))
	n := sc.NotOf(sc.AndOf(p, q))
	assertExpr(t, sc.AndOf(p, q), sc.NotOf(n))
}

func TestNumber_FloatStaysFloat(t *testing.T) {
	e := sc.AddOf(sc.NFloat(0.5), sc.F(1, 2))
	n, ok := e.(*sc.Num)
	require.True(t, ok)
	assert.True(t, n.Value().IsFloat())
	assert.Equal(t, "1.0", e.String())
	assert.False(t, sc.Equal(sc.N(1), e))
}

// ============================================================
// Structural order
// ============================================================

func randomExpr(rng *rand.Rand, depth int) sc.Expr {
	if depth == 0 || rng.Intn(3) == 0 {
		switch rng.Intn(6) {
		case 0:
			return sc.N(int64(rng.Intn(7) - 3))
		case 1:
			return sc.F(int64(rng.Intn(5)-2), int64(rng.Intn(3)+2))
		case 2:
			return sc.Pi
		default:
			return []*sc.Sym{x, y, z}[rng.Intn(3)]
		}
	}
	switch rng.Intn(5) {
	case 0:
		return sc.AddOf(randomExpr(rng, depth-1), randomExpr(rng, depth-1))
	case 1:
		return sc.MulOf(randomExpr(rng, depth-1), randomExpr(rng, depth-1))
	case 2:
		return sc.PowOf(randomExpr(rng, depth-1), sc.N(int64(rng.Intn(4)-1)))
	case 3:
		return sc.SinOf(randomExpr(rng, depth-1))
	}
	return sc.LnOf(randomExpr(rng, depth-1))
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func TestCompare_TotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := make([]sc.Expr, 60)
	for i := range pop {
		pop[i] = randomExpr(rng, 3)
	}
	for _, p := range pop {
		assert.Zero(t, sc.Compare(p, p), "%s", p)
		for _, q := range pop {
			pq := sc.Compare(p, q)
			assert.Equal(t, -sign(pq), sign(sc.Compare(q, p)), "%s vs %s", p, q)
			if pq == 0 {
				assert.Equal(t, p.String(), q.String())
			}
			for _, r := range pop {
				if pq <= 0 && sc.Compare(q, r) <= 0 {
					assert.LessOrEqual(t, sc.Compare(p, r), 0, "%s <= %s <= %s", p, q, r)
				}
			}
		}
	}
	sorted := slices.Clone(pop)
	slices.SortFunc(sorted, sc.Compare)
	assert.True(t, slices.IsSortedFunc(sorted, sc.Compare))
}

func TestCompare_CanonicalIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		p, q, r := randomExpr(rng, 2), randomExpr(rng, 2), randomExpr(rng, 2)
		assertExpr(t, sc.AddOf(p, q, r), sc.AddOf(r, p, q))
		assertExpr(t, sc.MulOf(p, q, r), sc.MulOf(q, r, p))
	}
}

func TestMul_RadicalsAssociate(t *testing.T) {
	ra, rb, rc := sc.PowOf(sc.N(2), sc.F(1, 2)), sc.PowOf(sc.N(2), sc.F(1, 3)), sc.PowOf(sc.N(2), sc.F(1, 6))
	assertExpr(t, sc.N(2), sc.MulOf(ra, sc.MulOf(rb, rc)))
	assertExpr(t, sc.N(2), sc.MulOf(sc.MulOf(ra, rb), rc))
	assertExpr(t, sc.N(2), sc.MulOf(ra, rb, rc))
}

func radicalLeaf(rng *rand.Rand) sc.Expr {
	switch rng.Intn(5) {
	case 0:
		return []*sc.Sym{x, y}[rng.Intn(2)]
	case 1:
		return sc.F(int64(rng.Intn(5)+1), int64(rng.Intn(3)+1))
	}
	bases := []int64{2, 3, 4, 6, 8, 12, 18, 27}
	n := bases[rng.Intn(len(bases))]
	return sc.PowOf(sc.N(n), sc.F(int64(rng.Intn(5)+1), int64(rng.Intn(6)+1)))
}

func TestCompare_NestedGroupingIsIrrelevant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		leaves := make([]sc.Expr, 2+rng.Intn(4))
		for j := range leaves {
			leaves[j] = radicalLeaf(rng)
		}
		for _, op := range []func(...sc.Expr) sc.Expr{sc.MulOf, sc.AddOf} {
			flat := op(leaves...)
			left := leaves[0]
			for _, l := range leaves[1:] {
				left = op(left, l)
			}
			right := leaves[len(leaves)-1]
			for j := len(leaves) - 2; j >= 0; j-- {
				right = op(leaves[j], right)
			}
			shuffled := slices.Clone(leaves)
			rng.Shuffle(len(shuffled), func(p, q int) { shuffled[p], shuffled[q] = shuffled[q], shuffled[p] })
			assertExpr(t, flat, left, "left fold of %v", leaves)
			assertExpr(t, flat, right, "right fold of %v", leaves)
			assertExpr(t, flat, op(shuffled...), "shuffle of %v", leaves)
		}
	}
}

func TestCompare_Dummies(t *testing.T) {
	d1, d2 := sc.Dummy("x"), sc.Dummy("x")
	assert.False(t, sc.Equal(d1, d2))
	assert.False(t, sc.Equal(d1, x))
	assert.Negative(t, sc.Compare(d1, d2))
	assert.Positive(t, sc.Compare(d1, sc.S("zzz")))
	assert.True(t, sc.Equal(x, x.Bind(sc.Int(3))))
}

// ============================================================
// Traversal and free variables
// ============================================================

func TestFreeVariables_Sorted(t *testing.T) {
	e := sc.AddOf(sc.MulOf(z, x), sc.SinOf(y), x)
	vars := sc.FreeVariables(e)
	require.Len(t, vars, 3)
	assert.Equal(t, []string{"x", "y", "z"}, []string{vars[0].Name(), vars[1].Name(), vars[2].Name()})
	assert.True(t, sc.Has(e, y))
	assert.False(t, sc.Has(e, a))
}

func TestFree_Dependencies(t *testing.T) {
	u := sc.S("u", sc.DependsOn(x))
	assert.False(t, sc.Free(sc.MulOf(u, y), x))
	assert.True(t, sc.Free(sc.MulOf(u, y), z))
}

func TestLookupVariable_KeepsDomain(t *testing.T) {
	p := sc.S("p", sc.WithDomain(sc.DomainPositive))
	got := sc.LookupVariable(sc.AddOf(p, x), "p")
	assert.Equal(t, sc.DomainPositive, got.Domain())
	assertExpr(t, p, got)
	assert.Equal(t, sc.DomainComplex, sc.LookupVariable(x, "q").Domain())
}

func TestSubstitute_Recanonicalizes(t *testing.T) {
	e := sc.AddOf(sc.PowOf(x, sc.N(2)), sc.MulOf(sc.N(3), x))
	assertExpr(t, sc.N(10), e.Substitute(x, sc.N(2)))
	assertExpr(t, sc.AddOf(sc.PowOf(y, sc.N(2)), sc.MulOf(sc.N(3), y)), e.Substitute(x, y))
}

func TestSizeDepth(t *testing.T) {
	e := sc.SinOf(sc.AddOf(x, sc.N(1)))
	assert.Equal(t, 4, sc.Size(e))
	assert.Equal(t, 3, sc.Depth(e))
}

// ============================================================
// JSON
// ============================================================

func TestJSON_RoundTrip(t *testing.T) {
	cases := []sc.Expr{
		sc.AddOf(sc.PowOf(x, sc.N(2)), sc.SinOf(y), sc.F(-2, 7)),
		sc.MulOf(sc.Pi, sc.LogOf(x, sc.N(3))),
		sc.NFloat(2.5),
		sc.S("p", sc.WithDomain(sc.DomainPositive), sc.WithValue(sc.Frac(1, 3))),
		sc.Dummy("t"),
		sc.UndefinedOf("f", x, y).Derivative(y),
		sc.NewMatrix(2, 2, x, sc.N(1), sc.N(0), y),
		sc.AndOf(sc.LtOf(x, sc.N(1)), sc.GeOf(y, sc.N(0))),
		sc.AbsOf(x),
		sc.True,
	}
	for _, e := range cases {
		s, err := sc.ToJSON(e)
		require.NoError(t, err)
		back, err := sc.ParseJSON(s)
		require.NoError(t, err, s)
		assertExpr(t, e, back, s)

		fromMap, err := sc.FromJSON(sc.ToJSONMap(e))
		require.NoError(t, err)
		assertExpr(t, e, fromMap)
	}
}

func TestJSON_Errors(t *testing.T) {
	for _, s := range []string{
		`[]`,
		`{"type": ""}`,
		`{"type": "teapot"}`,
		`{"type": "num", "value": "1/0"}`,
		`{"type": "func", "name": "erf", "arg": {"type": "num", "value": "1"}}`,
		`{"type": "matrix", "rows": 2, "cols": 2, "entries": []}`,
		`{"type": "matrix", "rows": 4294967296, "cols": 4294967296, "entries": []}`,
		`{"type": "matrix", "rows": 2, "cols": -2, "entries": []}`,
		`{"type": "sym", "name": "t", "dummy": 1000000000000000}`,
		`{"type": "sym", "name": "t", "dummy": 18446744073709551615}`,
		`{"type": "sym", "name": "t", "dummy": 0}`,
		`{"type": "logic", "op": "not", "args": []}`,
	} {
		_, err := sc.ParseJSON(s)
		assert.Error(t, err, s)
	}
}

func TestJSON_HugeRadicalDecodes(t *testing.T) {
	e, err := sc.ParseJSON(`{"type": "pow", "base": {"type": "num", "value": "5"}, "exp": {"type": "num", "value": "1/1099511627776"}}`)
	require.NoError(t, err)
	assertExpr(t, sc.PowOf(sc.N(5), sc.F(1, 1<<40)), e)
}

func TestJSON_DummySeqKeepsCounterFresh(t *testing.T) {
	e, err := sc.ParseJSON(`{"type": "sym", "name": "t", "dummy": 281474976710656}`)
	require.NoError(t, err)
	assert.True(t, e.(*sc.Sym).IsDummy())
	assert.Greater(t, sc.Dummy("t").Seq(), e.(*sc.Sym).Seq())
}
