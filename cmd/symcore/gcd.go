package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
	"github.com/njchilds90/symcore/ring"
)

var gcdCmd = &cobra.Command{
	Use:   "gcd [flags] [expr_file(s)]",
	Short: "compute the gcd of two polynomials.",
	Long: `Compute the greatest common divisor of exactly two polynomial expressions.
	 Over the rationals (the default) the inputs may have several variables, named
	 in order by --var. Every other ring takes univariate polynomials with integer
	 coefficients, reduced into the ring first.`,
	Run: func(cmd *cobra.Command, args []string) {
		exprs := readExprs(args)
		if len(exprs) != 2 {
			fatal(errors.Errorf("gcd needs two expressions, got %d", len(exprs)))
		}
		a, b := exprs[0], exprs[1]
		names := getStrings(cmd, "var")
		kind := getString(cmd, "ring")
		//
		if kind == "rationals" {
			vars := make([]*sc.Sym, len(names))
			for i, n := range names {
				vars[i] = sc.LookupVariable(sc.Vector(a, b), n)
			}
			g, err := sc.PolynomialGcd(a, b, vars...)
			if err != nil {
				fatal(err)
			}
			printExpr(cmd, g)
			return
		}
		v, err := gcdVariable(a, b, names)
		if err != nil {
			fatal(err)
		}
		g, err := ringGcd(kind, getInt64(cmd, "modulus"), a, b, v)
		if err != nil {
			fatal(err)
		}
		fmt.Println(g)
	},
}

// gcdVariable picks the indeterminate of a univariate gcd.
func gcdVariable(a, b sc.Expr, names []string) (*sc.Sym, error) {
	pair := sc.Vector(a, b)
	switch {
	case len(names) == 1:
		return sc.LookupVariable(pair, names[0]), nil
	case len(names) > 1:
		return nil, errors.Errorf("ring gcd is univariate, got %d variables", len(names))
	}
	free := sc.FreeVariables(pair)
	switch len(free) {
	case 0:
		return sc.S("x"), nil
	case 1:
		return free[0], nil
	}
	return nil, errors.New("several variables: choose one with --var")
}

// ringGcd computes gcd(a, b) in R[v] for the named ring R and renders it.
func ringGcd(kind string, modulus int64, a, b sc.Expr, v *sc.Sym) (out string, err error) {
	defer func() {
		// Rings signal division failures (composite moduli) by panicking.
		if r := recover(); r != nil {
			err = errors.Errorf("%v", r)
		}
	}()
	switch kind {
	case "integers":
		return polyGcd[*big.Int](ring.Integers{}, a, b, v, func(n *big.Int) (*big.Int, error) {
			return new(big.Int).Set(n), nil
		})
	case "int64":
		return polyGcd[int64](ring.Machine[int64]{}, a, b, v, func(n *big.Int) (int64, error) {
			if !n.IsInt64() {
				return 0, errors.Errorf("coefficient %s overflows int64", n)
			}
			return n.Int64(), nil
		})
	case "modular":
		if modulus < 2 {
			return "", errors.Errorf("modular ring needs a prime --modulus, got %d", modulus)
		}
		m := ring.NewModular(modulus)
		p := big.NewInt(modulus)
		return polyGcd[int64](m, a, b, v, func(n *big.Int) (int64, error) {
			return new(big.Int).Mod(n, p).Int64(), nil
		})
	case "fr":
		return polyGcd[ring.FrElement](ring.Fr{}, a, b, v, func(n *big.Int) (ring.FrElement, error) {
			var z ring.FrElement
			z.SetBigInt(n)
			return z, nil
		})
	}
	return "", errors.Errorf("unknown ring %q (rationals, integers, int64, modular, fr)", kind)
}

func polyGcd[T any](base ring.Ring[T], a, b sc.Expr, v *sc.Sym, conv func(*big.Int) (T, error)) (string, error) {
	r := ring.Polynomials[T](base, v.Name())
	pa, err := toRingPoly(r, a, v, conv)
	if err != nil {
		return "", err
	}
	pb, err := toRingPoly(r, b, v, conv)
	if err != nil {
		return "", err
	}
	return r.Format(ring.Gcd[ring.Poly[T]](r, pa, pb)), nil
}

func toRingPoly[T any](r *ring.PolynomialRing[T], e sc.Expr, v *sc.Sym, conv func(*big.Int) (T, error)) (ring.Poly[T], error) {
	cs, err := sc.Coefficients(e, v)
	if err != nil {
		return ring.Poly[T]{}, err
	}
	coeffs := make([]T, len(cs))
	for i, c := range cs {
		n, ok := c.(*sc.Num)
		if !ok || !n.Value().IsInteger() {
			return ring.Poly[T]{}, errors.Errorf("coefficient %s of %s is not an integer", c, e)
		}
		if coeffs[i], err = conv(n.Value().Rat().Num()); err != nil {
			return ring.Poly[T]{}, err
		}
	}
	return r.New(coeffs...), nil
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(gcdCmd)
	gcdCmd.Flags().StringSlice("var", nil, "polynomial variables, outermost last")
	gcdCmd.Flags().String("ring", "rationals", "coefficient ring: rationals, integers, int64, modular or fr")
	gcdCmd.Flags().Int64("modulus", 0, "prime modulus of the modular ring")
}
