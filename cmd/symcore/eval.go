package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [expr_file(s)]",
	Short: "evaluate expressions numerically.",
	Long: `Evaluate each expression whose variables are all bound. Without --prec the
	 result is exact when the expression folds to a fraction and a float otherwise;
	 with --prec it is a decimal of that many significant digits.`,
	Run: func(cmd *cobra.Command, args []string) {
		prec := getUint(cmd, "prec")
		rounding := getString(cmd, "rounding")
		//
		for _, e := range readExprs(args) {
			if prec == 0 {
				n, err := sc.Evaluate(e)
				if err != nil {
					fatal(err)
				}
				fmt.Println(n.String())
				continue
			}
			ctx, err := sc.PrecisionContext(uint32(prec), rounding)
			if err != nil {
				fatal(err)
			}
			d, err := sc.NPrec(e, ctx)
			if err != nil {
				fatal(err)
			}
			fmt.Println(d.String())
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Uint("prec", 0, "significant decimal digits (0 evaluates in float or exact arithmetic)")
	evalCmd.Flags().String("rounding", "", "decimal rounding mode, e.g. half_even or down")
}
