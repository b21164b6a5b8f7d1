package main

import (
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] [expr_file(s)]",
	Short: "differentiate expressions.",
	Long: `Differentiate each expression with respect to the variable given by --var,
	 --order times, and simplify the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		name := getString(cmd, "var")
		order := int(getUint(cmd, "order"))
		//
		for _, e := range readExprs(args) {
			d, err := sc.DiffN(e, sc.LookupVariable(e, name), order)
			if err != nil {
				fatal(err)
			}
			printExpr(cmd, sc.Simplify(d))
		}
	},
}

var taylorCmd = &cobra.Command{
	Use:   "taylor [flags] [expr_file(s)]",
	Short: "expand expressions as Taylor polynomials.",
	Run: func(cmd *cobra.Command, args []string) {
		name := getString(cmd, "var")
		order := int(getUint(cmd, "order"))
		at := sc.NumOf(sc.Int(getInt64(cmd, "at")))
		//
		for _, e := range readExprs(args) {
			s, err := sc.Taylor(e, sc.LookupVariable(e, name), at, order)
			if err != nil {
				fatal(err)
			}
			printExpr(cmd, s)
		}
	},
}

var limitCmd = &cobra.Command{
	Use:   "limit [flags] [expr_file(s)]",
	Short: "compute limits at an integer point.",
	Run: func(cmd *cobra.Command, args []string) {
		name := getString(cmd, "var")
		at := sc.NumOf(sc.Int(getInt64(cmd, "at")))
		//
		for _, e := range readExprs(args) {
			l, err := sc.Limit(e, sc.LookupVariable(e, name), at)
			if err != nil {
				fatal(err)
			}
			printExpr(cmd, l)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(taylorCmd)
	rootCmd.AddCommand(limitCmd)
	diffCmd.Flags().String("var", "x", "differentiation variable")
	diffCmd.Flags().UintP("order", "n", 1, "derivative order")
	taylorCmd.Flags().String("var", "x", "expansion variable")
	taylorCmd.Flags().UintP("order", "n", 5, "highest power kept")
	taylorCmd.Flags().Int64("at", 0, "expansion point")
	limitCmd.Flags().String("var", "x", "limit variable")
	limitCmd.Flags().Int64("at", 0, "limit point")
}
