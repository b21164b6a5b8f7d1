package main

import (
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] [expr_file(s)]",
	Short: "solve polynomial equations of degree at most two.",
	Long: `Print the roots of each equation, one per line. An expression which is not an
	 equation is solved for being zero.`,
	Run: func(cmd *cobra.Command, args []string) {
		name := getString(cmd, "var")
		//
		for _, e := range readExprs(args) {
			roots, err := sc.Solve(e, sc.LookupVariable(e, name))
			if err != nil {
				fatal(err)
			}
			for _, r := range roots {
				printExpr(cmd, r)
			}
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().String("var", "x", "unknown to solve for")
}
