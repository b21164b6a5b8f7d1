package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] [expr_file(s)]",
	Short: "simplify expressions.",
	Long: `Rewrite each expression into the smallest equivalent form reachable by
	 expansion, fraction combination, cancellation and trigonometric identities.`,
	Run: func(cmd *cobra.Command, args []string) {
		passes := int(getUint(cmd, "passes"))
		//
		for i, e := range readExprs(args) {
			opts := sc.SimplifyOptions{MaxPasses: passes, Logger: log.WithField("expr", i+1)}
			out, err := sc.SimplifyWith(e, opts)
			if err != nil {
				fatal(err)
			}
			printExpr(cmd, out)
		}
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [expr_file(s)]",
	Short: "expand products and integer powers of sums.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, e := range readExprs(args) {
			printExpr(cmd, sc.Expand(e))
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(expandCmd)
	simplifyCmd.Flags().Uint("passes", 0, "bound the rewrite rounds (0 uses the default)")
}
