package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getStrings(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// fatal reports err and exits.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// readExprs decodes every expression held in the named files, or on
// standard input when there are none.
func readExprs(args []string) []sc.Expr {
	if len(args) == 0 {
		exprs, err := decodeExprs(os.Stdin, "stdin")
		if err != nil {
			fatal(err)
		}
		return exprs
	}
	var exprs []sc.Expr
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			fatal(err)
		}
		es, err := decodeExprs(f, name)
		f.Close()
		if err != nil {
			fatal(err)
		}
		exprs = append(exprs, es...)
	}
	return exprs
}

// decodeExprs reads a stream of JSON expression objects.
func decodeExprs(r io.Reader, source string) ([]sc.Expr, error) {
	var exprs []sc.Expr
	dec := json.NewDecoder(r)
	for {
		var data map[string]interface{}
		err := dec.Decode(&data)
		if err == io.EOF {
			return exprs, nil
		} else if err != nil {
			return nil, errors.Wrapf(err, "%s", source)
		}
		e, err := sc.FromJSON(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: expression %d", source, len(exprs)+1)
		}
		exprs = append(exprs, e)
	}
}

func printExpr(cmd *cobra.Command, e sc.Expr) {
	if getFlag(cmd, "latex") {
		fmt.Println(e.LaTeX())
	} else {
		fmt.Println(e.String())
	}
}
