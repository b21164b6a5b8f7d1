package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

var toolCmd = &cobra.Command{
	Use:   "tool [flags] [request_file(s)]",
	Short: "answer JSON tool requests.",
	Long: `Read a stream of {"tool": ..., "params": {...}} requests and write one JSON
	 response per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "list") {
			fmt.Println(strings.Join(sc.Tools, "\n"))
			return
		}
		out := json.NewEncoder(os.Stdout)
		if len(args) == 0 {
			if err := serveTools(os.Stdin, out); err != nil {
				fatal(err)
			}
			return
		}
		for _, name := range args {
			f, err := os.Open(name)
			if err != nil {
				fatal(err)
			}
			err = serveTools(f, out)
			f.Close()
			if err != nil {
				fatal(errors.Wrapf(err, "%s", name))
			}
		}
	},
}

// serveTools answers every request read from r.
func serveTools(r io.Reader, out *json.Encoder) error {
	dec := json.NewDecoder(r)
	for {
		var req sc.ToolRequest
		err := dec.Decode(&req)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		resp := sc.HandleToolCall(req)
		if resp.Error != "" {
			log.WithField("tool", req.Tool).Debug(resp.Error)
		}
		if err := out.Encode(resp); err != nil {
			return err
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(toolCmd)
	toolCmd.Flags().Bool("list", false, "list the available tools")
}
