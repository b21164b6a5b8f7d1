package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sc "github.com/njchilds90/symcore"
)

const prompt = "symcore> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "interactive tool session.",
	Long: `Read one tool request per line, in the form "<tool> <params-json>", and print
	 the result. The prompt is shown only when standard input is a terminal.
	 ":tools" lists the tools and ":quit" ends the session.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		repl(os.Stdin, os.Stdout, interactive, getFlag(cmd, "latex"))
	},
}

func repl(in io.Reader, out io.Writer, interactive bool, latex bool) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	//
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return
		case ":tools":
			fmt.Fprintln(out, strings.Join(sc.Tools, " "))
			continue
		}
		req, err := parseRequest(line)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		fmt.Fprintln(out, formatResponse(sc.HandleToolCall(req), latex))
	}
}

// parseRequest splits "<tool> <params-json>"; the params may be omitted.
func parseRequest(line string) (sc.ToolRequest, error) {
	name, rest, _ := strings.Cut(line, " ")
	req := sc.ToolRequest{Tool: name, Params: map[string]interface{}{}}
	if rest = strings.TrimSpace(rest); rest != "" {
		if err := json.Unmarshal([]byte(rest), &req.Params); err != nil {
			return req, err
		}
	}
	return req, nil
}

func formatResponse(resp sc.ToolResponse, latex bool) string {
	switch {
	case resp.Error != "":
		return "error: " + resp.Error
	case latex && resp.LaTeX != "":
		return resp.LaTeX
	case resp.String != "":
		return resp.String
	}
	b, err := json.Marshal(resp.Result)
	if err != nil {
		return "error: " + err.Error()
	}
	return string(b)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(replCmd)
}
