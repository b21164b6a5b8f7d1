package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in by the linker when building a release, but not when
// installing via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "symcore",
	Short: "A symbolic algebra toolbox.",
	Long: `Simplify, differentiate, evaluate and solve symbolic expressions.
	 Expressions are read in their JSON encoding, one or more per file, or from
	 standard input when no file is given.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionString() string {
	if Version != "" {
		// Built via the release pipeline
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		return info.Main.Version
	}
	// Unknown, perhaps "go run"
	return "(unknown version)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Report the version of this executable.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("symcore %s\n", versionString())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("latex", false, "print results as LaTeX")
	rootCmd.AddCommand(versionCmd)
}
