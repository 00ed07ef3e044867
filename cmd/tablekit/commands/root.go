// Package commands builds tablekit's cobra command tree: the root REPL
// command plus the `tui` inspector subcommand. Ported from the teacher's
// cmd/pebble/commands/root.go — same Execute()/init() shape, global flags
// swapped for this shell's own (quiet, verbose, config, seed).
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/tablekit/internal/config"
	"github.com/marshallshelly/tablekit/cmd/tablekit/output"
)

var (
	configPath string
	seedPath   string
	quiet      bool
	verbose    bool
)

// rootCmd is tablekit's default REPL command.
var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "An in-memory relational database shell",
	Long: `tablekit is an interactive, in-memory relational database shell: create typed
tables, insert rows, query with simple predicates, delete rows, join two
tables on an equality condition, and build secondary indexes (hash or
ordered) that accelerate subsequent queries on a column.`,
	Version: "0.1.0",
	RunE:    runREPL,
}

// Execute runs the root command.
func Execute() {
	// Unknown long options are silently ignored by the original interpreter;
	// this repo preserves that (spec.md §9 Open Question 2).
	rootCmd.FParseErrWhitelist.UnknownFlags = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress row output for PRINT and JOIN")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "dump table/index state to stderr after GENERATE")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "path to a TOML seed fixture replayed before the REPL starts")

	rootCmd.AddCommand(tuiCmd)
}

// loadConfig resolves the effective configuration: built-in defaults,
// overridden by --config's file, overridden by explicit flags.
func loadConfig() config.Config {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			output.Error("%v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if quiet {
		cfg.Quiet = true
	}
	if seedPath != "" {
		cfg.SeedFile = seedPath
	}
	return cfg
}
