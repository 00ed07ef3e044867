package commands

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/marshallshelly/tablekit/pkg/dispatcher"
	"github.com/marshallshelly/tablekit/pkg/index"
	"github.com/marshallshelly/tablekit/pkg/seed"
)

// runREPL wires a fresh Database and Dispatcher to stdin/stdout, optionally
// replaying a seed fixture first, and reads commands until QUIT or EOF.
func runREPL(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	db := database.New()
	if err := applySeed(db, cfg.SeedFile); err != nil {
		return err
	}

	d := dispatcher.New(db, os.Stdout)
	d.Prompt = cfg.Prompt
	d.Quiet = cfg.Quiet
	if verbose {
		d.OnIndexBuilt = verboseIndexDump(db)
	}

	d.Run(os.Stdin)
	return nil
}

func applySeed(db *database.Database, path string) error {
	if path == "" {
		return nil
	}
	fixture, err := seed.Load(path)
	if err != nil {
		return err
	}
	return seed.Apply(db, fixture)
}

// verboseIndexDump builds the --verbose hook: a pp-formatted dump of the
// table that just gained a new index, printed to stderr so it never mixes
// into the protocol's stdout stream (spec.md §6's "--verbose" addition).
func verboseIndexDump(db *database.Database) func(tableName, column string, variant index.Variant) {
	return func(tableName, column string, variant index.Variant) {
		tbl, err := db.Lookup(tableName)
		if err != nil {
			return
		}
		fmt.Fprintf(os.Stderr, "GENERATE %s index on %s.%s:\n", variant, tableName, column)
		fmt.Fprintln(os.Stderr, pp.Sprint(tbl))
	}
}
