package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/tablekit/cmd/tablekit/output"
	"github.com/marshallshelly/tablekit/cmd/tablekit/tui"
	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/marshallshelly/tablekit/pkg/dispatcher"
)

var tuiScriptPath string

// tuiCmd runs a script file to build up a database, then opens the
// read-only inspector on the result.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run a script and browse the resulting tables interactively",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiScriptPath, "script", "", "path to a command script to run before opening the inspector (required unless a seed file is configured)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if tuiScriptPath == "" && cfg.SeedFile == "" {
		return errNoScript
	}

	db := database.New()
	if err := applySeed(db, cfg.SeedFile); err != nil {
		return err
	}

	if tuiScriptPath != "" {
		f, err := os.Open(tuiScriptPath)
		if err != nil {
			return err
		}
		defer f.Close()

		d := dispatcher.New(db, io.Discard)
		d.Prompt = ""
		d.Run(f)
	}

	output.Info("opening inspector over %d table(s)", len(db.TableNames()))
	return tui.Run(db)
}
