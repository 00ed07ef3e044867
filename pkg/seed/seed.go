// Package seed loads a batch of table definitions and rows from a TOML
// fixture file and replays them as CREATE/INSERT commands at startup. No
// pack repo does this kind of bulk-fixture loading, so the replay-through-
// the-engine's-own-write-path approach here is this repo's own addition;
// it borrows internal/config's decode idiom (BurntSushi/toml into a
// tagged struct) rather than any loader elsewhere in the pack.
package seed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/marshallshelly/tablekit/pkg/dispatcher"
)

// TableFixture describes one seeded table: its CREATE shape and the rows to
// INSERT afterward. Values are kept as their literal command-language
// tokens (not typed TOML values) so a single Rows field can hold mixed-kind
// tuples without per-kind TOML arrays.
type TableFixture struct {
	Name    string     `toml:"name"`
	Columns []string   `toml:"columns"`
	Kinds   []string   `toml:"kinds"`
	Rows    [][]string `toml:"rows"`
}

// Fixture is a full seed file: zero or more table fixtures, applied in
// file order.
type Fixture struct {
	Tables []TableFixture `toml:"table"`
}

// Load reads and decodes a seed fixture file at path.
func Load(path string) (Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seed: open %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML-encoded fixture from r.
func Decode(r io.Reader) (Fixture, error) {
	var fx Fixture
	if _, err := toml.NewDecoder(r).Decode(&fx); err != nil {
		return Fixture{}, fmt.Errorf("seed: decode: %w", err)
	}
	return fx, nil
}

// script renders the fixture as the equivalent CREATE/INSERT command text,
// so it can be replayed through the very same dispatcher a live session
// uses rather than a second, parallel write path into the core.
func (f Fixture) script() string {
	var sb strings.Builder
	for _, tbl := range f.Tables {
		fmt.Fprintf(&sb, "CREATE %s %d", tbl.Name, len(tbl.Columns))
		for _, kind := range tbl.Kinds {
			fmt.Fprintf(&sb, " %s", kind)
		}
		for _, col := range tbl.Columns {
			fmt.Fprintf(&sb, " %s", col)
		}
		sb.WriteString("\n")

		if len(tbl.Rows) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "INSERT INTO %s %d ROWS", tbl.Name, len(tbl.Rows))
		for _, row := range tbl.Rows {
			for _, v := range row {
				fmt.Fprintf(&sb, " %s", v)
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("QUIT\n")
	return sb.String()
}

// Apply replays f's CREATE/INSERT commands against db. Seeding is silent
// startup plumbing, not part of the visible session, so the dispatcher's
// prompts and success lines are captured rather than shown; if any command
// fails, Apply returns the first "Error during ..." line as an error.
func Apply(db *database.Database, f Fixture) error {
	var buf bytes.Buffer
	d := dispatcher.New(db, &buf)
	d.Prompt = ""
	d.Run(strings.NewReader(f.script()))

	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Error") {
			return fmt.Errorf("seed: %s", line)
		}
	}
	return nil
}
