// Package dispatcher is the thin, external layer spec.md places outside the
// core engineering effort: it tokenizes command lines, validates names and
// arities, invokes pkg/database and pkg/table, and prints the fixed output
// templates of spec.md §6. Grounded on original_source/silly.cpp's main()
// command loop — the prompt, the per-command token sequence, and the exact
// success/error line wording are all taken from there.
package dispatcher

import (
	"fmt"
	"io"
	"strconv"

	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/marshallshelly/tablekit/pkg/index"
	"github.com/marshallshelly/tablekit/pkg/schema"
	"github.com/marshallshelly/tablekit/pkg/table"
)

const defaultPrompt = "% "

// Dispatcher drives one command stream against one database.
type Dispatcher struct {
	db     *database.Database
	out    io.Writer
	Quiet  bool
	Prompt string

	// OnIndexBuilt, if set, is called after a successful GENERATE, for the
	// CLI's --verbose hook (a pp-formatted dump of the new index's owner
	// table). It is never invoked by the protocol itself.
	OnIndexBuilt func(tableName, column string, variant index.Variant)
}

// New creates a dispatcher writing protocol output to out.
func New(db *database.Database, out io.Writer) *Dispatcher {
	return &Dispatcher{db: db, out: out, Prompt: defaultPrompt}
}

// Run reads commands from in until QUIT or end of input, writing protocol
// output to the dispatcher's configured writer. It never returns an error:
// per spec.md §7, a bad command reports one line and the loop resumes at
// the next command.
func (d *Dispatcher) Run(in io.Reader) {
	tok := newTokenizer(in)
	for {
		fmt.Fprint(d.out, d.Prompt)
		cmd, ok := tok.next()
		if !ok {
			return
		}

		switch cmd {
		case "CREATE":
			d.run(tok, "CREATE", d.handleCreate)
		case "REMOVE":
			d.run(tok, "REMOVE", d.handleRemove)
		case "INSERT":
			d.run(tok, "INSERT", d.handleInsert)
		case "PRINT":
			d.run(tok, "PRINT", d.handlePrint)
		case "DELETE":
			d.run(tok, "DELETE", d.handleDelete)
		case "GENERATE":
			d.run(tok, "GENERATE", d.handleGenerate)
		case "JOIN":
			d.run(tok, "JOIN", d.handleJoin)
		case "QUIT":
			fmt.Fprint(d.out, "Thanks for being silly!\n")
			return
		default:
			fmt.Fprint(d.out, "Error: unrecognized command\n")
			tok.skipRestOfLine()
		}
	}
}

func (d *Dispatcher) run(tok *tokenizer, cmd string, handler func(*tokenizer) error) {
	if err := handler(tok); err != nil {
		fmt.Fprintf(d.out, "Error during %s: %s\n", cmd, err)
		tok.skipRestOfLine()
	}
}

func (d *Dispatcher) handleCreate(tok *tokenizer) error {
	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	countTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	n, err := strconv.Atoi(countTok)
	if err != nil {
		return fmt.Errorf("%q is not a valid column count", countTok)
	}

	if _, err := d.db.Lookup(name); err == nil {
		return errTableExists(name)
	}

	kinds := make([]schema.Kind, n)
	for i := 0; i < n; i++ {
		kindTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		k, ok := schema.ParseKind(kindTok)
		if !ok {
			return errBadType(kindTok)
		}
		kinds[i] = k
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		colTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		names[i] = colTok
	}

	tbl, err := d.db.Create(name)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := tbl.AddColumn(names[i], kinds[i]); err != nil {
			d.db.Remove(name) // leave no half-built table behind
			return err
		}
	}

	fmt.Fprintf(d.out, "New table %s with column(s)", name)
	for _, colName := range names {
		fmt.Fprintf(d.out, " %s", colName)
	}
	fmt.Fprint(d.out, " created \n")
	return nil
}

func (d *Dispatcher) handleRemove(tok *tokenizer) error {
	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if err := d.db.Remove(name); err != nil {
		return errUnknownTable(name)
	}
	fmt.Fprintf(d.out, "Table %s removed\n", name)
	return nil
}

func (d *Dispatcher) handleInsert(tok *tokenizer) error {
	kw, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "INTO" {
		return errBadKeyword("INTO", kw)
	}

	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	tbl, err := d.db.Lookup(name)
	if err != nil {
		return errUnknownTable(name)
	}

	countTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	n, err := strconv.Atoi(countTok)
	if err != nil {
		return fmt.Errorf("%q is not a valid row count", countTok)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "ROWS" {
		return errBadKeyword("ROWS", kw)
	}

	kinds := tbl.ColumnKinds()
	batch := make([][]schema.Value, n)
	for r := 0; r < n; r++ {
		row := make([]schema.Value, len(kinds))
		for c, kind := range kinds {
			valTok, ok := tok.next()
			if !ok {
				return errTruncated()
			}
			v, err := schema.Parse(kind, valTok)
			if err != nil {
				return err
			}
			row[c] = v
		}
		batch[r] = row
	}

	first, count, err := tbl.InsertRows(batch)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Added %d rows to %s from position %d to %d\n", count, name, first, first+count-1)
	return nil
}

func (d *Dispatcher) handlePrint(tok *tokenizer) error {
	kw, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "FROM" {
		return errBadKeyword("FROM", kw)
	}

	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	tbl, err := d.db.Lookup(name)
	if err != nil {
		return errUnknownTable(name)
	}

	countTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	k, err := strconv.Atoi(countTok)
	if err != nil {
		return fmt.Errorf("%q is not a valid column count", countTok)
	}

	projection := make([]string, k)
	for i := 0; i < k; i++ {
		colTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		if !tbl.HasColumn(colTok) {
			return errUnknownColumn(colTok, name)
		}
		projection[i] = colTok
	}

	mode, ok := tok.next()
	if !ok {
		return errTruncated()
	}

	var filter *table.Filter
	switch mode {
	case "ALL":
		filter = nil
	case "WHERE":
		colTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		if !tbl.HasColumn(colTok) {
			return errUnknownColumn(colTok, name)
		}
		opTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		op, ok := schema.ParseOp(opTok)
		if !ok {
			return errBadOperator(opTok)
		}
		kind, _ := tbl.ColumnKind(colTok)
		valTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		probe, err := schema.Parse(kind, valTok)
		if err != nil {
			return err
		}
		filter = &table.Filter{Column: colTok, Op: op, Probe: probe}
	default:
		return errBadKeyword("ALL or WHERE", mode)
	}

	n, err := tbl.Print(d.out, projection, filter, d.Quiet)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Printed %d matching rows from %s\n", n, name)
	return nil
}

func (d *Dispatcher) handleDelete(tok *tokenizer) error {
	kw, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "FROM" {
		return errBadKeyword("FROM", kw)
	}

	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	tbl, err := d.db.Lookup(name)
	if err != nil {
		return errUnknownTable(name)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "WHERE" {
		return errBadKeyword("WHERE", kw)
	}

	colTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if !tbl.HasColumn(colTok) {
		return errUnknownColumn(colTok, name)
	}

	opTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	op, ok := schema.ParseOp(opTok)
	if !ok {
		return errBadOperator(opTok)
	}

	kind, _ := tbl.ColumnKind(colTok)
	valTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	probe, err := schema.Parse(kind, valTok)
	if err != nil {
		return err
	}

	n, err := tbl.DeleteRows(table.Filter{Column: colTok, Op: op, Probe: probe})
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Deleted %d rows from %s\n", n, name)
	return nil
}

func (d *Dispatcher) handleGenerate(tok *tokenizer) error {
	kw, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "FOR" {
		return errBadKeyword("FOR", kw)
	}

	name, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	tbl, err := d.db.Lookup(name)
	if err != nil {
		return errUnknownTable(name)
	}

	variantTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	variant, ok := index.ParseVariant(variantTok)
	if !ok {
		return fmt.Errorf("%q is not a valid index type (want hash or bst)", variantTok)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "INDEX" {
		return errBadKeyword("INDEX", kw)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "ON" {
		return errBadKeyword("ON", kw)
	}

	colTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if !tbl.HasColumn(colTok) {
		return errUnknownColumn(colTok, name)
	}

	distinct, err := tbl.MakeIndex(colTok, variant)
	if err != nil {
		return err
	}

	if d.OnIndexBuilt != nil {
		d.OnIndexBuilt(name, colTok, variant)
	}

	fmt.Fprintf(d.out, "Created %s index for table %s on column %s, with %d distinct keys\n", variant, name, colTok, distinct)
	return nil
}

func (d *Dispatcher) handleJoin(tok *tokenizer) error {
	name1, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	left, err := d.db.Lookup(name1)
	if err != nil {
		return errUnknownTable(name1)
	}

	kw, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "AND" {
		return errBadKeyword("AND", kw)
	}

	name2, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	right, err := d.db.Lookup(name2)
	if err != nil {
		return errUnknownTable(name2)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "WHERE" {
		return errBadKeyword("WHERE", kw)
	}

	col1, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if !left.HasColumn(col1) {
		return errUnknownColumn(col1, name1)
	}

	eq, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if eq != "=" {
		return errBadKeyword("=", eq)
	}

	col2, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	if !right.HasColumn(col2) {
		return errUnknownColumn(col2, name2)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "AND" {
		return errBadKeyword("AND", kw)
	}

	kw, ok = tok.next()
	if !ok {
		return errTruncated()
	}
	if kw != "PRINT" {
		return errBadKeyword("PRINT", kw)
	}

	countTok, ok := tok.next()
	if !ok {
		return errTruncated()
	}
	n, err := strconv.Atoi(countTok)
	if err != nil {
		return fmt.Errorf("%q is not a valid column count", countTok)
	}

	projection := make([]table.ProjectedColumn, n)
	for i := 0; i < n; i++ {
		colTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		sideTok, ok := tok.next()
		if !ok {
			return errTruncated()
		}
		side, err := strconv.Atoi(sideTok)
		if err != nil || (side != 1 && side != 2) {
			return errBadSide(sideTok)
		}

		owner, ownerName := left, name1
		if side == 2 {
			owner, ownerName = right, name2
		}
		if !owner.HasColumn(colTok) {
			return errUnknownColumn(colTok, ownerName)
		}
		projection[i] = table.ProjectedColumn{Name: colTok, Side: side}
	}

	count, err := left.Join(right, col1, col2, projection, d.Quiet, d.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Printed %d rows from joining %s to %s\n", count, name1, name2)
	return nil
}
