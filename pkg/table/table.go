// Package table implements the named collection of same-length columns that
// sits above pkg/column and pkg/index: insert, predicate-scan print,
// predicate-scan delete, index construction, and equi-join.
//
// Grounded on original_source/silly.cpp's table class (insert_rows,
// do_print, delete_rows, generate_index, and the static join helper), with
// the SQL-condition vocabulary of the teacher's now-removed
// pkg/builder/where.go narrowed down to the single-column predicate this
// spec's grammar actually needs (see Filter in predicate.go).
package table

import (
	"fmt"
	"io"

	"github.com/marshallshelly/tablekit/pkg/column"
	"github.com/marshallshelly/tablekit/pkg/index"
	"github.com/marshallshelly/tablekit/pkg/schema"
)

// DuplicateColumnError reports an AddColumn call naming a column that
// already exists in the table.
type DuplicateColumnError struct {
	Table  string
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("table %s already has a column named %s", e.Table, e.Column)
}

// UnknownColumnError reports a reference to a column the table doesn't have.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("table %s has no column named %s", e.Table, e.Column)
}

// RowArityError reports an insert batch whose tuple width doesn't match the
// table's column count.
type RowArityError struct {
	Table    string
	Expected int
	Got      int
}

func (e *RowArityError) Error() string {
	return fmt.Sprintf("table %s expects %d values per row, got %d", e.Table, e.Expected, e.Got)
}

// KindMismatchError reports an insert value, or a join's two key columns,
// disagreeing in kind.
type KindMismatchError struct {
	Context string
	Want    schema.Kind
	Got     schema.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s: expected kind %s, got %s", e.Context, e.Want, e.Got)
}

// Table is a named, ordered collection of columns that share a row count,
// plus at most one active secondary index bound to one of those columns.
type Table struct {
	name      string
	columns   []*column.Column
	positions map[string]int

	idx       index.Index
	idxColumn string // name of the column idx is bound to; meaningless if idx == nil
}

// New creates an empty, column-less table. Columns are added with AddColumn
// before the first insert.
func New(name string) *Table {
	return &Table{name: name, positions: make(map[string]int)}
}

func (t *Table) Name() string { return t.name }

// ColumnNames returns the table's columns in canonical (declaration) order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// RowCount returns the table's shared row count, 0 for a column-less table.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// HasColumn reports whether the table has a column named name, for the
// dispatcher's own "does not name a column in <tbl>" validation.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.positions[name]
	return ok
}

// ColumnKind returns the kind of the named column.
func (t *Table) ColumnKind(name string) (schema.Kind, bool) {
	pos, ok := t.positions[name]
	if !ok {
		return 0, false
	}
	return t.columns[pos].Kind(), true
}

// ColumnKinds returns every column's kind in canonical declaration order, for
// parsing an INSERT batch's flat value list.
func (t *Table) ColumnKinds() []schema.Kind {
	kinds := make([]schema.Kind, len(t.columns))
	for i, c := range t.columns {
		kinds[i] = c.Kind()
	}
	return kinds
}

// AddColumn appends a new, empty column. Spec.md §4.4.1 restricts this to
// table-creation time (before the first insert); callers are expected to
// enforce that at the dispatcher layer, since the table itself has no way to
// distinguish "freshly created" from "emptied by delete".
func (t *Table) AddColumn(name string, kind schema.Kind) error {
	if _, exists := t.positions[name]; exists {
		return &DuplicateColumnError{Table: t.name, Column: name}
	}
	t.positions[name] = len(t.columns)
	t.columns = append(t.columns, column.New(name, kind))
	return nil
}

func (t *Table) column(name string) (*column.Column, int, error) {
	pos, ok := t.positions[name]
	if !ok {
		return nil, 0, &UnknownColumnError{Table: t.name, Column: name}
	}
	return t.columns[pos], pos, nil
}

// InsertRows appends N row tuples, each of arity len(columns), to every
// column in lockstep. The whole batch is validated against shape and kind
// before any column is mutated, so a malformed batch leaves the table
// untouched (spec.md §7's no-partial-mutation policy). Returns the
// contiguous row range [first, first+count).
func (t *Table) InsertRows(batch [][]schema.Value) (first, count int, err error) {
	for _, row := range batch {
		if len(row) != len(t.columns) {
			return 0, 0, &RowArityError{Table: t.name, Expected: len(t.columns), Got: len(row)}
		}
		for i, v := range row {
			if v.Kind != t.columns[i].Kind() {
				return 0, 0, &KindMismatchError{
					Context: fmt.Sprintf("table %s column %s", t.name, t.columns[i].Name()),
					Want:    t.columns[i].Kind(),
					Got:     v.Kind,
				}
			}
		}
	}

	first = t.RowCount()
	for _, row := range batch {
		for i, v := range row {
			t.columns[i].Append(v)
			if t.idx != nil && t.columns[i].Name() == t.idxColumn {
				t.idx.OnAppend(v)
			}
		}
	}
	return first, len(batch), nil
}

// rowsMatching applies the selection rule common to Print and DeleteRows:
// use the active index if it's bound to the filter column, else scan.
func (t *Table) rowsMatching(f Filter) ([]int, error) {
	col, _, err := t.column(f.Column)
	if err != nil {
		return nil, err
	}
	if col.Kind() != f.Probe.Kind {
		return nil, &KindMismatchError{
			Context: fmt.Sprintf("table %s column %s filter", t.name, f.Column),
			Want:    col.Kind(),
			Got:     f.Probe.Kind,
		}
	}
	if t.idx != nil && t.idxColumn == f.Column {
		return t.idx.RowsMatching(f.Probe, f.Op), nil
	}
	return scanColumn(col, f.Probe, f.Op), nil
}

func scanColumn(col *column.Column, probe schema.Value, op schema.Op) []int {
	n := col.Len()
	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		cmp := col.Compare(i, probe)
		match := false
		switch op {
		case schema.Eq:
			match = cmp == 0
		case schema.Gt:
			match = cmp > 0
		case schema.Lt:
			match = cmp < 0
		}
		if match {
			ids = append(ids, i)
		}
	}
	return ids
}

// Print writes the projected columns of the selected rows to w (header then
// one line per row, space-separated), then returns the number of matching
// rows. If filter is nil every row is selected ("ALL"). When quiet is true,
// no header or row lines are written, but the count is still computed and
// returned.
func (t *Table) Print(w io.Writer, projection []string, filter *Filter, quiet bool) (int, error) {
	cols := make([]*column.Column, len(projection))
	for i, name := range projection {
		c, _, err := t.column(name)
		if err != nil {
			return 0, err
		}
		cols[i] = c
	}

	var ids []int
	if filter == nil {
		n := t.RowCount()
		ids = make([]int, n)
		for i := range ids {
			ids[i] = i
		}
	} else {
		var err error
		ids, err = t.rowsMatching(*filter)
		if err != nil {
			return 0, err
		}
	}

	if !quiet {
		for i, name := range projection {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, name)
		}
		fmt.Fprint(w, "\n")
		for _, row := range ids {
			for i, c := range cols {
				if i > 0 {
					fmt.Fprint(w, " ")
				}
				c.Print(row, w)
			}
			fmt.Fprint(w, "\n")
		}
	}
	return len(ids), nil
}

// DeleteRows removes every row matching filter from every column, via the
// same selection rule as Print. If an active index exists, it is marked
// stale exactly once, regardless of which column it's bound to — deletion
// renumbers row ids across every column, so any index the table holds is
// invalidated by the mutation, not just one whose column happens to match
// the filter.
func (t *Table) DeleteRows(filter Filter) (int, error) {
	ids, err := t.rowsMatching(filter)
	if err != nil {
		return 0, err
	}
	for _, c := range t.columns {
		c.DeleteRows(ids)
	}
	if t.idx != nil {
		t.idx.Invalidate()
	}
	return len(ids), nil
}

// MakeIndex builds a fresh index of variant on col, replacing any existing
// active index. If an active index is already bound to col, it is left in
// place as-is and its distinct() is returned unchanged, regardless of the
// requested variant: silly.cpp's table::generate_index only ever compares
// against m_index->ref before short-circuiting, never the requested type
// (spec.md §4.4.5).
func (t *Table) MakeIndex(col string, variant index.Variant) (int, error) {
	c, _, err := t.column(col)
	if err != nil {
		return 0, err
	}
	if t.idx != nil && t.idxColumn == col {
		return t.idx.Distinct(), nil
	}
	t.idx = index.New(variant, c)
	t.idxColumn = col
	return t.idx.Distinct(), nil
}

// IndexStatus reports the name and variant of the table's active index, if
// any, for the read-only TUI inspector (spec.md's "active index" glossary
// entry). ok is false if the table has no active index.
func (t *Table) IndexStatus() (column string, variant index.Variant, ok bool) {
	if t.idx == nil {
		return "", 0, false
	}
	return t.idxColumn, t.idx.Variant(), true
}

// Snapshot renders every row of every column as text, in canonical column
// and row order, for the TUI inspector's read-only grid — it never mutates
// the table and holds no reference back into it.
func (t *Table) Snapshot() (columns []string, rows [][]string) {
	columns = t.ColumnNames()
	n := t.RowCount()
	rows = make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.columns))
		for c, col := range t.columns {
			row[c] = col.Read(i).Render()
		}
		rows[i] = row
	}
	return columns, rows
}

// borrowIndex returns the table's active index if it's bound to col,
// otherwise builds and returns a transient hash index that the join can
// discard on return. The bool reports whether the index is transient (and
// so must be discarded by the caller rather than left attached).
func (t *Table) borrowIndex(col string) (index.Index, bool, error) {
	c, _, err := t.column(col)
	if err != nil {
		return nil, false, err
	}
	if t.idx != nil && t.idxColumn == col {
		return t.idx, false, nil
	}
	return index.New(index.Hash, c), true, nil
}
