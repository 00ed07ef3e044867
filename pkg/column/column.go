// Package column implements the typed-column storage unit of tablekit's
// engine: a named, ordered sequence of values of one fixed Kind, stored as a
// homogeneous Go slice rather than a slice of boxed Values.
//
// Grounded on original_source/silly.cpp's column<T> template: append,
// positional compare, and a single-pass compaction delete_rows that walks the
// sorted removal list and the data slice in lockstep.
package column

import (
	"fmt"
	"io"

	"github.com/marshallshelly/tablekit/pkg/schema"
)

// Column is a named sequence of values of one kind. Exactly one of the
// typed slices below is populated, selected by Kind at construction time.
type Column struct {
	name string
	kind schema.Kind

	ints    []int64
	doubles []float64
	bools   []bool
	strings []string
}

// New creates an empty column of the given name and kind.
func New(name string, kind schema.Kind) *Column {
	return &Column{name: name, kind: kind}
}

func (c *Column) Name() string     { return c.name }
func (c *Column) Kind() schema.Kind { return c.kind }

// Len returns the column's row count.
func (c *Column) Len() int {
	switch c.kind {
	case schema.Int:
		return len(c.ints)
	case schema.Double:
		return len(c.doubles)
	case schema.Bool:
		return len(c.bools)
	case schema.String:
		return len(c.strings)
	default:
		return 0
	}
}

// Append pushes v onto the end of the column and returns the row id of the
// new element (the column's prior length). v must share c.Kind().
func (c *Column) Append(v schema.Value) int {
	row := c.Len()
	switch c.kind {
	case schema.Int:
		c.ints = append(c.ints, v.I)
	case schema.Double:
		c.doubles = append(c.doubles, v.D)
	case schema.Bool:
		c.bools = append(c.bools, v.B)
	case schema.String:
		c.strings = append(c.strings, v.S)
	}
	return row
}

// Read returns the value at row i.
func (c *Column) Read(i int) schema.Value {
	switch c.kind {
	case schema.Int:
		return schema.IntValue(c.ints[i])
	case schema.Double:
		return schema.DoubleValue(c.doubles[i])
	case schema.Bool:
		return schema.BoolValue(c.bools[i])
	case schema.String:
		return schema.StringValue(c.strings[i])
	default:
		return schema.Value{}
	}
}

// Print writes the value at row i to sink, with no trailing separator.
func (c *Column) Print(i int, sink io.Writer) {
	fmt.Fprint(sink, c.Read(i).Render())
}

// Compare performs the three-way comparison of data[i] against probe, per
// spec.md §4.2: O(1) for scalars, O(min length) for strings (delegated to Go's
// native string comparison).
func (c *Column) Compare(i int, probe schema.Value) int {
	return c.Read(i).Compare(probe)
}

// DeleteRows removes exactly the positions listed in ids, which must be
// strictly increasing and in bounds, in a single O(n) pass that preserves the
// relative order of the surviving elements.
func (c *Column) DeleteRows(ids []int) {
	if len(ids) == 0 {
		return
	}
	switch c.kind {
	case schema.Int:
		c.ints = compact(c.ints, ids)
	case schema.Double:
		c.doubles = compact(c.doubles, ids)
	case schema.Bool:
		c.bools = compact(c.bools, ids)
	case schema.String:
		c.strings = compact(c.strings, ids)
	}
}

// compact removes the (sorted, ascending) positions in ids from data in a
// single pass, translating silly.cpp's column<T>::delete_rows loop directly:
// walk data and the removal list together, copying survivors down into the
// gap left by removed rows.
func compact[T any](data []T, ids []int) []T {
	cur := 0
	next := 0
	for i := range data {
		if next < len(ids) && ids[next] == i {
			next++
			continue
		}
		data[cur] = data[i]
		cur++
	}
	return data[:cur]
}

// MakeIndex is implemented in package index to avoid a dependency cycle
// (index needs to read Column, Column's constructor-time index creation
// would need to import index). See index.New, which takes the variant and a
// *Column as its owner.
