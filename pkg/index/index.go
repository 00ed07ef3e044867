// Package index implements tablekit's secondary index: a map from column
// value to the sorted list of row ids holding that value, in two variants
// (hash and ordered), attached to at most one column of a table.
//
// Grounded on original_source/silly.cpp's index_base / hash_index<T> /
// bst_index<T> hierarchy (the "stale" flag here is that code's
// needs_to_update, and the ordered variant's distinct-keys-then-row-ids
// shape mirrors other_examples' abbychau-mist mist-index.go bucket map),
// with the balanced tree swapped for github.com/google/btree rather than a
// hand-rolled one, per spec.md §9's design note that the variants only need
// to share query capability, not implementation.
package index

import (
	"sort"

	"github.com/marshallshelly/tablekit/pkg/column"
	"github.com/marshallshelly/tablekit/pkg/schema"
)

// Variant distinguishes the two index kinds the GENERATE command can build.
type Variant int

const (
	Hash Variant = iota
	Ordered
)

func (v Variant) String() string {
	if v == Ordered {
		return "bst"
	}
	return "hash"
}

// ParseVariant maps a GENERATE command's index-type token to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "hash":
		return Hash, true
	case "bst":
		return Ordered, true
	default:
		return Variant(0), false
	}
}

// Index is the secondary lookup structure a Table attaches to one column.
// Its map is suspended (stale) rather than patched on deletion, since row ids
// shift; the next call that consults or appends to a stale index rebuilds it
// first, per spec.md §4.3's staleness protocol.
type Index interface {
	Variant() Variant

	// Distinct returns the number of distinct keys, rebuilding first if stale.
	Distinct() int

	// RowsMatching returns the sorted-ascending row ids whose column value
	// stands in relation op to probe. The result doubles as delete_rows'
	// input, so ascending order is a hard contract regardless of which
	// internal path (map lookup or scan) produced it.
	RowsMatching(probe schema.Value, op schema.Op) []int

	// OnAppend is called by the table immediately after a new value is
	// appended to the owner column, so the row id is col.Len()-1.
	OnAppend(v schema.Value)

	// Invalidate marks the index stale; deletion renumbers row ids, so the
	// map can no longer be patched incrementally and must be rebuilt.
	Invalidate()
}

// New builds a fresh index of the requested variant over col's current data.
func New(variant Variant, col *column.Column) Index {
	if variant == Ordered {
		return newOrdered(col)
	}
	return newHash(col)
}

// scanColumn performs the full linear scan fallback shared by both variants
// for the query shapes their map can't serve directly (hash: gt/lt; ordered:
// lt). Row ids come out already ascending since the scan walks row 0..n-1 in
// order — the same order a table-level full scan would produce, which is
// exactly what spec.md §4.4's predicate-equivalence invariant requires.
func scanColumn(col *column.Column, probe schema.Value, op schema.Op) []int {
	n := col.Len()
	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matches(col.Compare(i, probe), op) {
			ids = append(ids, i)
		}
	}
	return ids
}

func matches(cmp int, op schema.Op) bool {
	switch op {
	case schema.Eq:
		return cmp == 0
	case schema.Gt:
		return cmp > 0
	case schema.Lt:
		return cmp < 0
	default:
		return false
	}
}

// sortAscending is used by query paths that gather row ids out of key order
// (the ordered index's greater-than sweep visits buckets in ascending key
// order, not ascending row-id order) and must still hand back ascending row
// ids to satisfy the predicate-equivalence invariant.
func sortAscending(ids []int) []int {
	sort.Ints(ids)
	return ids
}
