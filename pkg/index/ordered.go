package index

import (
	"github.com/google/btree"

	"github.com/marshallshelly/tablekit/pkg/column"
	"github.com/marshallshelly/tablekit/pkg/schema"
)

// bucket is one distinct key's entry in the tree: the key itself plus the
// ascending row ids that hold it, mirroring silly.cpp's
// std::map<T, std::vector<std::size_t>>.
type bucket struct {
	key  schema.Value
	rows []int
}

func (b *bucket) Less(than btree.Item) bool {
	return b.key.Compare(than.(*bucket).key) < 0
}

// orderedIndex answers equality and greater-than against a balanced tree of
// distinct keys, and falls back to a linear scan for less-than per spec.md
// §4.3/§9 Open Question 3 (the original's std::map supports reverse iteration
// just as cheaply, but the chosen B-tree here does not, so less-than is left
// as a scan rather than adding a second traversal direction for one
// operator). Grounded on silly.cpp's bst_index<T>, using
// github.com/google/btree in place of std::map.
type orderedIndex struct {
	col   *column.Column
	tree  *btree.BTree
	stale bool
}

const btreeDegree = 32

func newOrdered(col *column.Column) *orderedIndex {
	o := &orderedIndex{col: col}
	o.rebuild()
	return o
}

func (o *orderedIndex) Variant() Variant { return Ordered }

func (o *orderedIndex) rebuild() {
	o.tree = btree.New(btreeDegree)
	n := o.col.Len()
	for i := 0; i < n; i++ {
		o.insert(o.col.Read(i), i)
	}
	o.stale = false
}

func (o *orderedIndex) insert(v schema.Value, row int) {
	probe := &bucket{key: v}
	if existing := o.tree.Get(probe); existing != nil {
		b := existing.(*bucket)
		b.rows = append(b.rows, row)
		return
	}
	probe.rows = []int{row}
	o.tree.ReplaceOrInsert(probe)
}

func (o *orderedIndex) ensureFresh() {
	if o.stale {
		o.rebuild()
	}
}

func (o *orderedIndex) Distinct() int {
	o.ensureFresh()
	return o.tree.Len()
}

func (o *orderedIndex) RowsMatching(probe schema.Value, op schema.Op) []int {
	o.ensureFresh()
	switch op {
	case schema.Eq:
		item := o.tree.Get(&bucket{key: probe})
		if item == nil {
			return nil
		}
		b := item.(*bucket)
		out := make([]int, len(b.rows))
		copy(out, b.rows)
		return out
	case schema.Gt:
		// Ascend from the first key >= probe, skipping the probe key itself,
		// so we visit every strictly-greater key in ascending key order; the
		// row ids gathered this way are NOT ascending by row id (an earlier
		// row may hold a larger key than a later one), so the predicate-
		// equivalence invariant requires a final sort before returning.
		var ids []int
		o.tree.AscendGreaterOrEqual(&bucket{key: probe}, func(item btree.Item) bool {
			b := item.(*bucket)
			if b.key.Compare(probe) > 0 {
				ids = append(ids, b.rows...)
			}
			return true
		})
		return sortAscending(ids)
	default: // Lt
		return scanColumn(o.col, probe, op)
	}
}

func (o *orderedIndex) OnAppend(v schema.Value) {
	if o.stale {
		o.rebuild()
		return
	}
	row := o.col.Len() - 1
	o.insert(v, row)
}

func (o *orderedIndex) Invalidate() {
	o.stale = true
}
