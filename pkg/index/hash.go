package index

import (
	"github.com/marshallshelly/tablekit/pkg/column"
	"github.com/marshallshelly/tablekit/pkg/schema"
)

// hashIndex answers equality in O(1) via a Go map from HashKey to the
// ascending row ids holding that key, and falls back to a linear scan for
// greater-than/less-than, neither of which a hash bucket can order.
// Grounded on silly.cpp's hash_index<T>, which is likewise equality-only and
// defers everything else to the base class's scan.
type hashIndex struct {
	col     *column.Column
	buckets map[any][]int
	stale   bool
}

func newHash(col *column.Column) *hashIndex {
	h := &hashIndex{col: col}
	h.rebuild()
	return h
}

func (h *hashIndex) Variant() Variant { return Hash }

func (h *hashIndex) rebuild() {
	n := h.col.Len()
	h.buckets = make(map[any][]int, n)
	for i := 0; i < n; i++ {
		k := h.col.Read(i).HashKey()
		h.buckets[k] = append(h.buckets[k], i)
	}
	h.stale = false
}

func (h *hashIndex) ensureFresh() {
	if h.stale {
		h.rebuild()
	}
}

func (h *hashIndex) Distinct() int {
	h.ensureFresh()
	return len(h.buckets)
}

func (h *hashIndex) RowsMatching(probe schema.Value, op schema.Op) []int {
	h.ensureFresh()
	if op != schema.Eq {
		return scanColumn(h.col, probe, op)
	}
	bucket := h.buckets[probe.HashKey()]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]int, len(bucket))
	copy(out, bucket)
	return out
}

func (h *hashIndex) OnAppend(v schema.Value) {
	if h.stale {
		h.rebuild() // the owner column already holds the new row
		return
	}
	row := h.col.Len() - 1
	k := v.HashKey()
	h.buckets[k] = append(h.buckets[k], row)
}

func (h *hashIndex) Invalidate() {
	h.stale = true
}
