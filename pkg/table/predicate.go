package table

import "github.com/marshallshelly/tablekit/pkg/schema"

// Filter is a single-column predicate: column op probe. It's the narrowed
// descendant of the teacher's pkg/builder Condition (which modeled arbitrary
// AND/OR/NOT trees of SQL conditions for query-building); this grammar only
// ever expresses one column compared to one literal, so the tree collapsed
// down to three fields.
type Filter struct {
	Column string
	Op     schema.Op
	Probe  schema.Value
}
