package table

import (
	"fmt"
	"io"

	"github.com/marshallshelly/tablekit/pkg/schema"
)

// ProjectedColumn names one output column of a join: which side it comes
// from (1 = the receiver, 2 = other) and its name on that side.
type ProjectedColumn struct {
	Name string
	Side int
}

// Join performs an inner equi-join of t (left) and other (right) on
// t.myCol = other.theirCol, grounded on silly.cpp's static table::join: the
// outer loop walks the left column in ascending row-id order, probing the
// right side's index (its active one if bound to theirCol, else a transient
// hash index released when Join returns) for each row's value.
func (t *Table) Join(other *Table, myCol, theirCol string, projection []ProjectedColumn, quiet bool, w io.Writer) (int, error) {
	leftCol, _, err := t.column(myCol)
	if err != nil {
		return 0, err
	}
	rightCol, _, err := other.column(theirCol)
	if err != nil {
		return 0, err
	}
	if leftCol.Kind() != rightCol.Kind() {
		return 0, &KindMismatchError{
			Context: fmt.Sprintf("join %s.%s = %s.%s", t.name, myCol, other.name, theirCol),
			Want:    leftCol.Kind(),
			Got:     rightCol.Kind(),
		}
	}

	probeIdx, transient, err := other.borrowIndex(theirCol)
	if err != nil {
		return 0, err
	}
	_ = transient // nothing to release: a transient index is never attached anywhere

	type projSource struct {
		col  interface {
			Print(i int, sink io.Writer)
		}
	}
	resolve := func(p ProjectedColumn) (projSource, error) {
		var side *Table
		if p.Side == 1 {
			side = t
		} else {
			side = other
		}
		c, _, err := side.column(p.Name)
		if err != nil {
			return projSource{}, err
		}
		return projSource{col: c}, nil
	}

	sources := make([]projSource, len(projection))
	for i, p := range projection {
		src, err := resolve(p)
		if err != nil {
			return 0, err
		}
		sources[i] = src
	}

	if !quiet {
		for i, p := range projection {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, p.Name)
		}
		fmt.Fprint(w, "\n")
	}

	emitted := 0
	n := leftCol.Len()
	for i := 0; i < n; i++ {
		probe := leftCol.Read(i)
		matches := probeIdx.RowsMatching(probe, schema.Eq)
		for _, j := range matches {
			emitted++
			if quiet {
				continue
			}
			for k, p := range projection {
				if k > 0 {
					fmt.Fprint(w, " ")
				}
				row := i
				if p.Side == 2 {
					row = j
				}
				sources[k].col.Print(row, w)
			}
			fmt.Fprint(w, "\n")
		}
	}
	return emitted, nil
}
