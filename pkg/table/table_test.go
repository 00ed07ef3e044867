package table

import (
	"bytes"
	"testing"

	"github.com/marshallshelly/tablekit/pkg/index"
	"github.com/marshallshelly/tablekit/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, name string, cols ...[2]string) *Table {
	t.Helper()
	tbl := New(name)
	for _, c := range cols {
		kind, ok := schema.ParseKind(c[1])
		require.True(t, ok)
		require.NoError(t, tbl.AddColumn(c[0], kind))
	}
	return tbl
}

func rowOf(values ...any) []schema.Value {
	out := make([]schema.Value, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case int64:
			out[i] = schema.IntValue(x)
		case string:
			out[i] = schema.StringValue(x)
		case float64:
			out[i] = schema.DoubleValue(x)
		case bool:
			out[i] = schema.BoolValue(x)
		}
	}
	return out
}

// S1 — create, insert, print ALL.
func TestSeedCreateInsertPrintAll(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"id", "int"}, [2]string{"name", "string"})

	first, count, err := tbl.InsertRows([][]schema.Value{
		rowOf(int64(1), "alice"),
		rowOf(int64(2), "bob"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, count)

	var buf bytes.Buffer
	n, err := tbl.Print(&buf, []string{"id", "name"}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "id name\n1 alice\n2 bob\n", buf.String())
}

// S2 — WHERE equality with and without index produces identical output.
func TestSeedEqualityWithAndWithoutIndex(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{
		rowOf(int64(1)), rowOf(int64(2)), rowOf(int64(2)), rowOf(int64(3)),
	})
	require.NoError(t, err)

	filter := &Filter{Column: "v", Op: schema.Eq, Probe: schema.IntValue(2)}

	var before bytes.Buffer
	n1, err := tbl.Print(&before, []string{"v"}, filter, false)
	require.NoError(t, err)

	_, err = tbl.MakeIndex("v", index.Hash)
	require.NoError(t, err)

	var after bytes.Buffer
	n2, err := tbl.Print(&after, []string{"v"}, filter, false)
	require.NoError(t, err)

	assert.Equal(t, 2, n1)
	assert.Equal(t, 2, n2)
	assert.Equal(t, before.String(), after.String())
	assert.Equal(t, "v\n2\n2\n", before.String())
}

// S3 — DELETE invalidates index, subsequent query is correct.
func TestSeedDeleteInvalidatesIndex(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{
		rowOf(int64(1)), rowOf(int64(2)), rowOf(int64(3)), rowOf(int64(2)), rowOf(int64(5)),
	})
	require.NoError(t, err)

	_, err = tbl.MakeIndex("v", index.Ordered)
	require.NoError(t, err)

	deleted, err := tbl.DeleteRows(Filter{Column: "v", Op: schema.Eq, Probe: schema.IntValue(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	var buf bytes.Buffer
	n, err := tbl.Print(&buf, []string{"v"}, &Filter{Column: "v", Op: schema.Gt, Probe: schema.IntValue(1)}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "v\n3\n5\n", buf.String())
	assert.Equal(t, 3, tbl.RowCount())
}

// S5 — bst index answers `>` via ordered map, row-id ascending.
func TestSeedOrderedIndexGreaterThan(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{
		rowOf(int64(5)), rowOf(int64(3)), rowOf(int64(8)), rowOf(int64(1)), rowOf(int64(4)),
	})
	require.NoError(t, err)

	_, err = tbl.MakeIndex("v", index.Ordered)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tbl.Print(&buf, []string{"v"}, &Filter{Column: "v", Op: schema.Gt, Probe: schema.IntValue(3)}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "v\n5\n8\n4\n", buf.String())
}

// S6 — quiet mode suppresses rows but keeps count.
func TestSeedQuietModeSuppressesRows(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"id", "int"}, [2]string{"name", "string"})
	_, _, err := tbl.InsertRows([][]schema.Value{
		rowOf(int64(1), "alice"),
		rowOf(int64(2), "bob"),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tbl.Print(&buf, []string{"id", "name"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, buf.String())
}

func TestInsertRowsRejectsPartialBatchAtomically(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{rowOf(int64(1))})
	require.NoError(t, err)

	_, _, err = tbl.InsertRows([][]schema.Value{
		rowOf(int64(2)),
		rowOf("not-an-int"),
	})
	require.Error(t, err)
	assert.Equal(t, 1, tbl.RowCount(), "failing batch must not mutate any column")
}

func TestAddColumnRejectsDuplicateName(t *testing.T) {
	tbl := New("t")
	require.NoError(t, tbl.AddColumn("v", schema.Int))
	err := tbl.AddColumn("v", schema.String)
	require.Error(t, err)
	var dup *DuplicateColumnError
	assert.ErrorAs(t, err, &dup)
}

func TestMakeIndexIdempotentOnSameColumnAndVariant(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{rowOf(int64(1)), rowOf(int64(1)), rowOf(int64(2))})
	require.NoError(t, err)

	d1, err := tbl.MakeIndex("v", index.Hash)
	require.NoError(t, err)
	d2, err := tbl.MakeIndex("v", index.Hash)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

// A second GENERATE on the same column is a no-op even when it requests a
// different variant than the one already active: only the column binding
// matters, per silly.cpp's table::generate_index.
func TestMakeIndexSameColumnDifferentVariantIsNoOp(t *testing.T) {
	tbl := newTable(t, "t", [2]string{"v", "int"})
	_, _, err := tbl.InsertRows([][]schema.Value{rowOf(int64(1)), rowOf(int64(1)), rowOf(int64(2))})
	require.NoError(t, err)

	d1, err := tbl.MakeIndex("v", index.Hash)
	require.NoError(t, err)

	d2, err := tbl.MakeIndex("v", index.Ordered)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	col, variant, ok := tbl.IndexStatus()
	require.True(t, ok)
	assert.Equal(t, "v", col)
	assert.Equal(t, index.Hash, variant)
}

// S4 — JOIN uses existing index when eligible.
func TestSeedJoinUsesExistingIndex(t *testing.T) {
	left := newTable(t, "l", [2]string{"id", "int"}, [2]string{"name", "string"})
	right := newTable(t, "r", [2]string{"id", "int"}, [2]string{"age", "int"})

	_, _, err := left.InsertRows([][]schema.Value{rowOf(int64(1), "a"), rowOf(int64(2), "b")})
	require.NoError(t, err)
	_, _, err = right.InsertRows([][]schema.Value{
		rowOf(int64(1), int64(10)), rowOf(int64(2), int64(20)), rowOf(int64(2), int64(21)),
	})
	require.NoError(t, err)

	_, err = right.MakeIndex("id", index.Hash)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := left.Join(right, "id", "id", []ProjectedColumn{
		{Name: "name", Side: 1},
		{Name: "age", Side: 2},
	}, false, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "name age\na 10\nb 20\nb 21\n", buf.String())
}

func TestJoinRejectsKindMismatch(t *testing.T) {
	left := newTable(t, "l", [2]string{"id", "int"})
	right := newTable(t, "r", [2]string{"id", "string"})

	var buf bytes.Buffer
	_, err := left.Join(right, "id", "id", nil, true, &buf)
	require.Error(t, err)
	var km *KindMismatchError
	assert.ErrorAs(t, err, &km)
}
