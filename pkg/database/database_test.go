package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndLookup(t *testing.T) {
	db := New()
	tbl, err := db.Create("t")
	require.NoError(t, err)
	require.NotNil(t, tbl)

	got, err := db.Lookup("t")
	require.NoError(t, err)
	assert.Same(t, tbl, got)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	db := New()
	_, err := db.Create("t")
	require.NoError(t, err)

	_, err = db.Create("t")
	require.Error(t, err)
	var dup *DuplicateTableError
	assert.ErrorAs(t, err, &dup)
}

func TestLookupUnknownTable(t *testing.T) {
	db := New()
	_, err := db.Lookup("missing")
	require.Error(t, err)
	var unk *UnknownTableError
	assert.ErrorAs(t, err, &unk)
}

func TestRemove(t *testing.T) {
	db := New()
	_, err := db.Create("t")
	require.NoError(t, err)

	require.NoError(t, db.Remove("t"))

	_, err = db.Lookup("t")
	require.Error(t, err)
}

func TestRemoveUnknownTable(t *testing.T) {
	db := New()
	err := db.Remove("missing")
	require.Error(t, err)
	var unk *UnknownTableError
	assert.ErrorAs(t, err, &unk)
}

func TestTableNamesSorted(t *testing.T) {
	db := New()
	_, _ = db.Create("zebra")
	_, _ = db.Create("apple")
	assert.Equal(t, []string{"apple", "zebra"}, db.TableNames())
}
