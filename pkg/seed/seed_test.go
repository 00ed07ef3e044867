package seed

import (
	"strings"
	"testing"

	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndApply(t *testing.T) {
	fx, err := Decode(strings.NewReader(`
[[table]]
name = "t"
columns = ["id", "name"]
kinds = ["int", "string"]
rows = [["1", "alice"], ["2", "bob"]]
`))
	require.NoError(t, err)
	require.Len(t, fx.Tables, 1)

	db := database.New()
	require.NoError(t, Apply(db, fx))

	tbl, err := db.Lookup("t")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, []string{"id", "name"}, tbl.ColumnNames())
}

func TestApplyWithNoRows(t *testing.T) {
	fx, err := Decode(strings.NewReader(`
[[table]]
name = "empty"
columns = ["v"]
kinds = ["int"]
`))
	require.NoError(t, err)

	db := database.New()
	require.NoError(t, Apply(db, fx))

	tbl, err := db.Lookup("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
}

func TestApplyReportsFailure(t *testing.T) {
	fx, err := Decode(strings.NewReader(`
[[table]]
name = "t"
columns = ["v"]
kinds = ["bogus-kind"]
`))
	require.NoError(t, err)

	db := database.New()
	err = Apply(db, fx)
	assert.Error(t, err)
}
