package dispatcher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marshallshelly/tablekit/pkg/database"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, script string) string {
	t.Helper()
	db := database.New()
	var out bytes.Buffer
	d := New(db, &out)
	d.Run(strings.NewReader(script))
	return out.String()
}

func TestSeedCreateInsertPrintAll(t *testing.T) {
	out := run(t, `
CREATE t 2 int string id name
INSERT INTO t 2 ROWS 1 alice 2 bob
PRINT FROM t 2 id name ALL
QUIT
`)
	assert.Contains(t, out, "New table t with column(s) id name created")
	assert.Contains(t, out, "Added 2 rows to t from position 0 to 1")
	assert.Contains(t, out, "id name\n1 alice\n2 bob\n")
	assert.Contains(t, out, "Printed 2 matching rows from t")
	assert.Contains(t, out, "Thanks for being silly!")
}

func TestSeedEqualityWithAndWithoutIndex(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
INSERT INTO t 4 ROWS 1 2 2 3
PRINT FROM t 1 v WHERE v = 2
GENERATE FOR t hash INDEX ON v
PRINT FROM t 1 v WHERE v = 2
QUIT
`)
	assert.Equal(t, 2, strings.Count(out, "v\n2\n2\nPrinted 2 matching rows from t"))
	assert.Contains(t, out, "Created hash index for table t on column v, with 3 distinct keys")
}

func TestSeedDeleteInvalidatesIndex(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
INSERT INTO t 5 ROWS 1 2 3 2 5
GENERATE FOR t bst INDEX ON v
DELETE FROM t WHERE v = 2
PRINT FROM t 1 v WHERE v > 1
QUIT
`)
	assert.Contains(t, out, "Deleted 2 rows from t")
	assert.Contains(t, out, "v\n3\n5\nPrinted 2 matching rows from t")
}

func TestSeedJoinUsesExistingIndex(t *testing.T) {
	out := run(t, `
CREATE l 2 int string id name
CREATE r 2 int int id age
INSERT INTO l 2 ROWS 1 a 2 b
INSERT INTO r 3 ROWS 1 10 2 20 2 21
GENERATE FOR r hash INDEX ON id
JOIN l AND r WHERE id = id AND PRINT 2 name 1 age 2
QUIT
`)
	assert.Contains(t, out, "name age\na 10\nb 20\nb 21\nPrinted 3 rows from joining l to r")
}

func TestSeedOrderedIndexGreaterThan(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
INSERT INTO t 5 ROWS 5 3 8 1 4
GENERATE FOR t bst INDEX ON v
PRINT FROM t 1 v WHERE v > 3
QUIT
`)
	assert.Contains(t, out, "v\n5\n8\n4\nPrinted 3 matching rows from t")
}

func TestSeedQuietModeSuppressesRows(t *testing.T) {
	db := database.New()
	var out bytes.Buffer
	d := New(db, &out)
	d.Quiet = true
	d.Run(strings.NewReader(`
CREATE t 2 int string id name
INSERT INTO t 2 ROWS 1 alice 2 bob
PRINT FROM t 2 id name ALL
QUIT
`))
	assert.NotContains(t, out.String(), "1 alice")
	assert.Contains(t, out.String(), "Printed 2 matching rows from t")
}

func TestCreateDuplicateTableIsAnError(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
CREATE t 1 int v
QUIT
`)
	assert.Contains(t, out, "Error during CREATE: Cannot create already existing table t")
}

func TestUnknownCommandProducesFallbackMessage(t *testing.T) {
	out := run(t, `
BOGUS command here
QUIT
`)
	assert.Contains(t, out, "Error: unrecognized command")
}

func TestCommentLineIsIgnored(t *testing.T) {
	out := run(t, `
# this is a comment CREATE oops
CREATE t 1 int v
QUIT
`)
	assert.Contains(t, out, "New table t with column(s) v created")
	assert.NotContains(t, out, "oops")
}

func TestPrintUnknownColumnIsAnError(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
PRINT FROM t 1 nope ALL
QUIT
`)
	assert.Contains(t, out, "Error during PRINT: nope does not name a column in t")
}

func TestRemoveUnknownTableIsAnError(t *testing.T) {
	out := run(t, `
REMOVE ghost
QUIT
`)
	assert.Contains(t, out, "Error during REMOVE: ghost does not name a table in the database")
}

func TestRemoveSuccessMessage(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
REMOVE t
QUIT
`)
	assert.Contains(t, out, "Table t removed")
}

func TestJoinKindMismatchIsAnError(t *testing.T) {
	out := run(t, `
CREATE l 1 int id
CREATE r 1 string id
JOIN l AND r WHERE id = id AND PRINT 0
QUIT
`)
	assert.Contains(t, out, "Error during JOIN:")
}

func TestMalformedInsertMissingIntoKeyword(t *testing.T) {
	out := run(t, `
CREATE t 1 int v
INSERT t 1 ROWS 1
QUIT
`)
	assert.Contains(t, out, `Error during INSERT: expected "INTO"`)
}
