package dispatcher

import "fmt"

// The dispatcher formats every failure as "Error during <CMD>: <message>"
// per spec.md §7; these constructors produce just the <message> half, in
// the exact wording original_source/silly.cpp uses for the cases it covers.

func errTableExists(name string) error {
	return fmt.Errorf("Cannot create already existing table %s", name)
}

func errUnknownTable(name string) error {
	return fmt.Errorf("%s does not name a table in the database", name)
}

func errUnknownColumn(col, table string) error {
	return fmt.Errorf("%s does not name a column in %s", col, table)
}

func errBadKeyword(want, got string) error {
	return fmt.Errorf("expected %q, got %q", want, got)
}

func errBadType(tok string) error {
	return fmt.Errorf("%q is not a valid column type", tok)
}

func errBadOperator(tok string) error {
	return fmt.Errorf("%q is not a valid operator", tok)
}

func errBadSide(tok string) error {
	return fmt.Errorf("%q is not a valid join side (want 1 or 2)", tok)
}

func errTruncated() error {
	return fmt.Errorf("command ended before all expected tokens were read")
}
