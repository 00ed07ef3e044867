// Package database implements the top-level name→table registry: an
// injective mapping guarding create/remove/lookup, single-writer per
// spec.md §5 but defensively locked the way the teacher's deleted
// pkg/registry/registry.go guarded its connection map, since a dispatcher
// embedding this engine in a longer-lived process (e.g. the tui snapshot
// inspector) may read concurrently with a REPL goroutine writing.
package database

import (
	"fmt"
	"sort"
	"sync"

	"github.com/marshallshelly/tablekit/pkg/table"
)

// DuplicateTableError reports a Create call naming a table that already
// exists.
type DuplicateTableError struct {
	Name string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %s already exists", e.Name)
}

// UnknownTableError reports a Remove or Lookup call naming a table that
// doesn't exist.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %s does not exist", e.Name)
}

// Database is a mapping from table name to table, injective on names: no
// implicit renaming or copying, per spec.md §4.6.
type Database struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

// New creates an empty database.
func New() *Database {
	return &Database{tables: make(map[string]*table.Table)}
}

// Create registers a new, empty table under name, rejecting a duplicate.
func (d *Database) Create(name string) (*table.Table, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tables[name]; exists {
		return nil, &DuplicateTableError{Name: name}
	}
	tbl := table.New(name)
	d.tables[name] = tbl
	return tbl, nil
}

// Remove erases the named table, destroying it along with every column and
// index it owns (Go's garbage collector reclaims them once unreferenced).
func (d *Database) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tables[name]; !exists {
		return &UnknownTableError{Name: name}
	}
	delete(d.tables, name)
	return nil
}

// Lookup returns the named table.
func (d *Database) Lookup(name string) (*table.Table, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tbl, exists := d.tables[name]
	if !exists {
		return nil, &UnknownTableError{Name: name}
	}
	return tbl, nil
}

// TableNames returns every registered table name, sorted, for the
// read-only TUI inspector's table list.
func (d *Database) TableNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
