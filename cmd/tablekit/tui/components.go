package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// TableItem is one row of the table-list pane: a table's name, row count,
// and index status, adapted from the teacher's MigrationItem (which listed
// a migration's version/name/status) down to the fields a database
// snapshot actually has.
type TableItem struct {
	Name        string
	RowCount    int
	ColumnCount int
	IndexDesc   string // "" if the table has no active index
}

func (i TableItem) FilterValue() string { return i.Name }

func (i TableItem) Title() string {
	return fmt.Sprintf("%s (%d rows, %d cols)", i.Name, i.RowCount, i.ColumnCount)
}

func (i TableItem) Description() string {
	if i.IndexDesc == "" {
		return mutedStyle.Render("no index")
	}
	return mutedStyle.Render(i.IndexDesc)
}

// TableItemDelegate renders a TableItem in the list, following the
// teacher's MigrationItemDelegate exactly: two lines per item, highlighted
// when selected.
type TableItemDelegate struct{}

func (d TableItemDelegate) Height() int                             { return 2 }
func (d TableItemDelegate) Spacing() int                            { return 1 }
func (d TableItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d TableItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(TableItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	fmt.Fprint(w, s)
}
