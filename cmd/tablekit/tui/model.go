// Package tui implements tablekit's read-only post-run inspector: after a
// script runs to completion, the resulting *database.Database snapshot is
// browsed interactively, never mutated. Structured the way the teacher's
// cmd/pebble/tui.MigrateModel structures an interactive session (a
// bubbletea Model with a small mode enum), but with the write-path modes
// (confirm/execute) removed since there is nothing here to execute.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/tablekit/pkg/database"
)

// Mode is the inspector's current pane.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

// Model is the top-level bubbletea model for the inspector.
type Model struct {
	db     *database.Database
	mode   Mode
	list   list.Model
	detail table.Model
	width  int
	height int
}

// New builds an inspector over a finished database snapshot.
func New(db *database.Database) Model {
	items := make([]list.Item, 0, len(db.TableNames()))
	for _, name := range db.TableNames() {
		items = append(items, tableItem(db, name))
	}

	l := list.New(items, TableItemDelegate{}, 0, 0)
	l.Title = "Tables"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{db: db, mode: ModeList, list: l}
}

func tableItem(db *database.Database, name string) TableItem {
	tbl, err := db.Lookup(name)
	if err != nil {
		return TableItem{Name: name}
	}
	item := TableItem{
		Name:        name,
		RowCount:    tbl.RowCount(),
		ColumnCount: len(tbl.ColumnNames()),
	}
	if col, variant, ok := tbl.IndexStatus(); ok {
		item.IndexDesc = fmt.Sprintf("%s index on %s", variant, col)
	}
	return item
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		m.detail.SetWidth(msg.Width - 4)
		m.detail.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeList:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter":
				if item, ok := m.list.SelectedItem().(TableItem); ok {
					m.detail = m.buildDetail(item.Name)
					m.mode = ModeDetail
				}
				return m, nil
			}
		case ModeDetail:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc":
				m.mode = ModeList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeList:
		m.list, cmd = m.list.Update(msg)
	case ModeDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m Model) buildDetail(name string) table.Model {
	tbl, err := m.db.Lookup(name)
	if err != nil {
		return table.New()
	}
	names, rows := tbl.Snapshot()

	columns := make([]table.Column, len(names))
	for i, n := range names {
		columns[i] = table.Column{Title: n, Width: len(n) + 4}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)
}

// View satisfies tea.Model.
func (m Model) View() string {
	switch m.mode {
	case ModeDetail:
		help := helpStyle.Render(FormatKey("↑/↓", "scroll") + " • " + FormatKey("esc", "back") + " • " + FormatKey("q", "quit"))
		return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(m.detail.View()), help)
	default:
		help := helpStyle.Render(FormatKey("↑/↓", "navigate") + " • " + FormatKey("enter", "view rows") + " • " + FormatKey("q", "quit"))
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)
	}
}

// Run starts the inspector against a finished database snapshot, blocking
// until the user quits. The database is never mutated.
func Run(db *database.Database) error {
	p := tea.NewProgram(New(db))
	_, err := p.Run()
	return err
}
