// Package tui hosts the data grid widget inside a bubbletea program:
// it owns terminal layout, styling and the inline cell editor, and
// forwards navigation input to the grid controller.
package tui

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/datagrid/internal/config"
	"github.com/xonecas/datagrid/internal/grid"
)

const statusRows = 1

// Model is the application model.
type Model struct {
	width  int
	height int

	grid   *grid.Controller
	cfg    *config.Config
	styles styles

	// Inline cell editor, active while the grid is in edit mode.
	editor textinput.Model

	// Column resize drag state.
	resizeKey  string
	resizeLeft int // content-space left edge of the resized column

	statusMsg string
}

// New builds the TUI model around a configured grid controller.
func New(ctrl *grid.Controller, cfg *config.Config) Model {
	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 256

	return Model{
		grid:   ctrl,
		cfg:    cfg,
		styles: themeStyles(cfg.UI.ThemeOrDefault()),
		editor: editor,
	}
}

// Init is required by bubbletea.
func (m Model) Init() tea.Cmd {
	return nil
}

// gridHeight is the number of terminal rows available to grid content
// (header plus data rows).
func (m Model) gridHeight() int {
	h := m.height - statusRows
	if h < 0 {
		h = 0
	}
	return h
}

// topSummaryCount and bottomSummaryCount derive the pinned summary row
// counts from the controller's row-index bounds.
func (m Model) topSummaryCount() int    { return -m.grid.MinRowIdx() - 1 }
func (m Model) bottomSummaryCount() int { return m.grid.MaxRowIdx() - m.grid.RowCount() + 1 }

// clientHeight is the scrollable data-row area: the grid area minus the
// header line and the pinned summary lines.
func (m Model) clientHeight() int {
	h := m.gridHeight() - 1 - m.topSummaryCount() - m.bottomSummaryCount()
	if h < 0 {
		h = 0
	}
	return h
}

// openCellEditor seeds the inline editor for the cell under the cursor.
// seed overrides the current cell text when non-empty (typing a
// printable key starts a fresh value).
func (m *Model) openCellEditor(seed string) {
	pos := m.grid.CursorPos()
	value := m.grid.CellText(pos.Col, pos.Row)
	if seed != "" {
		value = seed
	}
	m.editor.SetValue(value)
	m.editor.CursorEnd()
	m.editor.Focus()
}

// commitCellEditor flushes the editor value through the controller.
func (m *Model) commitCellEditor() {
	m.grid.SetEditValue(m.editor.Value())
	m.grid.CommitEdit()
	m.editor.Blur()
	m.editor.Reset()
}

// cancelCellEditor abandons the edit.
func (m *Model) cancelCellEditor() {
	m.grid.CancelEdit()
	m.editor.Blur()
	m.editor.Reset()
}

// cursorLabel renders the cursor position for the status bar.
func (m Model) cursorLabel() string {
	pos := m.grid.CursorPos()
	if pos.IsNone() {
		return ""
	}
	row := "sum"
	switch {
	case pos.Row >= 0:
		row = strconv.Itoa(pos.Row + 1)
	case pos.Row == m.grid.HeaderRowIdx():
		row = "hdr"
	}
	return fmt.Sprintf("%s:%d", row, pos.Col+1)
}
