package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/datagrid/internal/grid"
)

// handleKeyPress processes key events: editor keys while editing,
// application chords, then grid navigation.
func (m Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.grid.Editing() != nil {
		return m.handleEditorKey(msg)
	}
	if handler := m.keyPressHandlers()[msg.Keystroke()]; handler != nil {
		next, cmd := handler(&m)
		return next, cmd
	}
	return m.handleGridKey(msg)
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (Model, tea.Cmd) {
	return map[string]func(*Model) (Model, tea.Cmd){
		"ctrl+c":       (*Model).handleCtrlC,
		"ctrl+shift+c": (*Model).handleCopy,
		"ctrl+shift+v": (*Model).handlePasteRequest,
		"ctrl+a":       (*Model).handleSelectAll,
		"ctrl+shift+a": (*Model).handleClearSelection,
		"ctrl+r":       (*Model).handleToggleRow,
		"ctrl+shift+r": (*Model).handleToggleRowRange,
		"ctrl+w":       (*Model).handleAutoResize,
		"f2":           (*Model).handleOpenEditor,
	}
}

func (m *Model) handleCtrlC() (Model, tea.Cmd) {
	return *m, tea.Quit
}

func (m *Model) handleCopy() (Model, tea.Cmd) {
	text, ok := m.grid.Copy()
	if !ok {
		return *m, nil
	}
	m.statusMsg = "copied"
	return *m, tea.SetClipboard(text)
}

func (m *Model) handlePasteRequest() (Model, tea.Cmd) {
	return *m, tea.ReadClipboard
}

func (m *Model) handleSelectAll() (Model, tea.Cmd) {
	m.grid.SelectAllRows()
	return *m, nil
}

func (m *Model) handleClearSelection() (Model, tea.Cmd) {
	m.grid.ClearRowSelection()
	return *m, nil
}

func (m *Model) handleToggleRow() (Model, tea.Cmd) {
	if pos := m.grid.CursorPos(); !pos.IsNone() && pos.Row >= 0 {
		m.grid.ToggleRowSelection(pos.Row, false)
	}
	return *m, nil
}

func (m *Model) handleToggleRowRange() (Model, tea.Cmd) {
	if pos := m.grid.CursorPos(); !pos.IsNone() && pos.Row >= 0 {
		m.grid.ToggleRowSelection(pos.Row, true)
	}
	return *m, nil
}

func (m *Model) handleAutoResize() (Model, tea.Cmd) {
	pos := m.grid.CursorPos()
	cols := m.grid.Metrics().Columns
	if !pos.IsNone() && pos.Col >= 0 && pos.Col < len(cols) {
		m.grid.AutoResizeColumn(cols[pos.Col].Key)
	}
	return *m, nil
}

func (m *Model) handleOpenEditor() (Model, tea.Cmd) {
	if m.grid.OpenEditor() {
		m.openCellEditor("")
	}
	return *m, nil
}

// handleGridKey forwards a key to the grid navigator and reacts to the
// outcome.
func (m Model) handleGridKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.grid.HandleKey(msg) {
	case grid.KeyEditOpen:
		m.openCellEditor(msg.Text)
	case grid.KeyExit:
		// Single-widget program: there is nothing to hand focus to.
		m.statusMsg = ""
	case grid.KeyHandled:
		m.statusMsg = ""
	}
	return m, nil
}

// handleEditorKey routes keys while the inline cell editor is active.
func (m Model) handleEditorKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Keystroke() {
	case "enter":
		m.commitCellEditor()
		return m, nil
	case "esc":
		m.cancelCellEditor()
		return m, nil
	case "tab", "shift+tab":
		// Commit, then let the navigator move the cursor.
		m.commitCellEditor()
		return m.handleGridKey(msg)
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}
