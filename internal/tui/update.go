package tui

import (
	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Paste (clipboard read or bracketed paste) ---------------------------
	case tea.ClipboardMsg:
		return m.insertPaste(msg.String()), nil
	case tea.PasteMsg:
		return m.insertPaste(msg.Content), nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}

	// Forward everything else to the editor while it is active.
	if m.grid.Editing() != nil {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize applies a window size change and re-derives grid layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.grid.SetViewportSize(m.width, m.clientHeight())
	m.editor.SetWidth(m.width)
}

// insertPaste routes pasted text: into the cell editor while editing,
// otherwise through the grid's TSV paste.
func (m Model) insertPaste(text string) Model {
	if text == "" {
		return m
	}
	if m.grid.Editing() != nil {
		m.editor.SetValue(m.editor.Value() + text)
		m.editor.CursorEnd()
		return m
	}
	if m.grid.Paste(text) {
		m.statusMsg = "pasted"
	}
	return m
}
