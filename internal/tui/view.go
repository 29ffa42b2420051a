package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/datagrid/internal/grid"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the string content for the view: header line,
// pinned top summaries, the scrolled data window, pinned bottom
// summaries, then the status bar.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	cols := m.grid.ViewportColumns()
	rl := m.grid.RowLayout()
	vp := m.grid.Viewport()
	_, scrollTop := m.grid.Scroll()

	var b strings.Builder
	b.WriteString(m.renderGridLine(m.grid.HeaderRowIdx(), true, cols))
	b.WriteByte('\n')

	top := m.topSummaryCount()
	for i := 0; i < top; i++ {
		b.WriteString(m.renderGridLine(-top+i, true, cols))
		b.WriteByte('\n')
	}

	for screenY := 0; screenY < m.clientHeight(); screenY++ {
		contentY := scrollTop + screenY
		if contentY >= rl.TotalHeight() || rl.Count() == 0 {
			b.WriteString(strings.Repeat(" ", m.width))
			b.WriteByte('\n')
			continue
		}
		rowIdx := rl.IndexAt(contentY)
		if rowIdx < vp.StartIdx || rowIdx > vp.EndIdx {
			b.WriteString(strings.Repeat(" ", m.width))
			b.WriteByte('\n')
			continue
		}
		b.WriteString(m.renderGridLine(rowIdx, rl.Top(rowIdx) == contentY, cols))
		b.WriteByte('\n')
	}

	for i := 0; i < m.bottomSummaryCount(); i++ {
		b.WriteString(m.renderGridLine(m.grid.RowCount()+i, true, cols))
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b)
	return b.String()
}

// renderGridLine composes one terminal line: the frozen columns stay
// put, the rest is clipped against the horizontal scroll window.
func (m Model) renderGridLine(rowIdx int, firstLine bool, cols []grid.ComputedColumn) string {
	if rowIdx >= 0 && rowIdx < m.grid.RowCount() {
		if gr, ok := m.grid.RowAt(rowIdx).(*grid.GroupRow); ok {
			return m.renderGroupLine(rowIdx, gr)
		}
	}

	metrics := m.grid.Metrics()
	scrollLeft, _ := m.grid.Scroll()

	var frozen, scrolled strings.Builder
	scrolledEnd := metrics.FrozenWidth
	for _, col := range cols {
		cell := m.renderCell(col, rowIdx, firstLine)
		if col.Index <= metrics.LastFrozenIdx {
			frozen.WriteString(cell)
			continue
		}
		if col.Left > scrolledEnd {
			scrolled.WriteString(strings.Repeat(" ", col.Left-scrolledEnd))
		}
		scrolled.WriteString(cell)
		scrolledEnd = col.Left + col.Width
	}

	line := frozen.String()
	if avail := m.width - metrics.FrozenWidth; avail > 0 {
		seg := scrolled.String()
		if have := scrolledEnd - metrics.FrozenWidth; have < scrollLeft+avail {
			seg += strings.Repeat(" ", scrollLeft+avail-have)
		}
		line += ansi.Cut(seg, scrollLeft, scrollLeft+avail)
	}
	return padRight(ansi.Truncate(line, m.width, ""), m.width)
}

// renderGroupLine renders a group row as a single full-width cell.
func (m Model) renderGroupLine(rowIdx int, gr *grid.GroupRow) string {
	arrow := "▸"
	if gr.Expanded {
		arrow = "▾"
	}
	text := fmt.Sprintf("%s%s %s (%d)",
		strings.Repeat("  ", gr.Level), arrow, gr.GroupKey, gr.SetSize)

	style := m.styles.GroupRow
	if cur := m.grid.CursorPos(); cur.Row == rowIdx {
		style = m.styles.Cursor
	}
	return style.Render(padRight(ansi.Truncate(text, m.width, "…"), m.width))
}

// renderCell renders one column cell of a grid line.
func (m Model) renderCell(col grid.ComputedColumn, rowIdx int, firstLine bool) string {
	w := col.Width
	if w <= 0 {
		return ""
	}
	pos := grid.Position{Col: col.Index, Row: rowIdx}

	if ed := m.grid.Editing(); ed != nil && m.grid.CursorPos() == pos {
		return m.styles.Editor.Render(padRight(ansi.Truncate(m.editor.View(), w, ""), w))
	}

	var text string
	if firstLine {
		text = m.cellText(col, rowIdx)
	}
	return m.cellStyle(col, pos).Render(padRight(ansi.Truncate(text, w, "…"), w))
}

// cellText resolves the display text per row kind.
func (m Model) cellText(col grid.ComputedColumn, rowIdx int) string {
	switch {
	case rowIdx == m.grid.HeaderRowIdx():
		name := col.Name
		if key, dir := m.grid.SortState(); key == col.Key {
			switch dir {
			case grid.SortAsc:
				name += " ▲"
			case grid.SortDesc:
				name += " ▼"
			}
		}
		return name
	case rowIdx >= 0 && rowIdx < m.grid.RowCount():
		return m.grid.CellText(col.Index, rowIdx)
	default:
		return safeFormat(col, m.grid.RowAt(rowIdx))
	}
}

// cellStyle picks a style by cell state, most specific last.
func (m Model) cellStyle(col grid.ComputedColumn, pos grid.Position) lipgloss.Style {
	if pos.Row == m.grid.HeaderRowIdx() {
		if key, _ := m.grid.SortState(); key == col.Key {
			return m.styles.HeaderSort
		}
		return m.styles.Header
	}

	style := m.styles.Cell
	if pos.Row < 0 || pos.Row >= m.grid.RowCount() {
		style = m.styles.Summary
	}
	if m.grid.RowSelected(pos.Row) {
		style = m.styles.RowPicked
	}
	if rng, ok := m.grid.SelectionRange(); ok && rng.Ordered().Contains(pos) {
		style = m.styles.Range
	}
	if m.grid.CopyMarker() == pos {
		style = m.styles.Copied
	}
	if cur := m.grid.CursorPos(); cur == pos || (cur.Col == grid.WholeRowCol && cur.Row == pos.Row) {
		style = m.styles.Cursor
	}
	return style
}

// safeFormat formats a summary cell, containing formatter panics the
// same way data cells do.
func safeFormat(col grid.ComputedColumn, row grid.Row) (text string) {
	if col.FormatValue == nil || row == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return col.FormatValue(row)
}

// renderStatusBar writes the bottom status line.
func (m Model) renderStatusBar(b *strings.Builder) {
	var leftParts []string
	leftParts = append(leftParts, strconv.Itoa(m.grid.RowCount())+" rows")
	if n := len(m.grid.SelectedRows()); n > 0 {
		leftParts = append(leftParts, "sel "+strconv.Itoa(n))
	}
	if cl := m.cursorLabel(); cl != "" {
		leftParts = append(leftParts, cl)
	}
	if m.statusMsg != "" {
		leftParts = append(leftParts, m.statusMsg)
	}
	left := m.styles.StatusText.Render(" " + strings.Join(leftParts, " │ "))

	hint := "f2 edit · ctrl+shift+c copy · ctrl+r select · ctrl+c quit"
	if m.grid.Editing() != nil {
		hint = "enter commit · esc cancel · tab next"
	}
	right := m.styles.StatusHint.Render(hint + " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		right = ""
		gap = m.width - lipgloss.Width(left)
		if gap < 0 {
			gap = 0
		}
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
}

// padRight pads a styled string with spaces to the target display width.
func padRight(s string, w int) string {
	if gap := w - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
