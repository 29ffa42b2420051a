package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/datagrid/internal/grid"
)

// ---------------------------------------------------------------------------
// Mouse filter — throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling — hit-test screen cells into grid positions.
// ---------------------------------------------------------------------------

const wheelStep = 3

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	ev := msg.Mouse()
	return ev.X, ev.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)

	switch ev := msg.(type) {
	case tea.MouseWheelMsg:
		m.handleWheel(ev)
		return m, nil

	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m, nil
		}
		if y == 0 {
			m.handleHeaderClick(x)
			return m, nil
		}
		if pos, ok := m.posFromScreen(x, y); ok {
			if m.grid.Editing() != nil {
				m.commitCellEditor()
			}
			m.grid.SelectCell(pos, false)
			if pos.Row >= 0 {
				m.grid.StartRangeDrag(pos)
			}
		}
		return m, nil

	case tea.MouseMotionMsg:
		if m.resizeKey != "" {
			m.dragResize(x)
			return m, nil
		}
		if m.grid.Dragging() {
			if pos, ok := m.posFromScreen(x, y); ok {
				m.grid.DragOver(pos)
			}
		}
		return m, nil

	case tea.MouseReleaseMsg:
		m.resizeKey = ""
		m.grid.EndRangeDrag()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleWheel(ev tea.MouseWheelMsg) {
	switch ev.Button {
	case tea.MouseWheelUp:
		m.grid.ScrollBy(0, -wheelStep)
	case tea.MouseWheelDown:
		m.grid.ScrollBy(0, wheelStep)
	case tea.MouseWheelLeft:
		m.grid.ScrollBy(-wheelStep, 0)
	case tea.MouseWheelRight:
		m.grid.ScrollBy(wheelStep, 0)
	}
}

// handleHeaderClick starts a resize drag on a column's right edge cell, or
// toggles sort anywhere else on a sortable column.
func (m *Model) handleHeaderClick(x int) {
	col, ok := m.columnAtX(x)
	if !ok {
		return
	}
	if col.Resizable && x == m.screenLeft(col)+col.Width-1 {
		m.resizeKey = col.Key
		m.resizeLeft = col.Left
		return
	}
	if col.Sortable {
		m.grid.ToggleSort(col.Key)
	}
}

// dragResize applies the width implied by the pointer position.
func (m *Model) dragResize(x int) {
	w := m.contentX(x) - m.resizeLeft + 1
	if w < 1 {
		w = 1
	}
	m.grid.ResizeColumn(m.resizeKey, w)
}

// contentX translates a screen column into content space: the frozen
// region maps 1:1, the rest is shifted by the horizontal scroll.
func (m Model) contentX(x int) int {
	scrollLeft, _ := m.grid.Scroll()
	if x < m.grid.Metrics().FrozenWidth {
		return x
	}
	return x + scrollLeft
}

// screenLeft is the inverse mapping for a column's left edge.
func (m Model) screenLeft(col grid.ComputedColumn) int {
	if col.Index <= m.grid.Metrics().LastFrozenIdx {
		return col.Left
	}
	scrollLeft, _ := m.grid.Scroll()
	return col.Left - scrollLeft
}

// columnAtX finds the column under a screen x coordinate.
func (m Model) columnAtX(x int) (grid.ComputedColumn, bool) {
	cx := m.contentX(x)
	for _, col := range m.grid.Metrics().Columns {
		if cx >= col.Left && cx < col.Left+col.Width {
			return col, true
		}
	}
	return grid.ComputedColumn{}, false
}

// posFromScreen resolves a screen cell into a grid position: pinned
// summary lines first, then the scrollable data area.
func (m Model) posFromScreen(x, y int) (grid.Position, bool) {
	col, ok := m.columnAtX(x)
	if !ok {
		return grid.NoPosition, false
	}

	top := m.topSummaryCount()
	bottom := m.bottomSummaryCount()
	dataTop := 1 + top
	dataBottom := dataTop + m.clientHeight()

	switch {
	case y == 0:
		return grid.Position{Col: col.Index, Row: m.grid.HeaderRowIdx()}, true
	case y < dataTop:
		// Top summary rows sit just below the header.
		return grid.Position{Col: col.Index, Row: -top + (y - 1)}, true
	case y >= dataBottom && y < dataBottom+bottom:
		return grid.Position{Col: col.Index, Row: m.grid.RowCount() + (y - dataBottom)}, true
	case y >= dataTop && y < dataBottom:
		_, scrollTop := m.grid.Scroll()
		contentY := scrollTop + (y - dataTop)
		rl := m.grid.RowLayout()
		if contentY >= rl.TotalHeight() || rl.Count() == 0 {
			return grid.NoPosition, false
		}
		return grid.Position{Col: col.Index, Row: rl.IndexAt(contentY)}, true
	}
	return grid.NoPosition, false
}
