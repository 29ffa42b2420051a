package grid

import (
	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Selection navigator — key dispatch
// ---------------------------------------------------------------------------

// KeyResult is the outcome of feeding a key event to the navigator.
type KeyResult int

const (
	// KeyIgnored means the event did not apply to the grid.
	KeyIgnored KeyResult = iota
	// KeyHandled means the grid consumed the event.
	KeyHandled
	// KeyExit means the key would leave the grid (tab off the last
	// cell); pending edits were committed and focus should move on.
	KeyExit
	// KeyEditOpen means a printable key opened the cell editor; the
	// host should seed the editor widget with the key's text.
	KeyEditOpen
)

// HandleKey resolves a key event in select mode into a new cursor or
// range state. Within one event the order is fixed: bounds validation,
// edit commit, position computation, span correction, state update.
// Edit-mode keys belong to the host's editor widget, not here.
func (c *Controller) HandleKey(msg tea.KeyPressMsg) KeyResult {
	if c.cursor.Mode == ModeEdit {
		return KeyIgnored
	}

	switch msg.Keystroke() {
	case "up":
		return c.moveCursor(0, -1, false)
	case "down":
		return c.moveCursor(0, 1, false)
	case "left":
		if c.groupCursorCollapse() {
			return KeyHandled
		}
		return c.moveCursor(-c.dirSign(), 0, false)
	case "right":
		if c.groupCursorExpand() {
			return KeyHandled
		}
		return c.moveCursor(c.dirSign(), 0, false)
	case "tab":
		return c.moveTab(1)
	case "shift+tab":
		return c.moveTab(-1)
	case "home":
		return c.moveHome(false)
	case "ctrl+home":
		return c.moveHome(true)
	case "end":
		return c.moveEnd(false)
	case "ctrl+end":
		return c.moveEnd(true)
	case "pgup":
		return c.movePage(-1)
	case "pgdown":
		return c.movePage(1)
	case "enter":
		if c.ToggleGroupAtCursor(0) {
			return KeyHandled
		}
		if c.OpenEditor() {
			return KeyEditOpen
		}
		return KeyIgnored
	case "esc":
		// User-facing cancel of the copy marker; the cursor stays put.
		if !c.copied.IsNone() {
			c.copied = NoPosition
			return KeyHandled
		}
		return KeyIgnored
	case "shift+up":
		return c.extendRange(0, -1)
	case "shift+down":
		return c.extendRange(0, 1)
	case "shift+left":
		return c.extendRange(-c.dirSign(), 0)
	case "shift+right":
		return c.extendRange(c.dirSign(), 0)
	}

	// Any printable key on an editable cell opens the editor.
	if msg.Text != "" && c.OpenEditor() {
		return KeyEditOpen
	}
	return KeyIgnored
}

func (c *Controller) dirSign() int {
	if c.opts.Direction == RightToLeft {
		return -1
	}
	return 1
}

// groupCursorCollapse handles left-arrow on an expanded group row.
func (c *Controller) groupCursorCollapse() bool {
	if g, ok := c.groupUnderCursor(); ok && g.Expanded {
		return c.ToggleGroupAtCursor(-1)
	}
	return false
}

// groupCursorExpand handles right-arrow on a collapsed group row.
func (c *Controller) groupCursorExpand() bool {
	if g, ok := c.groupUnderCursor(); ok && !g.Expanded {
		return c.ToggleGroupAtCursor(1)
	}
	return false
}

func (c *Controller) groupUnderCursor() (*GroupRow, bool) {
	pos := c.cursor.Pos
	if pos.IsNone() || pos.Col != WholeRowCol {
		return nil, false
	}
	g, ok := c.RowAt(pos.Row).(*GroupRow)
	return g, ok
}

// ---------------------------------------------------------------------------
// Cursor movement
// ---------------------------------------------------------------------------

// moveCursor applies a one-cell delta, corrects for spans, and commits
// the move unless it is a no-op.
func (c *Controller) moveCursor(dc, dr int, wrap bool) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() {
		return KeyIgnored
	}
	next := Position{Col: cur.Col + dc, Row: cur.Row + dr}
	next = c.wrapOrClamp(cur, next, wrap || c.opts.NavMode == NavChangeRow)
	return c.commitMove(cur, next, dc > 0 || (dc == 0 && dr > 0))
}

// wrapOrClamp resolves an out-of-bounds horizontal candidate either by
// row-wrapping or by clamping; vertical motion always clamps.
func (c *Controller) wrapOrClamp(cur, next Position, wrap bool) Position {
	maxCol := c.maxColIdx()
	if wrap {
		if next.Col > maxCol && cur.Row < c.MaxRowIdx() {
			next = Position{Col: 0, Row: cur.Row + 1}
		} else if next.Col < 0 && cur.Row > c.MinRowIdx() {
			next = Position{Col: maxCol, Row: cur.Row - 1}
		}
	}
	next.Col = clamp(next.Col, c.cursorMinCol(cur), maxCol)
	next.Row = clamp(next.Row, c.MinRowIdx(), c.MaxRowIdx())
	return next
}

// cursorMinCol keeps a whole-row cursor addressable while grouping is
// active but never lets plain navigation land on the sentinel column.
func (c *Controller) cursorMinCol(cur Position) int {
	if cur.Col == WholeRowCol {
		return WholeRowCol
	}
	return 0
}

// commitMove runs group and span correction, discards no-op
// transitions, commits any pending edit, and moves the cursor.
func (c *Controller) commitMove(cur, next Position, forward bool) KeyResult {
	if p := c.resolveGroupCol(next); p != next {
		c.lastCol = next.Col
		next = p
	}
	// Leaving a group row restores the column held before entering it.
	if cur.Col == WholeRowCol && next.Col == WholeRowCol && next.Row != cur.Row &&
		IsGroupRow(c.RowAt(cur.Row)) && !IsGroupRow(c.RowAt(next.Row)) {
		next.Col = clamp(c.lastCol, 0, c.maxColIdx())
	}
	if next.Col >= 0 {
		m := c.columnMetrics()
		ctx := c.spanContextFor(next.Row)
		snapped := snapToSpan(m, next, forward, ctx)
		if snapped.Col > c.maxColIdx() {
			// A forward snap past the last column falls back to the
			// span's origin; the cursor never rests inside a span.
			snapped = snapToSpan(m, next, false, ctx)
		}
		next = snapped
		next.Col = clamp(next.Col, 0, c.maxColIdx())
	}
	if next == cur {
		return KeyIgnored
	}
	c.commitPendingEdit()
	c.cursor = Cursor{Pos: next, Mode: ModeSelect}
	if next.Col >= 0 {
		c.rng = SingleCell(next)
		c.hasRange = true
	} else {
		c.hasRange = false
	}
	c.scrollCursorIntoView()
	return KeyHandled
}

// moveTab advances one column, wrapping across rows; at the very first
// or last cell of the grid it commits pending edits and yields focus
// outward instead.
func (c *Controller) moveTab(delta int) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() {
		return KeyIgnored
	}
	if c.canExitGrid(cur, delta > 0) {
		c.commitPendingEdit()
		return KeyExit
	}
	next := Position{Col: cur.Col + delta, Row: cur.Row}
	next = c.wrapOrClamp(cur, next, true)
	return c.commitMove(cur, next, delta > 0)
}

// canExitGrid reports whether a tab in the given direction leaves the
// grid: forward from the last cell, backward from the first.
func (c *Controller) canExitGrid(cur Position, forward bool) bool {
	if forward {
		return cur.Row == c.MaxRowIdx() && cur.Col == c.maxColIdx()
	}
	return cur.Row == c.MinRowIdx() && cur.Col <= 0
}

// moveHome implements Home/Ctrl+Home. On the whole-row sentinel column
// it moves to the first row in the same column; otherwise to the first
// column, and with ctrl to the first row overall.
func (c *Controller) moveHome(ctrl bool) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() {
		return KeyIgnored
	}
	var next Position
	switch {
	case cur.Col == WholeRowCol:
		next = Position{Col: WholeRowCol, Row: 0}
	case ctrl:
		next = Position{Col: 0, Row: c.MinRowIdx()}
	default:
		next = Position{Col: 0, Row: cur.Row}
	}
	return c.commitMove(cur, next, false)
}

// moveEnd is symmetric with moveHome toward the last column/row.
func (c *Controller) moveEnd(ctrl bool) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() {
		return KeyIgnored
	}
	var next Position
	switch {
	case cur.Col == WholeRowCol:
		next = Position{Col: WholeRowCol, Row: c.RowCount() - 1}
	case ctrl:
		next = Position{Col: c.maxColIdx(), Row: c.MaxRowIdx()}
	default:
		next = Position{Col: c.maxColIdx(), Row: cur.Row}
	}
	return c.commitMove(cur, next, true)
}

// movePage moves the cursor by one viewport height using the row
// layout's offset math, clamped to the data rows.
func (c *Controller) movePage(dir int) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() {
		return KeyIgnored
	}
	rm := c.metricsForRows()
	if rm.Count() == 0 {
		return KeyIgnored
	}
	fromRow := clamp(cur.Row, 0, rm.Count()-1)
	offset := rm.Top(fromRow) + dir*c.clientHeight
	next := Position{Col: cur.Col, Row: rm.IndexAt(offset)}
	return c.commitMove(cur, next, dir > 0)
}

// ---------------------------------------------------------------------------
// Range extension
// ---------------------------------------------------------------------------

// extendRange grows or shrinks the range's end corner by one cell,
// bounded by the grid extents and the configured left boundary column.
// The cursor does not move.
func (c *Controller) extendRange(dc, dr int) KeyResult {
	cur := c.cursor.Pos
	if cur.IsNone() || cur.Col < 0 {
		return KeyIgnored
	}
	if !c.hasRange {
		c.rng = SingleCell(cur)
		c.hasRange = true
	}
	boundary := c.opts.RangeBoundaryCol
	if boundary >= 0 && c.rng.EndCol <= boundary {
		return KeyIgnored
	}

	next := c.rng
	next.EndCol = clamp(next.EndCol+dc, 0, c.maxColIdx())
	next.EndRow = clamp(next.EndRow+dr, 0, c.RowCount()-1)
	if boundary >= 0 {
		if next.EndCol <= boundary {
			next.EndCol = boundary + 1
		}
		if next.StartCol <= boundary {
			next.StartCol = boundary + 1
		}
	}
	if next == c.rng {
		return KeyIgnored
	}
	c.rng = next
	c.ScrollToCell(Position{Col: next.EndCol, Row: next.EndRow})
	return KeyHandled
}

// ---------------------------------------------------------------------------
// Mouse range selection
// ---------------------------------------------------------------------------

// StartRangeDrag begins mouse range tracking at pos, which also becomes
// the select cursor.
func (c *Controller) StartRangeDrag(pos Position) {
	c.SelectCell(pos, false)
	if c.cursor.Pos == pos && pos.Col >= 0 {
		c.dragging = true
	}
}

// DragOver extends the tracked range's end to the entered cell.
func (c *Controller) DragOver(pos Position) {
	if !c.dragging || !c.hasRange {
		return
	}
	boundary := c.opts.RangeBoundaryCol
	if boundary >= 0 && pos.Col <= boundary {
		return
	}
	if pos.Col < 0 || pos.Col > c.maxColIdx() || pos.Row < 0 || pos.Row >= c.RowCount() {
		return
	}
	c.rng.EndCol = pos.Col
	c.rng.EndRow = pos.Row
}

// EndRangeDrag stops tracking and normalizes the range.
func (c *Controller) EndRangeDrag() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.rng = c.rng.Ordered()
}

// Dragging reports whether a mouse range drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }
