package grid

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestSelectCellOutOfBoundsIsNoOp(t *testing.T) {
	c := newTestGrid(3, 4, Options{})
	c.SelectCell(Position{Col: 1, Row: 1}, false)

	c.SelectCell(Position{Col: 99, Row: 1}, false)
	c.SelectCell(Position{Col: 1, Row: 99}, false)
	c.SelectCell(Position{Col: -1, Row: 1}, false) // whole-row without grouping

	if got := c.CursorPos(); got != (Position{Col: 1, Row: 1}) {
		t.Errorf("cursor = %+v, want unchanged {1 1}", got)
	}
}

func TestEditCommitFlushesThroughCallback(t *testing.T) {
	var gotRows []Row
	var gotEv RowsChangeEvent
	c := newTestGrid(3, 4, Options{
		OnRowsChange: func(rows []Row, ev RowsChangeEvent) {
			gotRows, gotEv = rows, ev
		},
	})

	c.SelectCell(Position{Col: 0, Row: 2}, true)
	if c.Editing() == nil {
		t.Fatal("editor did not open")
	}
	c.SetEditValue("hello")
	c.CommitEdit()

	if gotRows == nil {
		t.Fatal("OnRowsChange not called")
	}
	if len(gotEv.Indexes) != 1 || gotEv.Indexes[0] != 2 || gotEv.Column != "a" {
		t.Errorf("event = %+v, want row 2 column a", gotEv)
	}
	if got := gotRows[2].(*rec).vals["a"]; got != "hello" {
		t.Errorf("committed value = %q, want %q", got, "hello")
	}
}

func TestSelectingAnotherCellCommitsPendingEdit(t *testing.T) {
	committed := false
	c := newTestGrid(3, 4, Options{
		OnRowsChange: func([]Row, RowsChangeEvent) { committed = true },
	})

	c.SelectCell(Position{Col: 0, Row: 0}, true)
	c.SetEditValue("x")
	c.SelectCell(Position{Col: 2, Row: 3}, false)

	if !committed {
		t.Error("pending edit was dropped instead of committed")
	}
	if c.Editing() != nil {
		t.Error("still in edit mode after selecting another cell")
	}
	if got := c.CursorPos(); got != (Position{Col: 2, Row: 3}) {
		t.Errorf("cursor = %+v, want {2 3}", got)
	}
}

func TestStaleEditDiscarded(t *testing.T) {
	committed := false
	c := newTestGrid(3, 4, Options{
		OnRowsChange: func([]Row, RowsChangeEvent) { committed = true },
	})

	c.SelectCell(Position{Col: 0, Row: 1}, true)
	c.SetEditValue("x")

	// The row is replaced externally while the editor is open.
	rows := recRows(4)
	c.SetRows(rows, nil, nil)
	c.CommitEdit()

	if committed {
		t.Error("stale edit was committed")
	}
	if c.Editing() != nil {
		t.Error("still in edit mode after stale discard")
	}
}

func TestStaleEditCommittedWhenOptedOut(t *testing.T) {
	committed := false
	c := newTestGrid(3, 4, Options{
		CommitStaleEdits: true,
		OnRowsChange:     func([]Row, RowsChangeEvent) { committed = true },
	})

	c.SelectCell(Position{Col: 0, Row: 1}, true)
	c.SetEditValue("x")
	c.SetRows(recRows(4), nil, nil)
	c.CommitEdit()

	if !committed {
		t.Error("edit not committed despite CommitStaleEdits")
	}
}

func TestCancelEditDiscardsWorkingRow(t *testing.T) {
	c := newTestGrid(3, 4, Options{
		OnRowsChange: func([]Row, RowsChangeEvent) {
			t.Error("OnRowsChange called for a cancelled edit")
		},
	})
	c.SelectCell(Position{Col: 0, Row: 1}, true)
	c.SetEditValue("x")
	c.CancelEdit()

	if c.Editing() != nil {
		t.Error("still editing after cancel")
	}
}

func TestEditOnlyOnEditableDataRows(t *testing.T) {
	c := newTestGrid(3, 4, Options{})

	c.SelectCell(Position{Col: 0, Row: -1}, true) // header
	if c.Editing() != nil {
		t.Error("editor opened on the header row")
	}
}

func TestBoundsShrinkResetsCursor(t *testing.T) {
	c := newTestGrid(3, 10, Options{})
	c.SelectCell(Position{Col: 2, Row: 8}, false)
	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift})

	c.SetRows(recRows(4), nil, nil)
	c.RowLayout() // render-cycle recomputation

	if !c.CursorPos().IsNone() {
		t.Errorf("cursor = %+v, want unset after bounds shrank", c.CursorPos())
	}
	if _, ok := c.SelectionRange(); ok {
		// The range was cleared together with the cursor.
		t.Error("range survived a bounds reset")
	}
}

func TestScrollToColumn(t *testing.T) {
	c := newTestGrid(10, 4, Options{})
	c.SetViewportSize(50, 10)

	c.ScrollToColumn(8)
	if left, _ := c.Scroll(); left != 40 {
		t.Errorf("scrollLeft = %d, want 40", left)
	}
	// Already visible: no movement.
	c.ScrollToColumn(8)
	if left, _ := c.Scroll(); left != 40 {
		t.Errorf("scrollLeft = %d, want still 40", left)
	}
	// Scrolling back left.
	c.ScrollToColumn(0)
	if left, _ := c.Scroll(); left != 0 {
		t.Errorf("scrollLeft = %d, want 0", left)
	}
}

func TestScrollToColumnMirrorsInRTL(t *testing.T) {
	c := newTestGrid(10, 4, Options{Direction: RightToLeft})
	c.SetViewportSize(50, 10)
	c.SetScroll(40, 0)

	// LTR would scroll left toward 10; RTL mirrors the delta sign.
	c.ScrollToColumn(1)
	if left, _ := c.Scroll(); left != 50 {
		t.Errorf("scrollLeft = %d, want 50 (mirrored and clamped)", left)
	}
}

func TestScrollToRow(t *testing.T) {
	c := newTestGrid(3, 100, Options{})

	c.ScrollToRow(50)
	if _, top := c.Scroll(); top != 41 {
		t.Errorf("scrollTop = %d, want 41", top)
	}
	c.ScrollToRow(10)
	if _, top := c.Scroll(); top != 10 {
		t.Errorf("scrollTop = %d, want 10", top)
	}
}

func TestViewportExtendsToCursor(t *testing.T) {
	c := newTestGrid(3, 100, Options{})
	c.SetScroll(0, 50)
	c.SelectCell(Position{Col: 0, Row: 0}, false)
	c.SetScroll(0, 50)

	vp := c.Viewport()
	if vp.StartIdx != 0 {
		t.Errorf("viewport start = %d, want extended to cursor row 0", vp.StartIdx)
	}
}

func TestViewportColumnsExtendToCursor(t *testing.T) {
	c := newTestGrid(20, 4, Options{})
	c.SetViewportSize(50, 10)
	c.SelectCell(Position{Col: 19, Row: 0}, false)
	c.SetScroll(0, 0)

	found := false
	for _, col := range c.ViewportColumns() {
		if col.Index == 19 {
			found = true
		}
	}
	if !found {
		t.Error("cursor column missing from materialized columns")
	}
}

func TestSortCycle(t *testing.T) {
	var events []SortDirection
	c := newTestGrid(3, 4, Options{
		OnSortChange: func(_ string, dir SortDirection) { events = append(events, dir) },
	})
	cols := recCols(3)
	cols[0].Sortable = true
	c.SetColumns(cols)

	c.ToggleSort("a")
	c.ToggleSort("a")
	c.ToggleSort("a")

	want := []SortDirection{SortAsc, SortDesc, SortNone}
	if len(events) != len(want) {
		t.Fatalf("got %d sort events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}

	c.ToggleSort("b") // not sortable
	if key, _ := c.SortState(); key != "" {
		t.Errorf("sorting a non-sortable column set state %q", key)
	}
}

func TestRowSelectionRequiresRowKey(t *testing.T) {
	c := newTestGrid(3, 4, Options{})
	defer func() {
		if recover() == nil {
			t.Error("row selection without RowKey should panic")
		}
	}()
	c.ToggleRowSelection(0, false)
}

func TestRowSelectionShiftRange(t *testing.T) {
	var lastKeys map[string]struct{}
	c := newTestGrid(3, 6, Options{
		RowKey:               func(r Row) string { return r.(*rec).id },
		OnSelectedRowsChange: func(keys map[string]struct{}) { lastKeys = keys },
	})

	c.ToggleRowSelection(1, false)
	c.ToggleRowSelection(4, true)

	if len(lastKeys) != 4 {
		t.Errorf("selected %d rows, want 4 (rows 1-4)", len(lastKeys))
	}

	c.ClearRowSelection()
	if len(lastKeys) != 0 {
		t.Errorf("selected %d rows after clear, want 0", len(lastKeys))
	}
}

func TestSelectAllRows(t *testing.T) {
	c := newTestGrid(3, 5, Options{
		RowKey: func(r Row) string { return r.(*rec).id },
	})
	c.SelectAllRows()
	if len(c.SelectedRows()) != 5 {
		t.Errorf("selected %d rows, want 5", len(c.SelectedRows()))
	}
}

func TestSelectedRowsReturnsDetachedCopy(t *testing.T) {
	c := newTestGrid(3, 4, Options{
		RowKey: func(r Row) string { return r.(*rec).id },
	})
	c.ToggleRowSelection(1, false)

	got := c.SelectedRows()
	delete(got, "1")
	got["9"] = struct{}{}

	if !c.RowSelected(1) {
		t.Error("mutating the returned map must not touch the selection")
	}
	if n := len(c.SelectedRows()); n != 1 {
		t.Errorf("selected %d rows, want 1", n)
	}
}

func TestResizeColumn(t *testing.T) {
	var gotKey string
	var gotW int
	c := newTestGrid(3, 4, Options{
		OnColumnResize: func(key string, w int) { gotKey, gotW = key, w },
	})
	cols := recCols(3)
	cols[1].Resizable = true
	cols[1].MinWidth = 5
	c.SetColumns(cols)

	c.ResizeColumn("b", 3) // below min: clamps
	if gotKey != "b" || gotW != 5 {
		t.Errorf("resize reported (%q,%d), want (b,5)", gotKey, gotW)
	}
	if w := c.Metrics().Columns[1].Width; w != 5 {
		t.Errorf("effective width = %d, want 5", w)
	}

	c.AutoResizeColumn("b")
	if gotW != AutoWidth {
		t.Errorf("auto resize reported %d, want AutoWidth", gotW)
	}

	c.ResizeColumn("a", 20) // not resizable
	if gotKey == "a" {
		t.Error("resize callback fired for a non-resizable column")
	}
}

func TestGroupToggle(t *testing.T) {
	var toggled string
	var toggledTo bool
	rows := []Row{
		&GroupRow{ID: "g1", GroupKey: "one", Expanded: false, SetSize: 1},
		newRec("r1"),
	}
	c := New(Options{
		Columns:       recCols(3),
		Rows:          rows,
		GroupedKeys:   []string{"a"},
		RowHeight:     FixedRowHeight(1),
		OnGroupToggle: func(id string, exp bool) { toggled, toggledTo = id, exp },
	})
	c.SetViewportSize(30, 10)

	c.SelectCell(Position{Col: WholeRowCol, Row: 0}, false)
	if got := c.CursorPos(); got != (Position{Col: WholeRowCol, Row: 0}) {
		t.Fatalf("cursor = %+v, want whole-row group cursor", got)
	}

	c.HandleKey(press(tea.KeyRight)) // expand a collapsed group
	if toggled != "g1" || !toggledTo {
		t.Errorf("toggle = (%q,%v), want (g1,true)", toggled, toggledTo)
	}

	c.HandleKey(press(tea.KeyEnter)) // still collapsed in our copy: expands again
	if !toggledTo {
		t.Errorf("enter toggled to %v, want expand", toggledTo)
	}
}
