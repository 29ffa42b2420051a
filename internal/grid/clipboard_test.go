package grid

import "testing"

func seededGrid(t *testing.T, ncols, nrows int, onChange func([]Row, RowsChangeEvent)) *Controller {
	t.Helper()
	c := newTestGrid(ncols, nrows, Options{OnRowsChange: onChange})
	rows := make([]Row, nrows)
	for i := 0; i < nrows; i++ {
		r := newRec(string(rune('0' + i)))
		for j := 0; j < ncols; j++ {
			key := string(rune('a' + j))
			r.vals[key] = key + string(rune('0'+i))
		}
		rows[i] = r
	}
	c.SetRows(rows, nil, nil)
	return c
}

func TestCopySingleCell(t *testing.T) {
	c := seededGrid(t, 3, 3, nil)
	c.SelectCell(Position{Col: 1, Row: 2}, false)

	text, ok := c.Copy()
	if !ok || text != "b2" {
		t.Errorf("copy = (%q,%v), want (b2,true)", text, ok)
	}
	if c.CopyMarker() != (Position{Col: 1, Row: 2}) {
		t.Errorf("copy marker = %+v, want {1 2}", c.CopyMarker())
	}
}

func TestCopyRangeAsTabSeparated(t *testing.T) {
	c := seededGrid(t, 3, 3, nil)
	c.StartRangeDrag(Position{Col: 0, Row: 0})
	c.DragOver(Position{Col: 1, Row: 1})
	c.EndRangeDrag()

	text, ok := c.Copy()
	if !ok {
		t.Fatal("copy failed")
	}
	want := "a0\tb0\na1\tb1"
	if text != want {
		t.Errorf("copy = %q, want %q", text, want)
	}
}

func TestPasteAppliesOverEditableCells(t *testing.T) {
	var gotRows []Row
	var gotEv RowsChangeEvent
	c := seededGrid(t, 3, 3, func(rows []Row, ev RowsChangeEvent) {
		gotRows, gotEv = rows, ev
	})
	c.SelectCell(Position{Col: 1, Row: 0}, false)

	if !c.Paste("X\tY\nZ") {
		t.Fatal("paste rejected")
	}
	if len(gotEv.Indexes) != 2 || gotEv.Indexes[0] != 0 || gotEv.Indexes[1] != 1 {
		t.Fatalf("changed indexes = %v, want [0 1]", gotEv.Indexes)
	}
	r0 := gotRows[0].(*rec)
	if r0.vals["b"] != "X" || r0.vals["c"] != "Y" {
		t.Errorf("row 0 = %v, want b=X c=Y", r0.vals)
	}
	if r1 := gotRows[1].(*rec); r1.vals["b"] != "Z" {
		t.Errorf("row 1 b = %q, want Z", r1.vals["b"])
	}
	// Paste never spills past the last column or row silently changing
	// other cells.
	if r0.vals["a"] != "a0" {
		t.Errorf("row 0 a = %q, want untouched a0", r0.vals["a"])
	}
}

func TestPasteWithoutCursorIsNoOp(t *testing.T) {
	c := seededGrid(t, 3, 3, func([]Row, RowsChangeEvent) {
		t.Error("OnRowsChange called without a cursor")
	})
	if c.Paste("X") {
		t.Error("paste succeeded without a cursor")
	}
}

func TestFormatterPanicRendersEmpty(t *testing.T) {
	c := newTestGrid(2, 2, Options{})
	cols := recCols(2)
	cols[1].FormatValue = func(any) string { panic("formatter bug") }
	c.SetColumns(cols)

	if got := c.CellText(1, 0); got != "" {
		t.Errorf("CellText = %q, want empty on formatter panic", got)
	}
	// Neighboring cells are unaffected.
	c.SetRows([]Row{func() Row { r := newRec("0"); r.vals["a"] = "ok"; return r }()}, nil, nil)
	if got := c.CellText(0, 0); got != "ok" {
		t.Errorf("CellText = %q, want ok", got)
	}
}
