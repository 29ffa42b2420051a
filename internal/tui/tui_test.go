package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/datagrid/internal/config"
	"github.com/xonecas/datagrid/internal/grid"
)

type rec struct {
	id   int
	name string
	qty  int
}

func testColumns() []grid.Column {
	return []grid.Column{
		{
			Key: "id", Name: "id", Width: grid.Fixed(4),
			Sortable: true, Resizable: true,
			FormatValue: func(row any) string { return itoa(row.(*rec).id) },
		},
		{
			Key: "name", Name: "name", Width: grid.Fixed(10),
			Editable:    true,
			FormatValue: func(row any) string { return row.(*rec).name },
			SetValue: func(row any, value string) any {
				next := *row.(*rec)
				next.name = value
				return &next
			},
		},
		{
			Key: "qty", Name: "qty", Width: grid.Fixed(6),
			FormatValue: func(row any) string { return itoa(row.(*rec).qty) },
		},
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func testRows(n int) []grid.Row {
	names := []string{"Alpha", "Beta", "Gamma"}
	qtys := []int{10, 7, 99}
	rows := make([]grid.Row, n)
	for i := range rows {
		rows[i] = &rec{id: i + 1, name: names[i%3], qty: qtys[i%3]}
	}
	return rows
}

func newTestModel(t *testing.T, rows int, opts func(*grid.Options)) Model {
	t.Helper()
	o := grid.Options{
		Columns:   testColumns(),
		Rows:      testRows(rows),
		RowHeight: grid.FixedRowHeight(1),
	}
	if opts != nil {
		opts(&o)
	}
	m := New(grid.New(o), &config.Config{})
	return apply(t, m, tea.WindowSizeMsg{Width: 40, Height: 8})
}

func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func click(x, y int) tea.Msg   { return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft} }
func motion(x, y int) tea.Msg  { return tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft} }
func release(x, y int) tea.Msg { return tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft} }

func TestClickSelectsCell(t *testing.T) {
	m := newTestModel(t, 3, nil)
	m = apply(t, m, click(5, 2), release(5, 2))

	if got := m.grid.CursorPos(); got != (grid.Position{Col: 1, Row: 1}) {
		t.Fatalf("cursor = %+v", got)
	}
}

func TestKeyboardNavigationMovesCursor(t *testing.T) {
	m := newTestModel(t, 3, nil)
	m = apply(t, m,
		click(1, 1), release(1, 1),
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: tea.KeyRight},
	)

	if got := m.grid.CursorPos(); got != (grid.Position{Col: 1, Row: 1}) {
		t.Fatalf("cursor = %+v", got)
	}
}

func TestDragExtendsRange(t *testing.T) {
	m := newTestModel(t, 3, nil)
	m = apply(t, m, click(5, 2), motion(15, 3), release(15, 3))

	rng, ok := m.grid.SelectionRange()
	if !ok {
		t.Fatal("expected a selection range")
	}
	want := grid.Range{StartCol: 1, StartRow: 1, EndCol: 2, EndRow: 2}
	if rng.Ordered() != want {
		t.Fatalf("range = %+v", rng.Ordered())
	}
	if m.grid.Dragging() {
		t.Fatal("drag should end on release")
	}
}

func TestHeaderClickTogglesSort(t *testing.T) {
	m := newTestModel(t, 3, nil)

	m = apply(t, m, click(0, 0), release(0, 0))
	if key, dir := m.grid.SortState(); key != "id" || dir != grid.SortAsc {
		t.Fatalf("sort = %q %v", key, dir)
	}

	m = apply(t, m, click(0, 0), release(0, 0))
	if _, dir := m.grid.SortState(); dir != grid.SortDesc {
		t.Fatalf("second click should flip to descending, got %v", dir)
	}
}

func TestHeaderEdgeDragResizesColumn(t *testing.T) {
	m := newTestModel(t, 3, nil)

	// x=3 is the last cell of the 4-wide id column.
	m = apply(t, m, click(3, 0), motion(5, 0), release(5, 0))

	if got := m.grid.Metrics().Columns[0].Width; got != 6 {
		t.Fatalf("resized width = %d, want 6", got)
	}
	if _, dir := m.grid.SortState(); dir != grid.SortNone {
		t.Fatal("edge drag must not toggle sort")
	}
}

func TestWheelScrollsRows(t *testing.T) {
	m := newTestModel(t, 20, nil)
	m = apply(t, m, tea.MouseWheelMsg{X: 5, Y: 3, Button: tea.MouseWheelDown})

	if _, top := m.grid.Scroll(); top != wheelStep {
		t.Fatalf("scrollTop = %d, want %d", top, wheelStep)
	}
}

func TestClickOnGroupRowSelectsWholeRowAndEnterToggles(t *testing.T) {
	var toggled string
	var toggledTo bool
	m := newTestModel(t, 3, func(o *grid.Options) {
		o.Rows = []grid.Row{
			&grid.GroupRow{ID: "g-alpha", GroupKey: "Alpha", SetSize: 1},
			&rec{id: 1, name: "Alpha", qty: 10},
		}
		o.GroupedKeys = []string{"name"}
		o.OnGroupToggle = func(id string, exp bool) { toggled, toggledTo = id, exp }
	})

	m = apply(t, m, click(5, 1), release(5, 1))
	if got := m.grid.CursorPos(); got != (grid.Position{Col: grid.WholeRowCol, Row: 0}) {
		t.Fatalf("cursor after group row click = %+v, want the whole-row column", got)
	}

	apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if toggled != "g-alpha" || !toggledTo {
		t.Errorf("toggle = (%q,%v), want (g-alpha,true)", toggled, toggledTo)
	}
}

func TestTypingOpensEditorAndEnterCommits(t *testing.T) {
	var committed []grid.Row
	m := newTestModel(t, 3, func(o *grid.Options) {
		o.OnRowsChange = func(rows []grid.Row, ev grid.RowsChangeEvent) { committed = rows }
	})

	m = apply(t, m,
		click(5, 1), release(5, 1),
		tea.KeyPressMsg{Code: 'x', Text: "x"},
	)
	if m.grid.Editing() == nil {
		t.Fatal("typing on an editable cell should open the editor")
	}
	if got := m.editor.Value(); got != "x" {
		t.Fatalf("editor seeded with %q", got)
	}

	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.grid.Editing() != nil {
		t.Fatal("enter should leave edit mode")
	}
	if committed == nil {
		t.Fatal("commit did not fire OnRowsChange")
	}
	if got := committed[0].(*rec).name; got != "x" {
		t.Fatalf("committed name = %q", got)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	var committed bool
	m := newTestModel(t, 3, func(o *grid.Options) {
		o.OnRowsChange = func([]grid.Row, grid.RowsChangeEvent) { committed = true }
	})

	m = apply(t, m,
		click(5, 1), release(5, 1),
		tea.KeyPressMsg{Code: tea.KeyF2},
	)
	if m.grid.Editing() == nil {
		t.Fatal("f2 should open the editor")
	}
	if got := m.editor.Value(); got != "Alpha" {
		t.Fatalf("f2 should seed the current cell text, got %q", got)
	}

	m = apply(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.grid.Editing() != nil {
		t.Fatal("esc should cancel the edit")
	}
	if committed {
		t.Fatal("cancel must not commit")
	}
}

func TestCopySetsStatusAndClipboard(t *testing.T) {
	m := newTestModel(t, 3, nil)
	m = apply(t, m, click(5, 1), release(5, 1))

	updated, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl | tea.ModShift})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("copy should emit a clipboard command")
	}
	if m.statusMsg != "copied" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if m.grid.CopyMarker() != (grid.Position{Col: 1, Row: 0}) {
		t.Fatalf("copy marker = %+v", m.grid.CopyMarker())
	}
}

func TestRowSelectionChord(t *testing.T) {
	m := newTestModel(t, 3, func(o *grid.Options) {
		o.RowKey = func(row grid.Row) string { return itoa(row.(*rec).id) }
	})
	m = apply(t, m,
		click(1, 1), release(1, 1),
		tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl},
	)

	if !m.grid.RowSelected(0) {
		t.Fatal("ctrl+r should select the cursor row")
	}
	if got := m.renderContentStripped(); !strings.Contains(got, "sel 1") {
		t.Fatalf("status bar missing selection count:\n%s", got)
	}
}

func TestEditHintInStatusBar(t *testing.T) {
	m := newTestModel(t, 3, nil)
	// The hint only fits once the status bar has room for it.
	m = apply(t, m,
		tea.WindowSizeMsg{Width: 80, Height: 8},
		click(5, 1), release(5, 1),
		tea.KeyPressMsg{Code: tea.KeyF2},
	)

	if got := m.renderContentStripped(); !strings.Contains(got, "enter commit") {
		t.Fatalf("edit hint missing:\n%s", got)
	}
}

func TestSortIndicatorRenders(t *testing.T) {
	m := newTestModel(t, 3, nil)
	m = apply(t, m, click(0, 0), release(0, 0))

	if got := m.renderContentStripped(); !strings.Contains(got, "id ▲") {
		t.Fatalf("ascending indicator missing:\n%s", got)
	}
}

// renderContentStripped renders the view without ANSI codes.
func (m Model) renderContentStripped() string {
	return stripANSI(m.renderContent())
}
