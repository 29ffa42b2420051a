package grid

import "testing"

type heightRow struct{ h int }

func nRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = &heightRow{h: 1}
	}
	return rows
}

func TestFixedHeightMetrics(t *testing.T) {
	m := ComputeRowMetrics(nRows(1000), FixedRowHeight(35))

	if m.TotalHeight() != 35000 {
		t.Errorf("total height = %d, want 35000", m.TotalHeight())
	}
	if got := m.Top(10); got != 350 {
		t.Errorf("Top(10) = %d, want 350", got)
	}
	if got := m.IndexAt(350); got != 10 {
		t.Errorf("IndexAt(350) = %d, want 10", got)
	}
	// Round-trip law.
	for _, i := range []int{0, 1, 17, 456, 999} {
		if got := m.IndexAt(m.Top(i)); got != i {
			t.Errorf("IndexAt(Top(%d)) = %d", i, got)
		}
	}
}

func TestVariableHeightBinarySearch(t *testing.T) {
	rows := []Row{&heightRow{10}, &heightRow{20}, &heightRow{30}, &heightRow{40}}
	m := ComputeRowMetrics(rows, VariableRowHeight(func(r Row) int { return r.(*heightRow).h }))

	if m.TotalHeight() != 100 {
		t.Fatalf("total height = %d, want 100", m.TotalHeight())
	}
	cases := []struct{ offset, want int }{
		{-5, 0}, {0, 0}, {9, 0},
		{10, 1}, {29, 1},
		{30, 2}, {59, 2},
		{60, 3}, {1000, 3},
	}
	for _, tc := range cases {
		if got := m.IndexAt(tc.offset); got != tc.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tc.offset, got, tc.want)
		}
	}
	// Round-trip law for the variable path.
	for i := 0; i < len(rows); i++ {
		if got := m.IndexAt(m.Top(i)); got != i {
			t.Errorf("IndexAt(Top(%d)) = %d", i, got)
		}
	}
}

func TestEmptyMetrics(t *testing.T) {
	m := ComputeRowMetrics(nil, FixedRowHeight(35))
	if m.IndexAt(100) != 0 {
		t.Error("IndexAt on empty metrics should return 0")
	}
	vp := ComputeRowViewport(m, 350, 0, true)
	if vp.EndIdx != -1 {
		t.Errorf("EndIdx = %d, want -1 for no rows", vp.EndIdx)
	}
}

func TestRowViewportOverscan(t *testing.T) {
	m := ComputeRowMetrics(nRows(1000), FixedRowHeight(35))

	vp := ComputeRowViewport(m, 350, 0, true)
	if vp.StartIdx != 0 {
		t.Errorf("StartIdx = %d, want 0", vp.StartIdx)
	}
	// 10 rows fit the client; 4 rows of overscan below.
	if vp.EndIdx != 14 {
		t.Errorf("EndIdx = %d, want 14", vp.EndIdx)
	}
	if vp.TopFiller != 0 {
		t.Errorf("TopFiller = %d, want 0", vp.TopFiller)
	}
	// Primary bottom formula is non-positive here, so the fallback
	// (start height x remaining rows) applies.
	if want := 35 * (1000 - 14 - 1); vp.BottomFiller != want {
		t.Errorf("BottomFiller = %d, want %d", vp.BottomFiller, want)
	}

	vp = ComputeRowViewport(m, 350, 3500, true)
	if vp.StartIdx != 96 || vp.EndIdx != 114 {
		t.Errorf("scrolled viewport = [%d,%d], want [96,114]", vp.StartIdx, vp.EndIdx)
	}
	if vp.TopFiller != 35*96 {
		t.Errorf("TopFiller = %d, want %d", vp.TopFiller, 35*96)
	}
}

func TestRowViewportNoVirtualization(t *testing.T) {
	m := ComputeRowMetrics(nRows(50), FixedRowHeight(35))
	vp := ComputeRowViewport(m, 350, 3500, false)
	if vp.StartIdx != 0 || vp.EndIdx != 49 {
		t.Errorf("viewport = [%d,%d], want [0,49]", vp.StartIdx, vp.EndIdx)
	}
	if vp.TopFiller != 0 || vp.BottomFiller != 0 {
		t.Errorf("fillers = %d/%d, want 0/0", vp.TopFiller, vp.BottomFiller)
	}
}

func TestRowViewportClampsToRowCount(t *testing.T) {
	m := ComputeRowMetrics(nRows(6), FixedRowHeight(35))
	vp := ComputeRowViewport(m, 350, 0, true)
	if vp.StartIdx != 0 || vp.EndIdx != 5 {
		t.Errorf("viewport = [%d,%d], want clamped [0,5]", vp.StartIdx, vp.EndIdx)
	}
}
