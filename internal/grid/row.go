package grid

import "sort"

// ---------------------------------------------------------------------------
// Rows and the row layout engine
// ---------------------------------------------------------------------------

// Row is an element of the flattened display sequence. Data rows are
// opaque caller values with stable identity; group rows are *GroupRow.
type Row = any

// GroupRow is a synthetic row representing an expandable bucket of data
// rows sharing a grouping key. Group rows never appear in raw input;
// the caller flattens a grouped tree into the display sequence.
type GroupRow struct {
	ID       string
	GroupKey string // the shared key value, e.g. "engineering"
	ParentID string // enclosing group, "" at the top level
	Level    int    // nesting depth, 0-based
	Expanded bool
	PosInSet int // position among sibling groups, 0-based
	SetSize  int // number of sibling groups
	Children []Row
	// StartIdx is the precomputed offset of the group's first data row
	// among all flattened data rows.
	StartIdx int
}

// IsGroupRow reports whether row is a synthetic group row.
func IsGroupRow(row Row) bool {
	_, ok := row.(*GroupRow)
	return ok
}

// rowOverscan is the fixed vertical overscan buffer in rows.
const rowOverscan = 4

// RowHeight is the row-height policy: a constant height, or a function
// of the row for variable heights.
type RowHeight struct {
	fixed int
	fn    func(Row) int
}

// FixedRowHeight makes every row h units tall.
func FixedRowHeight(h int) RowHeight {
	if h <= 0 {
		h = 1
	}
	return RowHeight{fixed: h}
}

// VariableRowHeight derives each row's height from the row itself.
// Heights below 1 are treated as 1.
func VariableRowHeight(fn func(Row) int) RowHeight {
	return RowHeight{fn: fn}
}

func (h RowHeight) variable() bool { return h.fn != nil }

func (h RowHeight) of(row Row) int {
	v := h.fn(row)
	if v <= 0 {
		v = 1
	}
	return v
}

// RowMetrics holds the vertical layout of the current row sequence.
// For variable heights it carries a position table built in one pass;
// for constant heights positions are pure arithmetic.
type RowMetrics struct {
	count  int
	fixed  int   // >0 on the constant-height path
	tops   []int // variable path: top offset per row
	height []int // variable path: height per row
	total  int
}

// ComputeRowMetrics builds the vertical layout for rows under policy.
func ComputeRowMetrics(rows []Row, policy RowHeight) *RowMetrics {
	m := &RowMetrics{count: len(rows)}
	if !policy.variable() {
		m.fixed = policy.fixed
		m.total = m.fixed * m.count
		return m
	}
	m.tops = make([]int, len(rows))
	m.height = make([]int, len(rows))
	top := 0
	for i, row := range rows {
		h := policy.of(row)
		m.tops[i] = top
		m.height[i] = h
		top += h
	}
	m.total = top
	return m
}

// Count returns the number of rows covered by the metrics.
func (m *RowMetrics) Count() int { return m.count }

// TotalHeight returns the summed height of all rows.
func (m *RowMetrics) TotalHeight() int { return m.total }

// Top returns the top offset of row i, clamped to the valid row range.
func (m *RowMetrics) Top(i int) int {
	if m.count == 0 {
		return 0
	}
	i = clamp(i, 0, m.count-1)
	if m.fixed > 0 {
		return i * m.fixed
	}
	return m.tops[i]
}

// Height returns the height of row i, clamped to the valid row range.
func (m *RowMetrics) Height(i int) int {
	if m.count == 0 {
		return m.fixed
	}
	i = clamp(i, 0, m.count-1)
	if m.fixed > 0 {
		return m.fixed
	}
	return m.height[i]
}

// IndexAt maps a vertical offset to a row index: the greatest index
// whose top offset does not exceed offset. Returns 0 for an empty
// table or an offset before the first row.
func (m *RowMetrics) IndexAt(offset int) int {
	if m.count == 0 || offset <= 0 {
		return 0
	}
	if m.fixed > 0 {
		return clamp(offset/m.fixed, 0, m.count-1)
	}
	// First index with top > offset, minus one.
	i := sort.Search(m.count, func(i int) bool { return m.tops[i] > offset })
	return clamp(i-1, 0, m.count-1)
}

// RowViewport is the overscanned window of rows to materialize, plus
// the filler heights standing in for the rows outside it.
type RowViewport struct {
	StartIdx     int
	EndIdx       int // inclusive; -1 when there are no rows
	TopFiller    int
	BottomFiller int
}

// ComputeRowViewport derives the overscanned row range for the scroll
// position. Without virtualization every row is visible and fillers
// are zero.
func ComputeRowViewport(m *RowMetrics, clientHeight, scrollTop int, virtualized bool) RowViewport {
	if m.count == 0 {
		return RowViewport{EndIdx: -1}
	}
	if !virtualized {
		return RowViewport{StartIdx: 0, EndIdx: m.count - 1}
	}

	start := clamp(m.IndexAt(scrollTop)-rowOverscan, 0, m.count-1)
	end := clamp(m.IndexAt(scrollTop+clientHeight)+rowOverscan, 0, m.count-1)

	// Fillers assume uniform height equal to the start row's height.
	// Under variable heights this is an approximation; the fallback
	// branch below is deliberate, documented behavior.
	h := m.Height(start)
	top := h * start
	bottom := clientHeight - h*m.count
	if bottom <= 0 {
		bottom = h * (m.count - end - 1)
	}
	return RowViewport{StartIdx: start, EndIdx: end, TopFiller: top, BottomFiller: bottom}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
