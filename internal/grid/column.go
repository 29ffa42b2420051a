package grid

// ---------------------------------------------------------------------------
// Column definitions and the column layout engine
// ---------------------------------------------------------------------------

// SelectColumnKey marks the pinned row-select column. A column with this
// key is always ordered first and treated as frozen.
const SelectColumnKey = "select-row"

// AutoWidth is the sentinel reported through the resize callback when a
// column should be sized to its measured content.
const AutoWidth = -1

// widthKind discriminates the declared width of a column.
type widthKind int

const (
	widthAuto widthKind = iota
	widthFixed
	widthPercent
)

// Width is a column's declared width: fixed units, a percentage of the
// viewport, or automatic (share of the leftover viewport).
type Width struct {
	kind  widthKind
	value int
}

// Fixed declares an exact width in layout units.
func Fixed(units int) Width { return Width{kind: widthFixed, value: units} }

// Percent declares a width as a percentage of the viewport width,
// floored to whole units.
func Percent(pct int) Width { return Width{kind: widthPercent, value: pct} }

// Auto declares an automatic width: unassigned columns split the
// remaining viewport width evenly.
func Auto() Width { return Width{kind: widthAuto} }

// Column is a caller-supplied column definition. The core never mutates
// it; computed attributes live on ComputedColumn.
type Column struct {
	Key  string
	Name string

	Width    Width
	MinWidth int // 0 means 1
	MaxWidth int // 0 means unbounded

	Frozen    bool
	Resizable bool
	Sortable  bool
	Editable  bool

	// ColSpan, when non-nil, returns how many columns a cell in this
	// column occupies for the given context. Values <= 1 mean no span.
	ColSpan func(SpanContext) int

	// FormatValue renders the cell text for a data row. A nil formatter
	// renders empty. Panics are isolated at the render boundary.
	FormatValue func(row any) string

	// SetValue applies an edited text value and returns the updated row.
	// Required for Editable columns; using an editor without it is a
	// configuration error.
	SetValue func(row any, value string) any
}

// ComputedColumn is a column after layout: final ordering index,
// effective width and left offset from one shared width assignment.
type ComputedColumn struct {
	Column
	Index        int
	Width        int
	Left         int
	IsLastFrozen bool
}

// ColumnMetrics is the result of one column layout pass. Widths, left
// offsets, the frozen-region width and the overscan range all derive
// from the same width assignment; recomputing any of them separately
// would let frozen backgrounds drift from virtualized cells.
type ColumnMetrics struct {
	Columns     []ComputedColumn
	TotalWidth  int
	FrozenWidth int
	// LastFrozenIdx is the index of the last frozen column, -1 if none.
	LastFrozenIdx int
	// OverscanStart/OverscanEnd bound the unfrozen columns to
	// materialize, inclusive. Frozen columns are always materialized.
	OverscanStart int
	OverscanEnd   int
}

// ColumnLayoutInput carries everything the layout pass depends on.
type ColumnLayoutInput struct {
	Columns        []Column
	Overrides      map[string]int // resized/measured widths by key
	GroupedKeys    []string       // active grouping columns, in order
	ViewportWidth  int
	ScrollLeft     int
	Virtualization bool
}

// ComputeColumnMetrics orders columns, assigns effective widths and left
// offsets, and derives the frozen-region width and the overscan column
// range for the current scroll position.
func ComputeColumnMetrics(in ColumnLayoutInput) ColumnMetrics {
	ordered := orderColumns(in.Columns, in.GroupedKeys)

	m := ColumnMetrics{LastFrozenIdx: -1, OverscanEnd: -1}
	m.Columns = make([]ComputedColumn, len(ordered))

	// First pass: explicit widths. Overrides win, then fixed, then
	// percentage of the viewport; auto columns stay unassigned.
	assigned := 0
	flex := 0
	for i, col := range ordered {
		w := -1
		if ov, ok := in.Overrides[col.Key]; ok {
			w = clampWidth(col, ov)
		} else {
			switch col.Width.kind {
			case widthFixed:
				w = clampWidth(col, col.Width.value)
			case widthPercent:
				w = clampWidth(col, in.ViewportWidth*col.Width.value/100)
			case widthAuto:
				flex++
			}
		}
		m.Columns[i] = ComputedColumn{Column: col, Index: i, Width: w}
		if w >= 0 {
			assigned += w
		}
	}

	// Second pass: split the leftover viewport among auto columns.
	// Clamping makes the even split imprecise; later columns absorb the
	// rounding difference by re-dividing what actually remains.
	remaining := in.ViewportWidth - assigned
	if remaining < 0 {
		remaining = 0
	}
	for i := range m.Columns {
		if m.Columns[i].Width >= 0 {
			continue
		}
		w := clampWidth(m.Columns[i].Column, remaining/flex)
		m.Columns[i].Width = w
		remaining -= w
		if remaining < 0 {
			remaining = 0
		}
		flex--
	}

	// Left offsets and frozen-region extent from the final assignment.
	left := 0
	for i := range m.Columns {
		m.Columns[i].Left = left
		left += m.Columns[i].Width
		if m.Columns[i].Frozen {
			m.LastFrozenIdx = i
		}
	}
	m.TotalWidth = left
	if m.LastFrozenIdx >= 0 {
		lf := &m.Columns[m.LastFrozenIdx]
		lf.IsLastFrozen = true
		m.FrozenWidth = lf.Left + lf.Width
	}

	m.OverscanStart, m.OverscanEnd = overscanColumns(&m, in)
	return m
}

// orderColumns sorts columns into render order: the pinned select
// column, then columns participating in active grouping (in grouping
// order), then frozen columns, then the rest, stable within each class.
// Select and grouped columns are implicitly frozen.
func orderColumns(cols []Column, groupedKeys []string) []Column {
	groupOrder := make(map[string]int, len(groupedKeys))
	for i, k := range groupedKeys {
		groupOrder[k] = i
	}

	class := func(c Column) int {
		switch {
		case c.Key == SelectColumnKey:
			return 0
		case len(groupedKeys) > 0 && inGroup(groupOrder, c.Key):
			return 1
		case c.Frozen:
			return 2
		default:
			return 3
		}
	}

	out := make([]Column, 0, len(cols))
	for cl := 0; cl <= 3; cl++ {
		start := len(out)
		for _, c := range cols {
			if class(c) == cl {
				if cl <= 1 {
					c.Frozen = true
				}
				out = append(out, c)
			}
		}
		if cl == 1 {
			// Grouping order, not declaration order.
			sortGrouped(out[start:], groupOrder)
		}
	}
	return out
}

func inGroup(order map[string]int, key string) bool {
	_, ok := order[key]
	return ok
}

// sortGrouped is an insertion sort by grouping position; grouped column
// counts are tiny and stability is free.
func sortGrouped(cols []Column, order map[string]int) {
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && order[cols[j].Key] < order[cols[j-1].Key]; j-- {
			cols[j], cols[j-1] = cols[j-1], cols[j]
		}
	}
}

func clampWidth(c Column, w int) int {
	minW := c.MinWidth
	if minW <= 0 {
		minW = 1
	}
	if w < minW {
		w = minW
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	return w
}

// overscanColumns finds the unfrozen columns intersecting the scrolled
// viewport and expands the range by one column on each side. With
// virtualization off the whole list is visible.
func overscanColumns(m *ColumnMetrics, in ColumnLayoutInput) (start, end int) {
	n := len(m.Columns)
	if n == 0 {
		return 0, -1
	}
	if !in.Virtualization {
		return 0, n - 1
	}

	firstUnfrozen := m.LastFrozenIdx + 1
	if firstUnfrozen >= n {
		return n - 1, n - 1
	}

	viewLeft := in.ScrollLeft + m.FrozenWidth
	viewRight := in.ScrollLeft + in.ViewportWidth

	start, end = -1, -1
	for i := firstUnfrozen; i < n; i++ {
		c := &m.Columns[i]
		if c.Left+c.Width > viewLeft && c.Left < viewRight {
			if start < 0 {
				start = i
			}
			end = i
		}
	}
	if start < 0 {
		// Scrolled entirely past the content: collapse to one boundary
		// column so the viewport never goes empty.
		return n - 1, n - 1
	}
	if start > firstUnfrozen {
		start--
	}
	if end < n-1 {
		end++
	}
	return start, end
}
