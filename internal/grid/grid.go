// Package grid implements the layout and selection core of a virtualized
// data grid: column and row layout engines, cell span resolution, the
// materialized viewport, and the cursor/range selection state machine.
//
// The package is rendering-agnostic. Lengths are abstract non-negative
// integers; the terminal host maps one screen cell to one unit. Rows are
// opaque values mixed with *GroupRow markers in one flattened display
// sequence, addressed through a unified signed row-index space:
//
//	minRowIdx = -(1 + topSummaryCount)   header row
//	-topSummaryCount .. -1               top summary rows
//	0 .. rowCount-1                      data and group rows
//	rowCount .. rowCount+bottomCount-1   bottom summary rows
package grid

// WholeRowCol is the column sentinel addressing a whole row rather than
// a single cell. Valid only when grouping is active.
const WholeRowCol = -1

// Position addresses a cell in the unified coordinate space.
type Position struct {
	Col int
	Row int
}

// NoPosition is the unset cursor sentinel.
var NoPosition = Position{Col: -2, Row: -1 << 30}

// IsNone reports whether p is the unset sentinel.
func (p Position) IsNone() bool { return p == NoPosition }

// Direction is the text direction of the host surface. It only affects
// the sign of horizontal scroll deltas and the meaning of the logical
// left/right keys.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Range is a rectangular cell selection. Start and End are inclusive
// and unordered: Start may exceed End in either dimension while a drag
// or shift-extension is in progress.
type Range struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// SingleCell returns a 1x1 range covering pos.
func SingleCell(pos Position) Range {
	return Range{StartRow: pos.Row, StartCol: pos.Col, EndRow: pos.Row, EndCol: pos.Col}
}

// Ordered returns r normalized so start <= end in both dimensions.
func (r Range) Ordered() Range {
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}
	return r
}

// Contains reports whether the normalized range covers pos.
func (r Range) Contains(pos Position) bool {
	o := r.Ordered()
	return pos.Row >= o.StartRow && pos.Row <= o.EndRow &&
		pos.Col >= o.StartCol && pos.Col <= o.EndCol
}

// Size returns the normalized width and height of the range in cells.
func (r Range) Size() (cols, rows int) {
	o := r.Ordered()
	return o.EndCol - o.StartCol + 1, o.EndRow - o.StartRow + 1
}
