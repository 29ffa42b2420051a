package grid

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Grid controller
// ---------------------------------------------------------------------------

// SortDirection is the sort state of a column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// NavigationMode controls horizontal navigation at row edges.
type NavigationMode int

const (
	// NavClamp stops at the first/last column.
	NavClamp NavigationMode = iota
	// NavChangeRow wraps past the last column to the next row and
	// before the first column to the previous row.
	NavChangeRow
)

// RowsChangeEvent describes which rows and column an edit or paste
// touched.
type RowsChangeEvent struct {
	Indexes []int
	Column  string
}

// Options configures a Controller. Columns and rows may be replaced on
// any render cycle via the Set methods; callbacks are invoked with the
// current values at call time.
type Options struct {
	Columns           []Column
	Rows              []Row
	TopSummaryRows    []Row
	BottomSummaryRows []Row

	// GroupedKeys are the active grouping columns, in grouping order.
	// Non-empty grouping makes the whole-row column (-1) addressable.
	GroupedKeys []string

	RowHeight RowHeight

	// RowKey returns a stable identity key for a data row. Required by
	// the row-selection feature; selection without it is a
	// configuration error.
	RowKey func(Row) string

	OnRowsChange         func([]Row, RowsChangeEvent)
	OnSelectedRowsChange func(keys map[string]struct{})
	OnColumnResize       func(key string, width int)
	OnGroupToggle        func(groupID string, expanded bool)
	OnSortChange         func(key string, dir SortDirection)

	Direction Direction
	NavMode   NavigationMode

	// RangeBoundaryCol excludes columns at or below this index from
	// range selection; -1 disables the boundary. A zero value is
	// honored only when a select column exists, otherwise it is
	// treated as -1.
	RangeBoundaryCol int

	DisableVirtualization bool

	// CommitStaleEdits opts out of the stale-edit check: edits commit
	// even when the underlying row was replaced while editing.
	CommitStaleEdits bool
}

// Controller owns the grid's scroll, layout and selection state. All
// methods must be called from the host's single event goroutine; the
// bubbletea update loop serializes input, so no locking is needed.
type Controller struct {
	opts Options

	viewportWidth int
	clientHeight  int
	scrollLeft    int
	scrollTop     int

	overrides map[string]int // resized column widths by key

	// Layout caches, invalidated by input-version comparison rather
	// than implicit memoization.
	colsVersion uint64
	rowsVersion uint64
	colKey      colCacheKey
	colMetrics  ColumnMetrics
	rowKey      rowCacheKey
	rowMetrics  *RowMetrics

	cursor   Cursor
	rng      Range
	hasRange bool
	dragging bool
	copied   Position // copy marker; NoPosition when unset
	lastCol  int      // column held before the cursor entered a group row

	selected     map[string]struct{}
	lastSelected int // row index of the last selection toggle, for shift ranges

	sortColumn string
	sortDir    SortDirection
}

// colCacheKey captures every input the column layout depends on.
type colCacheKey struct {
	version       uint64
	viewportWidth int
	scrollLeft    int
	virtualized   bool
}

type rowCacheKey struct {
	version uint64
}

// New creates a controller over the supplied columns and rows.
func New(opts Options) *Controller {
	if opts.RowHeight.fixed == 0 && opts.RowHeight.fn == nil {
		opts.RowHeight = FixedRowHeight(1)
	}
	if opts.RangeBoundaryCol == 0 && !hasSelectColumn(opts.Columns) {
		opts.RangeBoundaryCol = -1
	}
	c := &Controller{
		opts:         opts,
		overrides:    make(map[string]int),
		cursor:       unsetCursor(),
		copied:       NoPosition,
		selected:     make(map[string]struct{}),
		lastSelected: -1,
		colsVersion:  1,
		rowsVersion:  1,
	}
	return c
}

func hasSelectColumn(cols []Column) bool {
	for _, c := range cols {
		if c.Key == SelectColumnKey {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Input replacement
// ---------------------------------------------------------------------------

// SetColumns replaces the column definitions.
func (c *Controller) SetColumns(cols []Column) {
	c.opts.Columns = cols
	c.colsVersion++
}

// SetRows replaces the flattened row sequence and summary rows.
func (c *Controller) SetRows(rows, topSummary, bottomSummary []Row) {
	c.opts.Rows = rows
	c.opts.TopSummaryRows = topSummary
	c.opts.BottomSummaryRows = bottomSummary
	c.rowsVersion++
}

// SetGroupedKeys replaces the active grouping columns.
func (c *Controller) SetGroupedKeys(keys []string) {
	c.opts.GroupedKeys = keys
	c.colsVersion++
}

// SetRowHeight replaces the row-height policy.
func (c *Controller) SetRowHeight(h RowHeight) {
	c.opts.RowHeight = h
	c.rowsVersion++
}

// SetViewportSize sets the visible content area in layout units.
func (c *Controller) SetViewportSize(width, height int) {
	c.viewportWidth = width
	c.clientHeight = height
}

// ViewportSize returns the current viewport dimensions.
func (c *Controller) ViewportSize() (width, height int) {
	return c.viewportWidth, c.clientHeight
}

// SetScroll sets absolute scroll offsets, clamped to content extents.
func (c *Controller) SetScroll(left, top int) {
	c.scrollLeft = left
	c.scrollTop = top
	c.clampScroll()
}

// ScrollBy adjusts the scroll offsets by a delta.
func (c *Controller) ScrollBy(dx, dy int) {
	c.SetScroll(c.scrollLeft+dx, c.scrollTop+dy)
}

// Scroll returns the current scroll offsets.
func (c *Controller) Scroll() (left, top int) { return c.scrollLeft, c.scrollTop }

func (c *Controller) clampScroll() {
	cm := c.columnMetrics()
	maxLeft := cm.TotalWidth - c.viewportWidth
	if maxLeft < 0 {
		maxLeft = 0
	}
	c.scrollLeft = clamp(c.scrollLeft, 0, maxLeft)

	rm := c.metricsForRows()
	maxTop := rm.TotalHeight() - c.clientHeight
	if maxTop < 0 {
		maxTop = 0
	}
	c.scrollTop = clamp(c.scrollTop, 0, maxTop)
}

// ---------------------------------------------------------------------------
// Layout recomputation — explicit version-keyed invalidation
// ---------------------------------------------------------------------------

func (c *Controller) columnMetrics() *ColumnMetrics {
	key := colCacheKey{
		version:       c.colsVersion,
		viewportWidth: c.viewportWidth,
		scrollLeft:    c.scrollLeft,
		virtualized:   !c.opts.DisableVirtualization,
	}
	if key != c.colKey {
		c.colMetrics = ComputeColumnMetrics(ColumnLayoutInput{
			Columns:        c.opts.Columns,
			Overrides:      c.overrides,
			GroupedKeys:    c.opts.GroupedKeys,
			ViewportWidth:  c.viewportWidth,
			ScrollLeft:     c.scrollLeft,
			Virtualization: !c.opts.DisableVirtualization,
		})
		c.colKey = key
		c.reconcileBounds()
	}
	return &c.colMetrics
}

func (c *Controller) metricsForRows() *RowMetrics {
	key := rowCacheKey{version: c.rowsVersion}
	if c.rowMetrics == nil || key != c.rowKey {
		c.rowMetrics = ComputeRowMetrics(c.opts.Rows, c.opts.RowHeight)
		c.rowKey = key
		c.reconcileBounds()
	}
	return c.rowMetrics
}

// Metrics returns the current column metrics, recomputing if inputs
// changed since the last call.
func (c *Controller) Metrics() *ColumnMetrics { return c.columnMetrics() }

// RowLayout returns the current row metrics, recomputing if needed.
func (c *Controller) RowLayout() *RowMetrics { return c.metricsForRows() }

// reconcileBounds resets selection state that points outside the
// current grid extents. Bounds drift as data changes; a cursor beyond
// them becomes the unset sentinel rather than an error.
func (c *Controller) reconcileBounds() {
	if c.cursor.Pos.IsNone() {
		return
	}
	if !c.inBounds(c.cursor.Pos) {
		log.Debug().
			Int("col", c.cursor.Pos.Col).
			Int("row", c.cursor.Pos.Row).
			Msg("cursor out of bounds after data change; resetting selection")
		c.cursor = unsetCursor()
		c.hasRange = false
		c.dragging = false
		c.copied = NoPosition
	}
}

// ---------------------------------------------------------------------------
// Bounds and row addressing
// ---------------------------------------------------------------------------

// MinRowIdx returns the header row index.
func (c *Controller) MinRowIdx() int { return -1 - len(c.opts.TopSummaryRows) }

// MaxRowIdx returns the last addressable row index.
func (c *Controller) MaxRowIdx() int {
	return len(c.opts.Rows) - 1 + len(c.opts.BottomSummaryRows)
}

// HeaderRowIdx is an alias for MinRowIdx.
func (c *Controller) HeaderRowIdx() int { return c.MinRowIdx() }

func (c *Controller) minColIdx() int {
	if len(c.opts.GroupedKeys) > 0 {
		return WholeRowCol
	}
	return 0
}

func (c *Controller) maxColIdx() int { return len(c.columnMetrics().Columns) - 1 }

func (c *Controller) inBounds(pos Position) bool {
	return pos.Col >= c.minColIdx() && pos.Col <= c.maxColIdx() &&
		pos.Row >= c.MinRowIdx() && pos.Row <= c.MaxRowIdx()
}

// RowAt returns the row addressed by a row index: a top/bottom summary
// row for out-of-data indices, nil for the header row or invalid
// indices, and the data/group row otherwise.
func (c *Controller) RowAt(idx int) Row {
	switch {
	case idx >= 0 && idx < len(c.opts.Rows):
		return c.opts.Rows[idx]
	case idx < 0 && idx > c.MinRowIdx():
		return c.opts.TopSummaryRows[idx+len(c.opts.TopSummaryRows)]
	case idx >= len(c.opts.Rows) && idx <= c.MaxRowIdx():
		return c.opts.BottomSummaryRows[idx-len(c.opts.Rows)]
	default:
		return nil
	}
}

// RowCount returns the number of data/group rows.
func (c *Controller) RowCount() int { return len(c.opts.Rows) }

func (c *Controller) isDataRow(idx int) bool {
	return idx >= 0 && idx < len(c.opts.Rows) && !IsGroupRow(c.opts.Rows[idx])
}

// resolveGroupCol converts a concrete column position on a group row
// into the whole-row sentinel. Group rows render one full-width cell
// and only a spanned cell covering the column keeps it addressable; in
// that case the position snaps to the span's origin instead.
func (c *Controller) resolveGroupCol(pos Position) Position {
	if pos.Col < 0 || !IsGroupRow(c.RowAt(pos.Row)) {
		return pos
	}
	m := c.columnMetrics()
	ctx := c.spanContextFor(pos.Row)
	for i := 0; i <= pos.Col && i < len(m.Columns); i++ {
		if span := ColSpan(m, i, ctx); span > 1 && pos.Col < i+span {
			pos.Col = i
			return pos
		}
	}
	pos.Col = WholeRowCol
	return pos
}

// spanContextFor maps a row index to the span context of its cells.
func (c *Controller) spanContextFor(rowIdx int) SpanContext {
	switch {
	case rowIdx == c.MinRowIdx():
		return SpanContext{Kind: SpanHeader}
	case rowIdx < 0 || rowIdx >= len(c.opts.Rows):
		return SpanContext{Kind: SpanSummary, Row: c.RowAt(rowIdx)}
	default:
		return SpanContext{Kind: SpanRow, Row: c.opts.Rows[rowIdx]}
	}
}

// ---------------------------------------------------------------------------
// Viewport materialization
// ---------------------------------------------------------------------------

// Viewport returns the overscanned row window, extended to include the
// cursor row when the cursor points outside it.
func (c *Controller) Viewport() RowViewport {
	vp := ComputeRowViewport(c.metricsForRows(), c.clientHeight, c.scrollTop, !c.opts.DisableVirtualization)
	if cur := c.cursor.Pos; !cur.IsNone() && c.isDataOrGroupRow(cur.Row) && vp.EndIdx >= 0 {
		if cur.Row < vp.StartIdx {
			vp.StartIdx = cur.Row
		}
		if cur.Row > vp.EndIdx {
			vp.EndIdx = cur.Row
		}
	}
	return vp
}

func (c *Controller) isDataOrGroupRow(idx int) bool {
	return idx >= 0 && idx < len(c.opts.Rows)
}

// ViewportColumns returns the materialized columns for the current
// viewport: frozen columns plus the span-corrected overscan window,
// extended to include the cursor column.
func (c *Controller) ViewportColumns() []ComputedColumn {
	m := c.columnMetrics()
	if len(m.Columns) == 0 {
		return nil
	}

	// Widen the overscan window to the cursor before materializing so
	// keyboard navigation never lands on an unmaterialized column.
	win := *m
	if cur := c.cursor.Pos; !cur.IsNone() && cur.Col >= 0 && cur.Col < len(m.Columns) {
		if cur.Col < win.OverscanStart {
			win.OverscanStart = cur.Col
		}
		if cur.Col > win.OverscanEnd {
			win.OverscanEnd = cur.Col
		}
	}
	return MaterializeColumns(&win, c.viewportSpanContexts())
}

// viewportSpanContexts collects the span contexts of everything on
// screen: the header, the visible rows, and both summary sets.
func (c *Controller) viewportSpanContexts() []SpanContext {
	vp := ComputeRowViewport(c.metricsForRows(), c.clientHeight, c.scrollTop, !c.opts.DisableVirtualization)
	ctxs := make([]SpanContext, 0, vp.EndIdx-vp.StartIdx+3)
	ctxs = append(ctxs, SpanContext{Kind: SpanHeader})
	for i := vp.StartIdx; i <= vp.EndIdx && i < len(c.opts.Rows); i++ {
		ctxs = append(ctxs, SpanContext{Kind: SpanRow, Row: c.opts.Rows[i]})
	}
	for _, s := range c.opts.TopSummaryRows {
		ctxs = append(ctxs, SpanContext{Kind: SpanSummary, Row: s})
	}
	for _, s := range c.opts.BottomSummaryRows {
		ctxs = append(ctxs, SpanContext{Kind: SpanSummary, Row: s})
	}
	return ctxs
}

// ---------------------------------------------------------------------------
// Selection API
// ---------------------------------------------------------------------------

// CursorPos returns the cursor position, NoPosition when unset.
func (c *Controller) CursorPos() Position { return c.cursor.Pos }

// Editing returns the in-progress edit state, nil outside edit mode.
func (c *Controller) Editing() *EditState {
	if c.cursor.Mode != ModeEdit {
		return nil
	}
	return c.cursor.Edit
}

// SelectionRange returns the active range and whether one exists.
func (c *Controller) SelectionRange() (Range, bool) { return c.rng, c.hasRange }

// SelectCell moves the cursor to pos, committing any pending edit
// first. Out-of-bounds positions are silently ignored. With openEditor
// set, an editable data-row cell enters edit mode instead of select.
func (c *Controller) SelectCell(pos Position, openEditor bool) {
	c.columnMetrics() // refresh bounds before validating
	if !c.inBounds(pos) {
		return
	}
	if pos.Col == WholeRowCol && !c.isDataOrGroupRow(pos.Row) {
		return
	}
	if p := c.resolveGroupCol(pos); p != pos {
		c.lastCol = pos.Col
		pos = p
	}
	c.commitPendingEdit()

	if openEditor && c.canEdit(pos) {
		c.openEditorAt(pos)
		return
	}
	c.cursor = Cursor{Pos: pos, Mode: ModeSelect}
	if pos.Col >= 0 {
		c.rng = SingleCell(pos)
		c.hasRange = true
	} else {
		c.hasRange = false
	}
	c.scrollCursorIntoView()
}

func (c *Controller) canEdit(pos Position) bool {
	if pos.Col < 0 || pos.Col > c.maxColIdx() || !c.isDataRow(pos.Row) {
		return false
	}
	return c.columnMetrics().Columns[pos.Col].Editable
}

// OpenEditor enters edit mode at the current cursor. It is a no-op on
// non-editable cells; an Editable column without SetValue panics, as a
// configuration error.
func (c *Controller) OpenEditor() bool {
	pos := c.cursor.Pos
	if pos.IsNone() || !c.canEdit(pos) {
		return false
	}
	c.openEditorAt(pos)
	return true
}

func (c *Controller) openEditorAt(pos Position) {
	col := c.columnMetrics().Columns[pos.Col]
	if col.SetValue == nil {
		panic(fmt.Sprintf("grid: column %q is editable but has no SetValue", col.Key))
	}
	row := c.opts.Rows[pos.Row]
	c.cursor = Cursor{
		Pos:  pos,
		Mode: ModeEdit,
		Edit: &EditState{Row: row, Original: row},
	}
	c.rng = SingleCell(pos)
	c.hasRange = true
	c.scrollCursorIntoView()
}

// SetEditValue applies an edited text value to the working row.
func (c *Controller) SetEditValue(value string) {
	ed := c.Editing()
	if ed == nil {
		return
	}
	col := c.columnMetrics().Columns[c.cursor.Pos.Col]
	ed.Row = col.SetValue(ed.Row, value)
}

// CommitEdit flushes the working row through OnRowsChange and leaves
// edit mode. A stale edit (the row was replaced externally while
// editing) is discarded instead, unless CommitStaleEdits is set.
func (c *Controller) CommitEdit() {
	ed := c.Editing()
	if ed == nil {
		return
	}
	pos := c.cursor.Pos
	c.cursor = Cursor{Pos: pos, Mode: ModeSelect}

	current := c.RowAt(pos.Row)
	if !c.opts.CommitStaleEdits && !sameRow(current, ed.Original) {
		log.Debug().Int("row", pos.Row).Msg("discarding stale edit")
		return
	}
	if sameRow(ed.Row, ed.Original) {
		return // nothing changed
	}
	if c.opts.OnRowsChange == nil {
		return
	}
	updated := make([]Row, len(c.opts.Rows))
	copy(updated, c.opts.Rows)
	updated[pos.Row] = ed.Row
	c.opts.OnRowsChange(updated, RowsChangeEvent{
		Indexes: []int{pos.Row},
		Column:  c.columnMetrics().Columns[pos.Col].Key,
	})
}

// CancelEdit discards the working row and returns to select mode.
func (c *Controller) CancelEdit() {
	if c.cursor.Mode != ModeEdit {
		return
	}
	c.cursor = Cursor{Pos: c.cursor.Pos, Mode: ModeSelect}
}

// commitPendingEdit enforces the ordering invariant: selecting another
// cell never silently drops an in-progress edit.
func (c *Controller) commitPendingEdit() {
	if c.cursor.Mode == ModeEdit {
		c.CommitEdit()
	}
}

// ---------------------------------------------------------------------------
// Scrolling to cells
// ---------------------------------------------------------------------------

// ScrollToCell scrolls the minimum distance needed to reveal pos.
// Negative components leave the corresponding axis untouched; indices
// outside the grid are ignored.
func (c *Controller) ScrollToCell(pos Position) {
	if pos.Col >= 0 {
		c.ScrollToColumn(pos.Col)
	}
	if pos.Row >= 0 {
		c.ScrollToRow(pos.Row)
	}
}

// ScrollToColumn reveals the column at idx. Frozen columns are always
// visible, so they never scroll. In right-to-left mode the delta sign
// is mirrored.
func (c *Controller) ScrollToColumn(idx int) {
	m := c.columnMetrics()
	if idx < 0 || idx >= len(m.Columns) || m.Columns[idx].Frozen {
		return
	}
	col := m.Columns[idx]
	delta := 0
	switch {
	case col.Left < c.scrollLeft+m.FrozenWidth:
		delta = col.Left - (c.scrollLeft + m.FrozenWidth)
	case col.Left+col.Width > c.scrollLeft+c.viewportWidth:
		delta = col.Left + col.Width - (c.scrollLeft + c.viewportWidth)
	}
	if delta == 0 {
		return
	}
	if c.opts.Direction == RightToLeft {
		delta = -delta
	}
	c.SetScroll(c.scrollLeft+delta, c.scrollTop)
}

// ScrollToRow reveals the data row at idx.
func (c *Controller) ScrollToRow(idx int) {
	rm := c.metricsForRows()
	if idx < 0 || idx >= rm.Count() {
		return
	}
	top := rm.Top(idx)
	h := rm.Height(idx)
	switch {
	case top < c.scrollTop:
		c.SetScroll(c.scrollLeft, top)
	case top+h > c.scrollTop+c.clientHeight:
		c.SetScroll(c.scrollLeft, top+h-c.clientHeight)
	}
}

func (c *Controller) scrollCursorIntoView() {
	pos := c.cursor.Pos
	if pos.IsNone() {
		return
	}
	c.ScrollToCell(pos)
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

// ToggleSort cycles the sort state of a sortable column:
// asc -> desc -> none. Sorting a different column starts at asc.
func (c *Controller) ToggleSort(key string) {
	var col *Column
	for i := range c.opts.Columns {
		if c.opts.Columns[i].Key == key {
			col = &c.opts.Columns[i]
			break
		}
	}
	if col == nil || !col.Sortable {
		return
	}
	switch {
	case c.sortColumn != key:
		c.sortColumn, c.sortDir = key, SortAsc
	case c.sortDir == SortAsc:
		c.sortDir = SortDesc
	default:
		c.sortColumn, c.sortDir = "", SortNone
	}
	if c.opts.OnSortChange != nil {
		c.opts.OnSortChange(c.sortColumn, c.sortDir)
	}
}

// SortState returns the sorted column key and direction.
func (c *Controller) SortState() (string, SortDirection) {
	return c.sortColumn, c.sortDir
}

// ---------------------------------------------------------------------------
// Row selection set
// ---------------------------------------------------------------------------

func (c *Controller) rowKeyOf(idx int) string {
	if c.opts.RowKey == nil {
		panic("grid: row selection requires Options.RowKey")
	}
	return c.opts.RowKey(c.opts.Rows[idx])
}

// ToggleRowSelection flips the selection of the data row at idx. With
// shift set, every data row between the previous toggle and idx takes
// the new state of idx.
func (c *Controller) ToggleRowSelection(idx int, shift bool) {
	if !c.isDataRow(idx) {
		return
	}
	key := c.rowKeyOf(idx)
	_, was := c.selected[key]
	set := func(i int, on bool) {
		if !c.isDataRow(i) {
			return
		}
		k := c.rowKeyOf(i)
		if on {
			c.selected[k] = struct{}{}
		} else {
			delete(c.selected, k)
		}
	}
	set(idx, !was)
	if shift && c.lastSelected >= 0 {
		lo, hi := c.lastSelected, idx
		if lo > hi {
			lo, hi = hi, lo
		}
		for i := lo; i <= hi; i++ {
			set(i, !was)
		}
	}
	c.lastSelected = idx
	c.notifySelectedRows()
}

// SelectAllRows selects every data row.
func (c *Controller) SelectAllRows() {
	for i := range c.opts.Rows {
		if c.isDataRow(i) {
			c.selected[c.rowKeyOf(i)] = struct{}{}
		}
	}
	c.notifySelectedRows()
}

// ClearRowSelection empties the selection set.
func (c *Controller) ClearRowSelection() {
	if len(c.selected) == 0 {
		return
	}
	c.selected = make(map[string]struct{})
	c.lastSelected = -1
	c.notifySelectedRows()
}

// SelectedRows returns a copy of the selected row keys.
func (c *Controller) SelectedRows() map[string]struct{} {
	out := make(map[string]struct{}, len(c.selected))
	for k := range c.selected {
		out[k] = struct{}{}
	}
	return out
}

// RowSelected reports whether the data row at idx is in the selection
// set. Never panics: without a RowKey nothing is ever selected.
func (c *Controller) RowSelected(idx int) bool {
	if c.opts.RowKey == nil || len(c.selected) == 0 || !c.isDataRow(idx) {
		return false
	}
	_, ok := c.selected[c.rowKeyOf(idx)]
	return ok
}

func (c *Controller) notifySelectedRows() {
	if c.opts.OnSelectedRowsChange == nil {
		return
	}
	out := make(map[string]struct{}, len(c.selected))
	for k := range c.selected {
		out[k] = struct{}{}
	}
	c.opts.OnSelectedRowsChange(out)
}

// ---------------------------------------------------------------------------
// Column resizing
// ---------------------------------------------------------------------------

// ResizeColumn records an explicit width for a resizable column,
// clamped to its min/max, and reports it upward.
func (c *Controller) ResizeColumn(key string, width int) {
	for _, col := range c.opts.Columns {
		if col.Key != key {
			continue
		}
		if !col.Resizable {
			return
		}
		w := clampWidth(col, width)
		c.overrides[key] = w
		c.colsVersion++
		if c.opts.OnColumnResize != nil {
			c.opts.OnColumnResize(key, w)
		}
		return
	}
}

// AutoResizeColumn drops the explicit width and reports the AutoWidth
// sentinel, asking the host to measure rendered content.
func (c *Controller) AutoResizeColumn(key string) {
	for _, col := range c.opts.Columns {
		if col.Key != key {
			continue
		}
		if !col.Resizable {
			return
		}
		delete(c.overrides, key)
		c.colsVersion++
		if c.opts.OnColumnResize != nil {
			c.opts.OnColumnResize(key, AutoWidth)
		}
		return
	}
}

// ---------------------------------------------------------------------------
// Group rows
// ---------------------------------------------------------------------------

// ToggleGroupAtCursor toggles expansion of the group row under the
// whole-row cursor, reporting the new state upward. want selects a
// target state: +1 expand, -1 collapse, 0 toggle.
func (c *Controller) ToggleGroupAtCursor(want int) bool {
	pos := c.cursor.Pos
	if pos.IsNone() || pos.Col != WholeRowCol {
		return false
	}
	g, ok := c.RowAt(pos.Row).(*GroupRow)
	if !ok {
		return false
	}
	next := !g.Expanded
	if want > 0 {
		next = true
	} else if want < 0 {
		next = false
	}
	if next == g.Expanded {
		return false
	}
	if c.opts.OnGroupToggle != nil {
		c.opts.OnGroupToggle(g.ID, next)
	}
	return true
}
