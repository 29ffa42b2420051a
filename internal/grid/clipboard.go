package grid

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Clipboard: cell/range extraction and paste application
// ---------------------------------------------------------------------------

// CellText renders the text of a single cell. A panicking formatter is
// contained here and the cell renders empty; the row data underneath
// is untouched, so this is an isolation boundary, not data loss.
func (c *Controller) CellText(colIdx, rowIdx int) (text string) {
	m := c.columnMetrics()
	if colIdx < 0 || colIdx >= len(m.Columns) || !c.isDataOrGroupRow(rowIdx) {
		return ""
	}
	col := m.Columns[colIdx]
	if col.FormatValue == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Str("column", col.Key).Int("row", rowIdx).
				Interface("panic", r).Msg("cell formatter panicked; rendering empty")
			text = ""
		}
	}()
	return col.FormatValue(c.opts.Rows[rowIdx])
}

// CopyMarker returns the copied-cell marker, NoPosition when unset.
func (c *Controller) CopyMarker() Position { return c.copied }

// Copy captures the active selection as clipboard text: the normalized
// range as tab-separated lines when one spans multiple cells, else the
// cursor cell. The cursor cell is remembered as the copy marker.
func (c *Controller) Copy() (string, bool) {
	cur := c.cursor.Pos
	if cur.IsNone() || cur.Col < 0 {
		return "", false
	}
	c.copied = cur
	if cols, rows := c.rangeSize(); c.hasRange && (cols > 1 || rows > 1) {
		return c.rangeText(), true
	}
	return c.CellText(cur.Col, cur.Row), true
}

func (c *Controller) rangeSize() (cols, rows int) {
	if !c.hasRange {
		return 0, 0
	}
	return c.rng.Size()
}

func (c *Controller) rangeText() string {
	o := c.rng.Ordered()
	var b strings.Builder
	for r := o.StartRow; r <= o.EndRow; r++ {
		if r > o.StartRow {
			b.WriteByte('\n')
		}
		for col := o.StartCol; col <= o.EndCol; col++ {
			if col > o.StartCol {
				b.WriteByte('\t')
			}
			b.WriteString(c.CellText(col, r))
		}
	}
	return b.String()
}

// Paste applies tab-separated text over the grid starting at the
// cursor cell. Cells in non-editable columns or outside the grid are
// skipped. One OnRowsChange call reports every touched row.
func (c *Controller) Paste(text string) bool {
	cur := c.cursor.Pos
	if cur.IsNone() || cur.Col < 0 || !c.isDataRow(cur.Row) || text == "" {
		return false
	}
	if c.opts.OnRowsChange == nil {
		return false
	}
	c.commitPendingEdit()

	m := c.columnMetrics()
	updated := make([]Row, len(c.opts.Rows))
	copy(updated, c.opts.Rows)

	var changed []int
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for dr, line := range lines {
		rowIdx := cur.Row + dr
		if !c.isDataRow(rowIdx) {
			continue
		}
		touched := false
		for dc, val := range strings.Split(line, "\t") {
			colIdx := cur.Col + dc
			if colIdx >= len(m.Columns) {
				break
			}
			col := m.Columns[colIdx]
			if !col.Editable || col.SetValue == nil {
				continue
			}
			updated[rowIdx] = col.SetValue(updated[rowIdx], val)
			touched = true
		}
		if touched {
			changed = append(changed, rowIdx)
		}
	}
	if len(changed) == 0 {
		return false
	}
	c.opts.OnRowsChange(updated, RowsChangeEvent{
		Indexes: changed,
		Column:  m.Columns[cur.Col].Key,
	})
	return true
}
