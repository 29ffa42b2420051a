package grid

// ---------------------------------------------------------------------------
// Viewport column selection
// ---------------------------------------------------------------------------

// MaterializeColumns produces the ordered list of columns to render for
// the current overscan range: every frozen column regardless of scroll
// position, then the unfrozen columns inside the span-corrected
// overscan window. ctxs are the span contexts of everything on screen
// (header, visible rows, summaries) so a spanned cell is never entered
// mid-span at the left boundary.
func MaterializeColumns(m *ColumnMetrics, ctxs []SpanContext) []ComputedColumn {
	if len(m.Columns) == 0 {
		return nil
	}
	start := CorrectOverscanStart(m, m.OverscanStart, ctxs)

	out := make([]ComputedColumn, 0, m.OverscanEnd-start+1+m.LastFrozenIdx+1)
	for i := range m.Columns {
		c := m.Columns[i]
		switch {
		case c.Frozen:
			out = append(out, c)
		case i >= start && i <= m.OverscanEnd:
			out = append(out, c)
		}
	}
	return out
}
