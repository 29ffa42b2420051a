package grid

// ---------------------------------------------------------------------------
// Column span resolution
// ---------------------------------------------------------------------------

// SpanKind identifies the render context a span is evaluated for.
type SpanKind int

const (
	SpanHeader SpanKind = iota
	SpanRow
	SpanSummary
)

// SpanContext is passed to a column's ColSpan function.
type SpanContext struct {
	Kind SpanKind
	// Row is the data or group row for SpanRow, the summary row for
	// SpanSummary, and nil for SpanHeader.
	Row Row
}

// ColSpan returns the effective span of the column at index idx for
// ctx. A declared span is honored only when it is greater than one and
// either the column is unfrozen or the whole span stays inside the
// frozen region; everything else collapses to 1.
func ColSpan(m *ColumnMetrics, idx int, ctx SpanContext) int {
	if idx < 0 || idx >= len(m.Columns) {
		return 1
	}
	c := &m.Columns[idx]
	if c.Column.ColSpan == nil {
		return 1
	}
	span := c.Column.ColSpan(ctx)
	if span <= 1 {
		return 1
	}
	if c.Frozen && idx+span-1 > m.LastFrozenIdx {
		// A frozen cell may not spill across the frozen boundary.
		return 1
	}
	return span
}

// CorrectOverscanStart pulls the overscan start column left to a span's
// origin when the start column sits inside a spanned cell for any of
// the given contexts, so no cell is materialized from its interior.
func CorrectOverscanStart(m *ColumnMetrics, start int, ctxs []SpanContext) int {
	first := m.LastFrozenIdx + 1
	for _, ctx := range ctxs {
		for i := first; i < start; i++ {
			if i+ColSpan(m, i, ctx) > start {
				start = i
				break
			}
		}
	}
	return start
}

// snapToSpan corrects a navigation candidate that landed strictly
// inside a spanned cell: moving backward snaps to the span's origin,
// moving forward to one past the span's end.
func snapToSpan(m *ColumnMetrics, pos Position, forward bool, ctx SpanContext) Position {
	for i := 0; i < pos.Col && i < len(m.Columns); i++ {
		span := ColSpan(m, i, ctx)
		if span > 1 && pos.Col > i && pos.Col < i+span {
			if forward {
				pos.Col = i + span
			} else {
				pos.Col = i
			}
			break
		}
	}
	return pos
}
