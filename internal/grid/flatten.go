package grid

// ---------------------------------------------------------------------------
// Group flattening
//
// The controller only ever consumes an already-flattened sequence; this
// helper produces one for hosts that group rows by column values.
// ---------------------------------------------------------------------------

// GroupBy names a grouping level: the column key it corresponds to and
// how to derive the bucket value from a data row.
type GroupBy struct {
	Key   string
	Value func(Row) string
}

// FlattenGroups buckets rows by the given grouping levels, in order,
// and flattens the resulting tree into one display sequence of group
// rows and data rows. Collapsed groups contribute only their group
// row; expanded holds the IDs of expanded groups.
func FlattenGroups(rows []Row, levels []GroupBy, expanded map[string]struct{}) []Row {
	if len(levels) == 0 {
		return rows
	}
	startIdx := 0
	return flattenLevel(rows, levels, expanded, "", 0, &startIdx)
}

func flattenLevel(rows []Row, levels []GroupBy, expanded map[string]struct{}, parentID string, level int, startIdx *int) []Row {
	lv := levels[level]

	// Bucket in first-encounter order.
	order := make([]string, 0, 8)
	buckets := make(map[string][]Row)
	for _, row := range rows {
		v := lv.Value(row)
		if _, ok := buckets[v]; !ok {
			order = append(order, v)
		}
		buckets[v] = append(buckets[v], row)
	}

	out := make([]Row, 0, len(rows)+len(order))
	for pos, v := range order {
		children := buckets[v]
		id := parentID + "/" + lv.Key + ":" + v
		_, isOpen := expanded[id]
		g := &GroupRow{
			ID:       id,
			GroupKey: v,
			ParentID: parentID,
			Level:    level,
			Expanded: isOpen,
			PosInSet: pos,
			SetSize:  len(order),
			Children: children,
			StartIdx: *startIdx,
		}
		out = append(out, g)
		if !isOpen {
			*startIdx += len(children)
			continue
		}
		if level+1 < len(levels) {
			out = append(out, flattenLevel(children, levels, expanded, id, level+1, startIdx)...)
		} else {
			out = append(out, children...)
			*startIdx += len(children)
		}
	}
	return out
}
