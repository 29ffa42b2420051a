package grid

import "reflect"

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

// Mode is the cursor mode.
type Mode int

const (
	// ModeSelect is the default: the cursor marks a cell, no row data
	// is captured.
	ModeSelect Mode = iota
	// ModeEdit carries a working copy of the row under edit plus the
	// original row reference for stale-edit detection.
	ModeEdit
)

// EditState is the captured state of an in-progress cell edit.
type EditState struct {
	// Row is the working copy the editor mutates via Column.SetValue.
	Row Row
	// Original is the row as captured when the editor opened. If the
	// row in the sequence no longer matches it, the edit is stale.
	Original Row
}

// Cursor is the single addressable selection cursor.
type Cursor struct {
	Pos  Position
	Mode Mode
	Edit *EditState // non-nil iff Mode == ModeEdit
}

func unsetCursor() Cursor { return Cursor{Pos: NoPosition} }

// sameRow reports whether two opaque rows are the same value, by
// reference for pointer-like rows. Uncomparable kinds (maps, slices)
// compare by their referenced storage, never by content.
func sameRow(a, b Row) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	default:
		return false
	}
}
