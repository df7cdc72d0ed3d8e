package state

// MoveSelection shifts the cursor by delta. The result is clamped to the
// listing; it never wraps. Empty views ignore the call.
func (v *View) MoveSelection(delta int) bool {
	n := len(v.Entries)
	if n == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = clamp(clamp(v.Cursor, 0, n-1)+delta, 0, n-1)
	return v.Cursor != old
}

// MoveCursorHome moves the cursor to the first entry.
func (v *View) MoveCursorHome() bool {
	return v.MoveSelection(-len(v.Entries))
}

// MoveCursorEnd moves the cursor to the last entry.
func (v *View) MoveCursorEnd() bool {
	return v.MoveSelection(len(v.Entries))
}

// MoveCursorPageUp moves the cursor up by one page of rows.
func (v *View) MoveCursorPageUp(rows int) bool {
	return v.MoveSelection(-v.pageSize(rows))
}

// MoveCursorPageDown moves the cursor down by one page of rows.
func (v *View) MoveCursorPageDown(rows int) bool {
	return v.MoveSelection(v.pageSize(rows))
}

func (v *View) pageSize(rows int) int {
	total := len(v.Entries)
	if rows <= 0 || rows > total {
		return total
	}
	return rows
}

// EnsureCursorVisible scrolls the viewport so the cursor lies within rows
// visible lines.
func (v *View) EnsureCursorVisible(rows int) {
	n := len(v.Entries)
	if n == 0 {
		v.Cursor = 0
		v.ViewportOffset = 0
		return
	}
	v.Cursor = clamp(v.Cursor, 0, n-1)
	if rows <= 0 {
		v.ViewportOffset = 0
		return
	}
	maxOffset := n - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := clamp(v.ViewportOffset, 0, maxOffset)
	if v.Cursor < offset {
		offset = v.Cursor
	}
	if v.Cursor > offset+rows-1 {
		offset = clamp(v.Cursor-rows+1, 0, maxOffset)
	}
	v.ViewportOffset = offset
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
