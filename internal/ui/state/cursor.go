package state

// clampIndex folds i into [0, n). n must be positive.
func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// moveTo puts the cursor on idx, clamped to the items, and reports whether
// it moved. An empty pane parks the cursor at 0.
func (l *Level) moveTo(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clampIndex(idx, len(l.Items))
	return l.Cursor != old
}

// MoveCursorHome moves to the first row.
func (l *Level) MoveCursorHome() bool {
	return l.moveTo(0)
}

// MoveCursorEnd moves to the last row.
func (l *Level) MoveCursorEnd() bool {
	return l.moveTo(len(l.Items) - 1)
}

// MoveCursorBy moves delta rows without wrapping.
func (l *Level) MoveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		return l.moveTo(0)
	}
	return l.moveTo(clampIndex(l.Cursor, len(l.Items)) + delta)
}

// MoveCursorPageUp moves one screenful up. maxVisible <= 0 means the whole
// pane fits on screen.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves one screenful down.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursorBy(l.pageSize(maxVisible))
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return len(l.Items)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport the least amount that keeps the
// cursor row on screen.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clampIndex(l.Cursor, n)
	if maxVisible <= 0 || maxVisible >= n {
		l.ViewportOffset = 0
		return
	}
	offset := max(0, min(l.ViewportOffset, n-maxVisible))
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = l.Cursor - maxVisible + 1
	}
	l.ViewportOffset = offset
}
