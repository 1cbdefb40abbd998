package state

import (
	"strings"
	"unicode"
)

// SetFilter replaces the search query and puts the filter cursor at pos.
// Starting a search remembers the list cursor and jumps to the best match;
// clearing the search returns to the remembered row.
func (l *Level) SetFilter(query string, pos int) {
	wasSearching := strings.TrimSpace(l.Filter) != ""
	searching := strings.TrimSpace(query) != ""
	if searching && !wasSearching {
		l.LastCursor = l.Cursor
	}
	l.Filter = query
	l.FilterCursor = max(0, min(pos, len([]rune(query))))
	l.applyFilter()
	switch {
	case searching:
		l.Cursor = max(0, BestMatch(l.Items, query))
	case wasSearching:
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		} else if len(l.Items) > 0 {
			l.Cursor = len(l.Items) - 1
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = Match(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = len(l.Items) - 1
	}
	l.Cursor = clampIndex(l.Cursor, len(l.Items))
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return max(0, min(l.FilterCursor, len([]rune(l.Filter))))
}

// spliceFilter replaces the runes in [from, to) with insert and leaves the
// cursor after the inserted text.
func (l *Level) spliceFilter(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	updated := make([]rune, 0, len(runes)-(to-from)+len(insert))
	updated = append(updated, runes[:from]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[to:]...)
	l.SetFilter(string(updated), from+len(insert))
}

// InsertFilterText types text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	pos := l.FilterCursorPos()
	l.spliceFilter(pos, pos, []rune(text))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.spliceFilter(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward deletes back to the start of the previous word.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.spliceFilter(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

func (l *Level) moveFilterCursor(pos int) bool {
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

// MoveFilterCursorStart moves the filter cursor before the first rune.
func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

// MoveFilterCursorEnd moves the filter cursor after the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

// MoveFilterCursorWordBackward moves to the start of the previous word.
func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorWordForward moves to the start of the next word, or the end.
func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(nextWord([]rune(l.Filter), l.FilterCursorPos()))
}

func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func nextWord(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
