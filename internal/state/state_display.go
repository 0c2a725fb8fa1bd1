package state

import "strings"

// rebuildDisplayed re-projects the snapshot through the active filter. The
// cursor lands on reselect when it is displayed, otherwise on the first entry.
func (s *AppState) rebuildDisplayed(reselect string) {
	s.projectDisplayed()
	s.Cursor = s.firstCursor()
	if reselect != "" {
		if idx := s.displayIndexOf(reselect); idx >= 0 {
			s.Cursor = idx
		}
	}
	s.ScrollOffset = 0
	s.updateScrollVisibility()
}

// rebuildDisplayedKeepIndex re-projects the snapshot and keeps the numeric
// cursor position, clamping it to the new bounds.
func (s *AppState) rebuildDisplayedKeepIndex(prev int) {
	s.projectDisplayed()
	switch {
	case len(s.Displayed) == 0:
		s.Cursor = NoCursor
	case prev < 0:
		s.Cursor = 0
	case prev >= len(s.Displayed):
		s.Cursor = len(s.Displayed) - 1
	default:
		s.Cursor = prev
	}
	s.updateScrollVisibility()
}

// syncMarks refreshes the Marked flag of displayed entries in place.
func (s *AppState) syncMarks() {
	for i := range s.Displayed {
		s.Displayed[i].Marked = s.IsMarked(s.Displayed[i].Path)
	}
}

func (s *AppState) projectDisplayed() {
	s.Displayed = nil
	if s.Snapshot == nil {
		return
	}
	displayed := make([]FileEntry, 0, len(s.Snapshot.Entries))
	for _, e := range s.Snapshot.Entries {
		if s.Filter != "" && !strings.HasPrefix(e.Name, s.Filter) {
			continue
		}
		e.Marked = s.IsMarked(e.Path)
		displayed = append(displayed, e)
	}
	s.Displayed = displayed
}

func (s *AppState) firstCursor() int {
	if len(s.Displayed) == 0 {
		return NoCursor
	}
	return 0
}

func (s *AppState) displayIndexOf(path string) int {
	for i := range s.Displayed {
		if s.Displayed[i].Path == path {
			return i
		}
	}
	return -1
}

func (s *AppState) setCursor(idx int) bool {
	if len(s.Displayed) == 0 {
		s.Cursor = NoCursor
		return false
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Displayed) {
		idx = len(s.Displayed) - 1
	}
	old := s.Cursor
	s.Cursor = idx
	s.updateScrollVisibility()
	return old != s.Cursor
}

func (s *AppState) visibleLines() int {
	lines := s.ScreenHeight - 4
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (s *AppState) updateScrollVisibility() {
	if s.Cursor < 0 {
		s.ScrollOffset = 0
		return
	}
	visibleLines := s.visibleLines()

	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	} else if s.Cursor >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.Cursor - visibleLines + 1
	}

	maxOffset := len(s.Displayed) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}
