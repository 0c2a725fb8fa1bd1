package state

import "time"

// Projection is a read-only copy of what the renderer needs. It shares no
// slices or pointers with the state.
type Projection struct {
	Cwd          string
	Entries      []FileEntry
	Cursor       int
	ScrollOffset int
	Mode         Mode
	Filter       string
	PromptLine   string
	ErrorMessage string
	Notice       string
	MarkedCount  int
	Preview      *PreviewData
	HelpVisible  bool

	ClipboardAvailable bool
	EditorAvailable    bool
	LastYankTime       time.Time
}

// Projection snapshots the state for rendering.
func (s *AppState) Projection() Projection {
	p := Projection{
		Cwd:          s.CurrentPath(),
		Entries:      append([]FileEntry(nil), s.Displayed...),
		Cursor:       s.Cursor,
		ScrollOffset: s.ScrollOffset,
		Mode:         s.Mode,
		Filter:       s.Filter,
		ErrorMessage: s.ErrorMessage,
		Notice:       s.Notice,
		MarkedCount:  s.MarkedCount(),
		Preview:      s.Preview.clone(),
		HelpVisible:  s.HelpVisible,

		ClipboardAvailable: s.ClipboardAvailable,
		EditorAvailable:    s.EditorAvailable,
		LastYankTime:       s.LastYankTime,
	}
	if s.Command != nil {
		p.PromptLine = s.Command.Line()
	}
	return p
}

// Selected returns the entry under the cursor, or nil.
func (p Projection) Selected() *FileEntry {
	if p.Cursor < 0 || p.Cursor >= len(p.Entries) {
		return nil
	}
	return &p.Entries[p.Cursor]
}
