package state

import (
	"time"

	fsutil "github.com/kk-code-lab/fm/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// NoCursor is the cursor value when nothing is selectable.
const NoCursor = -1

// Mode is the interaction mode of the navigation state machine.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModePrompting
	ModeErrorDisplay
)

func (m Mode) String() string {
	switch m {
	case ModePrompting:
		return "prompting"
	case ModeErrorDisplay:
		return "error"
	default:
		return "browsing"
	}
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	Snapshot  *fsutil.Snapshot
	Displayed []FileEntry // Snapshot entries, optionally filtered by Filter
	Filter    string      // Prefix filter kept after a confirmed search

	// Selection & viewport
	Cursor       int
	ScrollOffset int

	// Interaction
	Mode         Mode
	Command      *Command // Non-nil only while prompting
	ErrorMessage string

	// Preview of the entry under the cursor
	Preview *PreviewData

	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	EditorAvailable    bool
	LastYankTime       time.Time
	Notice             string // Transient, non-modal message

	marked map[string]struct{}
}

// NewAppState builds the initial state around snap.
func NewAppState(snap *fsutil.Snapshot) *AppState {
	s := &AppState{Snapshot: snap, Cursor: NoCursor}
	s.rebuildDisplayed("")
	return s
}

// CurrentPath returns the snapshot directory.
func (s *AppState) CurrentPath() string {
	if s.Snapshot == nil {
		return ""
	}
	return s.Snapshot.Cwd
}

// CurrentFile returns the entry under the cursor, or nil.
func (s *AppState) CurrentFile() *FileEntry {
	if s.Cursor < 0 || s.Cursor >= len(s.Displayed) {
		return nil
	}
	return &s.Displayed[s.Cursor]
}

// MarkedCount returns how many entries are marked.
func (s *AppState) MarkedCount() int {
	return len(s.marked)
}

// IsMarked reports whether path is marked.
func (s *AppState) IsMarked(path string) bool {
	_, ok := s.marked[path]
	return ok
}

func (s *AppState) toggleMark(path string) {
	if s.marked == nil {
		s.marked = make(map[string]struct{})
	}
	if _, ok := s.marked[path]; ok {
		delete(s.marked, path)
		return
	}
	s.marked[path] = struct{}{}
}

func (s *AppState) clearMarks() {
	s.marked = nil
}

// markedEntries returns marked snapshot entries in display order.
func (s *AppState) markedEntries() []FileEntry {
	if len(s.marked) == 0 || s.Snapshot == nil {
		return nil
	}
	var out []FileEntry
	for _, e := range s.Snapshot.Entries {
		if _, ok := s.marked[e.Path]; ok {
			e.Marked = true
			out = append(out, e)
		}
	}
	return out
}

// pruneMarks drops marks whose entries left the snapshot.
func (s *AppState) pruneMarks() {
	if len(s.marked) == 0 {
		return
	}
	for path := range s.marked {
		if s.Snapshot.IndexOf(path) < 0 {
			delete(s.marked, path)
		}
	}
}
