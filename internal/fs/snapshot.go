package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Snapshot is a point-in-time, sorted read of one directory.
type Snapshot struct {
	Cwd     string
	Entries []Entry
}

// Load reads path and returns a sorted snapshot of its entries.
func Load(path string) (*Snapshot, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, classify("load", path, err)
	}
	entries, err := readEntries(dir)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Cwd: dir, Entries: entries}, nil
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// IndexOf returns the position of the entry at path, or -1.
func (s *Snapshot) IndexOf(path string) int {
	if s == nil {
		return -1
	}
	for i := range s.Entries {
		if s.Entries[i].Path == path {
			return i
		}
	}
	return -1
}

// NavigateInto replaces the snapshot with cwd/child. Empty or unreadable
// directories are refused and leave the snapshot untouched.
func (s *Snapshot) NavigateInto(child string) error {
	target := filepath.Join(s.Cwd, child)
	next, err := Load(target)
	if err != nil {
		return err
	}
	if next.Len() == 0 {
		return newError(ErrEmptyDirectory, "navigate", target, nil)
	}
	*s = *next
	return nil
}

// NavigateUp replaces the snapshot with the parent directory. It returns false
// when cwd is already the filesystem root.
func (s *Snapshot) NavigateUp() (bool, error) {
	parent := filepath.Dir(s.Cwd)
	if parent == s.Cwd {
		return false, nil
	}
	next, err := Load(parent)
	if err != nil {
		return false, err
	}
	*s = *next
	return true, nil
}

// ChangeDir replaces the snapshot with an arbitrary directory.
func (s *Snapshot) ChangeDir(path string) error {
	next, err := Load(path)
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

// Refresh re-reads cwd.
func (s *Snapshot) Refresh() error {
	return s.ChangeDir(s.Cwd)
}

// Restat re-reads the metadata of the entry at path without relisting the
// directory. It reports whether an entry was updated.
func (s *Snapshot) Restat(path string) bool {
	idx := s.IndexOf(path)
	if idx < 0 {
		return false
	}
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	raw := filepath.Base(path)
	s.Entries[idx] = newEntry(raw, path, info)
	return true
}

func readEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, classify("read", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		fullPath := filepath.Join(dir, rawName)
		info, err := de.Info()
		if err != nil {
			info = nil
		}
		entries = append(entries, newEntry(rawName, fullPath, info))
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders entries by name ignoring one leading dot, so ".bashrc"
// sorts next to "bashrc". Ties fall back to the full name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return lessName(entries[i].Name, entries[j].Name)
	})
}

func lessName(a, b string) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka != kb {
		return ka < kb
	}
	return a < b
}

func sortKey(name string) string {
	return strings.TrimPrefix(name, ".")
}
