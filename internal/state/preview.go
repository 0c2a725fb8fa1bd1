package state

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	fsutil "github.com/kk-code-lab/fm/internal/fs"
	"github.com/kk-code-lab/fm/internal/textutil"
)

// PreviewData describes the entry under the cursor for the preview pane.
// Failures never change the mode; they land in Message.
type PreviewData struct {
	Path       string
	Name       string
	Kind       fsutil.Kind
	DirEntries []FileEntry
	TextLines  []string
	Message    string
}

func (p *PreviewData) clone() *PreviewData {
	if p == nil {
		return nil
	}
	c := *p
	c.DirEntries = append([]FileEntry(nil), p.DirEntries...)
	c.TextLines = append([]string(nil), p.TextLines...)
	return &c
}

// generatePreview rebuilds the preview when the cursor moved to another path
// or force is set.
func (r *StateReducer) generatePreview(state *AppState, force bool) error {
	file := state.CurrentFile()
	if file == nil {
		state.Preview = nil
		return nil
	}
	if !force && state.Preview != nil && state.Preview.Path == file.Path && state.Preview.Kind == file.Kind {
		return nil
	}
	state.Preview = buildPreviewData(*file, r.previewLines)
	return nil
}

// RefreshPreview forces the preview of the current entry to be rebuilt.
func (r *StateReducer) RefreshPreview(state *AppState) {
	_ = r.generatePreview(state, true)
}

func buildPreviewData(entry FileEntry, maxLines int) *PreviewData {
	preview := &PreviewData{
		Path: entry.Path,
		Name: entry.Name,
		Kind: entry.Kind,
	}

	switch entry.Kind {
	case fsutil.KindDirectory:
		loadDirectoryPreview(preview, entry.Path)
	case fsutil.KindSymlink:
		target, err := os.Readlink(entry.Path)
		if err != nil {
			preview.Message = err.Error()
			return preview
		}
		preview.Message = "-> " + textutil.SanitizeTerminalText(target)
	default:
		loadFilePreview(preview, entry, maxLines)
	}
	return preview
}

func loadDirectoryPreview(preview *PreviewData, path string) {
	snap, err := fsutil.Load(path)
	if err != nil {
		preview.Message = err.Error()
		return
	}
	if snap.Len() == 0 {
		preview.Message = fsutil.ErrEmptyDirectory.String()
		return
	}
	preview.DirEntries = snap.Entries
}

func loadFilePreview(preview *PreviewData, entry FileEntry, maxLines int) {
	if entry.Size == 0 {
		preview.Message = "(empty file)"
		return
	}
	sample, err := fsutil.ReadTextSample(entry.Path)
	if err != nil {
		preview.Message = err.Error()
		return
	}
	if !fsutil.IsTextFile(entry.Path, sample) {
		preview.Message = fmt.Sprintf("binary file, %s", humanize.Bytes(uint64(entry.Size)))
		return
	}

	text := fsutil.NormalizeTextContent(sample)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i] = textutil.PreviewLine(line)
	}
	preview.TextLines = lines
}
