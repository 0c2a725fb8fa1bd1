package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fm/internal/state"
	textutil "github.com/kk-code-lab/fm/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(view statepkg.Projection) []string {
	actions := []helpOverlayEntry{
		{keys: "n / N", desc: "Create file / directory"},
		{keys: "d", desc: "Delete (marked entries, or the selection)"},
		{keys: "r", desc: "Rename or move"},
		{keys: "c", desc: "Copy"},
		{keys: "v or Space", desc: "Mark / unmark"},
		{keys: "R", desc: "Refresh directory"},
	}
	if view.ClipboardAvailable {
		actions = append(actions, helpOverlayEntry{keys: "y", desc: "Yank path to clipboard"})
	}
	if view.EditorAvailable {
		actions = append(actions, helpOverlayEntry{keys: "e", desc: "Open in external editor ($EDITOR)"})
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or j/k", desc: "Move selection"},
				{keys: "→/↵ or l", desc: "Enter directory"},
				{keys: "← or h", desc: "Parent directory"},
				{keys: "g / G", desc: "First / last entry"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Filter by name prefix"},
				{keys: "Esc", desc: "Clear filter"},
			},
		},
		{
			title:   "Actions",
			entries: actions,
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(view statepkg.Projection, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(view)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}
