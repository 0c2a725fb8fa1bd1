package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop used for previews.
const DefaultTabWidth = 4

// ExpandTabs replaces each tab with spaces up to the next tab stop, counting
// wide runes as their terminal width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	col := 0
	for _, r := range text {
		if r != '\t' {
			b.WriteRune(r)
			col += max(runewidth.RuneWidth(r), 1)
			continue
		}
		pad := tabWidth - col%tabWidth
		b.WriteString(strings.Repeat(" ", pad))
		col += pad
	}
	return b.String()
}

// PreviewLine turns one raw line of a file into something drawable: a
// trailing CR is dropped, tabs are expanded and the rest is sanitised.
func PreviewLine(line string) string {
	line = strings.TrimSuffix(line, "\r")
	return SanitizeTerminalText(ExpandTabs(line, DefaultTabWidth))
}
