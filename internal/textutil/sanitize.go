// Package textutil prepares untrusted text (file names, file contents, OS
// error messages) for a terminal cell grid.
package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText makes file names and file contents safe to draw: control
// characters become '?', line breaks become spaces, and bidi or
// zero-width formatting runes are replaced by a visible label.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsEscape) < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		writeSafe(&b, r)
	}
	return b.String()
}

// HasFormattingRunes reports whether text contains bidi or zero-width
// formatting runes. Names carrying them can look like other names.
func HasFormattingRunes(text string) bool {
	return strings.IndexFunc(text, isFormattingRune) >= 0
}

func needsEscape(r rune) bool {
	switch {
	case r == '\t':
		return false
	case r < 0x20, r == 0x7f:
		return true
	default:
		return isFormattingRune(r)
	}
}

func writeSafe(b *strings.Builder, r rune) {
	if label, ok := formattingRuneLabels[r]; ok {
		b.WriteString(label)
		return
	}
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		b.WriteByte(' ')
	case r < 0x20 || r == 0x7f:
		b.WriteByte('?')
	default:
		b.WriteRune(r)
	}
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
