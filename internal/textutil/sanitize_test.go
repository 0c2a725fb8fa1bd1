package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"safe input untouched", "safe-file.txt", "safe-file.txt"},
		{"tab kept", "a\tb", "a\tb"},
		{"escape sequence neutralised", "bad\x1b[31m\npath", "bad?[31m path"},
		{"delete char", "x\x7fy", "x?y"},
		{"carriage return", "a\rb", "a b"},
		{"right-to-left override labelled", "gpj.‮exe", "gpj.⟪RLO⟫exe"},
		{"zero width space labelled", "a​b", "a⟪ZWSP⟫b"},
		{"soft hyphen labelled", "co­op", "co⟪SHY⟫op"},
		{"bom labelled", "\uFEFFname", "⟪BOM⟫name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTerminalText(tt.in)
			if got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.IndexFunc(got, func(r rune) bool { return r != '\t' && (r < 0x20 || r == 0x7f) }) >= 0 {
				t.Fatalf("sanitized text still has control characters: %q", got)
			}
		})
	}
}

func TestHasFormattingRunes(t *testing.T) {
	if HasFormattingRunes("plain") {
		t.Fatalf("expected plain text to have no formatting runes")
	}
	if !HasFormattingRunes("hi⁧") {
		t.Fatalf("expected formatting runes to be detected")
	}
	if HasFormattingRunes("tab\there") {
		t.Fatalf("tab is not a formatting rune")
	}
}
