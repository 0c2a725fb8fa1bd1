package app

import (
	"errors"
	"reflect"
	"testing"
)

func lookPathOnly(found map[string]string) func(string) (string, error) {
	return func(cmd string) (string, error) {
		if path, ok := found[cmd]; ok {
			return path, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectEditorCommandWindowsFallbacks(t *testing.T) {
	lookPath := lookPathOnly(map[string]string{
		"notepad++.exe": `C:\Program Files\Notepad++\notepad++.exe`,
	})
	getenv := func(string) string { return "" }
	args, ok := detectEditorCommandInternal("windows", "", getenv, lookPath)
	if !ok {
		t.Fatalf("expected editor fallback")
	}
	expected := []string{`C:\Program Files\Notepad++\notepad++.exe`}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandUnixFallbacks(t *testing.T) {
	lookPath := lookPathOnly(map[string]string{"vim": "/usr/bin/vim"})
	getenv := func(string) string { return "" }
	args, ok := detectEditorCommandInternal("linux", "", getenv, lookPath)
	if !ok {
		t.Fatalf("expected editor fallback")
	}
	expected := []string{"/usr/bin/vim"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandPrefersVisualOverEditor(t *testing.T) {
	lookPath := lookPathOnly(map[string]string{
		"code": "/usr/local/bin/code",
		"nano": "/usr/bin/nano",
	})
	env := map[string]string{"VISUAL": "code --wait", "EDITOR": "nano"}
	args, ok := detectEditorCommandInternal("linux", "", func(k string) string { return env[k] }, lookPath)
	if !ok {
		t.Fatalf("expected editor from VISUAL")
	}
	expected := []string{"/usr/local/bin/code", "--wait"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandConfiguredWins(t *testing.T) {
	lookPath := lookPathOnly(map[string]string{
		"hx":   "/usr/bin/hx",
		"nano": "/usr/bin/nano",
	})
	env := map[string]string{"VISUAL": "nano"}
	args, ok := detectEditorCommandInternal("linux", "hx", func(k string) string { return env[k] }, lookPath)
	if !ok {
		t.Fatalf("expected configured editor")
	}
	if !reflect.DeepEqual(args, []string{"/usr/bin/hx"}) {
		t.Fatalf("expected configured editor, got %v", args)
	}
}

func TestDetectEditorCommandSkipsUnresolvable(t *testing.T) {
	lookPath := lookPathOnly(map[string]string{"nano": "/usr/bin/nano"})
	env := map[string]string{"VISUAL": "missing-editor", "EDITOR": "nano"}
	args, ok := detectEditorCommandInternal("linux", "", func(k string) string { return env[k] }, lookPath)
	if !ok || !reflect.DeepEqual(args, []string{"/usr/bin/nano"}) {
		t.Fatalf("expected fallthrough to EDITOR, got %v (%v)", args, ok)
	}
}

func TestDetectEditorCommandNoneAvailable(t *testing.T) {
	if _, ok := detectEditorCommandInternal("linux", "", func(string) string { return "" }, lookPathOnly(nil)); ok {
		t.Fatalf("expected no editor")
	}
}

func TestParseEditorCommandQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"vim", []string{"vim"}},
		{"code  --wait", []string{"code", "--wait"}},
		{`"/opt/My Editor/bin/ed" -n`, []string{"/opt/My Editor/bin/ed", "-n"}},
		{`ed 'it''s'`, []string{"ed", "its"}},
		{`ed "say 'hi'"`, []string{"ed", "say 'hi'"}},
	}
	for _, tt := range tests {
		if got := parseEditorCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseEditorCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandUserPath(t *testing.T) {
	if got := expandUserPath("/usr/bin/vim"); got != "/usr/bin/vim" {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := expandUserPath("~other/bin"); got != "~other/bin" {
		t.Fatalf("~user form should be left alone, got %q", got)
	}
}
