package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

var (
	unixEditors    = [][]string{{"vim"}, {"nano"}, {"vi"}}
	windowsEditors = [][]string{{"code", "--wait"}, {"notepad++.exe"}, {"notepad.exe"}}
)

func detectEditorCommand(configured string) ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, configured, os.Getenv, exec.LookPath)
}

// detectEditorCommandInternal returns the first editor whose executable can be
// found: the configured command, $VISUAL, $EDITOR, then the platform defaults.
func detectEditorCommandInternal(goos, configured string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	for _, args := range editorCandidates(goos, configured, getenv) {
		if len(args) == 0 {
			continue
		}
		resolved, ok := resolveEditorExecutableWithLookup(args[0], lookPath)
		if !ok {
			continue
		}
		cmd := make([]string, 0, len(args))
		cmd = append(cmd, resolved)
		return append(cmd, args[1:]...), true
	}
	return nil, false
}

func editorCandidates(goos, configured string, getenv func(string) string) [][]string {
	candidates := [][]string{
		parseEditorCommand(configured),
		parseEditorCommand(getenv("VISUAL")),
		parseEditorCommand(getenv("EDITOR")),
	}
	if strings.EqualFold(goos, "windows") {
		return append(candidates, windowsEditors...)
	}
	return append(candidates, unixEditors...)
}

// parseEditorCommand splits an $EDITOR style command line into arguments.
// Single and double quotes group words; a quote of one kind is literal
// inside the other.
func parseEditorCommand(cmd string) []string {
	var (
		args  []string
		word  strings.Builder
		quote rune
	)
	flush := func() {
		if word.Len() > 0 {
			args = append(args, word.String())
			word.Reset()
		}
	}

	for _, r := range strings.TrimSpace(cmd) {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

// expandUserPath expands a leading "~" or "~/". The "~user" form is left
// untouched.
func expandUserPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	rest := path[1:]
	if rest != "" && rest[0] != '/' && rest[0] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

func resolveEditorExecutableWithLookup(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(expandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
