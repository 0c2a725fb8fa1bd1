package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/fm/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(view statepkg.Projection) string {
	parts := buildFooterHelpSegments(view)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(view statepkg.Projection) []string {
	segments := contextualHelpSegments(view)
	segments = append(segments, persistentHelpSegments(view)...)
	return segments
}

func contextualHelpSegments(view statepkg.Projection) []string {
	switch {
	case view.Mode == statepkg.ModeErrorDisplay:
		return []string{"any key: dismiss"}
	case view.Mode == statepkg.ModePrompting:
		return []string{"↵: confirm", "Esc: cancel", "⌫: erase"}
	case view.Filter != "":
		return []string{
			"↑/↓/←/→: navigate",
			"Esc: clear filter",
			"/: new search",
		}
	default:
		return []string{
			"↑/↓/←/→: navigate",
			"/: search",
			"n/N: new file/dir",
			"d: delete",
			"r: rename",
			"c: copy",
			"v: mark",
		}
	}
}

func persistentHelpSegments(view statepkg.Projection) []string {
	if view.Mode != statepkg.ModeBrowsing {
		return nil
	}

	var segments []string
	if view.ClipboardAvailable {
		segments = append(segments, "y: yank path")
	}
	if view.EditorAvailable {
		segments = append(segments, "e: edit file")
	}
	segments = append(segments, "?: help")
	return segments
}
