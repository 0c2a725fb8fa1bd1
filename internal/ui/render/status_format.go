package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	statepkg "github.com/kk-code-lab/fm/internal/state"
)

// formatEntryStatus describes the entry under the cursor: permissions, size
// and a relative modification time.
func formatEntryStatus(entry *statepkg.FileEntry, now time.Time) string {
	if entry == nil {
		return ""
	}
	parts := []string{entry.Perms.String(), entry.HumanSize()}
	if !entry.Modified.IsZero() {
		parts = append(parts, humanize.RelTime(entry.Modified, now, "ago", "from now"))
	}
	return strings.Join(parts, "  ")
}

// formatListPosition renders "3/1,204" plus the number of marked entries.
func formatListPosition(view statepkg.Projection) string {
	total := len(view.Entries)
	pos := view.Cursor + 1
	if view.Cursor < 0 {
		pos = 0
	}
	text := fmt.Sprintf("%s/%s", humanize.Comma(int64(pos)), humanize.Comma(int64(total)))
	if view.MarkedCount > 0 {
		text += fmt.Sprintf("  %d marked", view.MarkedCount)
	}
	return text
}
