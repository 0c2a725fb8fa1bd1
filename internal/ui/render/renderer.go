package render

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/fm/internal/fs"
	statepkg "github.com/kk-code-lab/fm/internal/state"
	textutil "github.com/kk-code-lab/fm/internal/textutil"
)

const yankFlashDuration = 100 * time.Millisecond

// Renderer handles all UI rendering
type Renderer struct {
	screen     tcell.Screen
	theme      ColorTheme
	now        func() time.Time
	wideWidths sync.Map // rune -> int, non-ASCII only
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// Render draws the entire UI from a projection of the state.
func (r *Renderer) Render(view statepkg.Projection) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if view.HelpVisible {
		r.drawHelpOverlay(view, w, h)
		r.screen.Show()
		return
	}

	hasFilterRow := view.Filter != "" && view.PromptLine == ""
	layout := r.computeLayout(w, h, hasFilterRow)

	r.drawHeader(view, w)
	if hasFilterRow {
		r.drawFilterRow(view, layout.mainPanelWidth)
	}
	r.drawFileList(view, layout)
	if layout.showPreview {
		sepX := layout.previewStart - layout.contentSeparatorWidth
		for y := 1; y < layout.listBottom; y++ {
			r.screen.SetContent(sepX, y, ' ', nil, tcell.StyleDefault)
		}
		r.drawPreviewPanel(view, layout, w)
	}
	r.drawStatusLine(view, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(view statepkg.Projection, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	endX := r.drawTextLine(0, 0, w, "fm ", headerStyle)
	if endX >= w {
		return
	}

	segments := formatBreadcrumbSegments(view.Cwd)
	lastIdx := len(segments) - 1
	lastSegment := textutil.SanitizeTerminalText(segments[lastIdx])
	prefix := ""
	if lastIdx > 0 {
		prefix = textutil.SanitizeTerminalText(strings.Join(segments[:lastIdx], " › ") + " › ")
	}

	available := w - endX
	lastWidth := r.measureTextWidth(lastSegment)
	if lastWidth >= available {
		prefix = ""
		lastSegment = r.truncateLeft(lastSegment, available)
	} else {
		prefix = r.truncateLeft(prefix, available-lastWidth)
	}

	endX = r.drawTextLine(endX, 0, w-endX, prefix, headerStyle)
	endX = r.drawTextLine(endX, 0, w-endX, lastSegment, headerStyle.Bold(true))
	r.fillRow(endX, 0, w, headerStyle)
}

func formatBreadcrumbSegments(path string) []string {
	if path == "" {
		return []string{"/"}
	}

	cleanPath := filepath.Clean(path)
	slashed := filepath.ToSlash(cleanPath)
	if slashed == "/" {
		return []string{"/"}
	}

	var segments []string
	if strings.HasPrefix(slashed, "/") {
		segments = append(segments, "/")
		slashed = strings.TrimPrefix(slashed, "/")
	}
	for _, part := range strings.Split(slashed, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	if len(segments) == 0 {
		return []string{cleanPath}
	}
	return segments
}

func (r *Renderer) drawFilterRow(view statepkg.Projection, width int) {
	style := tcell.StyleDefault.Foreground(r.theme.PromptFg)
	text := "/" + textutil.SanitizeTerminalText(view.Filter)
	r.drawRow(0, 1, width, text, style)
}

// entryStyle picks the list style for an unselected entry.
func (r *Renderer) entryStyle(base tcell.Style, entry statepkg.FileEntry) tcell.Style {
	style := base.Foreground(r.theme.FileFg)
	switch entry.Kind {
	case fsutil.KindDirectory:
		style = base.Foreground(r.theme.DirectoryFg)
	case fsutil.KindSymlink:
		style = base.Foreground(r.theme.SymlinkFg)
	case fsutil.KindExecutable:
		style = base.Foreground(r.theme.ExecutableFg)
	}
	if strings.HasPrefix(entry.Name, ".") {
		style = style.Foreground(r.theme.HiddenFg)
	}
	if entry.Undecodable || textutil.HasFormattingRunes(entry.Name) {
		style = style.Foreground(r.theme.WarningFg)
	}
	if entry.Marked {
		style = style.Foreground(r.theme.MarkedFg).Bold(true)
	}
	return style
}

func entryIcon(entry statepkg.FileEntry) string {
	switch entry.Kind {
	case fsutil.KindDirectory:
		return "/"
	case fsutil.KindSymlink:
		return "@"
	case fsutil.KindExecutable:
		return "*"
	default:
		return " "
	}
}

func entryLinePrefix(entry statepkg.FileEntry) string {
	marker := " "
	if entry.Marked {
		marker = "+"
	}
	return marker + entryIcon(entry) + " "
}

// drawFileList renders the displayed entries
func (r *Renderer) drawFileList(view statepkg.Projection, layout layoutMetrics) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	panelWidth := layout.mainPanelWidth

	y := layout.listTop
	if len(view.Entries) == 0 && y < layout.listBottom {
		r.drawRow(0, y, panelWidth, "  (no entries)", baseStyle.Dim(true))
		y++
	}

	for idx := view.ScrollOffset; idx < len(view.Entries) && y < layout.listBottom; idx++ {
		if idx < 0 {
			continue
		}
		entry := view.Entries[idx]

		rowStyle := r.entryStyle(baseStyle, entry)
		if idx == view.Cursor {
			rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}

		prefix := entryLinePrefix(entry)
		nameWidth := panelWidth - r.measureTextWidth(prefix)
		displayName := r.truncateTextToWidth(textutil.SanitizeTerminalText(entry.Name), nameWidth)

		r.drawRow(0, y, panelWidth, prefix+displayName, rowStyle)
		y++
	}

	for ; y < layout.listBottom; y++ {
		r.fillRow(0, y, panelWidth, baseStyle)
	}
}

// drawStatusLine renders entry details above the command/help line.
func (r *Renderer) drawStatusLine(view statepkg.Projection, w, h int) {
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	infoY := h - 2
	if infoY >= 1 {
		infoStyle := normalStyle
		if !view.LastYankTime.IsZero() && r.now().Sub(view.LastYankTime) < yankFlashDuration {
			infoStyle = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
		}

		left := " " + formatEntryStatus(view.Selected(), r.now())
		if view.Notice != "" {
			left = " " + view.Notice
			infoStyle = infoStyle.Foreground(r.theme.PromptFg)
		}
		right := formatListPosition(view) + " "

		rightWidth := r.measureTextWidth(right)
		leftWidth := w - rightWidth - 1
		if leftWidth < 0 {
			leftWidth = 0
		}
		left = r.truncateTextToWidth(textutil.SanitizeTerminalText(left), leftWidth)

		endX := r.drawTextLine(0, infoY, leftWidth, left, infoStyle)
		rightStart := w - rightWidth
		if rightStart < endX {
			rightStart = endX
		}
		r.fillRow(endX, infoY, rightStart, infoStyle)
		endX = r.drawTextLine(rightStart, infoY, w-rightStart, right, infoStyle)
		r.fillRow(endX, infoY, w, infoStyle)
	}

	bottomY := h - 1
	switch view.Mode {
	case statepkg.ModeErrorDisplay:
		style := tcell.StyleDefault.Background(r.theme.ErrorBg).Foreground(r.theme.ErrorFg).Bold(true)
		text := " " + textutil.SanitizeTerminalText(view.ErrorMessage)
		r.drawRow(0, bottomY, w, r.truncateTextToWidth(text, w), style)
	case statepkg.ModePrompting:
		style := normalStyle.Foreground(r.theme.PromptFg)
		text := r.truncateLeft(textutil.SanitizeTerminalText(view.PromptLine), w-1)
		endX := r.drawTextLine(0, bottomY, w, text, style)
		if endX < w {
			cursorStyle := tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			r.screen.SetContent(endX, bottomY, ' ', nil, cursorStyle)
			endX++
		}
		r.fillRow(endX, bottomY, w, style)
	default:
		helpText := textutil.SanitizeTerminalText(buildFooterHelpText(view))
		r.drawRow(0, bottomY, w, r.truncateTextToWidth(helpText, w), normalStyle)
	}
}
