package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fm/internal/state"
	textutil "github.com/kk-code-lab/fm/internal/textutil"
)

func (r *Renderer) drawPreviewPanel(view statepkg.Projection, layout layoutMetrics, w int) {
	startX := layout.previewStart
	panelWidth := layout.previewWidth
	if panelWidth <= 0 {
		return
	}
	if startX+panelWidth > w {
		panelWidth = w - startX
	}

	baseStyle := tcell.StyleDefault.Background(r.theme.PreviewBg).Foreground(r.theme.PreviewFg)
	bottomLimit := layout.listBottom
	y := 1

	drawLine := func(text string, style tcell.Style) bool {
		if y >= bottomLimit {
			return false
		}
		r.drawRow(startX, y, panelWidth, text, style)
		y++
		return true
	}

	preview := view.Preview
	switch {
	case preview == nil:
		drawLine(" preview unavailable ", baseStyle.Dim(true))

	case len(preview.DirEntries) > 0:
		for _, entry := range preview.DirEntries {
			prefix := entryLinePrefix(entry)
			name := r.truncateTextToWidth(textutil.SanitizeTerminalText(entry.Name), panelWidth-r.measureTextWidth(prefix))
			if !drawLine(prefix+name, r.entryStyle(baseStyle, entry)) {
				break
			}
		}

	case len(preview.TextLines) > 0:
		textStyle := baseStyle.Foreground(r.theme.FileFg)
		for _, line := range preview.TextLines {
			if !drawLine(" "+line, textStyle) {
				break
			}
		}

	default:
		drawLine(" "+textutil.SanitizeTerminalText(preview.Message), baseStyle.Dim(true))
	}

	for ; y < bottomLimit; y++ {
		r.fillRow(startX, y, startX+panelWidth, baseStyle)
	}
}
