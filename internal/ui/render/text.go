package render

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// asciiWidths holds the width of every ASCII rune; control runes are 0.
var asciiWidths = func() (widths [utf8.RuneSelf]int) {
	for ru := range widths {
		widths[ru] = max(runewidth.RuneWidth(rune(ru)), 0)
	}
	return widths
}()

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < utf8.RuneSelf {
		return asciiWidths[ru]
	}
	if cached, ok := r.wideWidths.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	r.wideWidths.Store(ru, width)
	return width
}

func (r *Renderer) ellipsisWidth() int {
	return max(r.cachedRuneWidth('…'), 1)
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}

	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	if maxWidth <= r.ellipsisWidth() {
		return ellipsis
	}

	available := maxWidth - r.ellipsisWidth()
	var builder strings.Builder
	currentWidth := 0

	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

// truncateLeft keeps the end of text, which is the useful part of a path.
func (r *Renderer) truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	if maxWidth <= r.ellipsisWidth() {
		return ellipsis
	}

	available := maxWidth - r.ellipsisWidth()
	runes := []rune(text)
	start := len(runes)
	currentWidth := 0
	for start > 0 {
		w := r.cachedRuneWidth(runes[start-1])
		if currentWidth+w > available {
			break
		}
		currentWidth += w
		start--
	}
	return ellipsis + string(runes[start:])
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// fillRow pads a row from x up to maxX with style.
func (r *Renderer) fillRow(x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawRow draws text clipped to width and pads the rest of the row.
func (r *Renderer) drawRow(startX, y, width int, text string, style tcell.Style) {
	endX := r.drawTextLine(startX, y, width, text, style)
	r.fillRow(endX, y, startX+width, style)
}
