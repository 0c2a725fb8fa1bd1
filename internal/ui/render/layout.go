package render

type layoutMetrics struct {
	listTop               int
	listBottom            int // exclusive
	mainPanelWidth        int
	contentSeparatorWidth int
	previewStart          int
	previewWidth          int
	showPreview           bool
}

const (
	minMainPanelWidth       = 32
	minPreviewPanelWidth    = 28
	minPreviewTerminalWidth = 80
	previewWidthRatio       = 0.45
	statusLineRows          = 2
)

// computeLayout splits the screen into header, list, preview and status rows.
func (r *Renderer) computeLayout(w, h int, hasFilterRow bool) layoutMetrics {
	if w < 0 {
		w = 0
	}

	metrics := layoutMetrics{
		listTop:        1,
		listBottom:     h - statusLineRows,
		mainPanelWidth: w,
		previewStart:   w,
	}
	if hasFilterRow {
		metrics.listTop = 2
	}
	if metrics.listBottom < metrics.listTop {
		metrics.listBottom = metrics.listTop
	}

	if w < minPreviewTerminalWidth {
		return metrics
	}

	previewWidth := int(float64(w)*previewWidthRatio + 0.5)
	mainWidth := w - previewWidth - 1
	if mainWidth < minMainPanelWidth {
		mainWidth = minMainPanelWidth
		previewWidth = w - mainWidth - 1
	}
	if previewWidth < minPreviewPanelWidth {
		return metrics
	}

	metrics.showPreview = true
	metrics.contentSeparatorWidth = 1
	metrics.mainPanelWidth = mainWidth
	metrics.previewWidth = previewWidth
	metrics.previewStart = mainWidth + metrics.contentSeparatorWidth
	return metrics
}
