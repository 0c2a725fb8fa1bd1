package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background   tcell.Color
	Foreground   tcell.Color
	HiddenFg     tcell.Color
	SelectionBg  tcell.Color
	SelectionFg  tcell.Color
	DirectoryFg  tcell.Color
	SymlinkFg    tcell.Color
	ExecutableFg tcell.Color
	FileFg       tcell.Color
	MarkedFg     tcell.Color
	WarningFg    tcell.Color
	FooterBg     tcell.Color
	FooterFg     tcell.Color
	PromptFg     tcell.Color
	ErrorBg      tcell.Color
	ErrorFg      tcell.Color
	PreviewBg    tcell.Color
	PreviewFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:   tcell.ColorDefault,
		Foreground:   tcell.ColorDefault,
		HiddenFg:     tcell.ColorLightSlateGray,
		SelectionBg:  tcell.Color33,
		SelectionFg:  tcell.ColorWhite,
		DirectoryFg:  tcell.Color33,
		SymlinkFg:    tcell.Color51,
		ExecutableFg: tcell.Color41,
		FileFg:       tcell.ColorDefault,
		MarkedFg:     tcell.Color214,
		WarningFg:    tcell.ColorRed,
		FooterBg:     tcell.ColorDefault,
		FooterFg:     tcell.ColorDefault,
		PromptFg:     tcell.ColorYellow,
		ErrorBg:      tcell.ColorDarkRed,
		ErrorFg:      tcell.ColorWhite,
		PreviewBg:    tcell.ColorDefault,
		PreviewFg:    tcell.ColorDefault,
	}
}
