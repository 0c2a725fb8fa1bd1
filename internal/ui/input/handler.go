package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fm/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once a
// quit has been requested.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) mode() statepkg.Mode {
	if ih.state == nil {
		return statepkg.ModeBrowsing
	}
	return ih.state.Mode
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	// Ctrl-C always quits, whatever the mode.
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	if ih.state != nil && ih.state.HelpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			if r := ev.Rune(); r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	switch ih.mode() {
	case statepkg.ModeErrorDisplay:
		ih.actionChan <- statepkg.DismissErrorAction{}
		return true
	case statepkg.ModePrompting:
		return ih.processPromptKey(ev)
	default:
		return ih.processBrowseKey(ev)
	}
}

// processPromptKey routes keystrokes into the command buffer.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.EnterAction{}
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.EscapeAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.BackspaceAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModShift != 0 {
			r = unicode.ToUpper(r)
		}
		ih.actionChan <- statepkg.CharAction{Char: r}
	}
	return true
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.EscapeAction{}
		return true
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
		return true
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
		return true
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.AscendAction{}
		return true
	case tcell.KeyRight:
		ih.actionChan <- statepkg.DescendAction{}
		return true
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.EnterAction{}
		return true
	case tcell.KeyHome:
		ih.actionChan <- statepkg.JumpFirstAction{}
		return true
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.JumpLastAction{}
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	if ev.Modifiers()&tcell.ModShift != 0 {
		// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
		r = unicode.ToUpper(r)
	}

	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'j':
		ih.actionChan <- statepkg.NavigateDownAction{}
	case 'k':
		ih.actionChan <- statepkg.NavigateUpAction{}
	case 'h':
		ih.actionChan <- statepkg.AscendAction{}
	case 'l':
		ih.actionChan <- statepkg.DescendAction{}
	case 'g':
		ih.actionChan <- statepkg.JumpFirstAction{}
	case 'G':
		ih.actionChan <- statepkg.JumpLastAction{}
	case '/':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandSearch}
	case 'n':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandCreateFile}
	case 'N':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandCreateDir}
	case 'd':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandDelete}
	case 'r':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandRename}
	case 'c':
		ih.actionChan <- statepkg.StartCommandAction{Kind: statepkg.CommandCopy}
	case 'v', ' ':
		ih.actionChan <- statepkg.ToggleMarkAction{}
	case 'R':
		ih.actionChan <- statepkg.RefreshDirectoryAction{}
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	case 'y':
		ih.actionChan <- statepkg.YankPathAction{}
	case 'e', 'E':
		if ih.state != nil && ih.state.EditorAvailable {
			ih.actionChan <- statepkg.OpenEditorAction{}
		}
	}
	return true
}
