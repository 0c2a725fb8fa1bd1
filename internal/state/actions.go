package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type JumpFirstAction struct{}
type JumpLastAction struct{}
type DescendAction struct{}
type AscendAction struct{}
type ToggleMarkAction struct{}

// ===== PROMPT ACTIONS =====

type StartCommandAction struct {
	Kind CommandKind
}
type CharAction struct {
	Char rune
}
type EnterAction struct{}
type EscapeAction struct{}
type BackspaceAction struct{}

// DismissErrorAction is emitted for any key while an error is displayed.
type DismissErrorAction struct{}

// ===== FILESYSTEM ACTIONS =====

type RefreshDirectoryAction struct{}

// DirectoryChangedAction reports an external change to the watched directory.
type DirectoryChangedAction struct {
	Path string
}

// EditorClosedAction follows an external editor session on Path.
type EditorClosedAction struct {
	Path string
	Err  error
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type TickAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}
type YankPathAction struct{}
type OpenEditorAction struct{}
type SuspendAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
