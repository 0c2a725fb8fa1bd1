package state

import (
	"fmt"
	"path/filepath"

	fsutil "github.com/kk-code-lab/fm/internal/fs"
)

const defaultPreviewLines = 200

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	previewLines int
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{previewLines: defaultPreviewLines}
}

// Reduce applies action to state. Returned errors are passive failures
// (refused navigation, failed refresh) that leave the mode untouched; failures
// of confirmed commands are reported through ModeErrorDisplay instead.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	notice := state.Notice
	if isKeyAction(action) {
		state.Notice = ""
		if state.Mode == ModeErrorDisplay {
			state.dismissError()
			return state, r.generatePreview(state, false)
		}
	}

	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		if r.canMove(state) {
			state.setCursor(state.Cursor + 1)
		}

	case NavigateUpAction:
		if r.canMove(state) {
			if state.Cursor < 0 {
				state.setCursor(len(state.Displayed) - 1)
			} else {
				state.setCursor(state.Cursor - 1)
			}
		}

	case JumpFirstAction:
		if state.Mode == ModeBrowsing {
			state.setCursor(0)
		}

	case JumpLastAction:
		if state.Mode == ModeBrowsing {
			state.setCursor(len(state.Displayed) - 1)
		}

	case DescendAction:
		if state.Mode != ModeBrowsing {
			return state, nil
		}
		if moved, err := r.descend(state); !moved {
			state.Notice = notice
			return state, err
		}

	case AscendAction:
		if state.Mode != ModeBrowsing {
			return state, nil
		}
		if moved, err := r.ascend(state); !moved {
			state.Notice = notice
			return state, err
		}

	case ToggleMarkAction:
		if state.Mode != ModeBrowsing {
			return state, nil
		}
		if file := state.CurrentFile(); file != nil {
			state.toggleMark(file.Path)
			state.syncMarks()
			state.setCursor(state.Cursor + 1)
		}

	// ===== PROMPT =====

	case StartCommandAction:
		if state.Mode != ModeBrowsing {
			return state, nil
		}
		r.startCommand(state, a.Kind)

	case CharAction:
		if state.Mode != ModePrompting || state.Command == nil {
			return state, nil
		}
		state.Command.Append(a.Char)
		if state.Command.Kind == CommandSearch {
			r.applySearch(state)
		}

	case BackspaceAction:
		if state.Mode != ModePrompting || state.Command == nil {
			return state, nil
		}
		if state.Command.Backspace() {
			r.cancelCommand(state)
		} else if state.Command.Kind == CommandSearch {
			r.applySearch(state)
		}

	case EscapeAction:
		switch {
		case state.Mode == ModePrompting:
			r.cancelCommand(state)
		case state.Filter != "":
			keep := ""
			if file := state.CurrentFile(); file != nil {
				keep = file.Path
			}
			state.Filter = ""
			state.rebuildDisplayed(keep)
		}

	case EnterAction:
		switch state.Mode {
		case ModePrompting:
			r.confirm(state)
		case ModeBrowsing:
			if moved, err := r.descend(state); !moved {
				state.Notice = notice
				return state, err
			}
		}

	case DismissErrorAction:
		// Only meaningful in ModeErrorDisplay, handled above.

	// ===== FILESYSTEM =====

	case RefreshDirectoryAction:
		if err := r.refresh(state); err != nil {
			return state, err
		}

	case DirectoryChangedAction:
		if a.Path != "" && a.Path != state.CurrentPath() {
			return state, nil
		}
		if err := r.refresh(state); err != nil {
			return state, err
		}

	case EditorClosedAction:
		r.restatEntry(state, a.Path)
		if a.Err != nil {
			state.Notice = fmt.Sprintf("editor: %v", a.Err)
		}
		return state, r.generatePreview(state, true)

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	case HelpToggleAction:
		if state.Mode == ModeBrowsing {
			state.HelpVisible = !state.HelpVisible
		}
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	case TickAction:
		return state, nil

	default:
		return state, nil
	}

	return state, r.generatePreview(state, false)
}

// isKeyAction reports whether action originates from a key press.
func isKeyAction(action Action) bool {
	switch action.(type) {
	case TickAction, ResizeAction, DirectoryChangedAction, EditorClosedAction, nil:
		return false
	default:
		return true
	}
}

func (r *StateReducer) canMove(state *AppState) bool {
	switch state.Mode {
	case ModeBrowsing:
		return true
	case ModePrompting:
		return state.Command != nil && state.Command.Kind == CommandSearch
	default:
		return false
	}
}

// ===== NAVIGATION =====

// descend enters the selected directory. It reports false, leaving state
// untouched, when the selection is not a directory or cannot be entered.
func (r *StateReducer) descend(state *AppState) (bool, error) {
	file := state.CurrentFile()
	if file == nil || file.Kind != fsutil.KindDirectory {
		return false, nil
	}
	if err := state.Snapshot.NavigateInto(filepath.Base(file.Path)); err != nil {
		return false, err
	}
	r.enteredDirectory(state, "")
	return true, nil
}

func (r *StateReducer) ascend(state *AppState) (bool, error) {
	from := state.CurrentPath()
	moved, err := state.Snapshot.NavigateUp()
	if err != nil || !moved {
		return false, err
	}
	// Land on the directory we just left.
	r.enteredDirectory(state, from)
	return true, nil
}

func (r *StateReducer) enteredDirectory(state *AppState, reselect string) {
	state.Filter = ""
	state.clearMarks()
	state.rebuildDisplayed(reselect)
}

func (r *StateReducer) refresh(state *AppState) error {
	keep := ""
	if file := state.CurrentFile(); file != nil {
		keep = file.Path
	}
	prev := state.Cursor

	if err := state.Snapshot.Refresh(); err != nil {
		state.Notice = err.Error()
		return err
	}
	state.pruneMarks()
	if keep != "" && state.Snapshot.IndexOf(keep) >= 0 {
		state.projectDisplayed()
		if idx := state.displayIndexOf(keep); idx >= 0 {
			state.Cursor = idx
			state.updateScrollVisibility()
			return nil
		}
	}
	state.rebuildDisplayedKeepIndex(prev)
	return nil
}

func (r *StateReducer) restatEntry(state *AppState, path string) {
	if path == "" || !state.Snapshot.Restat(path) {
		return
	}
	idx := state.Snapshot.IndexOf(path)
	if pos := state.displayIndexOf(path); pos >= 0 && idx >= 0 {
		updated := state.Snapshot.Entries[idx]
		updated.Marked = state.IsMarked(path)
		state.Displayed[pos] = updated
	}
}

// ===== COMMANDS =====

func (r *StateReducer) startCommand(state *AppState, kind CommandKind) {
	target := state.CurrentFile()
	if kind.needsTarget() {
		if target == nil {
			state.showError(fmt.Errorf("No file selected"))
			return
		}
		if kind != CommandDelete && target.Undecodable {
			state.showError(&fsutil.Error{Kind: fsutil.ErrUndecodableName, Op: kind.String(), Path: target.Name})
			return
		}
	}

	var marked []FileEntry
	if kind == CommandDelete {
		marked = state.markedEntries()
	}

	state.Command = NewCommand(kind, target, marked)
	state.Mode = ModePrompting

	if kind == CommandSearch {
		r.applySearch(state)
	}
}

func (r *StateReducer) applySearch(state *AppState) {
	state.Filter = state.Command.Text()
	state.rebuildDisplayed("")
}

func (r *StateReducer) cancelCommand(state *AppState) {
	cmd := state.Command
	state.Command = nil
	state.Mode = ModeBrowsing

	keep := ""
	if cmd != nil && cmd.Kind != CommandSearch {
		if file := state.CurrentFile(); file != nil {
			keep = file.Path
		}
	}
	state.Filter = ""
	state.rebuildDisplayed(keep)
}

func (r *StateReducer) finishCommand(state *AppState) {
	state.Command = nil
	state.Mode = ModeBrowsing
}

func (r *StateReducer) confirm(state *AppState) {
	cmd := state.Command
	if cmd == nil {
		state.Mode = ModeBrowsing
		return
	}

	var err error
	switch cmd.Kind {
	case CommandSearch:
		err = r.confirmSearch(state, cmd)
	case CommandCreateFile, CommandCreateDir:
		err = r.confirmCreate(state, cmd)
	case CommandDelete:
		err = r.confirmDelete(state, cmd)
	case CommandRename:
		err = r.confirmRename(state, cmd)
	case CommandCopy:
		err = r.confirmCopy(state, cmd)
	default:
		err = fmt.Errorf("unknown command %v", cmd.Kind)
	}

	if err != nil {
		state.showError(err)
	}
}

func (r *StateReducer) confirmSearch(state *AppState, cmd *Command) error {
	if len(state.Displayed) > 0 {
		state.Filter = cmd.Text()
		r.finishCommand(state)
		return nil
	}
	query := cmd.Text()
	r.finishCommand(state)
	state.Filter = ""
	state.rebuildDisplayed("")
	return fmt.Errorf("No match for %q", query)
}

func (r *StateReducer) confirmCreate(state *AppState, cmd *Command) error {
	if cmd.Text() == "" {
		r.cancelCommand(state)
		return nil
	}
	target := fsutil.ResolveTarget(state.CurrentPath(), cmd.Text())

	var err error
	if cmd.Kind == CommandCreateDir {
		err = fsutil.CreateDir(target)
	} else {
		err = fsutil.CreateFile(target)
	}
	if err != nil {
		return err
	}
	return r.afterMutation(state, target)
}

func (r *StateReducer) confirmDelete(state *AppState, cmd *Command) error {
	if !cmd.Confirmed() {
		r.cancelCommand(state)
		return nil
	}

	prev := state.Cursor
	var firstErr error
	for _, target := range cmd.Targets {
		if err := fsutil.Remove(target); err != nil {
			firstErr = err
			break
		}
	}
	r.finishCommand(state)

	// Some targets may be gone even when a later one failed.
	refreshErr := state.Snapshot.Refresh()
	state.pruneMarks()
	state.rebuildDisplayedKeepIndex(prev)

	if firstErr != nil {
		return firstErr
	}
	return refreshErr
}

func (r *StateReducer) confirmRename(state *AppState, cmd *Command) error {
	src := cmd.Target.Path
	target := fsutil.ResolveTarget(state.CurrentPath(), cmd.Text())
	if target == filepath.Clean(src) {
		r.finishCommand(state)
		return nil
	}

	if err := fsutil.Rename(src, target); err != nil {
		return err
	}

	if parent := filepath.Dir(target); parent != state.CurrentPath() {
		if err := state.Snapshot.ChangeDir(parent); err != nil {
			_ = r.afterMutation(state, "")
			return err
		}
		state.clearMarks()
	}
	return r.afterMutation(state, target)
}

func (r *StateReducer) confirmCopy(state *AppState, cmd *Command) error {
	src := cmd.Target.Path
	target := fsutil.ResolveTarget(state.CurrentPath(), cmd.Text())
	if target == filepath.Clean(src) {
		r.finishCommand(state)
		return nil
	}

	if err := fsutil.Copy(src, target); err != nil {
		return err
	}
	return r.afterMutation(state, target)
}

// afterMutation reloads the snapshot, drops any filter and selects reselect
// when it is part of the new listing.
func (r *StateReducer) afterMutation(state *AppState, reselect string) error {
	r.finishCommand(state)
	err := state.Snapshot.Refresh()
	state.pruneMarks()
	state.Filter = ""
	state.rebuildDisplayed(reselect)
	return err
}

// ===== ERRORS =====

func (s *AppState) showError(err error) {
	s.Command = nil
	s.Mode = ModeErrorDisplay
	s.ErrorMessage = err.Error()
}

func (s *AppState) dismissError() {
	s.Mode = ModeBrowsing
	s.ErrorMessage = ""
}
