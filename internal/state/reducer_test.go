package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsutil "github.com/kk-code-lab/fm/internal/fs"
)

type fixture struct {
	t       *testing.T
	dir     string
	state   *AppState
	reducer *StateReducer
}

func newFixture(t *testing.T, files []string, dirs []string) *fixture {
	t.Helper()
	dir := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("hello\n"), 0o644))
	}

	snap, err := fsutil.Load(dir)
	require.NoError(t, err)

	state := NewAppState(snap)
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	return &fixture{t: t, dir: snap.Cwd, state: state, reducer: NewStateReducer()}
}

func (f *fixture) do(actions ...Action) error {
	f.t.Helper()
	var err error
	for _, a := range actions {
		f.state, err = f.reducer.Reduce(f.state, a)
	}
	return err
}

func (f *fixture) typeText(text string) {
	f.t.Helper()
	for _, r := range text {
		_ = f.do(CharAction{Char: r})
	}
}

// replaceBuffer clears a seeded buffer without cancelling the command.
func (f *fixture) replaceBuffer(text string) {
	f.t.Helper()
	for range []rune(f.state.Command.Text()) {
		_ = f.do(BackspaceAction{})
	}
	f.typeText(text)
}

func (f *fixture) selectName(name string) {
	f.t.Helper()
	for i, e := range f.state.Displayed {
		if e.Name == name {
			f.state.setCursor(i)
			return
		}
	}
	f.t.Fatalf("%s not displayed", name)
}

func (f *fixture) path(parts ...string) string {
	return filepath.Join(append([]string{f.dir}, parts...)...)
}

func displayedNames(s *AppState) []string {
	names := make([]string, len(s.Displayed))
	for i, e := range s.Displayed {
		names[i] = e.Name
	}
	return names
}

func TestSearchFiltersAndEscapeRestores(t *testing.T) {
	f := newFixture(t, []string{"b.txt", ".a", "c"}, nil)
	require.Equal(t, []string{".a", "b.txt", "c"}, displayedNames(f.state))

	require.NoError(t, f.do(StartCommandAction{Kind: CommandSearch}))
	assert.Equal(t, ModePrompting, f.state.Mode)

	f.typeText("c")
	assert.Equal(t, []string{"c"}, displayedNames(f.state))
	assert.Equal(t, 0, f.state.Cursor)

	require.NoError(t, f.do(EscapeAction{}))
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Nil(t, f.state.Command)
	assert.Equal(t, []string{".a", "b.txt", "c"}, displayedNames(f.state))
	assert.Equal(t, 0, f.state.Cursor)
}

func TestSearchWithoutMatchHasNoCursor(t *testing.T) {
	f := newFixture(t, []string{"a", "b"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandSearch})
	f.typeText("zz")
	assert.Empty(t, f.state.Displayed)
	assert.Equal(t, NoCursor, f.state.Cursor)
	assert.Nil(t, f.state.CurrentFile())

	_ = f.do(EnterAction{})
	assert.Equal(t, ModeErrorDisplay, f.state.Mode)
	assert.Contains(t, f.state.ErrorMessage, "No match")
	assert.Len(t, f.state.Displayed, 2)

	_ = f.do(CharAction{Char: 'x'})
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Empty(t, f.state.ErrorMessage)
}

func TestSearchIsCaseSensitivePrefix(t *testing.T) {
	f := newFixture(t, []string{"Makefile", "main.go", "xmain"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandSearch})
	f.typeText("ma")
	assert.Equal(t, []string{"main.go"}, displayedNames(f.state))
}

func TestConfirmedSearchKeepsFilterUntilEscape(t *testing.T) {
	f := newFixture(t, []string{"alpha", "beta", "bravo"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandSearch})
	f.typeText("b")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Equal(t, "b", f.state.Filter)
	assert.Equal(t, []string{"beta", "bravo"}, displayedNames(f.state))

	_ = f.do(NavigateDownAction{})
	require.Equal(t, "bravo", f.state.CurrentFile().Name)

	_ = f.do(EscapeAction{})
	assert.Empty(t, f.state.Filter)
	assert.Len(t, f.state.Displayed, 3)
	assert.Equal(t, "bravo", f.state.CurrentFile().Name)
}

func TestBackspaceOnEmptySearchCancels(t *testing.T) {
	f := newFixture(t, []string{"a", "b"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandSearch})
	f.typeText("a")
	_ = f.do(BackspaceAction{})
	assert.Equal(t, ModePrompting, f.state.Mode)
	assert.Len(t, f.state.Displayed, 2)

	_ = f.do(BackspaceAction{})
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Nil(t, f.state.Command)
}

func TestCursorMovementIsClamped(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"}, nil)

	_ = f.do(NavigateUpAction{})
	assert.Equal(t, 0, f.state.Cursor)

	_ = f.do(NavigateDownAction{}, NavigateDownAction{}, NavigateDownAction{})
	assert.Equal(t, 2, f.state.Cursor)

	_ = f.do(JumpFirstAction{})
	assert.Equal(t, 0, f.state.Cursor)
	_ = f.do(JumpLastAction{})
	assert.Equal(t, 2, f.state.Cursor)
}

func TestDescendIntoEmptyDirectoryIsRefused(t *testing.T) {
	f := newFixture(t, []string{"file"}, []string{"empty"})
	f.selectName("empty")

	err := f.do(DescendAction{})
	require.Error(t, err)
	assert.Equal(t, fsutil.ErrEmptyDirectory, fsutil.KindOf(err))
	assert.Equal(t, f.dir, f.state.CurrentPath())
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Equal(t, "empty", f.state.CurrentFile().Name)
}

func TestRefusedDescendKeepsNotice(t *testing.T) {
	f := newFixture(t, []string{"file"}, []string{"empty"})
	f.selectName("empty")
	f.state.Notice = "clipboard: unavailable"

	require.Error(t, f.do(DescendAction{}))
	assert.Equal(t, "clipboard: unavailable", f.state.Notice)

	f.selectName("file")
	require.NoError(t, f.do(EnterAction{}))
	assert.Equal(t, "clipboard: unavailable", f.state.Notice)

	require.NoError(t, f.do(NavigateDownAction{}))
	assert.Empty(t, f.state.Notice)
}

func TestDescendOnFileIsNoop(t *testing.T) {
	f := newFixture(t, []string{"file"}, nil)

	require.NoError(t, f.do(DescendAction{}))
	assert.Equal(t, f.dir, f.state.CurrentPath())
}

func TestDescendAndAscendReselectsChild(t *testing.T) {
	f := newFixture(t, []string{"a", "sub/inner", "z"}, []string{"sub"})
	f.selectName("sub")

	require.NoError(t, f.do(DescendAction{}))
	assert.Equal(t, f.path("sub"), f.state.CurrentPath())
	assert.Equal(t, []string{"inner"}, displayedNames(f.state))
	assert.Equal(t, 0, f.state.Cursor)

	require.NoError(t, f.do(AscendAction{}))
	assert.Equal(t, f.dir, f.state.CurrentPath())
	assert.Equal(t, "sub", f.state.CurrentFile().Name)
}

func TestAscendAtRootIsNoop(t *testing.T) {
	snap, err := fsutil.Load(string(filepath.Separator))
	require.NoError(t, err)
	state := NewAppState(snap)

	state, err = NewStateReducer().Reduce(state, AscendAction{})
	require.NoError(t, err)
	assert.Equal(t, string(filepath.Separator), state.CurrentPath())
}

func TestDeleteSoleEntryLeavesNoCursor(t *testing.T) {
	f := newFixture(t, []string{"only"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandDelete})
	require.Equal(t, ModePrompting, f.state.Mode)
	f.typeText("y")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Empty(t, f.state.Displayed)
	assert.Equal(t, NoCursor, f.state.Cursor)
	assert.NoFileExists(t, f.path("only"))
}

func TestDeleteAnswerOtherThanYesCancels(t *testing.T) {
	f := newFixture(t, []string{"keep"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandDelete})
	f.typeText("yes")
	assert.Equal(t, "y", f.state.Command.Text())
	_ = f.do(BackspaceAction{})
	f.typeText("n")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.FileExists(t, f.path("keep"))
	assert.Equal(t, "keep", f.state.CurrentFile().Name)
}

func TestDeleteKeepsCursorIndex(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"}, nil)

	f.selectName("b")
	_ = f.do(StartCommandAction{Kind: CommandDelete})
	f.typeText("Y")
	_ = f.do(EnterAction{})
	assert.Equal(t, []string{"a", "c"}, displayedNames(f.state))
	assert.Equal(t, 1, f.state.Cursor)

	_ = f.do(StartCommandAction{Kind: CommandDelete})
	f.typeText("y")
	_ = f.do(EnterAction{})
	assert.Equal(t, []string{"a"}, displayedNames(f.state))
	assert.Equal(t, 0, f.state.Cursor)
}

func TestDeleteDirectoryRecursively(t *testing.T) {
	f := newFixture(t, []string{"sub/x", "y"}, []string{"sub/deeper"})
	f.selectName("sub")

	_ = f.do(StartCommandAction{Kind: CommandDelete})
	f.typeText("y")
	_ = f.do(EnterAction{})

	assert.NoDirExists(t, f.path("sub"))
	assert.Equal(t, []string{"y"}, displayedNames(f.state))
}

func TestDeleteMarkedEntries(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"}, nil)

	_ = f.do(ToggleMarkAction{})
	assert.Equal(t, 1, f.state.Cursor)
	_ = f.do(NavigateDownAction{}, ToggleMarkAction{})
	assert.Equal(t, 2, f.state.MarkedCount())
	assert.True(t, f.state.Displayed[2].Marked)

	_ = f.do(StartCommandAction{Kind: CommandDelete})
	assert.Len(t, f.state.Command.Targets, 2)
	assert.Contains(t, f.state.Command.Prompt, "2 marked")
	f.typeText("y")
	_ = f.do(EnterAction{})

	assert.Equal(t, []string{"b"}, displayedNames(f.state))
	assert.Zero(t, f.state.MarkedCount())
}

func TestCreateFileSelectsIt(t *testing.T) {
	f := newFixture(t, []string{"a", "z"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandCreateFile})
	f.typeText("new.txt")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.FileExists(t, f.path("new.txt"))
	assert.Equal(t, "new.txt", f.state.CurrentFile().Name)
	assert.Equal(t, f.dir, f.state.CurrentPath())
}

func TestCreateDirectory(t *testing.T) {
	f := newFixture(t, []string{"a"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandCreateDir})
	f.typeText("made")
	_ = f.do(EnterAction{})

	assert.DirExists(t, f.path("made"))
	assert.Equal(t, fsutil.KindDirectory, f.state.CurrentFile().Kind)
}

func TestCreateExistingReportsAlreadyExists(t *testing.T) {
	f := newFixture(t, []string{"taken"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandCreateFile})
	f.typeText("taken")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeErrorDisplay, f.state.Mode)
	assert.Contains(t, f.state.ErrorMessage, "Already Exists")
	data, err := os.ReadFile(f.path("taken"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestCreateWithEmptyBufferCancels(t *testing.T) {
	f := newFixture(t, []string{"a"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandCreateFile}, EnterAction{})
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Empty(t, f.state.ErrorMessage)
	assert.Len(t, f.state.Displayed, 1)
}

func TestRenameSeedsBufferWithPath(t *testing.T) {
	f := newFixture(t, []string{"old"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandRename})
	assert.Equal(t, f.path("old"), f.state.Command.Text())
	assert.Equal(t, " Rename file: "+f.path("old"), f.state.Command.Line())
}

func TestRenameInPlace(t *testing.T) {
	f := newFixture(t, []string{"old", "other"}, nil)
	f.selectName("old")

	_ = f.do(StartCommandAction{Kind: CommandRename})
	f.replaceBuffer("renamed")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.NoFileExists(t, f.path("old"))
	assert.FileExists(t, f.path("renamed"))
	assert.Equal(t, "renamed", f.state.CurrentFile().Name)
}

func TestRenameAcrossParentsMovesCwd(t *testing.T) {
	f := newFixture(t, []string{"file", "sub/existing"}, []string{"sub"})
	f.selectName("file")

	_ = f.do(StartCommandAction{Kind: CommandRename})
	f.replaceBuffer(f.path("sub", "moved"))
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Equal(t, f.path("sub"), f.state.CurrentPath())
	assert.Equal(t, "moved", f.state.CurrentFile().Name)
}

func TestRenameOntoExistingFails(t *testing.T) {
	f := newFixture(t, []string{"a", "b"}, nil)
	f.selectName("a")

	_ = f.do(StartCommandAction{Kind: CommandRename})
	f.replaceBuffer("b")
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeErrorDisplay, f.state.Mode)
	assert.Contains(t, f.state.ErrorMessage, "Already Exists")
	assert.FileExists(t, f.path("a"))
}

func TestRenameUnchangedTargetIsNoop(t *testing.T) {
	f := newFixture(t, []string{"a"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandRename}, EnterAction{})
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Empty(t, f.state.ErrorMessage)
	assert.FileExists(t, f.path("a"))
}

func TestCopyKeepsCwd(t *testing.T) {
	f := newFixture(t, []string{"src", "sub/x"}, []string{"sub"})
	f.selectName("src")

	_ = f.do(StartCommandAction{Kind: CommandCopy})
	f.replaceBuffer(f.path("sub", "copied"))
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Equal(t, f.dir, f.state.CurrentPath())
	assert.FileExists(t, f.path("src"))
	assert.FileExists(t, f.path("sub", "copied"))
}

func TestCopyDirectoryIntoItselfShowsError(t *testing.T) {
	f := newFixture(t, []string{"a/file"}, []string{"a"})
	f.selectName("a")

	_ = f.do(StartCommandAction{Kind: CommandCopy})
	f.replaceBuffer(f.path("a", "b"))
	_ = f.do(EnterAction{})

	assert.Equal(t, ModeErrorDisplay, f.state.Mode)
	assert.Contains(t, f.state.ErrorMessage, fsutil.ErrCopyIntoSelf.Error())
	assert.NoDirExists(t, f.path("a", "b"))
	entries, err := os.ReadDir(f.path("a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopyIntoCwdSelectsCopy(t *testing.T) {
	f := newFixture(t, []string{"src"}, nil)

	_ = f.do(StartCommandAction{Kind: CommandCopy})
	f.replaceBuffer("dup")
	_ = f.do(EnterAction{})

	assert.Equal(t, []string{"dup", "src"}, displayedNames(f.state))
	assert.Equal(t, "dup", f.state.CurrentFile().Name)
}

func TestCommandsOnEmptyListAreRefused(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.Equal(t, NoCursor, f.state.Cursor)

	_ = f.do(StartCommandAction{Kind: CommandRename})
	assert.Equal(t, ModeErrorDisplay, f.state.Mode)

	_ = f.do(EscapeAction{})
	assert.Equal(t, ModeBrowsing, f.state.Mode)

	_ = f.do(StartCommandAction{Kind: CommandCreateFile})
	assert.Equal(t, ModePrompting, f.state.Mode)
}

func TestErrorDisplayIgnoresPassiveEvents(t *testing.T) {
	f := newFixture(t, []string{"a"}, nil)
	f.state.showError(assert.AnError)

	_ = f.do(TickAction{}, ResizeAction{Width: 100, Height: 40})
	assert.Equal(t, ModeErrorDisplay, f.state.Mode)
	assert.Equal(t, 40, f.state.ScreenHeight)

	_ = f.do(NavigateDownAction{})
	assert.Equal(t, ModeBrowsing, f.state.Mode)
	assert.Equal(t, 0, f.state.Cursor)
}

func TestDirectoryChangedKeepsSelection(t *testing.T) {
	f := newFixture(t, []string{"b", "d"}, nil)
	f.selectName("d")

	require.NoError(t, os.WriteFile(f.path("a"), nil, 0o644))
	require.NoError(t, f.do(DirectoryChangedAction{Path: f.dir}))

	assert.Equal(t, []string{"a", "b", "d"}, displayedNames(f.state))
	assert.Equal(t, "d", f.state.CurrentFile().Name)
}

func TestDirectoryChangedForOtherPathIsIgnored(t *testing.T) {
	f := newFixture(t, []string{"b"}, nil)

	require.NoError(t, os.WriteFile(f.path("a"), nil, 0o644))
	require.NoError(t, f.do(DirectoryChangedAction{Path: "/elsewhere"}))
	assert.Equal(t, []string{"b"}, displayedNames(f.state))
}

func TestRefreshAfterSelectedEntryVanishes(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"}, nil)
	f.selectName("c")

	require.NoError(t, os.Remove(f.path("c")))
	require.NoError(t, f.do(RefreshDirectoryAction{}))
	assert.Equal(t, 1, f.state.Cursor)
}

func TestEditorClosedRestatsEntry(t *testing.T) {
	f := newFixture(t, []string{"notes"}, nil)
	require.NoError(t, os.WriteFile(f.path("notes"), []byte("longer content\n"), 0o644))

	require.NoError(t, f.do(EditorClosedAction{Path: f.path("notes")}))
	assert.EqualValues(t, len("longer content\n"), f.state.CurrentFile().Size)
	require.NotNil(t, f.state.Preview)
	assert.Equal(t, []string{"longer content"}, f.state.Preview.TextLines)
}

func TestPreviewFollowsCursor(t *testing.T) {
	f := newFixture(t, []string{"file", "sub/inner"}, []string{"sub"})

	_ = f.do(JumpFirstAction{})
	require.NotNil(t, f.state.Preview)
	assert.Equal(t, "file", f.state.Preview.Name)
	assert.Equal(t, []string{"hello"}, f.state.Preview.TextLines)

	_ = f.do(NavigateDownAction{})
	require.NotNil(t, f.state.Preview)
	assert.Equal(t, fsutil.KindDirectory, f.state.Preview.Kind)
	require.Len(t, f.state.Preview.DirEntries, 1)
	assert.Equal(t, "inner", f.state.Preview.DirEntries[0].Name)
}

func TestPreviewOfEmptyDirectoryHasMessage(t *testing.T) {
	f := newFixture(t, nil, []string{"empty"})

	_ = f.do(JumpFirstAction{})
	require.NotNil(t, f.state.Preview)
	assert.Equal(t, "Empty Directory", f.state.Preview.Message)
	assert.Equal(t, ModeBrowsing, f.state.Mode)
}

func TestProjectionIsDetached(t *testing.T) {
	f := newFixture(t, []string{"a", "b"}, nil)
	_ = f.do(StartCommandAction{Kind: CommandSearch})
	f.typeText("a")

	p := f.state.Projection()
	assert.Equal(t, "/a", p.PromptLine)
	assert.Equal(t, ModePrompting, p.Mode)
	require.NotNil(t, p.Selected())

	p.Entries[0].Name = "mutated"
	assert.Equal(t, "a", f.state.Displayed[0].Name)
}

func TestProjectionPreviewIsDetached(t *testing.T) {
	f := newFixture(t, []string{"file", "sub/inner"}, []string{"sub"})
	_ = f.do(JumpFirstAction{})

	p := f.state.Projection()
	require.NotNil(t, p.Preview)
	require.Len(t, p.Preview.TextLines, 1)
	assert.NotSame(t, f.state.Preview, p.Preview)

	p.Preview.TextLines[0] = "mutated"
	p.Preview.Message = "mutated"
	assert.Equal(t, []string{"hello"}, f.state.Preview.TextLines)
	assert.Empty(t, f.state.Preview.Message)

	_ = f.do(NavigateDownAction{})
	p = f.state.Projection()
	require.Len(t, p.Preview.DirEntries, 1)
	p.Preview.DirEntries[0].Name = "mutated"
	assert.Equal(t, "inner", f.state.Preview.DirEntries[0].Name)
}
