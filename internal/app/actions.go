package app

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	statepkg "github.com/kk-code-lab/fm/internal/state"
)

var (
	commandBuilder = exec.Command
	clipboardWrite = clipboard.WriteAll
)

// handleClipboard copies the absolute path of the cursor entry.
func (app *Application) handleClipboard(action statepkg.Action) bool {
	app.reduce(action)
	if app.state.Mode != statepkg.ModeBrowsing || !app.state.ClipboardAvailable {
		return true
	}
	file := app.state.CurrentFile()
	if file == nil {
		return true
	}

	text := normalizeClipboardPath(file.Path, runtime.GOOS)
	if err := clipboardWrite(text); err != nil {
		app.logger.WithFields(logrus.Fields{"path": text, "error": err}).Warn("clipboard write failed")
		app.state.Notice = fmt.Sprintf("clipboard: %v", err)
		return true
	}
	app.state.LastYankTime = time.Now()
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

// handleEditorOpen runs the editor on the cursor file, then lets the state
// re-stat it.
func (app *Application) handleEditorOpen(action statepkg.Action) bool {
	app.reduce(action)
	if app.state.Mode != statepkg.ModeBrowsing || !app.state.EditorAvailable || len(app.editorCmd) == 0 {
		return true
	}

	file := app.state.CurrentFile()
	if file == nil || file.IsDir() {
		return true
	}

	filePath := file.Path
	err := app.openFileInEditor(filePath)
	if err != nil {
		app.logger.WithFields(logrus.Fields{"path": filePath, "error": err}).Warn("editor failed")
	}
	return app.reduce(statepkg.EditorClosedAction{Path: filePath, Err: err})
}

func (app *Application) openFileInEditor(filePath string) error {
	if len(app.editorCmd) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorArgs := app.editorArgsWithFile(filePath)
	if runtime.GOOS == "windows" {
		return app.openFileInEditorFallback(editorArgs)
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return app.openFileInEditorFallback(editorArgs)
	}
	defer func() {
		_ = tty.Close()
	}()

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", filepath.Base(editorArgs[0]), runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
