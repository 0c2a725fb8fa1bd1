//go:build !windows

package app

import (
	"syscall"

	statepkg "github.com/kk-code-lab/fm/internal/state"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process, not the whole process group, so job control
	// in the launching shell keeps working.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.reduce(statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
