//go:build windows

package app

// Windows consoles have no job control, so Ctrl-Z leaves the browser running.
func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool { return false }
